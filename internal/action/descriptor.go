package action

import (
	"fmt"
	"net/http"

	"github.com/noelruault/lazyops/internal/i18n"
)

// Format selects how a successful response is rendered into the detail box.
type Format int

const (
	FormatMessage Format = iota // banner only
	FormatJSON                  // pretty-printed JSON
	FormatLines                 // one line per row, or the Empty message
)

// Batch turns an action into a sequential sweep over a list of identifiers.
type Batch struct {
	Field string    // Lines field holding the identifiers
	Param string    // path placeholder each identifier is bound to
	Label i18n.Text // operation name used in the summary banner
}

// Propagation copies a value into the selection store after success. The
// value is read from the response field From, falling back to the form field
// of the same name.
type Propagation struct {
	From string
	Key  string
}

// Descriptor declares one bound action: its endpoint, inputs, permission and
// how its outcome is reported.
type Descriptor struct {
	ID         string
	Panel      string
	Title      i18n.Text
	Method     string
	Path       string
	Fields     []Field
	Capability string
	Pending    i18n.Text
	Format     Format
	Row        func(Row) string
	Empty      i18n.Text
	Success    func(Result) string
	Batch      *Batch
	Propagate  []Propagation
}

// Key is the fully qualified action id, panel.action.
func (d Descriptor) Key() string {
	if d.Panel == "" {
		return d.ID
	}
	return d.Panel + "." + d.ID
}

// Field returns the named field.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks the descriptor is internally consistent.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("action without id")
	}
	switch d.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return fmt.Errorf("%s: unsupported method %q", d.Key(), d.Method)
	}
	if d.Path == "" {
		return fmt.Errorf("%s: empty path", d.Key())
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%s: field without name", d.Key())
		}
		if seen[f.Name] {
			return fmt.Errorf("%s: duplicate field %q", d.Key(), f.Name)
		}
		seen[f.Name] = true
		if f.Kind == JSON && f.Default != "" {
			if r := ParseJSONField(f.Default, nil); r.State != JSONParsed {
				return fmt.Errorf("%s: field %q has invalid default: %v", d.Key(), f.Name, r.Err)
			}
		}
	}
	if d.Batch != nil {
		f, ok := d.Field(d.Batch.Field)
		if !ok || f.Kind != Lines {
			return fmt.Errorf("%s: batch field %q must be a Lines field", d.Key(), d.Batch.Field)
		}
		if d.Batch.Param == "" {
			return fmt.Errorf("%s: batch without path param", d.Key())
		}
	}
	if d.Format == FormatLines && d.Row == nil {
		return fmt.Errorf("%s: lines format without row renderer", d.Key())
	}
	return nil
}
