package action

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/noelruault/lazyops/internal/i18n"
)

// FieldKind controls how a form value is read and encoded.
type FieldKind int

const (
	Text FieldKind = iota
	Int
	Bool
	JSON
	Lines
	Secret
)

// Location says where a field's value goes in the request.
type Location int

const (
	InBody Location = iota
	InPath
	InQuery
	InNone
)

// Field describes one input of an action form.
type Field struct {
	Name        string
	Label       i18n.Text
	Kind        FieldKind
	In          Location
	Required    bool
	Default     string // for JSON fields, JSON text sent when the input is empty
	Placeholder string
	Selection   string // selection key the field is pre-filled from
}

// DisplayLabel returns the label for loc, or the field name.
func (f Field) DisplayLabel(loc i18n.Locale) string {
	if f.Label.IsZero() {
		return f.Name
	}
	return f.Label.In(loc)
}

// Multiline reports whether the field needs a multi-line editor.
func (f Field) Multiline() bool {
	return f.Kind == JSON || f.Kind == Lines
}

// Form is a snapshot of an action's input values at submit time.
type Form map[string]string

// Get returns the trimmed value of name.
func (f Form) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// Clone copies the form.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// JSONState tags the outcome of ParseJSONField.
type JSONState int

const (
	JSONDefault JSONState = iota
	JSONParsed
	JSONInvalid
)

// JSONResult is the tagged outcome of parsing a free-text JSON input.
type JSONResult struct {
	State JSONState
	Value any
	Err   error
}

// ParseJSONField parses raw strictly. An empty input yields def.
func ParseJSONField(raw string, def any) JSONResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return JSONResult{State: JSONDefault, Value: def}
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return JSONResult{State: JSONInvalid, Err: err}
	}
	if dec.More() {
		return JSONResult{State: JSONInvalid, Err: errors.New("unexpected data after JSON value")}
	}
	return JSONResult{State: JSONParsed, Value: v}
}
