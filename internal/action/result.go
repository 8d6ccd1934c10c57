package action

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/noelruault/lazyops/internal/i18n"
)

// Row is one object of a list response.
type Row map[string]any

// Str returns the value of key as display text. Missing and null values are
// empty.
func (r Row) Str(key string) string {
	return display(r[key])
}

// StrOr returns Str(key), or def when it is empty.
func (r Row) StrOr(key, def string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return def
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool, int, int64:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// Result is passed to success formatters.
type Result struct {
	Locale   i18n.Locale
	Form     Form
	Response any
}

// Str returns a top-level field of an object response.
func (r Result) Str(key string) string {
	if m, ok := r.Response.(map[string]any); ok {
		return display(m[key])
	}
	return ""
}

// StrOr returns Str(key), or the form value of key, or def.
func (r Result) StrOr(key, def string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	if s := r.Form.Get(key); s != "" {
		return s
	}
	return def
}

// Rows returns the rows of a list response.
func (r Result) Rows() []Row {
	return rowsOf(r.Response)
}

// T formats a localized text.
func (r Result) T(t i18n.Text, args ...any) string {
	return t.Format(r.Locale, args...)
}

// rowsOf accepts a bare array or an object wrapping one under items, rows,
// data or results.
func rowsOf(v any) []Row {
	var list []any
	switch t := v.(type) {
	case []any:
		list = t
	case map[string]any:
		for _, key := range []string{"items", "rows", "data", "results"} {
			if l, ok := t[key].([]any); ok {
				list = l
				break
			}
		}
	}
	rows := make([]Row, 0, len(list))
	for _, item := range list {
		switch it := item.(type) {
		case map[string]any:
			rows = append(rows, Row(it))
		default:
			rows = append(rows, Row{"value": it})
		}
	}
	return rows
}

// prettyJSON renders v with two-space indentation.
func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// renderDetail formats a successful response for the detail box.
func renderDetail(d Descriptor, res Result) string {
	switch d.Format {
	case FormatJSON:
		return prettyJSON(res.Response)
	case FormatLines:
		rows := res.Rows()
		if len(rows) == 0 {
			return d.Empty.In(res.Locale)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, d.Row(row))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
