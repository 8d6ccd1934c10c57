package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/lazyops/internal/action"
)

type formField struct {
	field action.Field
	input textinput.Model
	area  textarea.Model
}

func (f *formField) value() string {
	if f.field.Multiline() {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) focus() tea.Cmd {
	if f.field.Multiline() {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *formField) blur() {
	if f.field.Multiline() {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *formField) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.field.Multiline() {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *formField) view() string {
	if f.field.Multiline() {
		return f.area.View()
	}
	return f.input.View()
}

// form holds the inputs of the action being edited.
type form struct {
	key    string
	fields []formField
	focus  int
}

func newForm(key string, fields []action.Field, values action.Form, width int) form {
	f := form{key: key}
	for _, fd := range fields {
		ff := formField{field: fd}
		placeholder := fd.Placeholder
		if placeholder == "" {
			placeholder = fd.Default
		}
		if fd.Multiline() {
			ta := textarea.New()
			ta.Placeholder = placeholder
			ta.ShowLineNumbers = false
			ta.SetHeight(4)
			if width > 8 {
				ta.SetWidth(width - 4)
			}
			ta.SetValue(values[fd.Name])
			ff.area = ta
		} else {
			ti := textinput.New()
			ti.Prompt = "> "
			ti.Placeholder = placeholder
			if fd.Kind == action.Secret {
				ti.EchoMode = textinput.EchoPassword
			}
			ti.SetValue(values[fd.Name])
			ff.input = ti
		}
		f.fields = append(f.fields, ff)
	}
	return f
}

func (f *form) focusCmd() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].focus()
}

func (f *form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].focus()
}

// focusedMultiline reports whether enter should insert a newline.
func (f *form) focusedMultiline() bool {
	return len(f.fields) > 0 && f.fields[f.focus].field.Multiline()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].update(msg)
}

func (f *form) values() action.Form {
	out := make(action.Form, len(f.fields))
	for i := range f.fields {
		out[f.fields[i].field.Name] = strings.TrimRight(f.fields[i].value(), "\n")
	}
	return out
}
