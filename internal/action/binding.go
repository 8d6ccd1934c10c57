package action

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/noelruault/lazyops/internal/api"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

// Doer issues authenticated API calls. *api.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, payload, out any) error
}

// Request is a validated, ready-to-send action call.
type Request struct {
	Method string
	Path   string // fully expanded, except the batch placeholder
	Body   map[string]any
	IDs    []string // batch identifiers, in input order

	form Form
}

// Outcome is what a binding leaves behind once it returns to idle.
type Outcome struct {
	Kind       shared.Kind
	Message    string
	Detail     string
	Response   any
	Selections map[string]string
	Batch      *BatchReport
	Sent       bool
}

// Env is what every binding needs from the console.
type Env struct {
	Client    Doer
	Auth      auth.Context
	Locale    i18n.Locale
	Selection *selection.Store
	Utils     shared.ActionUtils
}

// Binding is a descriptor attached to a console environment, with its own
// trigger control.
type Binding struct {
	Desc    Descriptor
	Control *shared.Control

	env Env
}

// Bind attaches d to env.
func Bind(d Descriptor, env Env) *Binding {
	if env.Utils == nil {
		env.Utils = shared.DefaultUtils{}
	}
	if env.Selection == nil {
		env.Selection = selection.New()
	}
	return &Binding{
		Desc:    d,
		Control: shared.NewControl(d.Title.In(env.Locale)),
		env:     env,
	}
}

// Locale is the binding's display locale.
func (b *Binding) Locale() i18n.Locale { return b.env.Locale }

// PendingLabel is shown on the control while a request is in flight.
func (b *Binding) PendingLabel() string {
	if b.Desc.Pending.IsZero() {
		return i18n.Pending.In(b.env.Locale)
	}
	return b.Desc.Pending.In(b.env.Locale)
}

// Prefill fills empty form fields from the current selections.
func (b *Binding) Prefill(form Form) Form {
	out := form.Clone()
	for _, f := range b.Desc.Fields {
		if f.Selection == "" || out.Get(f.Name) != "" {
			continue
		}
		if v, ok := b.env.Selection.Get(f.Selection); ok {
			out[f.Name] = v
		}
	}
	return out
}

func (b *Binding) warn(t i18n.Text, args ...any) *Outcome {
	return &Outcome{Kind: shared.KindWarn, Message: t.Format(b.env.Locale, args...)}
}

// Prepare validates form and builds the request. A non-nil Outcome means
// validation failed and nothing must be sent.
func (b *Binding) Prepare(form Form) (*Request, *Outcome) {
	d := b.Desc
	loc := b.env.Locale
	if !b.env.Auth.Ready() || b.env.Client == nil {
		return nil, b.warn(i18n.NotReady)
	}
	if !b.env.Auth.Can(d.Capability) {
		return nil, b.warn(i18n.NoPermission)
	}

	req := &Request{Method: d.Method, form: form.Clone()}
	params := make(map[string]string)
	query := url.Values{}

	for _, f := range d.Fields {
		raw := form.Get(f.Name)
		if f.Kind == Secret {
			raw = form[f.Name]
		}
		isBatchField := d.Batch != nil && d.Batch.Field == f.Name

		if isBatchField {
			req.IDs = shared.SplitLines(form[f.Name])
			if len(req.IDs) == 0 {
				return nil, b.warn(i18n.BatchEmpty)
			}
			continue
		}
		if raw == "" && f.Kind != JSON {
			raw = f.Default
		}
		if raw == "" && (f.Required || f.In == InPath) {
			return nil, b.warn(i18n.RequiredField, f.DisplayLabel(loc))
		}

		value, bad := b.encode(f, raw)
		if bad != nil {
			return nil, bad
		}

		switch f.In {
		case InPath:
			params[f.Name] = raw
		case InQuery:
			if raw != "" {
				query.Set(f.Name, raw)
			}
		case InBody:
			if req.Body == nil {
				req.Body = make(map[string]any)
			}
			req.Body[f.Name] = value
		}
	}

	req.Path = api.WithQuery(api.BuildPath(d.Path, params), query)
	return req, nil
}

// encode converts a trimmed form value into its JSON body value. Empty
// values become null; empty JSON inputs become the field default.
func (b *Binding) encode(f Field, raw string) (any, *Outcome) {
	loc := b.env.Locale
	switch f.Kind {
	case JSON:
		var def any
		if f.Default != "" {
			def = ParseJSONField(f.Default, nil).Value
		}
		r := ParseJSONField(raw, def)
		if r.State == JSONInvalid {
			return nil, b.warn(i18n.InvalidJSON, f.DisplayLabel(loc), r.Err)
		}
		return r.Value, nil
	case Int:
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, b.warn(i18n.InvalidInt, f.DisplayLabel(loc))
		}
		return n, nil
	case Bool:
		if raw == "" {
			return nil, nil
		}
		switch strings.ToLower(raw) {
		case "true", "1", "yes", "y", "on":
			return true, nil
		case "false", "0", "no", "n", "off":
			return false, nil
		}
		return nil, b.warn(i18n.InvalidBool, f.DisplayLabel(loc))
	case Lines:
		lines := shared.SplitLines(raw)
		if len(lines) == 0 {
			return nil, nil
		}
		return lines, nil
	default:
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	}
}

// Send issues a prepared request and classifies the result.
func (b *Binding) Send(ctx context.Context, req *Request) Outcome {
	if b.Desc.Batch != nil {
		return b.sendBatch(ctx, req)
	}
	loc := b.env.Locale
	var resp any
	var payload any
	if req.Body != nil {
		payload = req.Body
	}
	if err := b.env.Client.Do(ctx, req.Method, req.Path, payload, &resp); err != nil {
		return Outcome{
			Kind:    shared.KindDanger,
			Message: b.env.Utils.ToMessage(err, i18n.RequestFailed.In(loc)),
			Sent:    true,
		}
	}

	res := Result{Locale: loc, Form: req.form, Response: resp}
	out := Outcome{
		Kind:     shared.KindSuccess,
		Message:  b.successMessage(res),
		Detail:   renderDetail(b.Desc, res),
		Response: resp,
		Sent:     true,
	}
	for _, p := range b.Desc.Propagate {
		v := res.StrOr(p.From, "")
		if v == "" {
			continue
		}
		if out.Selections == nil {
			out.Selections = make(map[string]string)
		}
		out.Selections[p.Key] = v
		b.env.Selection.Set(p.Key, v)
	}
	return out
}

func (b *Binding) successMessage(res Result) string {
	if b.Desc.Success != nil {
		return b.Desc.Success(res)
	}
	if b.Desc.Format == FormatLines {
		return loaded.Format(res.Locale, len(res.Rows()))
	}
	return i18n.Done.In(res.Locale)
}

var loaded = i18n.T("已加载 %d 条记录。", "Loaded %d records.")

func (b *Binding) sendBatch(ctx context.Context, req *Request) Outcome {
	loc := b.env.Locale
	fallback := i18n.RequestFailed.In(loc)
	var payload any
	if req.Body != nil {
		payload = req.Body
	}
	op := b.Desc.Batch.Label.In(loc)
	if b.Desc.Batch.Label.IsZero() {
		op = b.Desc.Title.In(loc)
	}

	report := RunBatch(ctx, req.IDs, func(ctx context.Context, id string) error {
		path := api.BuildPath(req.Path, map[string]string{b.Desc.Batch.Param: id})
		return b.env.Client.Do(ctx, req.Method, path, payload, nil)
	}, func(err error) string {
		return b.env.Utils.ToMessage(err, fallback)
	})

	out := Outcome{Batch: &report, Sent: report.Total > 0}
	if report.Complete() {
		out.Kind = shared.KindSuccess
		out.Message = i18n.BatchComplete.Format(loc, op, report.Succeeded, report.Total)
		return out
	}

	parts := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		parts = append(parts, f.ID+": "+f.Message)
	}
	out.Kind = shared.KindWarn
	if report.Succeeded == 0 {
		out.Kind = shared.KindDanger
	}
	out.Message = i18n.BatchPartial.Format(loc, op, report.Succeeded, report.Total, strings.Join(parts, i18n.ListSeparator(loc)))
	out.Detail = strings.Join(parts, "\n")
	return out
}

// Execute runs the full cycle: validate, send, classify. Validation failures
// never reach the network.
func (b *Binding) Execute(ctx context.Context, form Form) Outcome {
	req, bad := b.Prepare(form)
	if bad != nil {
		return *bad
	}
	return b.Send(ctx, req)
}

// Submit is Execute wrapped in the binding's busy control, with the outcome
// written to banner. It is the synchronous path used outside the TUI.
func (b *Binding) Submit(ctx context.Context, form Form, banner *shared.Banner) Outcome {
	req, bad := b.Prepare(form)
	if bad != nil {
		b.env.Utils.SetResult(banner, bad.Kind, bad.Message)
		return *bad
	}
	var out Outcome
	err := b.env.Utils.WithBusy(b.Control, b.PendingLabel(), func() error {
		out = b.Send(ctx, req)
		return nil
	})
	if err != nil {
		out = Outcome{Kind: shared.KindWarn, Message: i18n.Busy.In(b.env.Locale)}
	}
	b.env.Utils.SetResult(banner, out.Kind, out.Message)
	return out
}
