package action

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/lazyops/internal/api"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

func TestRunBatchCountsAndOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	failing := map[string]bool{"b": true, "e": true}
	var seen []string

	report := RunBatch(context.Background(), ids, func(ctx context.Context, id string) error {
		seen = append(seen, id)
		if failing[id] {
			return fmt.Errorf("%s failed", id)
		}
		return nil
	}, func(err error) string { return err.Error() })

	assert.Equal(t, ids, seen)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, report.Total-len(report.Failures), report.Succeeded)
	assert.Equal(t, []ItemFailure{{ID: "b", Message: "b failed"}, {ID: "e", Message: "e failed"}}, report.Failures)
	assert.False(t, report.Complete())
}

func TestRunBatchStopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	report := RunBatch(ctx, []string{"a", "b", "c"}, func(ctx context.Context, id string) error {
		calls++
		cancel()
		return nil
	}, func(err error) string { return err.Error() })

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "b", report.Failures[0].ID)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}

var batchCloseDescriptor = Descriptor{
	ID:         "batch-close",
	Title:      i18n.T("批量关闭", "Batch close"),
	Method:     http.MethodPost,
	Path:       "/api/alert/alerts/{id}/close",
	Capability: auth.AlertWrite,
	Fields: []Field{
		{Name: "batchCloseIds", Kind: Lines, Required: true},
		{Name: "comment"},
	},
	Batch: &Batch{Field: "batchCloseIds", Param: "id", Label: i18n.T("批量关闭", "Batch close")},
}

func TestBatchClosePartial(t *testing.T) {
	d := &fakeDoer{failures: map[string]error{
		"POST /api/alert/alerts/a-2/close": &api.Error{Status: 404, Detail: "not found"},
	}}
	b := Bind(batchCloseDescriptor, testEnv(d, auth.AlertWrite))

	out := b.Execute(context.Background(), Form{"batchCloseIds": "a-1\na-2\n"})
	assert.Equal(t, "批量关闭部分完成：成功 1/2。a-2: not found", out.Message)
	assert.Equal(t, shared.KindWarn, out.Kind)
	require.Len(t, d.calls, 2)
	assert.Equal(t, "/api/alert/alerts/a-1/close", d.calls[0].Path)
	assert.Equal(t, "/api/alert/alerts/a-2/close", d.calls[1].Path)
	assert.Equal(t, map[string]any{"comment": nil}, d.calls[0].Payload)
}

func TestBatchCloseComplete(t *testing.T) {
	d := &fakeDoer{}
	env := testEnv(d, auth.AlertWrite)
	env.Locale = i18n.EN
	out := Bind(batchCloseDescriptor, env).Execute(context.Background(), Form{"batchCloseIds": "a-1\n a-2 \n\na-3"})

	assert.Equal(t, shared.KindSuccess, out.Kind)
	assert.Equal(t, "Batch close complete: 3/3 succeeded.", out.Message)
	assert.Len(t, d.calls, 3)
}

func TestBatchAllFailedIsDanger(t *testing.T) {
	d := &fakeDoer{failures: map[string]error{
		"POST /api/alert/alerts/a-1/close": &api.Error{Status: 404, Detail: "not found"},
		"POST /api/alert/alerts/a-2/close": &api.Error{Status: 500},
	}}
	env := testEnv(d, auth.AlertWrite)
	env.Locale = i18n.EN
	out := Bind(batchCloseDescriptor, env).Execute(context.Background(), Form{"batchCloseIds": "a-1\na-2"})

	assert.Equal(t, shared.KindDanger, out.Kind)
	assert.Equal(t, "Batch close partially complete: 0/2 succeeded. a-1: not found; a-2: request failed", out.Message)
	assert.Equal(t, "a-1: not found\na-2: request failed", out.Detail)
}

func TestBatchEmptyInputSendsNothing(t *testing.T) {
	d := &fakeDoer{}
	out := Bind(batchCloseDescriptor, testEnv(d, auth.AlertWrite)).Execute(context.Background(), Form{"batchCloseIds": "\n \n"})
	assert.Equal(t, shared.KindWarn, out.Kind)
	assert.Empty(t, d.calls)
}
