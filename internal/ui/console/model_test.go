package console

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/api"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/export"
	"github.com/noelruault/lazyops/internal/favorites"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/panels"
	"github.com/noelruault/lazyops/internal/realtime"
	"github.com/noelruault/lazyops/internal/selection"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

type call struct {
	method string
	path   string
}

type fakeDoer struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]any
	failures  map[string]error
}

func (f *fakeDoer) Do(_ context.Context, method, path string, _ any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, path: path})
	k := method + " " + path
	if err, ok := f.failures[k]; ok {
		return err
	}
	if out == nil {
		return nil
	}
	data, err := json.Marshal(f.responses[k])
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *fakeDoer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeExporter struct {
	snaps []export.Snapshot
}

func (f *fakeExporter) Export(_ context.Context, snap export.Snapshot) (string, error) {
	f.snaps = append(f.snaps, snap)
	return "s3://bucket/" + snap.Panel + "/" + snap.Action + "/x.json", nil
}

var alertsPanel = panels.Panel{
	ID:      "alerts",
	Title:   i18n.T("告警中心", "Alerts"),
	WebPath: "/console/alerts",
	Actions: []action.Descriptor{
		{
			ID:      "ack",
			Title:   i18n.T("确认告警", "Acknowledge"),
			Method:  "POST",
			Path:    "/api/alert/alerts/{alert_id}/ack",
			Pending: i18n.T("确认中...", "Acknowledging..."),
			Fields: []action.Field{
				{Name: "alert_id", Label: i18n.T("告警 ID", "Alert ID"), In: action.InPath, Required: true, Selection: selection.AlertID},
			},
			Propagate: []action.Propagation{{From: "alert_id", Key: selection.AlertID}},
		},
		{
			ID:     "list",
			Title:  i18n.T("查询告警", "List alerts"),
			Method: "GET",
			Path:   "/api/alert/alerts",
			Format: action.FormatJSON,
		},
	},
}

type harness struct {
	doer   *fakeDoer
	sel    *selection.Store
	opened []string
	copied []string
}

func newModel(t *testing.T, ready bool, mutate func(*Deps), ps ...panels.Panel) (Model, *harness) {
	t.Helper()
	if len(ps) == 0 {
		ps = []panels.Panel{alertsPanel}
	}
	reg, err := panels.NewRegistry(ps...)
	require.NoError(t, err)

	h := &harness{doer: &fakeDoer{responses: map[string]any{}}, sel: selection.New()}
	token := ""
	if ready {
		token = "tok"
	}
	deps := Deps{
		Registry: reg,
		Env: action.Env{
			Client:    h.doer,
			Auth:      auth.New(token, "csrf", ""),
			Locale:    i18n.ZH,
			Selection: h.sel,
		},
		WebURL: "https://ops.example.com",
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
		Copy: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	}
	if mutate != nil {
		mutate(&deps)
	}
	return New(context.Background(), deps), h
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// collect runs cmd and flattens batches, skipping messages of other types.
func collect[T any](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []T
		for _, c := range batch {
			out = append(out, collect[T](c)...)
		}
		return out
	}
	if v, ok := msg.(T); ok {
		return []T{v}
	}
	return nil
}

func openAck(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, key("enter"))
	require.Equal(t, actionsScreen, m.currentScreen)
	m, _ = send(t, m, key("enter"))
	require.Equal(t, formScreen, m.currentScreen)
	return m
}

func TestSubmitAckRunsOnceAndRestoresControl(t *testing.T) {
	m, h := newModel(t, true, nil)
	h.sel.Set(selection.AlertID, "a-1")
	h.doer.responses["POST /api/alert/alerts/a-1/ack"] = map[string]any{"id": "a-1", "status": "ACKED"}

	m = openAck(t, m)
	assert.Equal(t, "a-1", m.form.values()["alert_id"])

	m, cmd := send(t, m, key("enter"))
	require.NotNil(t, cmd)
	b := m.bindings["alerts.ack"]
	assert.True(t, b.Control.Disabled())
	assert.Equal(t, "确认中...", b.Control.Text())
	assert.Contains(t, m.View(), "确认中...")

	m, again := send(t, m, key("enter"))
	assert.Nil(t, again)
	assert.Equal(t, i18n.Busy.In(i18n.ZH), m.status)

	done := collect[actionDoneMsg](cmd)
	require.Len(t, done, 1)
	assert.Equal(t, 1, h.doer.count())

	m, _ = send(t, m, done[0])
	assert.False(t, b.Control.Disabled())
	assert.Equal(t, "确认告警", b.Control.Text())
	assert.Equal(t, shared.KindSuccess, m.banners["alerts"].Kind)
	assert.Equal(t, "POST", h.doer.calls[0].method)
	assert.Equal(t, "/api/alert/alerts/a-1/ack", h.doer.calls[0].path)
}

func TestSubmitTypedValue(t *testing.T) {
	m, h := newModel(t, true, nil)
	m = openAck(t, m)

	m, _ = send(t, m, key("a-9"))
	assert.Equal(t, "a-9", m.form.values()["alert_id"])

	m, cmd := send(t, m, key("ctrl+s"))
	for _, done := range collect[actionDoneMsg](cmd) {
		m, _ = send(t, m, done)
	}
	require.Equal(t, 1, h.doer.count())
	assert.Equal(t, "/api/alert/alerts/a-9/ack", h.doer.calls[0].path)

	v, ok := h.sel.Get(selection.AlertID)
	require.True(t, ok)
	assert.Equal(t, "a-9", v)
}

func TestSubmitMissingFieldWarnsWithoutRequest(t *testing.T) {
	m, h := newModel(t, true, nil)
	m = openAck(t, m)

	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, h.doer.count())
	assert.Equal(t, shared.KindWarn, m.banners["alerts"].Kind)
	assert.Equal(t, "请填写：告警 ID", m.banners["alerts"].Message)
	assert.False(t, m.bindings["alerts.ack"].Control.Disabled())
}

func TestNotReadyDisablesActions(t *testing.T) {
	m, h := newModel(t, false, nil)
	assert.Equal(t, i18n.NotReady.In(i18n.ZH), m.status)

	h.sel.Set(selection.AlertID, "a-1")
	m = openAck(t, m)
	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, h.doer.count())
	assert.Equal(t, shared.KindWarn, m.banners["alerts"].Kind)
}

func TestFailureShowsServerDetail(t *testing.T) {
	m, h := newModel(t, true, nil)
	h.sel.Set(selection.AlertID, "a-1")
	h.doer.failures = map[string]error{
		"POST /api/alert/alerts/a-1/ack": &api.Error{Status: 409, Detail: "告警已关闭"},
	}
	m = openAck(t, m)

	m, cmd := send(t, m, key("enter"))
	for _, done := range collect[actionDoneMsg](cmd) {
		m, _ = send(t, m, done)
	}
	assert.Equal(t, shared.KindDanger, m.banners["alerts"].Kind)
	assert.Equal(t, "告警已关闭", m.banners["alerts"].Message)
	assert.False(t, m.bindings["alerts.ack"].Control.Disabled())
}

func TestActionWithoutFieldsRunsImmediately(t *testing.T) {
	m, h := newModel(t, true, nil)
	h.doer.responses["GET /api/alert/alerts"] = []any{map[string]any{"id": "a-1"}}

	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("down"))
	m, cmd := send(t, m, key("enter"))
	for _, done := range collect[actionDoneMsg](cmd) {
		m, _ = send(t, m, done)
	}
	require.Equal(t, 1, h.doer.count())
	assert.Equal(t, shared.KindSuccess, m.banners["alerts"].Kind)
	assert.Contains(t, m.results["alerts"].outcome.Detail, `"id": "a-1"`)
}

func TestFavoritesSortFirstAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	m, _ := newModel(t, true, func(d *Deps) {
		d.Favorites = favorites.Open(path, nil)
	})
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("down"))

	m, _ = send(t, m, key("f"))
	assert.Equal(t, "已收藏：查询告警", m.status)
	acts := m.actions()
	assert.Equal(t, "alerts.list", acts[0].Key())
	assert.Equal(t, 0, m.actionIndex)
	assert.Contains(t, m.View(), favoriteMark)

	assert.True(t, favorites.Open(path, nil).Has("alerts.list"))

	m, _ = send(t, m, key("f"))
	assert.Equal(t, "已取消收藏：查询告警", m.status)
	assert.Equal(t, "alerts.ack", m.actions()[0].Key())
	assert.Equal(t, 1, m.actionIndex)
}

func TestExport(t *testing.T) {
	m, h := newModel(t, true, nil)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("e"))
	assert.Equal(t, i18n.ExportDisabled.In(i18n.ZH), m.banners["alerts"].Message)

	exp := &fakeExporter{}
	m, h = newModel(t, true, func(d *Deps) { d.Exporter = exp })
	h.sel.Set(selection.AlertID, "a-1")
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("e"))
	assert.Equal(t, i18n.NothingToExport.In(i18n.ZH), m.banners["alerts"].Message)

	m, _ = send(t, m, key("enter"))
	m, cmd := send(t, m, key("enter"))
	for _, done := range collect[actionDoneMsg](cmd) {
		m, _ = send(t, m, done)
	}
	m, _ = send(t, m, key("esc"))
	require.Equal(t, actionsScreen, m.currentScreen)

	m, cmd = send(t, m, key("e"))
	exported := collect[exportDoneMsg](cmd)
	require.Len(t, exported, 1)
	m, _ = send(t, m, exported[0])

	require.Len(t, exp.snaps, 1)
	assert.Equal(t, "ack", exp.snaps[0].Action)
	assert.Equal(t, "/api/alert/alerts/a-1/ack", exp.snaps[0].Path)
	assert.Equal(t, shared.KindSuccess, m.banners["alerts"].Kind)
	assert.Equal(t, "已导出：s3://bucket/alerts/ack/x.json", m.banners["alerts"].Message)
}

func TestExportFailure(t *testing.T) {
	m, _ := newModel(t, true, nil)
	m, _ = send(t, m, exportDoneMsg{panel: "alerts", err: errors.New("access denied")})
	assert.Equal(t, shared.KindDanger, m.banners["alerts"].Kind)
	assert.Equal(t, "access denied", m.banners["alerts"].Message)
}

func TestOpenAndCopy(t *testing.T) {
	m, h := newModel(t, true, nil)

	m, _ = send(t, m, key("y"))
	assert.Equal(t, shared.KindWarn, m.banners["alerts"].Kind)
	assert.Empty(t, h.copied)

	h.sel.Set(selection.AlertID, "a-7")
	m, _ = send(t, m, key("y"))
	assert.Equal(t, []string{"a-7"}, h.copied)
	assert.Equal(t, "已复制：a-7", m.status)

	m, _ = send(t, m, key("o"))
	assert.Equal(t, []string{"https://ops.example.com/console/alerts"}, h.opened)
}

type fakeDashboard struct {
	stopped chan struct{}
}

func (f *fakeDashboard) Run(ctx context.Context, handle func(realtime.Snapshot)) error {
	defer close(f.stopped)
	handle(realtime.Snapshot{Stats: map[string]any{"open_alerts": 4}, Received: time.Now()})
	<-ctx.Done()
	return nil
}

func TestDashboardSubscription(t *testing.T) {
	dash := &fakeDashboard{stopped: make(chan struct{})}
	live := panels.Panel{
		ID:       "dashboard",
		Title:    i18n.T("实时总览", "Live dashboard"),
		Realtime: true,
		Actions: []action.Descriptor{
			{ID: "summary", Title: i18n.T("刷新概览", "Refresh"), Method: "GET", Path: "/api/observability/summary"},
		},
	}
	m, _ := newModel(t, true, func(d *Deps) { d.Dashboard = dash }, live)

	m, cmd := send(t, m, key("enter"))
	require.NotNil(t, cmd)
	snaps := collect[snapshotMsg](cmd)
	require.Len(t, snaps, 1)

	m, next := send(t, m, snaps[0])
	assert.NotNil(t, next)
	require.NotNil(t, m.snapshot)
	assert.Contains(t, m.View(), "open_alerts")

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, panelsScreen, m.currentScreen)
	select {
	case <-dash.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("dashboard subscription not stopped")
	}

	// messages from the stopped subscription are dropped
	m, _ = send(t, m, snaps[0])
	assert.Nil(t, m.dashStop)
	assert.True(t, strings.HasPrefix(m.View(), titleStyle.Render("lazyops")))
}

func TestFormKeepsLongSingleLineValues(t *testing.T) {
	prompt := strings.Repeat("x", 800)
	f := newForm("ai.evaluate", []action.Field{{Name: "prompt"}}, action.Form{"prompt": prompt}, 80)
	assert.Equal(t, prompt, f.values()["prompt"])

	f = newForm("ai.evaluate", []action.Field{{Name: "prompt"}}, action.Form{}, 80)
	f.focusCmd()
	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(prompt)})
	assert.Len(t, f.values()["prompt"], 800)
}

func TestViewClipsToWidthAndListsSelections(t *testing.T) {
	m, h := newModel(t, true, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 40})
	m, _ = send(t, m, key("enter"))
	h.sel.Set(selection.AlertID, "a-7")

	m, _ = send(t, m, actionDoneMsg{
		key:     "alerts.list",
		path:    "/api/alert/alerts",
		outcome: action.Outcome{Kind: shared.KindSuccess, Message: "ok", Detail: strings.Repeat("x", 200), Sent: true},
	})
	view := m.View()
	assert.Contains(t, view, "alert_id=a-7")
	assert.Contains(t, view, "...")
	assert.NotContains(t, view, strings.Repeat("x", 41))
}

func TestDoneMessageKeepsItsOwnPath(t *testing.T) {
	m, h := newModel(t, true, nil)
	h.sel.Set(selection.AlertID, "a-1")

	m = openAck(t, m)
	m, ackCmd := send(t, m, key("enter"))
	m, _ = send(t, m, key("esc"))
	m, _ = send(t, m, key("down"))
	m, listCmd := send(t, m, key("enter"))

	for _, done := range collect[actionDoneMsg](ackCmd) {
		m, _ = send(t, m, done)
	}
	assert.Equal(t, "alerts.ack", m.results["alerts"].key)
	assert.Equal(t, "/api/alert/alerts/a-1/ack", m.results["alerts"].path)

	for _, done := range collect[actionDoneMsg](listCmd) {
		m, _ = send(t, m, done)
	}
	assert.Equal(t, "alerts.list", m.results["alerts"].key)
	assert.Equal(t, "/api/alert/alerts", m.results["alerts"].path)
}

type burstDashboard struct {
	returned chan struct{}
}

func (b *burstDashboard) Run(_ context.Context, handle func(realtime.Snapshot)) error {
	defer close(b.returned)
	for i := 0; i < 16; i++ {
		handle(realtime.Snapshot{Stats: map[string]any{"seq": i}})
	}
	return errors.New("connection reset")
}

func TestDashboardCloseDeliveredAfterFullBuffer(t *testing.T) {
	live := panels.Panel{
		ID:       "dashboard",
		Title:    i18n.T("实时总览", "Live dashboard"),
		Realtime: true,
		Actions: []action.Descriptor{
			{ID: "summary", Title: i18n.T("刷新概览", "Refresh"), Method: "GET", Path: "/api/observability/summary"},
		},
	}
	dash := &burstDashboard{returned: make(chan struct{})}
	m, _ := newModel(t, true, func(d *Deps) { d.Dashboard = dash }, live)

	// the buffer is full by the time the subscription ends
	m, cmd := send(t, m, key("enter"))
	<-dash.returned
	closed := false
	for i := 0; i < 40 && cmd != nil && !closed; i++ {
		msg := cmd()
		require.NotNil(t, msg)
		_, closed = msg.(dashboardClosedMsg)
		m, cmd = send(t, m, msg)
	}
	require.True(t, closed)
	assert.Nil(t, m.dashStop)
	assert.Error(t, m.dashErr)
	assert.Equal(t, i18n.DashboardOffline.In(i18n.ZH), m.status)
}
