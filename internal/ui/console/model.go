// Package console is the interactive terminal front end: a panel list, the
// actions of each panel, a form per action and a result banner per panel.
package console

import (
	"context"
	"sort"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/export"
	"github.com/noelruault/lazyops/internal/favorites"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/logger"
	"github.com/noelruault/lazyops/internal/panels"
	"github.com/noelruault/lazyops/internal/realtime"
	"github.com/noelruault/lazyops/internal/selection"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

type screen int

const (
	panelsScreen screen = iota
	actionsScreen
	formScreen
)

// Exporter uploads result snapshots.
type Exporter interface {
	Export(ctx context.Context, snap export.Snapshot) (string, error)
}

// Dashboard streams realtime snapshots until ctx is done.
type Dashboard interface {
	Run(ctx context.Context, handle func(realtime.Snapshot)) error
}

// Deps wires the console to its collaborators. Exporter and Dashboard are
// optional.
type Deps struct {
	Registry  *panels.Registry
	Env       action.Env
	Favorites *favorites.Store
	Exporter  Exporter
	Dashboard Dashboard
	WebURL    string
	Log       *logger.Logger

	// OpenURL and Copy default to open.Run and clipboard.WriteAll.
	OpenURL func(string) error
	Copy    func(string) error
}

// result is the last outcome shown for a panel.
type result struct {
	key     string
	path    string
	outcome action.Outcome
}

// Model is the bubbletea model of the console.
type Model struct {
	ctx   context.Context
	deps  Deps
	loc   i18n.Locale
	utils shared.ActionUtils

	bindings map[string]*action.Binding
	banners  map[string]*shared.Banner
	results  map[string]result

	currentScreen screen
	panelIndex    int
	actionIndex   int
	panelVP       shared.Viewport
	actionVP      shared.Viewport
	form          form
	spinner       spinner.Model
	status        string
	width         int
	height        int

	dashGen  int
	dashStop context.CancelFunc
	dashCh   <-chan tea.Msg
	snapshot *realtime.Snapshot
	dashErr  error
}

// New builds the console. Every action of the registry is bound once so its
// busy state survives navigation.
func New(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Env.Selection == nil {
		deps.Env.Selection = selection.New()
	}
	if deps.Env.Utils == nil {
		deps.Env.Utils = shared.DefaultUtils{}
	}
	if deps.OpenURL == nil {
		deps.OpenURL = open.Run
	}
	if deps.Copy == nil {
		deps.Copy = clipboard.WriteAll
	}

	m := Model{
		ctx:      ctx,
		deps:     deps,
		loc:      deps.Env.Locale,
		utils:    deps.Env.Utils,
		bindings: make(map[string]*action.Binding),
		banners:  make(map[string]*shared.Banner),
		results:  make(map[string]result),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		panelVP:  shared.Viewport{Height: 20},
		actionVP: shared.Viewport{Height: 20},
	}
	for _, p := range deps.Registry.Panels() {
		m.banners[p.ID] = &shared.Banner{}
		for _, d := range p.Actions {
			m.bindings[d.Key()] = action.Bind(d, deps.Env)
		}
	}
	if !deps.Env.Auth.Ready() {
		m.status = i18n.NotReady.In(m.loc)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentPanel() panels.Panel {
	all := m.deps.Registry.Panels()
	if len(all) == 0 {
		return panels.Panel{}
	}
	return all[m.panelIndex]
}

// actions returns the current panel's actions with favorites first, each
// group in catalog order.
func (m Model) actions() []action.Descriptor {
	src := m.currentPanel().Actions
	out := make([]action.Descriptor, len(src))
	copy(out, src)
	if m.deps.Favorites == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return m.deps.Favorites.Has(out[i].Key()) && !m.deps.Favorites.Has(out[j].Key())
	})
	return out
}

func (m Model) currentAction() (action.Descriptor, bool) {
	acts := m.actions()
	if m.actionIndex < 0 || m.actionIndex >= len(acts) {
		return action.Descriptor{}, false
	}
	return acts[m.actionIndex], true
}

func (m Model) banner(panelID string) *shared.Banner {
	return m.banners[panelID]
}

// busy reports whether any action of the current panel is in flight.
func (m Model) busy() bool {
	for _, d := range m.currentPanel().Actions {
		if b := m.bindings[d.Key()]; b != nil && b.Control.Disabled() {
			return true
		}
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		visible := msg.Height - 12
		if visible < 3 {
			visible = 3
		}
		m.panelVP.Height = visible
		m.actionVP.Height = visible
		return m, nil

	case spinner.TickMsg:
		if !m.anyBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		return m.handleActionDone(msg), nil

	case exportDoneMsg:
		banner := m.banner(msg.panel)
		if msg.err != nil {
			m.utils.SetResult(banner, shared.KindDanger, m.utils.ToMessage(msg.err, i18n.RequestFailed.In(m.loc)))
			return m, nil
		}
		m.utils.SetResult(banner, shared.KindSuccess, i18n.Exported.Format(m.loc, msg.location))
		return m, nil

	case snapshotMsg:
		if msg.gen != m.dashGen || m.dashStop == nil {
			return m, nil
		}
		snap := msg.snapshot
		m.snapshot = &snap
		m.dashErr = nil
		return m, waitForDashboard(m.dashCh)

	case dashboardClosedMsg:
		if msg.gen != m.dashGen {
			return m, nil
		}
		m.stopDashboard()
		if msg.err != nil {
			m.deps.Log.Warn("dashboard channel closed", "error", msg.err)
			m.dashErr = msg.err
			m.status = i18n.DashboardOffline.In(m.loc)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopDashboard()
			return m, tea.Quit
		}
		switch m.currentScreen {
		case panelsScreen:
			return m.updatePanels(msg)
		case actionsScreen:
			return m.updateActions(msg)
		case formScreen:
			return m.updateForm(msg)
		}
	}

	if m.currentScreen == formScreen {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) anyBusy() bool {
	for _, b := range m.bindings {
		if b.Control.Disabled() {
			return true
		}
	}
	return false
}

func (m Model) handleActionDone(msg actionDoneMsg) Model {
	b, ok := m.bindings[msg.key]
	if !ok {
		return m
	}
	b.Control.End()
	banner := m.banner(b.Desc.Panel)
	m.utils.SetResult(banner, msg.outcome.Kind, msg.outcome.Message)
	m.results[b.Desc.Panel] = result{key: msg.key, path: msg.path, outcome: msg.outcome}
	if msg.outcome.Kind == shared.KindDanger {
		m.deps.Log.Warn("action failed", "action", msg.key, "message", msg.outcome.Message)
	} else {
		m.deps.Log.Debug("action finished", "action", msg.key, "kind", msg.outcome.Kind.String())
	}
	return m
}

func (m Model) updatePanels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.deps.Registry.Panels())
	switch msg.String() {
	case "q", "esc":
		m.stopDashboard()
		return m, tea.Quit
	case "up", "k":
		if m.panelIndex > 0 {
			m.panelIndex--
		}
	case "down", "j":
		if m.panelIndex < n-1 {
			m.panelIndex++
		}
	case "enter", "l", "right":
		if n == 0 {
			return m, nil
		}
		m.currentScreen = actionsScreen
		m.actionIndex = 0
		m.actionVP.Offset = 0
		m.status = ""
		if m.currentPanel().Realtime {
			cmd := m.startDashboard()
			return m, cmd
		}
	case "o":
		return m.openWeb(), nil
	case "y":
		return m.copySelection(), nil
	}
	shared.EnsureVisible(m.panelIndex, n, &m.panelVP)
	return m, nil
}

func (m Model) updateActions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	acts := m.actions()
	switch msg.String() {
	case "q":
		m.stopDashboard()
		return m, tea.Quit
	case "esc", "h", "left", "backspace":
		m.stopDashboard()
		m.currentScreen = panelsScreen
		m.status = ""
		return m, nil
	case "up", "k":
		if m.actionIndex > 0 {
			m.actionIndex--
		}
	case "down", "j":
		if m.actionIndex < len(acts)-1 {
			m.actionIndex++
		}
	case "enter", "l", "right":
		d, ok := m.currentAction()
		if !ok {
			return m, nil
		}
		b := m.bindings[d.Key()]
		m.form = newForm(d.Key(), d.Fields, b.Prefill(action.Form{}), m.width)
		m.currentScreen = formScreen
		if len(d.Fields) == 0 {
			return m.submit()
		}
		cmd := m.form.focusCmd()
		return m, cmd
	case "f":
		return m.toggleFavorite(), nil
	case "o":
		return m.openWeb(), nil
	case "y":
		return m.copySelection(), nil
	case "e":
		return m.exportResult()
	}
	shared.EnsureVisible(m.actionIndex, len(acts), &m.actionVP)
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentScreen = actionsScreen
		return m, nil
	case "tab", "down":
		if msg.String() == "down" && m.form.focusedMultiline() {
			break
		}
		cmd := m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		if msg.String() == "up" && m.form.focusedMultiline() {
			break
		}
		cmd := m.form.move(-1)
		return m, cmd
	case "ctrl+s":
		return m.submit()
	case "enter":
		if !m.form.focusedMultiline() {
			return m.submit()
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

// submit validates the form and starts the request. While the request is in
// flight the binding's control shows its pending label and further submits
// are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	b, ok := m.bindings[m.form.key]
	if !ok {
		return m, nil
	}
	banner := m.banner(b.Desc.Panel)
	req, bad := b.Prepare(m.form.values())
	if bad != nil {
		m.utils.SetResult(banner, bad.Kind, bad.Message)
		return m, nil
	}
	if !b.Control.Begin(b.PendingLabel()) {
		m.status = i18n.Busy.In(m.loc)
		return m, nil
	}
	m.status = ""

	ctx := m.ctx
	key := b.Desc.Key()
	run := func() tea.Msg {
		return actionDoneMsg{key: key, path: req.Path, outcome: b.Send(ctx, req)}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) toggleFavorite() Model {
	d, ok := m.currentAction()
	if !ok || m.deps.Favorites == nil {
		return m
	}
	title := d.Title.In(m.loc)
	if m.deps.Favorites.Toggle(d.Key()) {
		m.status = i18n.FavoriteAdded.Format(m.loc, title)
	} else {
		m.status = i18n.FavoriteRemoved.Format(m.loc, title)
	}
	// keep the cursor on the toggled action
	for i, a := range m.actions() {
		if a.Key() == d.Key() {
			m.actionIndex = i
			break
		}
	}
	return m
}

func (m Model) openWeb() Model {
	p := m.currentPanel()
	url := m.deps.WebURL + p.WebPath
	if err := m.deps.OpenURL(url); err != nil {
		m.utils.SetResult(m.banner(p.ID), shared.KindDanger, m.utils.ToMessage(err, i18n.RequestFailed.In(m.loc)))
		return m
	}
	m.status = url
	return m
}

func (m Model) copySelection() Model {
	p := m.currentPanel()
	_, value, ok := m.deps.Env.Selection.Last()
	if !ok {
		m.utils.SetResult(m.banner(p.ID), shared.KindWarn, i18n.NothingSelected.In(m.loc))
		return m
	}
	if err := m.deps.Copy(value); err != nil {
		m.utils.SetResult(m.banner(p.ID), shared.KindDanger, m.utils.ToMessage(err, i18n.RequestFailed.In(m.loc)))
		return m
	}
	m.status = i18n.Copied.Format(m.loc, value)
	return m
}

func (m Model) exportResult() (tea.Model, tea.Cmd) {
	p := m.currentPanel()
	banner := m.banner(p.ID)
	if m.deps.Exporter == nil {
		m.utils.SetResult(banner, shared.KindWarn, i18n.ExportDisabled.In(m.loc))
		return m, nil
	}
	res, ok := m.results[p.ID]
	if !ok || !res.outcome.Sent {
		m.utils.SetResult(banner, shared.KindWarn, i18n.NothingToExport.In(m.loc))
		return m, nil
	}
	b := m.bindings[res.key]
	snap := export.Snapshot{
		Panel:    p.ID,
		Action:   b.Desc.ID,
		Kind:     res.outcome.Kind.String(),
		Message:  res.outcome.Message,
		Path:     res.path,
		Response: res.outcome.Response,
	}
	ctx := m.ctx
	exporter := m.deps.Exporter
	return m, func() tea.Msg {
		loc, err := exporter.Export(ctx, snap)
		return exportDoneMsg{panel: snap.Panel, location: loc, err: err}
	}
}
