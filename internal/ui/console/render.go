package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/realtime"
	"github.com/noelruault/lazyops/internal/ui/shared"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	detailStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	bannerStyles = map[shared.Kind]lipgloss.Style{
		shared.KindSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		shared.KindWarn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		shared.KindDanger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
)

const (
	favoriteMark = "★ "
	noMark       = "  "
)

var helpText = map[screen]i18n.Text{
	panelsScreen:  i18n.T("↑/↓ 选择 • enter 进入 • o 打开网页 • y 复制选中 • q 退出", "↑/↓ select • enter open • o web • y copy selection • q quit"),
	actionsScreen: i18n.T("↑/↓ 选择 • enter 执行 • f 收藏 • e 导出 • o 打开网页 • y 复制选中 • esc 返回", "↑/↓ select • enter run • f favorite • e export • o web • y copy selection • esc back"),
	formScreen:    i18n.T("tab 切换 • enter/ctrl+s 提交 • esc 返回", "tab next • enter/ctrl+s submit • esc back"),
}

func (m Model) View() string {
	var b strings.Builder

	switch m.currentScreen {
	case panelsScreen:
		b.WriteString(titleStyle.Render("lazyops") + "\n\n")
		b.WriteString(m.renderPanels())
	case actionsScreen:
		p := m.currentPanel()
		b.WriteString(titleStyle.Render(p.Title.In(m.loc)) + "\n\n")
		b.WriteString(m.renderActions())
		if p.Realtime {
			b.WriteString("\n" + m.renderDashboard())
		}
		b.WriteString(m.renderResult(p.ID))
	case formScreen:
		b.WriteString(m.renderForm())
		b.WriteString(m.renderResult(m.currentPanel().ID))
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.truncate(m.status)) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(helpText[m.currentScreen].In(m.loc)))
	return b.String()
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return shared.Truncate(s, m.width)
}

func (m Model) renderPanels() string {
	all := m.deps.Registry.Panels()
	start, end := shared.GetVisibleRange(len(all), m.panelVP)
	var b strings.Builder
	for i := start; i < end; i++ {
		p := all[i]
		line := m.truncate(fmt.Sprintf("%-24s %d", p.Title.In(m.loc), len(p.Actions)))
		if i == m.panelIndex {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderActions() string {
	acts := m.actions()
	start, end := shared.GetVisibleRange(len(acts), m.actionVP)
	var b strings.Builder
	for i := start; i < end; i++ {
		d := acts[i]
		mark := noMark
		if m.deps.Favorites != nil && m.deps.Favorites.Has(d.Key()) {
			mark = favoriteMark
		}
		bind := m.bindings[d.Key()]
		text := bind.Control.Text()
		if m.width > 0 {
			// room for the mark and the spinner
			text = shared.Truncate(text, m.width-5)
		}
		if bind.Control.Disabled() {
			text = m.spinner.View() + " " + text
		}
		line := mark + text
		switch {
		case i == m.actionIndex:
			line = selectedStyle.Render(line)
		case bind.Control.Disabled():
			line = disabledStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	d, ok := m.deps.Registry.Action(m.form.key)
	if !ok {
		return ""
	}
	bind := m.bindings[d.Key()]
	var b strings.Builder
	title := bind.Control.Text()
	if bind.Control.Disabled() {
		title = m.spinner.View() + " " + title
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(helpStyle.Render(d.Method+" "+d.Path) + "\n\n")
	for i := range m.form.fields {
		f := &m.form.fields[i]
		label := f.field.DisplayLabel(m.loc)
		if f.field.Required {
			label += " *"
		}
		b.WriteString(labelStyle.Render(label) + "\n")
		b.WriteString(f.view() + "\n")
	}
	return b.String()
}

func (m Model) renderResult(panelID string) string {
	var b strings.Builder
	if banner := m.banner(panelID); banner != nil && banner.Kind != shared.KindNone {
		b.WriteString("\n" + bannerStyles[banner.Kind].Render(m.truncate(banner.Message)) + "\n")
	}
	if line := m.renderSelections(); line != "" {
		b.WriteString(helpStyle.Render(m.truncate(line)) + "\n")
	}
	res, ok := m.results[panelID]
	if !ok || res.outcome.Detail == "" {
		return b.String()
	}
	lines := strings.Split(res.outcome.Detail, "\n")
	limit := m.height - 16
	if limit < 5 {
		limit = 5
	}
	if len(lines) > limit {
		lines = append(lines[:limit:limit], "…")
	}
	for i := range lines {
		lines[i] = m.truncate(lines[i])
	}
	b.WriteString(detailStyle.Render(strings.Join(lines, "\n")) + "\n")
	return b.String()
}

func (m Model) renderDashboard() string {
	if m.snapshot == nil {
		if m.dashErr != nil {
			return statusStyle.Render(i18n.DashboardOffline.In(m.loc)) + "\n"
		}
		return helpStyle.Render(i18n.Pending.In(m.loc)) + "\n"
	}
	return renderSnapshot(*m.snapshot) + "\n"
}

func renderSnapshot(s realtime.Snapshot) string {
	keys := make([]string, 0, len(s.Stats))
	for k := range s.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(labelStyle.Render(k) + ": " + fmt.Sprint(s.Stats[k]) + "\n")
	}
	for _, mk := range s.Markers {
		line := fmt.Sprintf("• %s (%.4f, %.4f)", mk.Label, mk.Lat, mk.Lng)
		if mk.Severity != "" {
			line += " " + mk.Severity
		}
		b.WriteString(line + "\n")
	}
	if !s.Received.IsZero() {
		b.WriteString(helpStyle.Render(s.Received.Format("15:04:05")) + "\n")
	}
	return b.String()
}

// renderSelections lists the current selections as key=value pairs.
func (m Model) renderSelections() string {
	sel := m.deps.Env.Selection
	values := sel.Snapshot()
	parts := make([]string, 0, len(values))
	for _, k := range sel.Keys() {
		if v, ok := values[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, "  ")
}
