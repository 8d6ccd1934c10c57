package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/lazyops/internal/realtime"
)

// startDashboard subscribes to the realtime channel. Snapshots are delivered
// through a buffered channel read by waitForDashboard.
func (m *Model) startDashboard() tea.Cmd {
	if m.deps.Dashboard == nil || m.dashStop != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.dashGen++
	m.dashStop = cancel
	m.dashErr = nil
	gen := m.dashGen
	ch := make(chan tea.Msg, 16)
	dash := m.deps.Dashboard

	go func() {
		defer close(ch)
		err := dash.Run(ctx, func(s realtime.Snapshot) {
			select {
			case ch <- snapshotMsg{gen: gen, snapshot: s}:
			case <-ctx.Done():
			}
		})
		select {
		case ch <- dashboardClosedMsg{gen: gen, err: err}:
		case <-ctx.Done():
		}
	}()
	m.dashCh = ch
	return waitForDashboard(ch)
}

func (m *Model) stopDashboard() {
	if m.dashStop != nil {
		m.dashStop()
		m.dashStop = nil
	}
	m.dashCh = nil
}

func waitForDashboard(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
