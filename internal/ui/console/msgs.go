package console

import (
	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/realtime"
)

// actionDoneMsg carries the outcome of a bound action back to Update.
type actionDoneMsg struct {
	key     string
	path    string
	outcome action.Outcome
}

type exportDoneMsg struct {
	panel    string
	location string
	err      error
}

// snapshotMsg and dashboardClosedMsg are tagged with the subscription
// generation so messages from a stopped subscription are dropped.
type snapshotMsg struct {
	gen      int
	snapshot realtime.Snapshot
}

type dashboardClosedMsg struct {
	gen int
	err error
}
