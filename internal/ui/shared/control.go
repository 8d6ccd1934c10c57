package shared

// Control is an action trigger that can be disabled while its request is in
// flight.
type Control struct {
	Label string

	pending  string
	disabled bool
}

// NewControl returns an enabled control.
func NewControl(label string) *Control {
	return &Control{Label: label}
}

// Disabled reports whether the control is busy.
func (c *Control) Disabled() bool { return c.disabled }

// Text is the label currently shown.
func (c *Control) Text() string {
	if c.disabled && c.pending != "" {
		return c.pending
	}
	return c.Label
}

// Begin disables the control and shows the pending label. It returns false
// when the control is already busy.
func (c *Control) Begin(pending string) bool {
	if c.disabled {
		return false
	}
	c.disabled = true
	c.pending = pending
	return true
}

// End re-enables the control and restores its label. Calling End on an idle
// control is a no-op.
func (c *Control) End() {
	c.disabled = false
	c.pending = ""
}

// Run executes fn with the control disabled. The control is restored on every
// exit path, including a panic in fn. A busy control returns ErrBusy without
// calling fn.
func (c *Control) Run(pending string, fn func() error) error {
	if !c.Begin(pending) {
		return ErrBusy
	}
	defer c.End()
	return fn()
}
