package shared

import "errors"

// ErrBusy is returned when an action is triggered on a disabled control.
var ErrBusy = errors.New("action already in progress")

// ActionUtils is the contract every panel binding uses for feedback.
type ActionUtils interface {
	SetResult(b *Banner, kind Kind, msg string)
	ToMessage(err error, fallback string) string
	WithBusy(c *Control, pending string, fn func() error) error
}

// DefaultUtils implements ActionUtils with the package functions.
type DefaultUtils struct{}

func (DefaultUtils) SetResult(b *Banner, kind Kind, msg string) { SetResult(b, kind, msg) }

func (DefaultUtils) ToMessage(err error, fallback string) string { return ToMessage(err, fallback) }

func (DefaultUtils) WithBusy(c *Control, pending string, fn func() error) error {
	return c.Run(pending, fn)
}

var _ ActionUtils = DefaultUtils{}
