package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/lazyops/internal/api"
)

func TestEnsureVisible(t *testing.T) {
	vp := Viewport{Height: 3}
	EnsureVisible(5, 10, &vp)
	if vp.Offset != 3 {
		t.Errorf("Expected offset 3, got %d", vp.Offset)
	}
	EnsureVisible(1, 10, &vp)
	if vp.Offset != 1 {
		t.Errorf("Expected offset 1, got %d", vp.Offset)
	}
	start, end := GetVisibleRange(10, vp)
	if start != 1 || end != 4 {
		t.Errorf("Expected range [1,4), got [%d,%d)", start, end)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "告警...", Truncate("告警已确认完成", 7))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a-1", "a-2"}, SplitLines("a-1\r\n\n  a-2 \n"))
	assert.Nil(t, SplitLines(" \n "))
}

func TestSetResultReplacesOutcome(t *testing.T) {
	var b Banner
	SetResult(&b, KindWarn, "first")
	SetResult(&b, KindSuccess, "second")
	assert.Equal(t, Banner{Kind: KindSuccess, Message: "second"}, b)
	assert.Equal(t, "success", b.Kind.String())
	b.Clear()
	assert.Equal(t, KindNone, b.Kind)
	SetResult(nil, KindDanger, "ignored")
}

func TestToMessage(t *testing.T) {
	assert.Equal(t, "fallback", ToMessage(nil, "fallback"))
	assert.Equal(t, "not found", ToMessage(&api.Error{Status: 404, Detail: "not found"}, "fallback"))
	assert.Equal(t, "fallback", ToMessage(&api.Error{Status: 500}, "fallback"))
	wrapped := fmt.Errorf("close a-2: %w", &api.Error{Status: 404, Detail: "gone"})
	assert.Equal(t, "gone", ToMessage(wrapped, "fallback"))
	assert.Equal(t, "boom", ToMessage(errors.New("boom"), "fallback"))
}

func TestControlRunRestoresOnBothPaths(t *testing.T) {
	c := NewControl("Create")

	err := c.Run("Creating...", func() error {
		assert.True(t, c.Disabled())
		assert.Equal(t, "Creating...", c.Text())
		return nil
	})
	require.NoError(t, err)
	assert.False(t, c.Disabled())
	assert.Equal(t, "Create", c.Text())

	failure := errors.New("failed")
	err = c.Run("Creating...", func() error { return failure })
	assert.ErrorIs(t, err, failure)
	assert.False(t, c.Disabled())
	assert.Equal(t, "Create", c.Text())
}

func TestControlRunRestoresOnPanic(t *testing.T) {
	c := NewControl("Save")
	assert.Panics(t, func() {
		_ = c.Run("Saving...", func() error { panic("boom") })
	})
	assert.False(t, c.Disabled())
	assert.Equal(t, "Save", c.Text())
}

func TestControlRejectsReentry(t *testing.T) {
	c := NewControl("Go")
	require.True(t, c.Begin("..."))
	calls := 0
	err := DefaultUtils{}.WithBusy(c, "...", func() error { calls++; return nil })
	assert.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, calls)
	c.End()
	c.End()
	assert.False(t, c.Disabled())
}
