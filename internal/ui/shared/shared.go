// Package shared holds the feedback primitives used by every panel: result
// banners, busy controls and list scrolling.
package shared

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Viewport holds scrolling state for list-like views.
type Viewport struct {
	Offset int
	Height int
}

// EnsureVisible adjusts the viewport offset to keep the selected item visible.
func EnsureVisible(selectedIndex, listLength int, vp *Viewport) {
	if listLength == 0 || vp == nil || vp.Height <= 0 {
		return
	}
	if selectedIndex < vp.Offset {
		vp.Offset = selectedIndex
	} else if selectedIndex >= vp.Offset+vp.Height {
		vp.Offset = selectedIndex - vp.Height + 1
	}
	maxOffset := listLength - vp.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	vp.Offset = min(max(vp.Offset, 0), maxOffset)
}

// GetVisibleRange returns start and end indices for the current viewport.
func GetVisibleRange(listLength int, vp Viewport) (int, int) {
	if listLength == 0 || vp.Height <= 0 {
		return 0, 0
	}
	return vp.Offset, min(vp.Offset+vp.Height, listLength)
}

// Truncate shortens s to the given display width with an ellipsis. Wide
// (CJK) characters count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// SplitLines splits multi-line input into trimmed, non-empty entries in
// their original order.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
