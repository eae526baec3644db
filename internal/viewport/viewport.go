// Package viewport tracks which lines and columns of a line store are
// visible: the top line, the visible extent and the horizontal shift.
package viewport

import (
	"math"

	"github.com/baaaaaaaka/cellview/internal/linestore"
)

// Window is the read-only view the renderer works from.
type Window struct {
	Top   linestore.Ref
	Rows  int
	Cols  int
	Shift int
}

// Viewport is owned by a single session loop; callers embedding it in a
// multi-threaded host must serialize every call.
type Viewport struct {
	store     *linestore.Store
	top       linestore.Ref
	rows      int
	cols      int
	shift     int
	numbering bool
}

// New returns a viewport showing the first line of store.
func New(store *linestore.Store, rows, cols int) *Viewport {
	v := &Viewport{store: store, top: store.First()}
	v.Resize(rows, cols)
	return v
}

func (v *Viewport) Store() *linestore.Store { return v.store }

// Resize changes the visible extent. The top line does not move.
func (v *Viewport) Resize(rows, cols int) {
	v.rows = max(0, rows)
	v.cols = max(0, cols)
}

func (v *Viewport) Rows() int { return v.rows }

func (v *Viewport) Cols() int { return v.cols }

func (v *Viewport) Top() linestore.Ref { return v.top }

// TopIndex is the 0-based index of the top line, or -1 for an empty store.
func (v *Viewport) TopIndex() int { return v.store.Index(v.top) }

func (v *Viewport) Shift() int { return v.shift }

func (v *Viewport) Numbering() bool { return v.numbering }

func (v *Viewport) SetNumbering(on bool) { v.numbering = on }

func (v *Viewport) ToggleNumbering() { v.numbering = !v.numbering }

// ScrollBy moves the top line delta lines forward (or back when negative),
// stopping at the first and last line. It returns the lines moved.
func (v *Viewport) ScrollBy(delta int) int {
	if v.store.Empty() {
		return 0
	}
	if !v.store.Valid(v.top) {
		v.top = v.store.First()
	}
	ref, moved := v.store.Walk(v.top, delta)
	v.top = ref
	return moved
}

func (v *Viewport) ScrollToStart() {
	v.top = v.store.First()
}

// ScrollToEnd shows the last screenful. Files shorter than the viewport
// stay at the first line.
func (v *Viewport) ScrollToEnd() {
	if v.store.Empty() {
		v.top = linestore.NoLine
		return
	}
	rows := max(1, v.rows)
	idx := max(0, v.store.Count()-rows)
	v.top = v.store.RefAt(idx)
}

// PageDown scrolls forward by pages screenfuls.
func (v *Viewport) PageDown(pages int) int {
	return v.ScrollBy(satMul(max(1, pages), max(1, v.rows)))
}

func (v *Viewport) PageUp(pages int) int {
	return v.ScrollBy(-satMul(max(1, pages), max(1, v.rows)))
}

// ShiftBy moves the horizontal offset by delta columns. The offset never
// goes below zero and has no upper bound. It returns the change applied,
// which is smaller in magnitude than delta when clamped at zero.
func (v *Viewport) ShiftBy(delta int) int {
	prev := v.shift
	switch {
	case delta > 0 && v.shift > math.MaxInt-delta:
		v.shift = math.MaxInt
	case v.shift+delta < 0:
		v.shift = 0
	default:
		v.shift += delta
	}
	return v.shift - prev
}

func (v *Viewport) VisibleWindow() Window {
	return Window{Top: v.top, Rows: v.rows, Cols: v.cols, Shift: v.shift}
}

func satMul(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}
