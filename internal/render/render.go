// Package render turns a viewport over a line store into a frame
// description. It performs no terminal I/O.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/linestore"
	"github.com/baaaaaaaka/cellview/internal/viewport"
)

// HeaderRows is the number of screen rows above the content.
const HeaderRows = 1

const DefaultNumberWidth = 3

type Header struct {
	Name     string
	LastKey  keys.Key
	Counting bool
	Count    int
	Now      time.Time
}

type Row struct {
	// Screen is the terminal row the content is painted on.
	Screen int
	// Line is the 1-based line number, 0 for a row past the end of input.
	Line   int
	Gutter string
	// Col is the terminal column where Cells start.
	Col   int
	Cells []cell.Cell
}

type Frame struct {
	Width       int
	Height      int
	HeaderLeft  string
	HeaderRight string
	RightCol    int
	GutterWidth int
	Rows        []Row
}

type Options struct {
	// NumberWidth is the minimum digit count of the line-number field.
	NumberWidth int
}

// Render lays out one frame. Width is the viewport's column count and
// Height its row count plus HeaderRows.
func Render(v *viewport.Viewport, store *linestore.Store, h Header, opts Options) Frame {
	win := v.VisibleWindow()
	f := Frame{Width: win.Cols, Height: win.Rows + HeaderRows}
	if win.Cols <= 0 {
		return f
	}
	f.HeaderLeft, f.HeaderRight, f.RightCol = header(h, win.Cols)

	if v.Numbering() {
		f.GutterWidth = gutterDigits(opts.NumberWidth, store.Count()) + 1
	}
	textCols := max(0, win.Cols-f.GutterWidth)

	f.Rows = make([]Row, 0, win.Rows)
	ref := win.Top
	for i := 0; i < win.Rows; i++ {
		row := Row{Screen: HeaderRows + i, Col: f.GutterWidth}
		if ln, ok := store.Line(ref); ok {
			row.Line = store.Index(ref) + 1
			if f.GutterWidth > 0 {
				row.Gutter = fmt.Sprintf("%*d:", f.GutterWidth-1, row.Line)
			}
			row.Cells = visibleCells(ln.Cells(), win.Shift, textCols)
			ref = store.Next(ref)
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// visibleCells skips shift cells and keeps as many whole cells as fit in
// cols columns. A cell that would straddle the right edge is left out.
func visibleCells(cells []cell.Cell, shift, cols int) []cell.Cell {
	if shift >= len(cells) || cols <= 0 {
		return nil
	}
	cells = cells[shift:]
	used := 0
	n := 0
	for _, c := range cells {
		w := c.Columns()
		if used+w > cols {
			break
		}
		used += w
		n++
	}
	return cells[:n]
}

func header(h Header, cols int) (left, right string, rightCol int) {
	if h.Counting {
		left = "Count: " + strconv.Itoa(h.Count)
	} else {
		name := h.Name
		if name == "" {
			name = "<stdin>"
		}
		left = "view " + h.LastKey.Name() + " " + name
	}

	if !h.Now.IsZero() {
		right = h.Now.Format(time.ANSIC)
		rightCol = cols - displayWidth(right)
		if rightCol < 2 {
			right, rightCol = "", cols
		}
	} else {
		rightCol = cols
	}

	limit := cols
	if right != "" {
		limit = rightCol - 2
	}
	return truncate(left, limit), right, rightCol
}

func gutterDigits(min, count int) int {
	if min <= 0 {
		min = DefaultNumberWidth
	}
	return max(min, len(strconv.Itoa(count)))
}
