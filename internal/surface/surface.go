// Package surface abstracts the terminal the pager paints on and reads
// keys from.
package surface

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/render"
)

type Style uint8

const (
	StyleText Style = iota
	StyleHeader
	StyleGutter
)

// Surface is a character-cell terminal. Rows and columns are 0-based;
// paints outside the surface are clipped.
type Surface interface {
	PaintCells(row, col int, cells []cell.Cell, style Style)
	PaintText(row, col int, text string, style Style)
	ClearToEOL(row, col int)
	ClearToEOS(row int)
	MoveCursor(row, col int)
	// Flush makes pending paints visible.
	Flush()
	// Sync repaints the whole terminal from scratch.
	Sync()
	// ReadKey waits up to timeout for a key; a negative timeout blocks.
	// It reports false when no key arrived, including after Wake.
	ReadKey(timeout time.Duration) (keys.Key, bool)
	// Wake makes a pending ReadKey return early. Safe from any goroutine.
	Wake()
	Bell()
	Size() (rows, cols int)
	Close()
}

// Paint draws a frame and flushes it.
func Paint(s Surface, f render.Frame) {
	if f.Width <= 0 {
		s.Flush()
		return
	}
	left := f.HeaderLeft
	header := left
	if f.HeaderRight != "" {
		header += strings.Repeat(" ", max(0, f.RightCol-runewidth.StringWidth(left))) + f.HeaderRight
	}
	if pad := f.Width - runewidth.StringWidth(header); pad > 0 {
		header += strings.Repeat(" ", pad)
	}
	s.PaintText(0, 0, header, StyleHeader)

	for _, row := range f.Rows {
		if row.Line == 0 {
			s.ClearToEOL(row.Screen, 0)
			continue
		}
		if row.Gutter != "" {
			s.PaintText(row.Screen, 0, row.Gutter, StyleGutter)
		}
		s.PaintCells(row.Screen, row.Col, row.Cells, StyleText)
		s.ClearToEOL(row.Screen, row.Col+cell.Columns(row.Cells))
	}
	s.ClearToEOS(f.Height)
	s.MoveCursor(0, runewidth.StringWidth(left))
	s.Flush()
}
