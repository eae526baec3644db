// Package cell packs raw line bytes into fixed-width display cells.
//
// A cell is what one terminal position (or two, for wide glyphs) shows: a
// base character plus the zero-width marks that ride on it.
package cell

import (
	"fmt"
	"strings"
)

// MaxCombining is the number of zero-width marks a cell can carry on top of
// its base character. Extra marks are dropped.
const MaxCombining = 4

// EscapeColumns is how many columns an escaped byte paints ("\ooo").
const EscapeColumns = 4

// Cell is the content of one screen position, or two for a wide glyph.
type Cell struct {
	// Base is the code point, or the raw byte value in byte mode.
	// A zero Base on a non-escaped cell is the end-of-line sentinel.
	Base      rune
	Combining [MaxCombining]rune
	NComb     uint8
	// Width is the display width of Base: 0, 1 or 2.
	Width   uint8
	Escaped bool
}

// EOL terminates a line. It is never painted.
var EOL = Cell{}

func (c Cell) IsEOL() bool {
	return c.Base == 0 && !c.Escaped
}

// Columns reports how many terminal columns the cell occupies when painted.
// Escaped cells are a single logical cell but paint EscapeColumns columns.
func (c Cell) Columns() int {
	if c.Escaped {
		return EscapeColumns
	}
	return int(c.Width)
}

func (c Cell) Marks() []rune {
	return c.Combining[:c.NComb]
}

// Runes returns the base character followed by its combining marks.
func (c Cell) Runes() []rune {
	if c.IsEOL() {
		return nil
	}
	if c.Escaped {
		return []rune(c.Text())
	}
	out := make([]rune, 0, 1+int(c.NComb))
	out = append(out, c.Base)
	return append(out, c.Marks()...)
}

// Text is the string a surface paints for this cell.
func (c Cell) Text() string {
	if c.IsEOL() {
		return ""
	}
	if c.Escaped {
		return escape(c.Base)
	}
	if c.NComb == 0 {
		return string(c.Base)
	}
	return string(c.Runes())
}

func (c *Cell) addMark(r rune) bool {
	if int(c.NComb) >= MaxCombining {
		return false
	}
	c.Combining[c.NComb] = r
	c.NComb++
	return true
}

func escape(r rune) string {
	return fmt.Sprintf("\\%03o", r)
}

// String joins the text of a run of cells.
func String(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.IsEOL() {
			break
		}
		b.WriteString(c.Text())
	}
	return b.String()
}

// Columns sums the painted width of a run of cells.
func Columns(cells []Cell) int {
	n := 0
	for _, c := range cells {
		n += c.Columns()
	}
	return n
}
