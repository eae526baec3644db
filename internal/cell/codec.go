package cell

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type Mode int

const (
	// ModeWide decodes UTF-8 and packs combining marks onto base cells.
	ModeWide Mode = iota
	// ModeByte maps every byte to one cell.
	ModeByte
)

func (m Mode) String() string {
	switch m {
	case ModeByte:
		return "byte"
	case ModeWide:
		return "wide"
	default:
		return "unknown"
	}
}

const DefaultTabWidth = 8

// WidthFunc reports the display width of a code point. Values above 2 are
// treated as 2; zero or negative values mark a combining character.
type WidthFunc func(r rune) int

type Options struct {
	Mode Mode
	// TabWidth is the tab stop interval. Zero selects DefaultTabWidth, a
	// negative value keeps tabs as escaped cells.
	TabWidth int
	// EastAsian treats ambiguous-width characters as wide.
	EastAsian bool
	// Width overrides the width lookup. EastAsian is ignored when set.
	Width WidthFunc
}

// Codec turns raw line bytes into cells for one display mode.
type Codec struct {
	mode     Mode
	tabWidth int
	width    WidthFunc
}

// EncodeResult is the detailed outcome of packing one line.
type EncodeResult struct {
	Cells []Cell
	// Truncated is set when an invalid byte sequence cut the line short.
	Truncated bool
	// Dropped counts combining marks beyond MaxCombining.
	Dropped int
}

func NewCodec(opts Options) *Codec {
	tw := opts.TabWidth
	if tw == 0 {
		tw = DefaultTabWidth
	}
	width := opts.Width
	if width == nil {
		cond := runewidth.NewCondition()
		cond.EastAsianWidth = opts.EastAsian
		width = cond.RuneWidth
	}
	return &Codec{mode: opts.Mode, tabWidth: tw, width: width}
}

func (c *Codec) Mode() Mode { return c.mode }

func (c *Codec) Encode(raw []byte) []Cell {
	return c.EncodeLine(raw).Cells
}

func (c *Codec) EncodeString(s string) []Cell {
	return c.EncodeLine([]byte(s)).Cells
}

func (c *Codec) EncodeLine(raw []byte) EncodeResult {
	if c.mode == ModeByte {
		return c.encodeBytes(raw)
	}
	return c.encodeWide(raw)
}

func (c *Codec) encodeBytes(raw []byte) EncodeResult {
	cells := make([]Cell, 0, len(raw))
	col := 0
	for _, b := range raw {
		if b == '\t' && c.tabWidth > 0 {
			cells = c.expandTab(cells, &col)
			continue
		}
		cl := Cell{Base: rune(b), Width: 1}
		if b < 0x20 || b >= 0x7f {
			cl.Escaped = true
		}
		cells = append(cells, cl)
		col += cl.Columns()
	}
	return EncodeResult{Cells: cells}
}

func (c *Codec) encodeWide(raw []byte) EncodeResult {
	res := EncodeResult{Cells: make([]Cell, 0, len(raw))}
	col := 0
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			res.Truncated = true
			break
		}
		i += size

		if r == '\t' && c.tabWidth > 0 {
			res.Cells = c.expandTab(res.Cells, &col)
			continue
		}
		if isControl(r) {
			res.Cells = append(res.Cells, Cell{Base: r, Width: 1, Escaped: true})
			col += EscapeColumns
			continue
		}

		w := c.width(r)
		if w <= 0 {
			n := len(res.Cells)
			if n == 0 || res.Cells[n-1].Escaped {
				res.Cells = append(res.Cells, Cell{Base: ' ', Width: 1})
				col++
				n++
			}
			if !res.Cells[n-1].addMark(r) {
				res.Dropped++
			}
			continue
		}
		if w > 2 {
			w = 2
		}
		res.Cells = append(res.Cells, Cell{Base: r, Width: uint8(w)})
		col += w
	}
	return res
}

func (c *Codec) expandTab(cells []Cell, col *int) []Cell {
	n := c.tabWidth - *col%c.tabWidth
	for i := 0; i < n; i++ {
		cells = append(cells, Cell{Base: ' ', Width: 1})
	}
	*col += n
	return cells
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}
