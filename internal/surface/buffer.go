package surface

import (
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
)

// Buffer is an in-memory Surface. Keys queued with Push are returned by
// ReadKey in order; an empty queue behaves like an expired timeout. A
// wide glyph occupies its first grid slot and leaves the next one empty.
type Buffer struct {
	mu     sync.Mutex
	rows   int
	cols   int
	grid   [][]string
	input  []keys.Key
	bells  int
	syncs  int
	cursor [2]int
	closed bool
}

func NewBuffer(rows, cols int) *Buffer {
	b := &Buffer{}
	b.SetSize(rows, cols)
	return b
}

// SetSize resizes the grid, keeping what fits, and queues keys.Resize.
func (b *Buffer) SetSize(rows, cols int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows, cols = max(0, rows), max(0, cols)
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
		if y < len(b.grid) {
			copy(grid[y], b.grid[y])
		}
	}
	if b.grid != nil {
		b.input = append(b.input, keys.Resize)
	}
	b.rows, b.cols, b.grid = rows, cols, grid
}

func (b *Buffer) Push(ks ...keys.Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input = append(b.input, ks...)
}

func (b *Buffer) put(row, col int, text string, width int) {
	if row < 0 || row >= b.rows || col < 0 || col+width > b.cols {
		return
	}
	b.grid[row][col] = text
	for i := 1; i < width; i++ {
		b.grid[row][col+i] = ""
	}
}

func (b *Buffer) PaintCells(row, col int, cells []cell.Cell, _ Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	x := col
	for _, c := range cells {
		if c.Escaped {
			for i, ch := range c.Text() {
				b.put(row, x+i, string(ch), 1)
			}
		} else {
			b.put(row, x, string(c.Runes()), c.Columns())
		}
		x += c.Columns()
	}
}

func (b *Buffer) PaintText(row, col int, text string, _ Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		b.put(row, col+offset, string(ch), width)
		offset += width
	}
}

func (b *Buffer) ClearToEOL(row, col int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for x := max(0, col); x < b.cols; x++ {
		b.put(row, x, " ", 1)
	}
}

func (b *Buffer) ClearToEOS(row int) {
	for y := max(0, row); y < b.rows; y++ {
		b.ClearToEOL(y, 0)
	}
}

func (b *Buffer) MoveCursor(row, col int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = [2]int{row, col}
}

func (b *Buffer) Flush() {}

func (b *Buffer) Sync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncs++
}

func (b *Buffer) ReadKey(time.Duration) (keys.Key, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || len(b.input) == 0 {
		return keys.None, false
	}
	k := b.input[0]
	b.input = b.input[1:]
	return k, true
}

func (b *Buffer) Wake() {}

func (b *Buffer) Bell() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bells++
}

func (b *Buffer) Size() (rows, cols int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rows, b.cols
}

func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Buffer) Bells() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bells
}

func (b *Buffer) Syncs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncs
}

func (b *Buffer) Cursor() (row, col int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor[0], b.cursor[1]
}

// Line returns one row of the grid with trailing blanks removed.
func (b *Buffer) Line(row int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.rows {
		return ""
	}
	var sb strings.Builder
	for _, s := range b.grid[row] {
		sb.WriteString(s)
	}
	return strings.TrimRight(sb.String(), " ")
}

func (b *Buffer) Lines() []string {
	rows, _ := b.Size()
	out := make([]string, rows)
	for y := range out {
		out[y] = b.Line(y)
	}
	return out
}
