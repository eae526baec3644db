package surface

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
)

var newScreen = tcell.NewScreen

type Options struct {
	// Color paints white text on a blue background.
	Color bool
}

// Tcell is a Surface backed by a tcell screen. A single goroutine pumps
// screen events into a channel that ReadKey drains.
type Tcell struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
	styles [StyleGutter + 1]tcell.Style
}

func NewTcell(opts Options) (*Tcell, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &Tcell{
		screen: screen,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
		styles: themeStyles(opts.Color),
	}
	screen.SetStyle(t.styles[StyleText])
	screen.Clear()
	go t.pump()
	return t, nil
}

func themeStyles(color bool) [StyleGutter + 1]tcell.Style {
	text := tcell.StyleDefault
	if color {
		text = text.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	}
	return [StyleGutter + 1]tcell.Style{
		StyleText:   text,
		StyleHeader: text.Reverse(true),
		StyleGutter: text.Bold(true),
	}
}

func (t *Tcell) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Tcell) style(s Style) tcell.Style {
	if int(s) < len(t.styles) {
		return t.styles[s]
	}
	return t.styles[StyleText]
}

func (t *Tcell) PaintCells(row, col int, cells []cell.Cell, style Style) {
	st := t.style(style)
	x := col
	for _, c := range cells {
		if c.Escaped {
			t.PaintText(row, x, c.Text(), style)
		} else {
			t.screen.SetContent(x, row, c.Base, c.Marks(), st)
		}
		x += c.Columns()
	}
}

func (t *Tcell) PaintText(row, col int, text string, style Style) {
	st := t.style(style)
	offset := 0
	for _, ch := range text {
		width := runewidth.RuneWidth(ch)
		if width == 0 {
			continue
		}
		t.screen.SetContent(col+offset, row, ch, nil, st)
		offset += width
	}
}

func (t *Tcell) ClearToEOL(row, col int) {
	w, _ := t.screen.Size()
	st := t.styles[StyleText]
	for x := max(0, col); x < w; x++ {
		t.screen.SetContent(x, row, ' ', nil, st)
	}
}

func (t *Tcell) ClearToEOS(row int) {
	_, h := t.screen.Size()
	for y := max(0, row); y < h; y++ {
		t.ClearToEOL(y, 0)
	}
}

func (t *Tcell) MoveCursor(row, col int) {
	t.screen.ShowCursor(col, row)
}

func (t *Tcell) Flush() { t.screen.Show() }

func (t *Tcell) Sync() { t.screen.Sync() }

func (t *Tcell) Bell() { _ = t.screen.Beep() }

func (t *Tcell) Size() (rows, cols int) {
	w, h := t.screen.Size()
	return h, w
}

func (t *Tcell) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (t *Tcell) ReadKey(timeout time.Duration) (keys.Key, bool) {
	var expired <-chan time.Time
	if timeout >= 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case ev := <-t.events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				return decodeKey(tev), true
			case *tcell.EventResize:
				return keys.Resize, true
			case *tcell.EventInterrupt:
				return keys.None, false
			}
		case <-expired:
			return keys.None, false
		case <-t.done:
			return keys.None, false
		}
	}
}

func (t *Tcell) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

var specialKeys = map[tcell.Key]keys.Key{
	tcell.KeyUp:      keys.Up,
	tcell.KeyDown:    keys.Down,
	tcell.KeyLeft:    keys.Left,
	tcell.KeyRight:   keys.Right,
	tcell.KeyHome:    keys.Home,
	tcell.KeyEnd:     keys.End,
	tcell.KeyPgUp:    keys.PgUp,
	tcell.KeyPgDn:    keys.PgDn,
	tcell.KeyInsert:  keys.Insert,
	tcell.KeyDelete:  keys.Delete,
	tcell.KeyBacktab: keys.Backtab,
}

func decodeKey(ev *tcell.EventKey) keys.Key {
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return keys.Ctrl(byte(r))
		}
		return keys.Key(r)
	case k == tcell.KeyBackspace, k == tcell.KeyBackspace2:
		// tcell reports both ^H and DEL as KeyBackspace.
		return keys.Backspace
	case k >= tcell.KeyCtrlSpace && k <= tcell.KeyCtrlUnderscore:
		return keys.Key(k - tcell.KeyCtrlSpace)
	case k >= tcell.KeyNUL && k <= tcell.KeyUS:
		return keys.Key(k)
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		return keys.Fn(int(k-tcell.KeyF1) + 1)
	}
	if mapped, ok := specialKeys[k]; ok {
		return mapped
	}
	return keys.Unknown
}
