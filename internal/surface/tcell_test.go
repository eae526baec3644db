package surface

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/linestore"
	"github.com/baaaaaaaka/cellview/internal/render"
	"github.com/baaaaaaaka/cellview/internal/viewport"
)

type sizedScreen struct {
	tcell.Screen
}

func (s *sizedScreen) Init() error {
	if err := s.Screen.Init(); err != nil {
		return err
	}
	s.Screen.SetSize(40, 6)
	return nil
}

func newTestSurface(t *testing.T, opts Options) (*Tcell, tcell.Screen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	prevNewScreen := newScreen
	newScreen = func() (tcell.Screen, error) {
		return &sizedScreen{Screen: screen}, nil
	}
	t.Cleanup(func() { newScreen = prevNewScreen })

	s, err := NewTcell(opts)
	if err != nil {
		t.Fatalf("NewTcell: %v", err)
	}
	t.Cleanup(s.Close)
	return s, screen
}

func readScreenLine(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var buf strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		buf.WriteRune(ch)
	}
	return strings.TrimRight(buf.String(), " ")
}

// readKey skips the resize notifications a fresh screen may report.
func readKey(t *testing.T, s *Tcell, timeout time.Duration) (keys.Key, bool) {
	t.Helper()
	for {
		k, ok := s.ReadKey(timeout)
		if k != keys.Resize {
			return k, ok
		}
	}
}

func testFrame(rows, cols int, numbering bool, lines ...string) render.Frame {
	store := linestore.Build(cell.NewCodec(cell.Options{}), lines...)
	v := viewport.New(store, rows, cols)
	v.SetNumbering(numbering)
	return render.Render(v, store, render.Header{Name: "t.txt", LastKey: 'n'}, render.Options{})
}

func TestTcellPaintFrame(t *testing.T) {
	s, screen := newTestSurface(t, Options{})
	rows, cols := s.Size()
	if rows != 6 || cols != 40 {
		t.Fatalf("expected 6x40, got %dx%d", rows, cols)
	}
	Paint(s, testFrame(rows-render.HeaderRows, cols, true, "first", "second"))

	if got := readScreenLine(screen, 0); got != "view n t.txt" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := readScreenLine(screen, 1); got != "  1:first" {
		t.Fatalf("unexpected row 1 %q", got)
	}
	if got := readScreenLine(screen, 2); got != "  2:second" {
		t.Fatalf("unexpected row 2 %q", got)
	}
	if got := readScreenLine(screen, 3); got != "" {
		t.Fatalf("expected blank row, got %q", got)
	}
}

func TestTcellPaintClearsStaleText(t *testing.T) {
	s, screen := newTestSurface(t, Options{})
	rows, cols := s.Size()
	Paint(s, testFrame(rows-1, cols, false, "a long line of text", "another"))
	Paint(s, testFrame(rows-1, cols, false, "short"))
	if got := readScreenLine(screen, 1); got != "short" {
		t.Fatalf("expected stale text cleared, got %q", got)
	}
	if got := readScreenLine(screen, 2); got != "" {
		t.Fatalf("expected row 2 cleared, got %q", got)
	}
}

func TestTcellPaintCombiningAndEscapes(t *testing.T) {
	s, screen := newTestSurface(t, Options{})
	codec := cell.NewCodec(cell.Options{})
	s.PaintCells(1, 0, codec.EncodeString("e\u0301\x01x"), StyleText)
	s.Flush()

	ch, comb, _, _ := screen.GetContent(0, 1)
	if ch != 'e' || len(comb) != 1 || comb[0] != '\u0301' {
		t.Fatalf("expected e with a combining acute, got %q %q", ch, comb)
	}
	if got := readScreenLine(screen, 1); got != `e\001x` {
		t.Fatalf("unexpected escaped paint %q", got)
	}
}

func TestTcellReadKey(t *testing.T) {
	s, screen := newTestSurface(t, Options{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	}()
	k, ok := readKey(t, s, 2*time.Second)
	if !ok || k != 'n' {
		t.Fatalf("expected n, got %v %v", k, ok)
	}
}

func TestTcellReadKeyTimeout(t *testing.T) {
	s, _ := newTestSurface(t, Options{})
	start := time.Now()
	if k, ok := readKey(t, s, 30*time.Millisecond); ok {
		t.Fatalf("expected timeout, got %v", k)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatalf("returned before the timeout")
	}
}

func TestTcellWakeUnblocksRead(t *testing.T) {
	s, _ := newTestSurface(t, Options{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		s.Wake()
	}()
	done := make(chan struct{})
	go func() {
		readKey(t, s, -1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("blocking read was not woken")
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want keys.Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', 0), 'q'},
		{tcell.NewEventKey(tcell.KeyRune, '7', 0), '7'},
		{tcell.NewEventKey(tcell.KeyDown, 0, 0), keys.Down},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, 0), keys.PgDn},
		{tcell.NewEventKey(tcell.KeyPgUp, 0, 0), keys.PgUp},
		{tcell.NewEventKey(tcell.KeyHome, 0, 0), keys.Home},
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), keys.Enter},
		{tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), keys.Ctrl('L')},
		{tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), keys.Ctrl('D')},
		{tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), keys.Ctrl('U')},
		{tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), keys.Ctrl('Q')},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModCtrl), keys.Ctrl('L')},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), keys.Backspace},
		{tcell.NewEventKey(tcell.KeyBackspace, 0, 0), keys.Backspace},
		{tcell.NewEventKey(tcell.KeyTab, 0, 0), keys.Key('\t')},
		{tcell.NewEventKey(tcell.KeyEsc, 0, 0), keys.Key(0x1b)},
		{tcell.NewEventKey(tcell.KeyF3, 0, 0), keys.Fn(3)},
		{tcell.NewEventKey(tcell.KeyRune, 'L', 0), 'L'},
	}
	for _, tt := range tests {
		if got := decodeKey(tt.ev); got != tt.want {
			t.Fatalf("decodeKey(%v) = %s, want %s", tt.ev.Name(), got.Name(), tt.want.Name())
		}
	}
}

// Raw control bytes from a terminal arrive as KeyCtrlSpace plus the byte,
// and both ^H and DEL as KeyBackspace.
func TestDecodeKeyRawControlBytes(t *testing.T) {
	tests := []struct {
		raw  byte
		want keys.Key
	}{
		{0x0c, keys.Ctrl('L')},
		{0x04, keys.Ctrl('D')},
		{0x15, keys.Ctrl('U')},
		{0x11, keys.Ctrl('Q')},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tcell.KeyCtrlSpace+tcell.Key(tt.raw), 0, tcell.ModCtrl)
		if got := decodeKey(ev); got != tt.want {
			t.Fatalf("decodeKey(raw %#x) = %s, want %s", tt.raw, got.Name(), tt.want.Name())
		}
	}
	del := tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone)
	if got := decodeKey(del); got != keys.Backspace {
		t.Fatalf("decodeKey(DEL) = %s, want %s", got.Name(), keys.Backspace.Name())
	}
}

func TestTcellRedrawKeyReachesReader(t *testing.T) {
	s, screen := newTestSurface(t, Options{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlSpace+0x0c, 0, tcell.ModCtrl))
	}()
	k, ok := readKey(t, s, 2*time.Second)
	if !ok || k != keys.Ctrl('L') {
		t.Fatalf("expected ^L, got %s %v", k.Name(), ok)
	}
}

func TestThemeStyles(t *testing.T) {
	plain := themeStyles(false)
	if plain[StyleText] != tcell.StyleDefault {
		t.Fatalf("expected default text style without color")
	}
	colored := themeStyles(true)
	fg, bg, _ := colored[StyleText].Decompose()
	if fg != tcell.ColorWhite || bg != tcell.ColorNavy {
		t.Fatalf("expected white on blue, got %v on %v", fg, bg)
	}
	_, _, attrs := colored[StyleHeader].Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Fatalf("expected reversed header")
	}
}
