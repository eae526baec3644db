package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/linestore"
	"github.com/baaaaaaaka/cellview/internal/surface"
)

func newStore(n int) *linestore.Store {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return linestore.Build(cell.NewCodec(cell.Options{}), lines...)
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 5, 9, 7, 3, 0, time.UTC)
}

func runKeys(t *testing.T, buf *surface.Buffer, store *linestore.Store, opts Options, ks ...keys.Key) *Session {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedClock
	}
	s := New(buf, store, opts)
	buf.Push(ks...)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("session did not quit on its own")
	}
	return s
}

func TestRunScrollsAndQuits(t *testing.T) {
	buf := surface.NewBuffer(6, 40)
	s := runKeys(t, buf, newStore(30), Options{Name: "f.txt"}, '5', 'n', 'q')
	if s.Viewport().TopIndex() != 5 {
		t.Fatalf("expected top 5, got %d", s.Viewport().TopIndex())
	}
	if got := buf.Line(1); got != "line 6" {
		t.Fatalf("unexpected first row %q", got)
	}
	if got := buf.Line(0); !strings.HasPrefix(got, "view n f.txt") || !strings.HasSuffix(got, "Tue Mar  5 09:07:03 2024") {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestRunRingsBellForUnknownKeyAndLeftEdge(t *testing.T) {
	buf := surface.NewBuffer(4, 20)
	s := runKeys(t, buf, newStore(3), Options{}, 'z', 'l', 'q')
	if buf.Bells() != 2 {
		t.Fatalf("expected 2 bells, got %d", buf.Bells())
	}
	if s.Viewport().Shift() != 0 || s.Viewport().TopIndex() != 0 {
		t.Fatalf("viewport should not move")
	}
}

func TestRunAppliesResizeBeforeNextRender(t *testing.T) {
	buf := surface.NewBuffer(4, 20)
	s := New(buf, newStore(10), Options{Now: fixedClock})
	buf.SetSize(8, 30)
	buf.Push('q')
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Viewport().Rows() != 7 || s.Viewport().Cols() != 30 {
		t.Fatalf("expected 7x30 viewport, got %dx%d", s.Viewport().Rows(), s.Viewport().Cols())
	}
	if got := buf.Line(7); got != "line 7" {
		t.Fatalf("expected the resized frame painted, got %q", got)
	}
}

func TestRunRedrawSyncs(t *testing.T) {
	buf := surface.NewBuffer(4, 20)
	runKeys(t, buf, newStore(3), Options{}, keys.Ctrl('L'), 'q')
	if buf.Syncs() != 1 || buf.Bells() != 0 {
		t.Fatalf("expected one sync and no bell, got %d/%d", buf.Syncs(), buf.Bells())
	}
}

func TestRunToggleNumbering(t *testing.T) {
	buf := surface.NewBuffer(4, 20)
	runKeys(t, buf, newStore(3), Options{Numbering: true}, '#', '#', 'q')
	if got := buf.Line(1); got != "  1:line 1" {
		t.Fatalf("expected numbered row, got %q", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	buf := surface.NewBuffer(4, 20)
	s := New(buf, newStore(3), Options{Now: fixedClock})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not stop after cancel")
	}
}

func TestFrameShowsCount(t *testing.T) {
	buf := surface.NewBuffer(4, 40)
	s := New(buf, newStore(3), Options{Now: fixedClock})
	s.Interpreter().Feed('4')
	s.Interpreter().Feed('2')
	if got := s.Frame().HeaderLeft; got != "Count: 42" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestTimeoutFollowsPollMode(t *testing.T) {
	s := New(surface.NewBuffer(2, 10), newStore(1), Options{})
	if got := s.timeout(); got != DefaultPollInterval {
		t.Fatalf("expected default poll, got %v", got)
	}
	s.Interpreter().Feed('s')
	if got := s.timeout(); got >= 0 {
		t.Fatalf("expected blocking read, got %v", got)
	}
	s.Interpreter().Feed('3')
	s.Interpreter().Feed('s')
	if got := s.timeout(); got != 300*time.Millisecond {
		t.Fatalf("expected 300ms, got %v", got)
	}

	nodelay := New(surface.NewBuffer(2, 10), newStore(1), Options{PollInterval: -1})
	if got := nodelay.timeout(); got != 0 {
		t.Fatalf("expected a non-blocking poll, got %v", got)
	}
}

func TestRunTracesKeys(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	runKeys(t, surface.NewBuffer(4, 20), newStore(5), Options{Logger: logger}, 'n', 'q')
	if !strings.Contains(out.String(), "action=scroll-down") {
		t.Fatalf("expected a trace record for the scroll, got %q", out.String())
	}
}
