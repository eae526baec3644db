// Package session runs the interactive pager loop: render, paint, read a
// key, interpret it, repeat until quit.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/baaaaaaaka/cellview/internal/command"
	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/linestore"
	"github.com/baaaaaaaka/cellview/internal/render"
	"github.com/baaaaaaaka/cellview/internal/surface"
	"github.com/baaaaaaaka/cellview/internal/viewport"
)

const DefaultPollInterval = 50 * time.Millisecond

type Options struct {
	// Name labels the input in the header.
	Name       string
	SingleStep bool
	Numbering  bool
	// PollInterval bounds how long continuous mode waits for a key
	// between redraws. Zero means DefaultPollInterval; negative means
	// do not wait at all.
	PollInterval time.Duration
	NumberWidth  int
	Now          func() time.Time
	Logger       *slog.Logger
}

type Session struct {
	surf   surface.Surface
	store  *linestore.Store
	view   *viewport.Viewport
	interp *command.Interpreter
	opts   Options
	log    *slog.Logger
}

func New(surf surface.Surface, store *linestore.Store, opts Options) *Session {
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rows, cols := surf.Size()
	view := viewport.New(store, rows-render.HeaderRows, cols)
	view.SetNumbering(opts.Numbering)
	return &Session{
		surf:   surf,
		store:  store,
		view:   view,
		interp: command.New(opts.SingleStep),
		opts:   opts,
		log:    logger,
	}
}

func (s *Session) Viewport() *viewport.Viewport { return s.view }

func (s *Session) Interpreter() *command.Interpreter { return s.interp }

// Frame renders the current state without painting it.
func (s *Session) Frame() render.Frame {
	p := s.interp.Pending()
	return render.Render(s.view, s.store, render.Header{
		Name:     s.opts.Name,
		LastKey:  p.LastKey,
		Counting: p.Counting,
		Count:    p.Count,
		Now:      s.opts.Now(),
	}, render.Options{NumberWidth: s.opts.NumberWidth})
}

// Run owns the store and viewport until the user quits or ctx is done.
// It does not close the surface.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.surf.Wake()
		case <-done:
		}
	}()

	s.log.Info("session start", "lines", s.store.Count(), "rows", s.view.Rows(), "cols", s.view.Cols())
	for {
		if err := ctx.Err(); err != nil {
			s.log.Debug("session canceled", "err", err)
			return nil
		}
		surface.Paint(s.surf, s.Frame())

		k, ok := s.surf.ReadKey(s.timeout())
		if !ok {
			k = keys.None
		}
		if k == keys.Resize {
			rows, cols := s.surf.Size()
			s.view.Resize(rows-render.HeaderRows, cols)
			s.surf.Sync()
			s.log.Debug("resize", "rows", rows, "cols", cols)
			continue
		}

		res := s.interp.Feed(k)
		if res.Action == command.ActIdle {
			continue
		}
		bell := res.Bell
		if command.Apply(s.view, res) {
			bell = true
		}
		s.log.Debug("key", "key", k.Name(), "action", res.Action.String(), "n", res.N,
			"top", s.view.TopIndex(), "shift", s.view.Shift())
		if res.PollChanged {
			s.log.Debug("poll mode", "mode", res.Poll.Mode.String(), "timeout", res.Poll.Timeout)
		}
		if res.Quit {
			return nil
		}
		if bell {
			s.surf.Bell()
		}
		if res.Redraw {
			s.surf.Sync()
		}
	}
}

func (s *Session) timeout() time.Duration {
	p := s.interp.Poll()
	switch p.Mode {
	case command.PollBlocking:
		return -1
	case command.PollTimed:
		return p.Timeout
	default:
		return max(0, s.opts.PollInterval)
	}
}
