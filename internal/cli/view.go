package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cellview/internal/cell"
	"github.com/baaaaaaaka/cellview/internal/linestore"
	"github.com/baaaaaaaka/cellview/internal/session"
	"github.com/baaaaaaaka/cellview/internal/source"
	"github.com/baaaaaaaka/cellview/internal/surface"
)

var newSurface = func(opts surface.Options) (surface.Surface, error) {
	return surface.NewTcell(opts)
}

func runView(cmd *cobra.Command, root *rootOptions, path string) error {
	settings, err := root.settings(cmd)
	if err != nil {
		return err
	}
	logger, closeTrace, err := openTrace(settings)
	if err != nil {
		return err
	}
	defer closeTrace()

	ctx, stop := signalContext(cmd.Context(), settings.IgnoreSignals)
	defer stop()

	store, name, err := loadInput(ctx, cmd.ErrOrStderr(), settings, path, logger)
	if err != nil {
		return err
	}

	surf, err := newSurface(surface.Options{Color: settings.Color})
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer surf.Close()

	s := session.New(surf, store, session.Options{
		Name:         name,
		SingleStep:   settings.SingleStep,
		Numbering:    settings.Numbering,
		PollInterval: settings.Poll,
		NumberWidth:  settings.NumberWidth,
		Logger:       logger,
	})
	err = s.Run(ctx)
	logger.Info("session end", "err", err)
	return err
}

func newCodec(s viewSettings) *cell.Codec {
	return cell.NewCodec(cell.Options{
		Mode:      s.Mode,
		TabWidth:  s.TabWidth,
		EastAsian: s.EastAsian,
	})
}

// loadInput reads the whole input into a store. Failures after the first
// record are reported on warn and the partial store is kept.
func loadInput(ctx context.Context, warn io.Writer, s viewSettings, path string, logger *slog.Logger) (*linestore.Store, string, error) {
	in, err := source.Open(path, s.Encoding)
	if err != nil {
		return nil, "", err
	}
	defer in.Close()

	store, stats, err := linestore.Load(ctx, in, newCodec(s), linestore.Limits{
		MaxLines: s.MaxLines,
		MaxBytes: s.MaxBytes,
	})
	logger.Info("input loaded",
		"name", in.Name,
		"mode", s.Mode.String(),
		"lines", stats.Lines,
		"bytes", stats.Bytes,
		"memory", stats.Memory,
		"capped", stats.Capped,
		"truncated", stats.Truncated,
		"dropped_marks", stats.DroppedMarks,
	)
	if err != nil {
		var srcErr *linestore.SourceError
		if errors.As(err, &srcErr) || errors.Is(err, context.Canceled) || store.Empty() {
			return nil, "", fmt.Errorf("%s: %w", in.Name, err)
		}
		logger.Warn("partial input", "err", err, "lines", store.Count())
		_, _ = fmt.Fprintf(warn, "cellview: %s: %v; showing the first %d lines\n", in.Name, err, store.Count())
	}
	return store, in.Name, nil
}
