package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/baaaaaaaka/cellview/internal/ids"
)

const defaultTraceFile = "cellview.trace"

// openTrace returns the trace logger for a run. Without -t records are
// discarded; -t logs lifecycle records and -tt every key.
func openTrace(s viewSettings) (*slog.Logger, func(), error) {
	if s.Trace <= 0 {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	path := s.TraceFile
	if path == "" {
		path = defaultTraceFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace file: %w", err)
	}

	level := slog.LevelInfo
	if s.Trace > 1 {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	if id, err := ids.Session(); err == nil {
		logger = logger.With("session", id)
	}
	logger.Info("trace start", "version", buildVersion(), "pid", os.Getpid())
	return logger, func() { _ = f.Close() }, nil
}
