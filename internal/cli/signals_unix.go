//go:build !windows

package cli

import (
	"context"
	"os/signal"

	"golang.org/x/sys/unix"
)

// signalContext cancels on SIGINT or SIGTERM, or ignores INT, QUIT and TERM
// altogether when ignore is set.
func signalContext(parent context.Context, ignore bool) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if ignore {
		signal.Ignore(unix.SIGINT, unix.SIGQUIT, unix.SIGTERM)
		ctx, cancel := context.WithCancel(parent)
		return ctx, func() {
			cancel()
			signal.Reset(unix.SIGINT, unix.SIGQUIT, unix.SIGTERM)
		}
	}
	return signal.NotifyContext(parent, unix.SIGINT, unix.SIGTERM)
}
