//go:build windows

package cli

import (
	"context"
	"os"
	"os/signal"
)

func signalContext(parent context.Context, ignore bool) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if ignore {
		signal.Ignore(os.Interrupt)
		ctx, cancel := context.WithCancel(parent)
		return ctx, func() {
			cancel()
			signal.Reset(os.Interrupt)
		}
	}
	return signal.NotifyContext(parent, os.Interrupt)
}
