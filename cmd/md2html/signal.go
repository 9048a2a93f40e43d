package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context canceled by the first shutdown signal.
// Handling then reverts to the default, so a second signal ends the process
// even while workers are still finishing.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	context.AfterFunc(ctx, stop)
	return ctx, stop
}
