package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/kabachok/dropclient/internal/logger"
)

// commandContext returns a signal-aware context tagged with a fresh request ID
// so the whole command invocation correlates in the logs.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return logger.WithRequestID(ctx, logger.GenerateRequestID()), cancel
}
