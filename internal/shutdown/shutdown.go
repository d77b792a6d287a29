// Package shutdown provides the root context of a binary.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-sod/spatial/internal/logging"
)

// New returns a context carrying the environment logger that is cancelled on
// SIGINT or SIGTERM, and the function releasing it.
func New() (context.Context, func()) {
	ctx := logging.WithLogger(context.Background(), logging.DefaultLogger())
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
