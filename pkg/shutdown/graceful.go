package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/justsurfingit/careerpilot/pkg/logging"
)

// Service is a long-running server. Run blocks until the service stops and must
// return once Shutdown has been called.
type Service interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Graceful runs svc until it fails on its own, ctx is cancelled or one of signals
// arrives. On a stop request svc gets up to timeout to drain. Graceful returns only
// after Run has returned, so callers can release what svc depends on afterwards.
func Graceful(ctx context.Context, svc Service, timeout time.Duration, log *logging.Logger, signals ...os.Signal) error {
	if len(signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, signals...)
		defer stop()
	}

	errc := make(chan error, 1)
	go func() { errc <- svc.Run() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown requested, draining in-flight requests", "timeout", timeout)

	drainCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := svc.Shutdown(drainCtx)
	runErr := <-errc
	if shutdownErr != nil {
		log.Warn("graceful shutdown incomplete", "err", shutdownErr)
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	if runErr != nil {
		return runErr
	}
	log.Info("graceful shutdown completed")
	return nil
}
