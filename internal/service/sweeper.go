package service

import (
	"context"
	"time"

	"github.com/RichStephens/killzone/internal/logging"
)

// StartCollisionSweeper resolves stacked players every interval until ctx
// is cancelled. A non-positive interval disables it; the returned channel
// is then already closed. Otherwise it closes once the loop has exited.
func StartCollisionSweeper(ctx context.Context, a *Arena, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		logging.Info("collision sweeper started", logging.Fields{"interval": interval.String()})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.Sweep(ctx)
			}
		}
	}()
	return done
}
