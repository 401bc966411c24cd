package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/logging"
)

// serve runs srv until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutdown signal received, draining connections", logging.Fields{"timeout": shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info("Server closed", nil)
	return nil
}
