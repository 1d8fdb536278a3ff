package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/ems/internal/config"
)

// APIServer runs the employee REST API until its context is cancelled.
type APIServer struct {
	httpServer *http.Server
	cfg        config.HTTPServerConfig
	log        *slog.Logger
}

func NewAPIServer(handler http.Handler, cfg config.HTTPServerConfig, log *slog.Logger) *APIServer {
	return &APIServer{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		cfg: cfg,
		log: log,
	}
}

// Start serves HTTP and blocks until ctx is done or the listener fails. On cancellation the
// server is shut down, waiting up to the configured shutdown timeout for in-flight requests.
func (s *APIServer) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.log.InfoContext(ctx, "Employee API listening", "address", s.httpServer.Addr)

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("employee API failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Shutdown signal received, stopping employee API")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("employee API shutdown failed: %w", err)
	}

	s.log.InfoContext(ctx, "Employee API stopped")

	return nil
}
