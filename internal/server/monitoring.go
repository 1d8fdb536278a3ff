package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMonitoringHandler exposes /healthz and /metrics for the given registry and database.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, db DBPinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", NewHealthChecker(db, log))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:          reg,
		EnableOpenMetrics: true,
	}))

	return mux
}

// StartMonitoringServer serves the monitoring handler on the given port until ctx is done.
func StartMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, db DBPinger, port int) {
	readTimeout := 5
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewMonitoringHandler(log, reg, db),
		ReadHeaderTimeout: time.Duration(readTimeout) * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Duration(readTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(shutdownCtx, "Monitoring server shutdown failed", "error", err)
		}
	}()

	log.InfoContext(ctx, "Monitoring server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
	log.InfoContext(ctx, "Monitoring server stopped")
}
