package server

import (
	"log/slog"

	"github.com/UnknownOlympus/ems/internal/config"
	"github.com/UnknownOlympus/ems/internal/handlers"
	"github.com/UnknownOlympus/ems/internal/metrics"
	"github.com/UnknownOlympus/ems/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router of the employee API with its middleware stack.
func NewRouter(
	log *slog.Logger,
	employeeHandler *handlers.EmployeeHandler,
	appMetrics *metrics.Metrics,
	cfg config.HTTPServerConfig,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(log))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Metrics(appMetrics))
	router.Use(middleware.RateLimit(log, cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Mount("/api/employees", employeeHandler.Routes())

	return router
}
