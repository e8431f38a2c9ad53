package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/bank-portal/internal/handlers"
	"github.com/GregMSThompson/bank-portal/internal/middleware"
)

type Observability struct {
	Registry *prometheus.Registry
}

func NewRouter(deps *handlers.Deps, resolver middleware.Resolver, obs Observability) chi.Router {
	r := chi.NewRouter()

	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(log).LoggerMiddleware)
	if obs.Registry != nil {
		r.Use(middleware.NewMetricsMiddleware(obs.Registry).Metrics)
	}
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", handlers.Healthz)
	if obs.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(resolver).Session)

		handlers.NewAuthHandlers(deps).AuthRoutes(r)
		handlers.NewDirectoryHandlers(deps).DirectoryRoutes(r)
		handlers.NewStaffHandlers(deps).StaffRoutes(r)

		r.Mount("/customer", handlers.NewCustomerHandlers(deps).CustomerRoutes())
		r.Mount("/views", handlers.NewViewHandlers(deps).ViewRoutes())
	})
	return r
}
