// Package rest wires the HTTP surface of the service: routing, middleware,
// and the handlers that translate requests into commands and queries.
package rest

import (
	"net/http"

	"ideaforge-backend/application/commands/bus"
	querybus "ideaforge-backend/application/queries/bus"
	"ideaforge-backend/interfaces/http/rest/handlers"
	"ideaforge-backend/interfaces/http/rest/middleware"
	"ideaforge-backend/pkg/auth"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	verifier   middleware.TokenVerifier
	collector  *observability.Collector
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger

	// ReadyCheck reports whether downstream dependencies are reachable.
	// Nil means always ready.
	ReadyCheck func() error

	// DevTokens enables the unauthenticated dev token endpoint when non-nil.
	// Only the local non-production wiring sets it.
	DevTokens *auth.JWTGenerator
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	verifier middleware.TokenVerifier,
	collector *observability.Collector,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		verifier:   verifier,
		collector:  collector,
		errors:     errorHandler,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*.ideaforge.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.DevTokens != nil {
		authHandler := handlers.NewAuthHandler(rt.DevTokens, rt.errors, rt.logger)
		router.Post("/auth/dev-token", authHandler.IssueDevToken)
	}

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		rt.collector.GetRegistry(),
		promhttp.HandlerOpts{},
	))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.verifier, rt.logger))

		ideaHandler := handlers.NewIdeaHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		analysisHandler := handlers.NewAnalysisHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		frankensteinHandler := handlers.NewFrankensteinHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
		dashboardHandler := handlers.NewDashboardHandler(rt.queryBus, rt.errors, rt.logger)

		r.Route("/ideas", func(r chi.Router) {
			r.Post("/", ideaHandler.CreateIdea)
			r.Get("/", ideaHandler.ListIdeas)
			r.Get("/{ideaID}", ideaHandler.GetIdea)
			r.Put("/{ideaID}", ideaHandler.UpdateIdea)
			r.Delete("/{ideaID}", ideaHandler.DeleteIdea)

			r.Post("/{ideaID}/analysis", analysisHandler.AnalyzeIdea)
			r.Get("/{ideaID}/analysis", analysisHandler.GetAnalysis)
			r.Post("/{ideaID}/hackathon", analysisHandler.EvaluateHackathon)
		})

		r.Route("/frankenstein", func(r chi.Router) {
			r.Post("/", frankensteinHandler.Combine)
			r.Get("/ingredients", frankensteinHandler.Ingredients)
		})

		r.Get("/dashboard", dashboardHandler.GetDashboard)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if rt.ReadyCheck != nil {
		if err := rt.ReadyCheck(); err != nil {
			rt.logger.Warn("readiness check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
