// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/http/swagger"
	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

const defaultRequestTimeout = 30 * time.Second

// Dependencies required by HTTP handlers. *service.Service implements it.
type Dependencies interface {
	IngestSection(ctx context.Context, section model.Section, userID string, payload json.RawMessage, opts ...service.IngestOption) (types.ScoreResult, error)
	GetBySection(ctx context.Context, userID, key string) (model.SectionRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	metricsHandler  http.Handler
	statsHandler    *StatsHandler
	sectionsHandler *SectionsHandler
	formsHandler    *FormsHandler

	auth           *Authenticator
	corsOrigins    []string
	requestTimeout time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAuthenticator protects the section routes with bearer tokens.
func WithAuthenticator(a *Authenticator) ServerOption {
	return func(s *Server) {
		s.auth = a
	}
}

// WithCORSOrigins sets the browser origins allowed to call the API.
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.corsOrigins = append([]string(nil), origins...)
	}
}

// WithRequestTimeout bounds each request. Non-positive values are ignored.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithStatsProvider exposes provider on GET /stats.
func WithStatsProvider(provider StatsProvider) ServerOption {
	return func(s *Server) {
		if provider != nil {
			s.statsHandler = NewStatsHandler(provider)
		}
	}
}

// WithFormQueue enables POST /api/v1/forms, which fans the sections of a
// form out to the worker pool consuming q.
func WithFormQueue(q FormDependencies) ServerOption {
	return func(s *Server) {
		if q != nil {
			s.formsHandler = NewFormsHandler(q)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		metricsHandler:  NewMetricsHandler(),
		sectionsHandler: NewSectionsHandler(deps),
		requestTimeout:  defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router serving every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	swagger.Register(r)
	if s.statsHandler != nil {
		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	}

	r.Route("/api/v1/sections", func(sr chi.Router) {
		sr.Use(s.auth.Middleware)
		sr.Get("/", MetricsMiddleware(s.sectionsHandler.HandleGetSection, "get_section"))
		sr.Post("/{section}", MetricsMiddleware(s.sectionsHandler.HandleSubmitSection, "submit_section"))
	})
	if s.formsHandler != nil {
		r.With(s.auth.Middleware).Post("/api/v1/forms", MetricsMiddleware(s.formsHandler.HandleSubmitForm, "submit_form"))
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.ErrorResponse{Code: code, Message: msg})
}
