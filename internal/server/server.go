package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/metrics"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultUserID is the single lifter of a self-hosted instance.
const defaultUserID = 1

// SetStore is the lift log the set endpoints read and write.
// *storage.DB satisfies it.
type SetStore interface {
	Ping(ctx context.Context) error
	InsertLiftSets(ctx context.Context, rows []models.LiftSet) (int64, error)
	QueryLiftSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LiftSet, error)
	DeleteLiftSet(ctx context.Context, id uuid.UUID, userID int) (bool, error)
	GetLiftStats(ctx context.Context, userID int) (*storage.LiftStats, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error)
}

var _ SetStore = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       SetStore
	alpha       *alpha.Provider
	log         *slog.Logger
	apiKey      string
	defaultUnit plates.Unit
	metrics     *metrics.Manager
	router      chi.Router
	now         func() time.Time
}

// New creates a new Server with all routes configured.
func New(store SetStore, apiKey string, defaultUnit plates.Unit, log *slog.Logger) *Server {
	s := &Server{
		store:       store,
		alpha:       alpha.NewProvider(store, log),
		log:         log,
		apiKey:      apiKey,
		defaultUnit: defaultUnit,
		router:      chi.NewRouter(),
		now:         time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.instrument)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Calculators (no auth, pure functions)
		r.Get("/estimate", s.handleEstimate)
		r.Get("/prescribe", s.handlePrescribe)
		r.Get("/plates", s.handlePlates)
		r.Get("/plates/presets", s.handlePlatePresets)
		r.Get("/rpe/table", s.handleRPETable)

		// Lift log
		r.Get("/sets", s.handleQuerySets)
		r.Get("/sets/best", s.handleBestEstimates)
		r.Get("/sets/progression", s.handleProgression)
		r.Get("/sets/stats", s.handleLiftStats)
		r.Get("/import/logs", s.handleImportLogs)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/sets", s.handleLogSets)
			r.Delete("/sets/{id}", s.handleDeleteSet)
			r.Post("/import/alpha", s.handleAlphaImport)
		})
	})
}

// SetMetrics enables request and calculation metrics and exposes reg at /metrics.
func (s *Server) SetMetrics(m *metrics.Manager, reg *prometheus.Registry) {
	s.metrics = m
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

// SetMCP mounts a streamable MCP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Warn("health check: database unreachable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
