package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
)

const (
	maxRequestBody  = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// Evaluator rates a full assessment request.
type Evaluator interface {
	Evaluate(ctx context.Context, req domain.AssessmentRequest) (domain.AssessmentResult, error)
}

// Catalog is the read side of the loaded profile dataset.
type Catalog interface {
	Lookup(id string) *domain.MonthlyClimateProfile
	IDs() []string
}

// Server exposes the assessment API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	evaluator  Evaluator
	catalog    Catalog
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /v1 assessment routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, evaluator Evaluator, catalog Catalog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      withRequestID(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		evaluator: evaluator,
		catalog:   catalog,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/regions", s.handleListRegions)
	mux.HandleFunc("GET /v1/regions/{id}/assessment", s.handleRegionAssessment)
	mux.HandleFunc("POST /v1/assessments", s.handleAssess)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleListRegions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]string{"regions": s.catalog.IDs()})
}

// handleRegionAssessment rates one profiled region:
// GET /v1/regions/{id}/assessment?activity=beach&months=5,6,7
func (s *Server) handleRegionAssessment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.catalog.Lookup(id) == nil {
		writeError(w, http.StatusNotFound, "unknown region: "+id)
		return
	}

	q := r.URL.Query()
	months, err := domain.ParseMonthList(q.Get("months"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity := q.Get("activity")
	if activity == "" {
		activity = string(domain.ActivityCity)
	}

	res, err := s.evaluator.Evaluate(r.Context(), domain.AssessmentRequest{
		Activity: activity,
		Months:   months.Slice(),
		Regions:  []domain.RegionRef{{ID: id}},
	})
	if err != nil {
		s.writeEvaluateError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res.Assessments[0])
}

// handleAssess rates every region of a JSON assessment request.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req domain.AssessmentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	res, err := s.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		s.writeEvaluateError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) writeEvaluateError(w http.ResponseWriter, r *http.Request, err error) {
	if isInvalidRequest(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("assessment failed", "error", err, "request_id", w.Header().Get(requestIDHeader), "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "assessment failed")
}

func isInvalidRequest(err error) bool {
	return errors.Is(err, domain.ErrInvalidActivity) ||
		errors.Is(err, domain.ErrInvalidMonth) ||
		errors.Is(err, domain.ErrNoRegions) ||
		errors.Is(err, domain.ErrMissingRegionID)
}

// withRequestID echoes the caller's X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = "req_" + uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": strings.TrimSpace(msg)})
}
