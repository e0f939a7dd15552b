// Package chi is the HTTP shell of the recommender.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/request"
	"github.com/kailas-cloud/assessrec/internal/domain/recommend/result"
	"github.com/kailas-cloud/assessrec/internal/logger"
	healthuc "github.com/kailas-cloud/assessrec/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/assessrec/internal/usecase/recommend"
)

const (
	livenessMessage  = "API is running!"
	maxBodyBytes     = 1 << 20
	embeddingHeader  = "X-Embedding-Tokens"
	contentTypeJSON  = "application/json"
	headerContentTyp = "Content-Type"
)

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, req request.Request) (recommenduc.Outcome, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Limits holds request-size settings. MaxResultsCeiling <= 0 disables the upper bound.
type Limits struct {
	DefaultMaxResults int
	MaxResultsCeiling int
}

// Server serves the recommendation API.
type Server struct {
	recommend     Recommender
	health        HealthChecker
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommend Recommender, health HealthChecker, limits Limits, l *zap.Logger) *Server {
	if limits.DefaultMaxResults <= 0 {
		limits.DefaultMaxResults = request.DefaultMaxResults
	}
	if l == nil {
		l = zap.NewNop()
	}
	s := &Server{
		recommend: recommend,
		health:    health,
		limits:    limits,
		logger:    l,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Post("/recommend", s.RecommendPost)
	r.Get("/recommend", s.RecommendGet)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{Message: livenessMessage})
}

// RecommendPost handles POST /recommend.
func (s *Server) RecommendPost(w http.ResponseWriter, r *http.Request) {
	var body RecommendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.serveRecommend(w, r, body.Text, body.MaxResults)
}

// RecommendGet handles GET /recommend?text=...&max_results=...
func (s *Server) RecommendGet(w http.ResponseWriter, r *http.Request) {
	var params RecommendParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "text", query, &params.Text); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter text: %s", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "max_results", query, &params.MaxResults); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			fmt.Sprintf("Invalid format for parameter max_results: %s", err))
		return
	}

	s.serveRecommend(w, r, params.Text, params.MaxResults)
}

func (s *Server) serveRecommend(w http.ResponseWriter, r *http.Request, text string, maxResults *int) {
	if maxResults == nil {
		n := s.limits.DefaultMaxResults
		maxResults = &n
	}

	req, err := request.New(text, maxResults, s.limits.MaxResultsCeiling)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	out, err := s.recommend.Recommend(ctx, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results := out.Items
	if results == nil {
		results = []result.Item{}
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, RecommendResponse{Query: out.Query, Results: results})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set(embeddingHeader, strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(headerContentTyp, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, detail string) {
	writeJSON(w, status, ErrorResponse{Code: code, Detail: detail})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// handleDomainError maps known sentinels to 4xx/503; anything else is a
// pipeline failure reported as 500 with the error message as detail.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("recommendation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
}
