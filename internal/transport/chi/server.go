// Package chi exposes the question-answering pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/metrics"
	answeruc "github.com/atendia/respondex/internal/usecase/answer"
	healthuc "github.com/atendia/respondex/internal/usecase/health"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeRateLimited      = "rate_limited"
	codeProviderError    = "provider_error"
	codeInternalError    = "internal_error"
)

// Feedback kinds accepted by POST /v1/feedback.
const (
	feedbackHelpful   = "helpful"
	feedbackComplaint = "complaint"
)

// FeedbackRecorder persists user feedback on answered articles.
type FeedbackRecorder interface {
	RecordHelpful(ctx context.Context, articleID string) error
	RecordComplaint(ctx context.Context, articleID string) error
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// askRequest is the POST /v1/ask body.
type askRequest struct {
	Question string `json:"question"`
}

// feedbackRequest is the POST /v1/feedback body.
type feedbackRequest struct {
	ArticleID string `json:"article_id"`
	Kind      string `json:"kind"`
}

// feedbackResponse acknowledges a recorded feedback event.
type feedbackResponse struct {
	ArticleID string `json:"article_id"`
	Kind      string `json:"kind"`
	Recorded  bool   `json:"recorded"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	answers       *answeruc.Service
	feedback      FeedbackRecorder
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answers *answeruc.Service,
	feedback FeedbackRecorder,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		answers:  answers,
		feedback: feedback,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuestion, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes mounts the API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/ask", s.Ask)
	r.Post("/v1/feedback", s.Feedback)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.answers.Ask(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Feedback handles POST /v1/feedback.
func (s *Server) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.ArticleID) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "article_id is required")
		return
	}

	var err error
	switch req.Kind {
	case feedbackHelpful:
		err = s.feedback.RecordHelpful(r.Context(), req.ArticleID)
	case feedbackComplaint:
		err = s.feedback.RecordComplaint(r.Context(), req.ArticleID)
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			`kind must be "helpful" or "complaint"`)
		return
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.IncFeedback(req.Kind)
	writeJSON(w, http.StatusOK, feedbackResponse{
		ArticleID: req.ArticleID,
		Kind:      req.Kind,
		Recorded:  true,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuestion,
		domain.ErrRateLimited,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
