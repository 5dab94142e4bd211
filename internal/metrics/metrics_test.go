package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/ask", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("POST", "/v1/ask", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/v1/ask", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}

	durationCount := testutil.CollectAndCount(httpRequestDuration)
	if durationCount == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_CapturesErrorStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest("GET", "/boom", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/boom", "500"))
	if val < 1 {
		t.Errorf("expected requests_total for /boom with status 500 >= 1, got %f", val)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/v1/feedback", "/v1/feedback"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestPipelineHelpers(t *testing.T) {
	before := testutil.ToFloat64(clarificationsTotal)
	IncClarifications()
	if got := testutil.ToFloat64(clarificationsTotal); got != before+1 {
		t.Errorf("clarifications_total = %f, want %f", got, before+1)
	}

	IncFeedback("helpful")
	if got := testutil.ToFloat64(feedbackEventsTotal.WithLabelValues("helpful")); got < 1 {
		t.Errorf("feedback_events_total{helpful} = %f, want >= 1", got)
	}

	ObserveRetrievalDuration(0.01)
	if testutil.CollectAndCount(retrievalDuration) == 0 {
		t.Error("expected retrieval_duration_seconds observations")
	}

	ObserveConfidence(0.75)
	if testutil.CollectAndCount(confidenceScore) == 0 {
		t.Error("expected answer_confidence_score observations")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	RegisterPipelineMetrics()
	RegisterPipelineMetrics()
	RegisterProviderMetrics()
	RegisterProviderMetrics()
}
