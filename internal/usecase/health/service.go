// Package health aggregates component availability for the /health
// endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks over the article store, the
// vector store and the embedding provider.
type Service struct {
	store     StorePinger
	vectors   VectorPinger
	embedding EmbeddingChecker
}

// New creates a Service. vectors and embedding may be nil.
func New(store StorePinger, vectors VectorPinger, embedding EmbeddingChecker) *Service {
	return &Service{store: store, vectors: vectors, embedding: embedding}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["store"] = resultOf(s.store.Ping(ctx))
	if s.vectors != nil {
		checks["vectors"] = resultOf(s.vectors.Ping(ctx))
	}
	if s.embedding != nil {
		checks["embedding"] = resultOf(s.embedding.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func resultOf(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
