package health

import "context"

// StorePinger checks the article/feedback store (redis).
type StorePinger interface {
	Ping(ctx context.Context) error
}

// VectorPinger checks the vector store.
type VectorPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
