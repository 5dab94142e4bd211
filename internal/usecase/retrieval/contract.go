package retrieval

import (
	"context"

	"github.com/atendia/respondex/internal/domain"
)

// VectorSearcher is the nearest-neighbor search capability.
type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]domain.VectorHit, error)
}

// LexicalSearcher is the keyword (BM25) search capability.
type LexicalSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]domain.LexicalHit, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Clarifier decides whether to ask a follow-up instead of answering.
type Clarifier interface {
	MaybeClarify(ctx context.Context, question string, documents []domain.Document) (string, bool)
}
