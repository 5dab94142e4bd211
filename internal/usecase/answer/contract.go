package answer

import (
	"context"

	"github.com/atendia/respondex/internal/usecase/queryexpand"
	"github.com/atendia/respondex/internal/usecase/retrieval"
)

// Retriever runs the scoring pipeline.
type Retriever interface {
	RetrieveAndScore(ctx context.Context, q retrieval.Query) (retrieval.Result, error)
}

// Generator produces the answer text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier detects the question's department domains.
type Classifier interface {
	Classify(query string) []string
	Confidence(query, domain string) float64
}

// Expander widens the query and supplies adaptive retrieval params.
type Expander interface {
	Expand(question string) string
	AdaptiveParams(question string) queryexpand.Params
}

// UsageRecorder bumps usage counters for cited documents.
type UsageRecorder interface {
	IncrementUsage(ctx context.Context, id string) error
}
