package domain

import "errors"

var (
	// ErrEmptyQuestion signals a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")
	// ErrMissingDate signals a recency boost request without a document date.
	ErrMissingDate = errors.New("document date is required")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals an LLM provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
