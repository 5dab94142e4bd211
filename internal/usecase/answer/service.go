// Package answer orchestrates one question end to end: domain
// classification, query expansion, retrieval, the clarify
// short-circuit and final LLM generation with cited sources.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/logger"
	"github.com/atendia/respondex/internal/usecase/confidence"
	"github.com/atendia/respondex/internal/usecase/retrieval"
)

// Source is one cited document on a response.
type Source struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

// Response is the final answer payload.
type Response struct {
	ID            string            `json:"id"`
	Answer        string            `json:"answer"`
	Sources       []Source          `json:"sources"`
	Confidence    confidence.Report `json:"confidence"`
	Clarification bool              `json:"clarification"`
	Domains       []string          `json:"domains,omitempty"`
	Model         string            `json:"model,omitempty"`
}

// Service composes answers. Model is a label reported on responses.
type Service struct {
	classifier Classifier
	expander   Expander
	retriever  Retriever
	generator  Generator
	usage      UsageRecorder
	model      string
}

// New creates the answer service. usage may be nil to skip counter
// updates.
func New(
	classifier Classifier,
	expander Expander,
	retriever Retriever,
	generator Generator,
	usage UsageRecorder,
	model string,
) *Service {
	return &Service{
		classifier: classifier,
		expander:   expander,
		retriever:  retriever,
		generator:  generator,
		usage:      usage,
		model:      model,
	}
}

// Ask answers one question. A clarification decision short-circuits
// generation; an empty retrieval result yields the fixed no-context
// answer rather than an error.
func (s *Service) Ask(ctx context.Context, question string) (Response, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(question) == "" {
		return Response{}, domain.ErrEmptyQuestion
	}

	domains := s.classifier.Classify(question)
	domainConfidence := 0.0
	for _, d := range domains {
		if c := s.classifier.Confidence(question, d); c > domainConfidence {
			domainConfidence = c
		}
	}

	params := s.expander.AdaptiveParams(question)
	expanded := s.expander.Expand(question)
	log.Debug("question prepared",
		zap.Strings("domains", domains),
		zap.Float64("domain_confidence", domainConfidence),
		zap.Int("top_k", params.TopK),
		zap.Float64("min_score", params.MinScore),
		zap.String("reasoning", params.Reasoning),
	)

	result, err := s.retriever.RetrieveAndScore(ctx, retrieval.Query{
		Text:             question,
		Expanded:         expanded,
		DomainConfidence: domainConfidence,
		TopK:             params.TopK,
		MinScore:         params.MinScore,
	})
	if err != nil {
		return Response{}, fmt.Errorf("retrieve: %w", err)
	}

	if result.Clarification != "" {
		return Response{
			ID:            uuid.NewString(),
			Answer:        result.Clarification,
			Confidence:    result.Confidence,
			Clarification: true,
			Domains:       domains,
			Model:         s.model,
		}, nil
	}

	if len(result.Documents) == 0 {
		return Response{
			ID:         uuid.NewString(),
			Answer:     noContextAnswer,
			Confidence: result.Confidence,
			Domains:    domains,
			Model:      s.model,
		}, nil
	}

	prompt := buildPrompt(question, buildContext(result.Documents), domains, result.Confidence.Score)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", domain.ErrGenerationProviderError, err)
	}

	sources := makeSources(result.Documents)
	s.recordUsage(ctx, result.Documents)

	return Response{
		ID:         uuid.NewString(),
		Answer:     strings.TrimSpace(text),
		Sources:    sources,
		Confidence: result.Confidence,
		Domains:    domains,
		Model:      s.model,
	}, nil
}

func makeSources(documents []domain.Document) []Source {
	sources := make([]Source, 0, len(documents))
	for _, d := range documents {
		if d.Title == "" {
			continue
		}
		score := d.Score
		if score > 1 {
			score = 1
		}
		if score < 0 {
			score = 0
		}
		sources = append(sources, Source{
			ID:       d.ID,
			Title:    d.Title,
			Category: d.Category,
			Score:    score,
			Snippet:  BuildSnippet(d.Title, d.Content, d.Metadata, snippetMaxLength),
		})
	}
	return sources
}

// recordUsage bumps usage counters for cited documents. Best-effort:
// failures are logged, never surfaced.
func (s *Service) recordUsage(ctx context.Context, documents []domain.Document) {
	if s.usage == nil {
		return
	}
	log := logger.FromContext(ctx)
	for _, d := range documents {
		if err := s.usage.IncrementUsage(ctx, d.ID); err != nil {
			log.Warn("usage increment failed", zap.String("doc_id", d.ID), zap.Error(err))
		}
	}
}
