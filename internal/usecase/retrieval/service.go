// Package retrieval runs the scoring pipeline: hybrid search, anchor
// gating, diversification, recency boosting, confidence and the
// answer-vs-clarify decision.
package retrieval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/logger"
	"github.com/atendia/respondex/internal/metrics"
	"github.com/atendia/respondex/internal/usecase/confidence"
	"github.com/atendia/respondex/internal/usecase/diversify"
	"github.com/atendia/respondex/internal/usecase/ranking"
)

// RecencyStage selects where in the pipeline recency boosts apply.
type RecencyStage string

const (
	// RecencyAfterMMR applies recency boosts to the diversified set.
	// Default: boosting before selection lets a burst of fresh
	// near-duplicates crowd out the diverse picks.
	RecencyAfterMMR RecencyStage = "after_mmr"
	// RecencyBeforeMMR applies boosts before diversification, so
	// freshness influences which documents are selected at all.
	RecencyBeforeMMR RecencyStage = "before_mmr"
)

// Query is one retrieval request. Text is the user's question as
// asked; Expanded optionally carries a synonym-widened variant used
// for the searches only. Scoring, gating and the clarify decision
// always see Text.
type Query struct {
	Text             string
	Expanded         string
	DomainConfidence float64
	TopK             int
	MinScore         float64
}

func (q Query) searchText() string {
	if q.Expanded != "" {
		return q.Expanded
	}
	return q.Text
}

// Result is the pipeline output consumed by the answer layer.
type Result struct {
	Documents     []domain.Document
	Confidence    confidence.Report
	Clarification string
}

// Options are the fixed pipeline knobs.
type Options struct {
	Lambda       float64
	MaxResults   int
	RecencyStage RecencyStage
}

// Service executes the retrieval pipeline. All collaborators are fixed
// at construction; concurrent calls share no mutable state.
type Service struct {
	embed      Embedder
	vectors    VectorSearcher
	lexical    LexicalSearcher
	scorer     *ranking.Scorer
	recency    *ranking.RecencyBooster
	confidence *confidence.Scorer
	clarifier  Clarifier
	opts       Options
}

// New creates the pipeline service. clarifier may be nil to disable
// the clarify short-circuit.
func New(
	embed Embedder,
	vectors VectorSearcher,
	lexical LexicalSearcher,
	scorer *ranking.Scorer,
	recency *ranking.RecencyBooster,
	conf *confidence.Scorer,
	clarifier Clarifier,
	opts Options,
) *Service {
	if opts.Lambda == 0 {
		opts.Lambda = diversify.DefaultLambda
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = diversify.DefaultMaxResults
	}
	if opts.RecencyStage == "" {
		opts.RecencyStage = RecencyAfterMMR
	}
	return &Service{
		embed:      embed,
		vectors:    vectors,
		lexical:    lexical,
		scorer:     scorer,
		recency:    recency,
		confidence: conf,
		clarifier:  clarifier,
		opts:       opts,
	}
}

// RetrieveAndScore runs the full pipeline for one query. Embedding or
// vector-search failure degrades to lexical-only retrieval; an error
// is returned only when no search capability produced hits and one of
// them failed.
func (s *Service) RetrieveAndScore(ctx context.Context, q Query) (Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	defer func() {
		metrics.ObserveRetrievalDuration(time.Since(start).Seconds())
	}()

	if q.TopK <= 0 {
		q.TopK = s.opts.MaxResults
	}

	vectorHits, vecErr := s.searchVectors(ctx, q)
	if vecErr != nil {
		log.Warn("vector search degraded, continuing lexical-only", zap.Error(vecErr))
	}

	lexicalHits, lexErr := s.lexical.Search(ctx, q.searchText(), q.TopK)
	if lexErr != nil {
		if len(vectorHits) == 0 {
			if vecErr != nil {
				return Result{}, fmt.Errorf("lexical search: %w (vector search: %v)", lexErr, vecErr)
			}
			return Result{}, fmt.Errorf("lexical search: %w", lexErr)
		}
		log.Warn("lexical search failed, continuing with vector hits", zap.Error(lexErr))
	}

	docs := s.scorer.Combine(q.Text, vectorHits, lexicalHits, q.MinScore)
	docs = ranking.GateByAnchors(q.Text, docs)

	if s.opts.RecencyStage == RecencyBeforeMMR {
		docs = s.recency.ApplyToDocuments(docs)
	}
	docs = diversify.MMR(docs, s.opts.Lambda, min(q.TopK, s.opts.MaxResults))
	if s.opts.RecencyStage == RecencyAfterMMR {
		docs = s.recency.ApplyToDocuments(docs)
	}

	report := s.confidence.Calculate(docs, q.Text, q.DomainConfidence)
	metrics.ObserveConfidence(report.Score)

	var clarification string
	if s.clarifier != nil {
		if msg, needed := s.clarifier.MaybeClarify(ctx, q.Text, docs); needed {
			clarification = msg
			metrics.IncClarifications()
		}
	}

	log.Debug("retrieval pipeline done",
		zap.Int("vector_hits", len(vectorHits)),
		zap.Int("lexical_hits", len(lexicalHits)),
		zap.Int("documents", len(docs)),
		zap.Float64("confidence", report.Score),
		zap.Bool("clarification", clarification != ""),
	)

	return Result{Documents: docs, Confidence: report, Clarification: clarification}, nil
}

func (s *Service) searchVectors(ctx context.Context, q Query) ([]domain.VectorHit, error) {
	vector, err := s.embed.Embed(ctx, q.searchText())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	hits, err := s.vectors.Search(ctx, vector, q.TopK, q.MinScore)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	return hits, nil
}
