// Package qdrant adapts the Qdrant gRPC client to the retrieval pipeline.
package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
)

// Searcher queries a single Qdrant collection for nearest neighbors.
type Searcher struct {
	client     *qdrant.Client
	collection string
	logger     *zap.Logger
}

// Config holds the Qdrant connection settings. Port is the gRPC port.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	Logger     *zap.Logger
}

// NewSearcher connects to Qdrant over gRPC.
func NewSearcher(cfg *Config) (*Searcher, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Searcher{
		client:     client,
		collection: cfg.Collection,
		logger:     log,
	}, nil
}

// Search implements retrieval.VectorSearcher. minScore is pushed down to
// Qdrant as a score threshold so off-topic points never leave the store.
func (s *Searcher) Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]domain.VectorHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	limit := uint64(topK)
	req := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if minScore > 0 {
		threshold := float32(minScore)
		req.ScoreThreshold = &threshold
	}

	points, err := s.client.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", s.collection, err)
	}

	hits := make([]domain.VectorHit, 0, len(points))
	for _, point := range points {
		hits = append(hits, domain.VectorHit{
			ID:      pointID(point.Id),
			Score:   float64(point.Score),
			Payload: payloadFromPoint(point.Payload),
		})
	}

	s.logger.Debug("vector search completed",
		zap.String("collection", s.collection),
		zap.Int("top_k", topK),
		zap.Int("hits", len(hits)),
	)
	return hits, nil
}

// Ping checks Qdrant availability.
func (s *Searcher) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check: %w", err)
	}
	return nil
}

// Close releases the underlying gRPC connection.
func (s *Searcher) Close() error {
	return s.client.Close()
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// payloadFromPoint maps the Qdrant payload onto the indexed article
// fields. Unknown fields are kept as string metadata so recency boosts
// can read the date fields the ingestion job writes.
func payloadFromPoint(fields map[string]*qdrant.Value) domain.Payload {
	var payload domain.Payload
	for key, value := range fields {
		if value == nil {
			continue
		}
		switch key {
		case "title":
			payload.Title = value.GetStringValue()
		case "content":
			payload.Content = value.GetStringValue()
		case "category":
			payload.Category = value.GetStringValue()
		case "search_text":
			payload.SearchText = value.GetStringValue()
		case "helpful_votes":
			payload.HelpfulVotes = int(value.GetIntegerValue())
		case "complaints":
			payload.Complaints = int(value.GetIntegerValue())
		case "usage_count":
			payload.UsageCount = int(value.GetIntegerValue())
		default:
			if text := stringValue(value); text != "" {
				if payload.Metadata == nil {
					payload.Metadata = make(map[string]string)
				}
				payload.Metadata[key] = text
			}
		}
	}
	return payload
}

func stringValue(v *qdrant.Value) string {
	switch kind := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return strconv.FormatInt(kind.IntegerValue, 10)
	case *qdrant.Value_DoubleValue:
		return strconv.FormatFloat(kind.DoubleValue, 'f', -1, 64)
	case *qdrant.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue)
	default:
		return ""
	}
}
