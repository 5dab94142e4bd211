// Package feedback persists per-article feedback counters in redis
// hashes. The counters feed the relevance boost in the ranking layer.
package feedback

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"
)

// Hash field names.
const (
	fieldHelpful    = "helpful_votes"
	fieldComplaints = "complaints"
	fieldUsage      = "usage_count"
)

// Counters is one article's feedback state.
type Counters struct {
	HelpfulVotes int
	Complaints   int
	UsageCount   int
}

// Store keeps counters under one hash per article.
type Store struct {
	client    rueidis.Client
	keyPrefix string
}

// NewStore creates a feedback store. keyPrefix defaults to "feedback".
func NewStore(client rueidis.Client, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = "feedback"
	}
	return &Store{client: client, keyPrefix: keyPrefix}
}

// RecordHelpful counts a positive vote for the article.
func (s *Store) RecordHelpful(ctx context.Context, id string) error {
	return s.incr(ctx, id, fieldHelpful)
}

// RecordComplaint counts a negative vote for the article.
func (s *Store) RecordComplaint(ctx context.Context, id string) error {
	return s.incr(ctx, id, fieldComplaints)
}

// IncrementUsage counts one citation of the article in an answer.
func (s *Store) IncrementUsage(ctx context.Context, id string) error {
	return s.incr(ctx, id, fieldUsage)
}

// Counters reads the article's feedback state. A missing hash is a
// zero-valued state, not an error.
func (s *Store) Counters(ctx context.Context, id string) (Counters, error) {
	cmd := s.client.B().Hgetall().Key(s.key(id)).Build()
	m, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return Counters{}, fmt.Errorf("hgetall %s: %w", s.key(id), err)
	}
	return Counters{
		HelpfulVotes: intOf(m[fieldHelpful]),
		Complaints:   intOf(m[fieldComplaints]),
		UsageCount:   intOf(m[fieldUsage]),
	}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Store) incr(ctx context.Context, id, field string) error {
	if id == "" {
		return fmt.Errorf("article id is required")
	}
	cmd := s.client.B().Hincrby().Key(s.key(id)).Field(field).Increment(1).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("hincrby %s %s: %w", s.key(id), field, err)
	}
	return nil
}

func (s *Store) key(id string) string {
	return s.keyPrefix + ":" + id
}

func intOf(v string) int {
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
