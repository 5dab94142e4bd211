// Package lexical is the BM25 keyword search capability over the
// article index in Redis (FT.SEARCH).
package lexical

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/atendia/respondex/internal/domain"
)

// Store runs FT.SEARCH text queries against a redis article index.
type Store struct {
	client rueidis.Client
	index  string
}

// NewStore creates a lexical store over the given search index.
func NewStore(client rueidis.Client, index string) *Store {
	return &Store{client: client, index: index}
}

// Search runs a BM25 query and maps hits into domain payloads.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]domain.LexicalHit, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	queryStr := fmt.Sprintf("@search_text:(%s)", escapeQuery(query))
	cmd := s.client.B().Arbitrary("FT.SEARCH").
		Args(s.index, queryStr,
			"WITHSCORES",
			"LIMIT", "0", strconv.Itoa(topK),
			"DIALECT", "2",
		).Build()

	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("ft.search: %w", err)
	}
	return parseHits(raw)
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// parseHits decodes the RESP2 WITHSCORES reply:
// [total, key1, score1, fields1, key2, score2, fields2, ...].
func parseHits(raw []rueidis.RedisMessage) ([]domain.LexicalHit, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	hits := make([]domain.LexicalHit, 0, total)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}
		hits = append(hits, domain.LexicalHit{
			ID:      documentID(key),
			Payload: payloadFromFields(parseFieldPairs(fields)),
		})
	}
	return hits, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// payloadFromFields maps hash fields to the document payload. Known
// fields are lifted into struct members; the rest (dates, department,
// section) stay in Metadata for the boosters and snippet builder.
func payloadFromFields(fields map[string]string) domain.Payload {
	p := domain.Payload{
		Title:      fields["title"],
		Content:    fields["content"],
		Category:   fields["category"],
		SearchText: fields["search_text"],
	}
	p.HelpfulVotes = intField(fields, "helpful_votes")
	p.Complaints = intField(fields, "complaints")
	p.UsageCount = intField(fields, "usage_count")

	known := map[string]struct{}{
		"title": {}, "content": {}, "category": {}, "search_text": {},
		"helpful_votes": {}, "complaints": {}, "usage_count": {},
	}
	for k, v := range fields {
		if _, ok := known[k]; ok {
			continue
		}
		if p.Metadata == nil {
			p.Metadata = make(map[string]string)
		}
		p.Metadata[k] = v
	}
	return p
}

func intField(fields map[string]string, name string) int {
	v, ok := fields[name]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// documentID strips the redis key prefix, "article:42" -> "42".
func documentID(key string) string {
	if i := strings.LastIndex(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
)
