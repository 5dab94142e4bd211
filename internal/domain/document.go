// Package domain holds the core types shared across the retrieval pipeline.
package domain

// Payload carries the indexed fields of an article as stored in the
// search backends. Counters come from the feedback repository and are
// synced into the index by the ingestion job.
type Payload struct {
	Title      string
	Content    string
	Category   string
	SearchText string
	Metadata   map[string]string

	HelpfulVotes int
	Complaints   int
	UsageCount   int
}

// VectorHit is a single nearest-neighbor result from the vector index.
type VectorHit struct {
	ID      string
	Score   float64
	Payload Payload
}

// LexicalHit is a single keyword (BM25) result. The backend score is
// discarded; the hybrid scorer recomputes a token-overlap text score.
type LexicalHit struct {
	ID      string
	Payload Payload
}

// Document is a scored retrieval candidate. Score is mutable: it starts
// as the hybrid score in [0,1] and accumulates boosts (recency) that may
// push it above 1.0 before the final sort. That is a ranking signal, not
// a probability.
type Document struct {
	ID           string
	Title        string
	Content      string
	Category     string
	Score        float64
	RecencyBoost float64
	Metadata     map[string]string
}

// MetadataValue returns the metadata value for key, or "" when the
// document has no metadata.
func (d *Document) MetadataValue(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
