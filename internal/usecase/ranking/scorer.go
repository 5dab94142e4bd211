// Package ranking implements the hybrid scoring pipeline: merging vector
// and lexical hits with weighted sub-scores, feedback boosts, anchor-term
// gating and recency boosting.
package ranking

import (
	"sort"

	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/textnorm"
)

// Weights control the contribution of each sub-score to the final
// hybrid score.
type Weights struct {
	Vector   float64
	Text     float64
	Title    float64
	Category float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{Vector: 0.40, Text: 0.30, Title: 0.30, Category: 0.10}
}

// defaultGuardTerms penalizes lexical hits that match a trigger query
// term only incidentally. When the query contains the trigger and the
// document shares none of the synonyms, the text score is halved.
var defaultGuardTerms = map[string][]string{
	"vpn": {"vpn", "virtual", "remoto", "forticlient", "anyconnect"},
}

// categoryStopwords are generic tokens ignored when matching category names.
var categoryStopwords = map[string]struct{}{
	"e": {}, "de": {}, "do": {}, "da": {}, "das": {}, "dos": {},
	"para": {}, "em": {}, "no": {}, "na": {}, "nas": {}, "nos": {},
	"por": {}, "um": {}, "uma": {}, "o": {}, "a": {}, "os": {}, "as": {},
	"internas": {}, "internos": {}, "geral": {},
}

// titleBoostCap limits how much a full title match contributes before
// the title weight is applied.
const titleBoostCap = 0.8

// Scorer merges vector and lexical search hits into a single ranked
// list. Immutable after construction, safe for concurrent use.
type Scorer struct {
	weights Weights
	guard   map[string][]string
	logger  *zap.Logger
}

// NewScorer creates a hybrid scorer with the default guard-term table.
func NewScorer(weights Weights, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{weights: weights, guard: defaultGuardTerms, logger: logger}
}

// WithGuardTerms replaces the synonym-guard table. A nil map disables
// guarding entirely.
func (s *Scorer) WithGuardTerms(guard map[string][]string) *Scorer {
	s.guard = guard
	return s
}

// candidate is a merged scoring entry; order preserves first insertion
// so that equal final scores keep a stable ordering.
type candidate struct {
	id          string
	vectorScore float64
	textScore   float64
	payload     domain.Payload
	order       int
}

// Combine merges vector and lexical hits into a descending-sorted list
// of scored documents. Scores are clamped to [0,1]. threshold > 0 drops
// documents scoring below it.
func (s *Scorer) Combine(
	query string,
	vectorHits []domain.VectorHit,
	lexicalHits []domain.LexicalHit,
	threshold float64,
) []domain.Document {
	queryWords := textnorm.ExtractWords(query, false)
	queryContentWords := textnorm.ExtractWords(query, true)

	byID := make(map[string]*candidate, len(vectorHits)+len(lexicalHits))
	ordered := make([]*candidate, 0, len(vectorHits)+len(lexicalHits))

	for _, hit := range vectorHits {
		c := &candidate{
			id:          hit.ID,
			vectorScore: hit.Score,
			payload:     hit.Payload,
			order:       len(ordered),
		}
		byID[hit.ID] = c
		ordered = append(ordered, c)
	}

	for _, hit := range lexicalHits {
		textScore := s.textScore(queryWords, queryContentWords, hit.Payload)

		if c, ok := byID[hit.ID]; ok {
			c.textScore = textScore
			continue
		}
		c := &candidate{
			id:        hit.ID,
			textScore: textScore,
			payload:   hit.Payload,
			order:     len(ordered),
		}
		byID[hit.ID] = c
		ordered = append(ordered, c)
	}

	docs := make([]domain.Document, 0, len(ordered))
	for _, c := range ordered {
		titleBoost := titleBoost(queryContentWords, c.payload.Title)
		categoryBoost := categoryBoost(queryContentWords, c.payload.Category)

		score := c.vectorScore*s.weights.Vector +
			c.textScore*s.weights.Text +
			titleBoost*s.weights.Title +
			categoryBoost*s.weights.Category
		score += FeedbackBoost(c.payload)
		score = clamp01(score)

		if threshold > 0 && score < threshold {
			continue
		}

		docs = append(docs, domain.Document{
			ID:       c.id,
			Title:    c.payload.Title,
			Content:  c.payload.Content,
			Category: c.payload.Category,
			Score:    score,
			Metadata: c.payload.Metadata,
		})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Score > docs[j].Score
	})

	s.logger.Debug("hybrid scoring complete",
		zap.Int("vector_hits", len(vectorHits)),
		zap.Int("lexical_hits", len(lexicalHits)),
		zap.Int("combined", len(docs)),
	)

	return docs
}

// textScore computes the token-overlap score of a lexical hit against
// the query, mapped into [0.2, 1.0] so that any hit retains a floor
// signal, then guard-penalized.
func (s *Scorer) textScore(
	queryWords, queryContentWords map[string]struct{},
	payload domain.Payload,
) float64 {
	searchText := payload.SearchText
	if searchText == "" {
		searchText = payload.Title + " " + payload.Content
	}
	docWords := textnorm.ExtractWords(searchText, false)

	overlapBase := queryContentWords
	if len(overlapBase) == 0 {
		overlapBase = queryWords
	}
	if len(overlapBase) == 0 {
		return 0
	}

	ratio := float64(textnorm.Overlap(overlapBase, docWords)) / float64(len(overlapBase))
	score := clamp01(0.2 + 0.8*ratio)

	for trigger, synonyms := range s.guard {
		if _, ok := queryWords[trigger]; !ok {
			continue
		}
		if !containsAny(docWords, synonyms) {
			score *= 0.5
		}
	}

	return score
}

// titleBoost rewards overlap between query content words and the title.
func titleBoost(queryContentWords map[string]struct{}, title string) float64 {
	if len(queryContentWords) == 0 {
		return 0
	}
	titleWords := textnorm.ExtractWords(title, false)
	if len(titleWords) == 0 {
		return 0
	}
	ratio := float64(textnorm.Overlap(queryContentWords, titleWords)) / float64(len(queryContentWords))
	return ratio * titleBoostCap
}

// categoryBoost rewards overlap with the category name after dropping
// category-specific stopwords.
func categoryBoost(queryContentWords map[string]struct{}, category string) float64 {
	if category == "" {
		return 0
	}
	catTokens := textnorm.ExtractWords(category, false)
	for tok := range catTokens {
		if _, stop := categoryStopwords[tok]; stop {
			delete(catTokens, tok)
		}
	}
	if len(catTokens) == 0 {
		return 0
	}
	denom := len(catTokens)
	if denom < 1 {
		denom = 1
	}
	ratio := float64(textnorm.Overlap(queryContentWords, catTokens)) / float64(denom)
	return clamp01(ratio)
}

func containsAny(words map[string]struct{}, terms []string) bool {
	for _, t := range terms {
		if _, ok := words[t]; ok {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
