// Package diversify implements Maximal Marginal Relevance selection over
// scored documents.
package diversify

import (
	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/textnorm"
)

// Defaults for the MMR trade-off and the selection budget.
const (
	DefaultLambda     = 0.7
	DefaultMaxResults = 20
)

// MMR greedily selects up to maxResults documents balancing relevance
// against redundancy:
//
//	mmr = lambda*relevance - (1-lambda)*maxSimilarityToSelected
//
// The input must be sorted by relevance descending; the first pick is
// pure relevance. Similarity is Jaccard over normalized title+content
// token sets. The selection order is the output order. Ties keep the
// first-seen candidate. Zero or one documents are returned unchanged.
func MMR(documents []domain.Document, lambda float64, maxResults int) []domain.Document {
	if len(documents) <= 1 {
		return documents
	}

	k := maxResults
	if k > len(documents) {
		k = len(documents)
	}
	if k <= 0 {
		return nil
	}

	wordSets := make([]map[string]struct{}, len(documents))
	for i := range documents {
		wordSets[i] = textnorm.ExtractWords(documents[i].Title+" "+documents[i].Content, false)
	}

	selected := make([]domain.Document, 0, k)
	selectedSets := make([]map[string]struct{}, 0, k)
	taken := make([]bool, len(documents))

	for len(selected) < k {
		bestIdx := -1
		bestScore := 0.0

		for i := range documents {
			if taken[i] {
				continue
			}

			penalty := 0.0
			for _, sel := range selectedSets {
				if sim := jaccard(wordSets[i], sel); sim > penalty {
					penalty = sim
				}
			}

			score := lambda*documents[i].Score - (1-lambda)*penalty
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		if bestIdx == -1 {
			break
		}
		taken[bestIdx] = true
		selected = append(selected, documents[bestIdx])
		selectedSets = append(selectedSets, wordSets[bestIdx])
	}

	return selected
}

// jaccard computes |a∩b| / |a∪b|; empty sets yield 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := textnorm.Overlap(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
