// Package queryexpand widens a question with department-specific
// synonyms before retrieval and picks retrieval parameters adapted to
// the question's shape.
package queryexpand

import (
	"regexp"
	"strings"

	"github.com/atendia/respondex/internal/textnorm"
)

// Params are retrieval knobs chosen per question.
type Params struct {
	TopK      int
	MinScore  float64
	Reasoning string
}

type expansion struct {
	key      string
	synonyms []string
}

// Expander holds the synonym tables. Read-only after construction.
type Expander struct {
	expansions []expansion
}

// NewExpander builds an expander with the built-in multi-department
// synonym tables.
func NewExpander() *Expander {
	return &Expander{expansions: defaultExpansions}
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

const (
	shortQuestionWords = 5
	synonymsShort      = 3
	synonymsLong       = 2
)

// Expand appends synonyms of recognized terms to the question. Terms
// already present in the question are not repeated; a question with no
// recognized terms is returned unchanged.
func (e *Expander) Expand(question string) string {
	normalized := textnorm.Normalize(question)
	words := strings.Fields(normalized)

	perKey := synonymsLong
	if len(words) <= shortQuestionWords {
		perKey = synonymsShort
	}

	matched := map[string]struct{}{}
	seen := map[string]struct{}{}
	var added []string
	for _, word := range words {
		clean := punctuation.ReplaceAllString(word, "")
		if len([]rune(clean)) < 3 {
			continue
		}
		for _, exp := range e.expansions {
			if _, ok := matched[exp.key]; ok {
				continue
			}
			if !looseMatch(exp.key, clean) {
				continue
			}
			matched[exp.key] = struct{}{}
			for i, syn := range exp.synonyms {
				if i == perKey {
					break
				}
				folded := textnorm.Normalize(syn)
				if strings.Contains(normalized, folded) {
					continue
				}
				if _, dup := seen[folded]; dup {
					continue
				}
				seen[folded] = struct{}{}
				added = append(added, syn)
			}
		}
	}

	if len(added) == 0 {
		return question
	}
	return question + " " + strings.Join(added, " ")
}

// looseMatch accepts exact matches and substring containment either
// way, so "impressoras" still triggers the "impressora" expansion.
func looseMatch(key, word string) bool {
	return key == word || strings.Contains(word, key) || strings.Contains(key, word)
}

var specificTerms = []string{
	"como fazer", "passo a passo", "tutorial", "configurar",
	"instalar", "procedimento", "qual prazo", "qual valor",
}

var problemTerms = []string{
	"nao funciona", "erro", "problema", "travado", "lento",
	"nao consigo", "ajuda", "duvida", "bloqueado",
}

var infoTerms = []string{
	"o que e", "qual e", "quem e", "onde fica", "quando",
	"por que", "para que serve",
}

// AdaptiveParams picks topK and the minimum score threshold from the
// question's length and intent markers. Specific detailed questions
// get fewer, stricter results; troubleshooting gets a wider net.
func (e *Expander) AdaptiveParams(question string) Params {
	length := len(strings.Fields(question))
	normalized := textnorm.Normalize(question)

	switch {
	case containsAny(normalized, specificTerms) && length > 8:
		return Params{TopK: 5, MinScore: 0.25, Reasoning: "pergunta específica e detalhada"}
	case containsAny(normalized, problemTerms):
		return Params{TopK: 12, MinScore: 0.12, Reasoning: "pergunta sobre problema/erro"}
	case containsAny(normalized, infoTerms) || length <= 5:
		return Params{TopK: 10, MinScore: 0.15, Reasoning: "pergunta genérica ou curta"}
	default:
		return Params{TopK: 8, MinScore: 0.18, Reasoning: "padrão"}
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
