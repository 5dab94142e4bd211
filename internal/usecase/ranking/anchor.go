package ranking

import (
	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/textnorm"
)

// anchorStopwords are generic corporate terms too broad to anchor a
// query on.
var anchorStopwords = map[string]struct{}{
	"rede": {}, "conectar": {}, "conexao": {}, "acessar": {}, "acesso": {},
	"gerenciador": {}, "aplicativo": {}, "dispositivo": {},
	"empresa": {}, "corporativa": {}, "sistema": {}, "plataforma": {},
}

// GateByAnchors filters documents down to those containing at least one
// salient query term. When no document matches (or the query yields no
// anchors) the input is returned unchanged, so gating never empties an
// otherwise useful result set.
func GateByAnchors(query string, documents []domain.Document) []domain.Document {
	anchors := textnorm.ExtractWords(query, true)
	for w := range anchors {
		if _, stop := anchorStopwords[w]; stop {
			delete(anchors, w)
		}
	}
	if len(anchors) == 0 {
		return documents
	}

	hasAnchor := func(d *domain.Document) bool {
		tokens := textnorm.ExtractWords(d.Title+" "+d.Content, false)
		return textnorm.Intersects(anchors, tokens)
	}

	filtered := make([]domain.Document, 0, len(documents))
	for i := range documents {
		if hasAnchor(&documents[i]) {
			filtered = append(filtered, documents[i])
		}
	}

	if len(filtered) == 0 {
		return documents
	}
	return filtered
}
