// Package clarify decides whether a question is too vague or the
// retrieved evidence too weak to answer, and produces a follow-up
// clarification prompt when it is.
package clarify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/logger"
	"github.com/atendia/respondex/internal/textnorm"
)

// Generator produces free text from a prompt. Optional: the service
// works without one, using the deterministic fallback template.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	maxQueryTokens    = 3
	maxContentTokens  = 2
	genericRatio      = 0.6
	weakMaxScore      = 0.3
	weakTop3Mean      = 0.25
	divergentTopSpan  = 3
	responseMarker    = "RESPOSTA:"
	maxPromptTitles   = 3
	maxFallbackTopics = 3
)

// Terms that carry no topic on their own (help/system/access words).
var genericTerms = map[string]struct{}{
	"ajuda":       {},
	"help":        {},
	"suporte":     {},
	"problema":    {},
	"erro":        {},
	"informacao":  {},
	"informacoes": {},
	"sistema":     {},
	"acesso":      {},
	"acessar":     {},
	"questao":     {},
	"solicitacao": {},
}

// Service is the answer-vs-clarify decision point.
type Service struct {
	generator Generator // nil disables the LLM path
	log       *zap.Logger
}

// NewService creates a clarifier. generator may be nil.
func NewService(generator Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{generator: generator, log: log}
}

// NeedsClarification reports whether the question should be answered
// with a follow-up question instead of an answer. True when ANY of the
// vagueness or weak-evidence conditions holds.
func (s *Service) NeedsClarification(question string, documents []domain.Document) bool {
	tokens := strings.Fields(textnorm.Normalize(question))
	if len(tokens) <= maxQueryTokens {
		return true
	}

	content := contentTokens(tokens)
	if len(content) <= maxContentTokens {
		return true
	}
	generic := 0
	for _, w := range content {
		if _, ok := genericTerms[w]; ok {
			generic++
		}
	}
	if float64(generic)/float64(len(content)) >= genericRatio {
		return true
	}

	if len(documents) == 0 {
		return true
	}

	top := documents
	if len(top) > 3 {
		top = top[:3]
	}
	maxScore, sum := 0.0, 0.0
	for _, d := range documents {
		if d.Score > maxScore {
			maxScore = d.Score
		}
	}
	for _, d := range top {
		sum += d.Score
	}
	if maxScore < weakMaxScore || sum/float64(len(top)) < weakTop3Mean {
		return true
	}

	cats := map[string]struct{}{}
	for _, d := range top {
		if c := strings.TrimSpace(strings.ToLower(d.Category)); c != "" {
			cats[c] = struct{}{}
		}
	}
	return len(cats) >= divergentTopSpan
}

// MaybeClarify returns a clarification message and true when the
// question needs one, or ("", false) when it can be answered directly.
// LLM failures degrade to the deterministic template, never to an
// error.
func (s *Service) MaybeClarify(ctx context.Context, question string, documents []domain.Document) (string, bool) {
	if !s.NeedsClarification(question, documents) {
		return "", false
	}
	log := logger.FromContext(ctx)
	log.Info("clarification requested", zap.String("question", question))

	if s.generator == nil {
		return s.fallback(documents), true
	}

	out, err := s.generator.Generate(ctx, s.buildPrompt(question, documents))
	if err != nil {
		log.Warn("clarification generation failed, using fallback", zap.Error(err))
		return s.fallback(documents), true
	}
	out = strings.TrimSpace(out)
	out = strings.TrimSpace(strings.TrimPrefix(out, responseMarker))
	if out == "" {
		return s.fallback(documents), true
	}
	return out, true
}

func (s *Service) buildPrompt(question string, documents []domain.Document) string {
	var docContext strings.Builder
	titles := make([]string, 0, maxPromptTitles)
	for _, d := range documents {
		if d.Title == "" || len(titles) == maxPromptTitles {
			continue
		}
		titles = append(titles, d.Title)
	}
	if len(titles) > 0 {
		fmt.Fprintf(&docContext, "\nDocumentos relacionados encontrados: %s", strings.Join(titles, ", "))
	}
	if cats := topCategories(documents, maxFallbackTopics); len(cats) > 0 {
		fmt.Fprintf(&docContext, "\nCategorias: %s", strings.Join(cats, ", "))
	}

	return fmt.Sprintf(`Você é um assistente corporativo especializado em ajudar colaboradores.

CONTEXTO:
Pergunta do usuário: "%s"
%s

SITUAÇÃO:
A pergunta é muito genérica ou ambígua. Para dar uma resposta útil, você precisa entender melhor o contexto.

TAREFA:
Gere 2-4 perguntas de clarificação específicas e objetivas que ajudem a refinar a busca.

DIRETRIZES:
1. Seja direto, amigável e profissional
2. Baseie as perguntas nos documentos encontrados (se houver)
3. Foque em descobrir: sistema/ferramenta específica, contexto do problema, departamento relacionado
4. Use markdown mas SEM emojis
5. NÃO invente informações - apenas pergunte o necessário
6. Mantenha as perguntas curtas e objetivas

FORMATO EXATO:
## Preciso de mais detalhes

Para te ajudar melhor, poderia me informar:

- [pergunta objetiva 1]?
- [pergunta objetiva 2]?
- [pergunta objetiva 3]?

> Com essas informações, posso buscar a resposta certa para você.

Gere APENAS o texto formatado, sem explicações adicionais.

RESPOSTA:`, question, docContext.String())
}

// fallback renders the degraded-mode template. Deterministic for a
// given document set.
func (s *Service) fallback(documents []domain.Document) string {
	topics := topCategories(documents, maxFallbackTopics)
	if len(topics) > 0 {
		return fmt.Sprintf("## Preciso de mais detalhes\n\n"+
			"Encontrei informações relacionadas a: **%s**.\n\n"+
			"Para te ajudar melhor, poderia especificar:\n\n"+
			"- Sobre qual sistema ou ferramenta específica você está perguntando?\n"+
			"- Qual é o contexto ou problema exato que você está enfrentando?\n"+
			"- Há alguma mensagem de erro ou comportamento específico?\n\n"+
			"> Com mais detalhes, posso te dar uma resposta precisa.",
			strings.Join(topics, ", "))
	}
	return "## Preciso de mais detalhes\n\n" +
		"Para te ajudar melhor, poderia me informar:\n\n" +
		"- Sobre qual sistema, ferramenta ou processo você está perguntando?\n" +
		"- Qual é o contexto ou problema específico?\n" +
		"- Qual departamento ou área está relacionado (TI, RH, Financeiro, etc.)?\n\n" +
		"> Com essas informações, posso buscar a resposta certa para você."
}

// topCategories returns up to limit distinct non-empty categories from
// the first five documents, in first-seen order.
func topCategories(documents []domain.Document, limit int) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, limit)
	for i, d := range documents {
		if i == 5 || len(out) == limit {
			break
		}
		c := strings.TrimSpace(d.Category)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func contentTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, w := range tokens {
		if len([]rune(w)) <= 2 || textnorm.IsStopword(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
