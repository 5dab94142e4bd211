package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atendia/respondex/internal/domain"
	"github.com/atendia/respondex/internal/usecase/confidence"
	"github.com/atendia/respondex/internal/usecase/queryexpand"
	"github.com/atendia/respondex/internal/usecase/retrieval"
)

type mockClassifier struct{}

func (mockClassifier) Classify(string) []string { return []string{"TI"} }
func (mockClassifier) Confidence(string, string) float64 {
	return 0.8
}

type mockExpander struct{}

func (mockExpander) Expand(q string) string { return q + " sinonimos" }
func (mockExpander) AdaptiveParams(string) queryexpand.Params {
	return queryexpand.Params{TopK: 8, MinScore: 0.18, Reasoning: "padrão"}
}

type mockRetriever struct {
	retrieveFn func(ctx context.Context, q retrieval.Query) (retrieval.Result, error)
	gotQuery   retrieval.Query
}

func (m *mockRetriever) RetrieveAndScore(ctx context.Context, q retrieval.Query) (retrieval.Result, error) {
	m.gotQuery = q
	return m.retrieveFn(ctx, q)
}

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	gotPrompt  string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.gotPrompt = prompt
	return m.generateFn(ctx, prompt)
}

type mockUsage struct {
	ids []string
	err error
}

func (m *mockUsage) IncrementUsage(_ context.Context, id string) error {
	m.ids = append(m.ids, id)
	return m.err
}

func retrievedDocs() []domain.Document {
	return []domain.Document{
		{ID: "d1", Title: "Configurar VPN", Content: "Passo a passo da vpn.", Category: "TI", Score: 0.9},
		{ID: "d2", Title: "Acesso remoto", Content: "Política de acesso remoto.", Category: "TI", Score: 0.7},
	}
}

func goodRetriever() *mockRetriever {
	return &mockRetriever{retrieveFn: func(_ context.Context, _ retrieval.Query) (retrieval.Result, error) {
		return retrieval.Result{
			Documents:  retrievedDocs(),
			Confidence: confidence.Report{Score: 0.72, Level: confidence.LevelAlta},
		}, nil
	}}
}

func newTestService(r Retriever, g Generator, u UsageRecorder) *Service {
	return New(mockClassifier{}, mockExpander{}, r, g, u, "test-model")
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc := newTestService(goodRetriever(), &mockGenerator{}, nil)

	_, err := svc.Ask(context.Background(), "   ")
	if !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Fatalf("err = %v, want ErrEmptyQuestion", err)
	}
}

func TestAsk_HappyPath(t *testing.T) {
	ret := goodRetriever()
	gen := &mockGenerator{generateFn: func(context.Context, string) (string, error) {
		return "## Resposta\n\nSiga os passos.", nil
	}}
	usage := &mockUsage{}
	svc := newTestService(ret, gen, usage)

	res, err := svc.Ask(context.Background(), "como configurar a vpn forticlient")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ID == "" {
		t.Fatal("missing response id")
	}
	if res.Answer != "## Resposta\n\nSiga os passos." {
		t.Fatalf("answer = %q", res.Answer)
	}
	if res.Clarification {
		t.Fatal("unexpected clarification flag")
	}
	if len(res.Sources) != 2 || res.Sources[0].ID != "d1" {
		t.Fatalf("sources = %v", res.Sources)
	}
	if res.Model != "test-model" {
		t.Fatalf("model = %q", res.Model)
	}

	// Retrieval sees the expanded query, scorer params and domain
	// confidence from the classifier.
	if ret.gotQuery.Expanded != "como configurar a vpn forticlient sinonimos" {
		t.Fatalf("expanded = %q", ret.gotQuery.Expanded)
	}
	if ret.gotQuery.TopK != 8 || ret.gotQuery.MinScore != 0.18 {
		t.Fatalf("params = %+v", ret.gotQuery)
	}
	if ret.gotQuery.DomainConfidence != 0.8 {
		t.Fatalf("domain confidence = %v", ret.gotQuery.DomainConfidence)
	}

	// Prompt embeds the question and the retrieved context.
	if !strings.Contains(gen.gotPrompt, "como configurar a vpn forticlient") {
		t.Fatal("prompt missing question")
	}
	if !strings.Contains(gen.gotPrompt, "[TI] Configurar VPN") {
		t.Fatal("prompt missing document context")
	}

	if len(usage.ids) != 2 {
		t.Fatalf("usage increments = %v", usage.ids)
	}
}

func TestAsk_ClarificationShortCircuits(t *testing.T) {
	ret := &mockRetriever{retrieveFn: func(context.Context, retrieval.Query) (retrieval.Result, error) {
		return retrieval.Result{
			Clarification: "## Preciso de mais detalhes",
			Confidence:    confidence.Report{Score: 0.1, Level: confidence.LevelMuitoBaixa},
		}, nil
	}}
	gen := &mockGenerator{generateFn: func(context.Context, string) (string, error) {
		t.Fatal("generator must not run on clarification")
		return "", nil
	}}
	svc := newTestService(ret, gen, nil)

	res, err := svc.Ask(context.Background(), "ajuda")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Clarification {
		t.Fatal("expected clarification flag")
	}
	if res.Answer != "## Preciso de mais detalhes" {
		t.Fatalf("answer = %q", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Fatalf("sources = %v, want none", res.Sources)
	}
}

func TestAsk_NoDocumentsFallback(t *testing.T) {
	ret := &mockRetriever{retrieveFn: func(context.Context, retrieval.Query) (retrieval.Result, error) {
		return retrieval.Result{
			Confidence: confidence.Report{Score: 0, Level: confidence.LevelMuitoBaixa},
		}, nil
	}}
	gen := &mockGenerator{generateFn: func(context.Context, string) (string, error) {
		t.Fatal("generator must not run without context")
		return "", nil
	}}
	svc := newTestService(ret, gen, nil)

	res, err := svc.Ask(context.Background(), "assunto inexistente qualquer coisa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Answer, "Informação Não Disponível") {
		t.Fatalf("answer = %q", res.Answer)
	}
}

func TestAsk_GeneratorError(t *testing.T) {
	gen := &mockGenerator{generateFn: func(context.Context, string) (string, error) {
		return "", errors.New("timeout")
	}}
	svc := newTestService(goodRetriever(), gen, nil)

	_, err := svc.Ask(context.Background(), "como configurar a vpn")
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Fatalf("err = %v, want ErrGenerationProviderError", err)
	}
}

func TestAsk_UsageFailureTolerated(t *testing.T) {
	gen := &mockGenerator{generateFn: func(context.Context, string) (string, error) {
		return "resposta", nil
	}}
	usage := &mockUsage{err: errors.New("redis down")}
	svc := newTestService(goodRetriever(), gen, usage)

	if _, err := svc.Ask(context.Background(), "como configurar a vpn"); err != nil {
		t.Fatalf("usage failure must not fail the answer: %v", err)
	}
}

func TestAsk_RetrieverError(t *testing.T) {
	ret := &mockRetriever{retrieveFn: func(context.Context, retrieval.Query) (retrieval.Result, error) {
		return retrieval.Result{}, errors.New("search down")
	}}
	svc := newTestService(ret, &mockGenerator{}, nil)

	if _, err := svc.Ask(context.Background(), "como configurar a vpn"); err == nil {
		t.Fatal("expected error")
	}
}
