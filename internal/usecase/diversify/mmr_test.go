package diversify

import (
	"testing"

	"github.com/atendia/respondex/internal/domain"
)

func doc(id string, score float64, text string) domain.Document {
	return domain.Document{ID: id, Score: score, Title: text, Content: text}
}

func ids(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestMMR_PureRelevanceWhenLambdaOne(t *testing.T) {
	docs := []domain.Document{
		doc("a", 0.9, "configurar vpn forticlient"),
		doc("b", 0.8, "configurar vpn forticlient"),
		doc("c", 0.7, "solicitar ferias portal"),
		doc("d", 0.6, "trocar senha email"),
	}

	out := MMR(docs, 1.0, 3)
	want := []string{"a", "b", "c"}
	got := ids(out)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lambda=1.0 must be relevance top-k: got %v, want %v", got, want)
		}
	}
}

func TestMMR_AvoidsDuplicatesWhenLambdaZero(t *testing.T) {
	docs := []domain.Document{
		doc("a", 0.9, "configurar vpn forticlient passo a passo"),
		doc("dup", 0.8, "configurar vpn forticlient passo a passo"),
		doc("other", 0.5, "reembolso de despesas com nota fiscal"),
	}

	out := MMR(docs, 0.0, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out))
	}
	if out[0].ID != "a" {
		t.Fatalf("first pick must be top relevance, got %s", out[0].ID)
	}
	if out[1].ID != "other" {
		t.Errorf("lambda=0 must not pick an identical duplicate, got %s", out[1].ID)
	}
}

func TestMMR_SelectionOrderIsOutputOrder(t *testing.T) {
	docs := []domain.Document{
		doc("a", 0.9, "vpn acesso remoto forticlient"),
		doc("b", 0.85, "vpn acesso remoto forticlient"),
		doc("c", 0.4, "impressora drivers instalacao"),
	}

	out := MMR(docs, 0.3, 3)
	if out[0].ID != "a" {
		t.Fatalf("expected 'a' first, got %s", out[0].ID)
	}
	// With heavy diversity weighting the dissimilar 'c' must come
	// before the near-duplicate 'b'.
	if out[1].ID != "c" || out[2].ID != "b" {
		t.Errorf("expected diversity-driven order [a c b], got %v", ids(out))
	}
}

func TestMMR_PermutationWhenBudgetCoversInput(t *testing.T) {
	docs := []domain.Document{
		doc("a", 0.9, "conteudo um"),
		doc("b", 0.7, "conteudo dois"),
		doc("c", 0.5, "conteudo tres"),
	}

	out := MMR(docs, 0.7, 10)
	if len(out) != len(docs) {
		t.Fatalf("budget >= len(input) must return a permutation, got %d of %d", len(out), len(docs))
	}
	seen := map[string]bool{}
	for _, d := range out {
		seen[d.ID] = true
	}
	for _, d := range docs {
		if !seen[d.ID] {
			t.Errorf("missing document %s in output", d.ID)
		}
	}
}

func TestMMR_SmallInputsUnchanged(t *testing.T) {
	if out := MMR(nil, 0.7, 5); len(out) != 0 {
		t.Errorf("nil input must stay empty")
	}
	single := []domain.Document{doc("only", 0.5, "texto")}
	out := MMR(single, 0.7, 5)
	if len(out) != 1 || out[0].ID != "only" {
		t.Errorf("single document must be returned unchanged")
	}
}

func TestMMR_TruncatesToMaxResults(t *testing.T) {
	docs := []domain.Document{
		doc("a", 0.9, "um"), doc("b", 0.8, "dois"),
		doc("c", 0.7, "tres"), doc("d", 0.6, "quatro"),
	}
	out := MMR(docs, 0.7, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out))
	}
}
