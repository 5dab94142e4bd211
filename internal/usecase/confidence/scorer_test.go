package confidence

import (
	"math"
	"testing"

	"github.com/atendia/respondex/internal/domain"
)

func docs(scores ...float64) []domain.Document {
	out := make([]domain.Document, len(scores))
	for i, s := range scores {
		out[i] = domain.Document{ID: string(rune('a' + i)), Score: s}
	}
	return out
}

func TestCalculate_NoDocuments(t *testing.T) {
	rep := NewScorer().Calculate(nil, "como configurar vpn", 0.9)

	if rep.Score != 0 {
		t.Fatalf("score = %v, want 0", rep.Score)
	}
	if rep.Level != LevelMuitoBaixa {
		t.Fatalf("level = %q, want %q", rep.Level, LevelMuitoBaixa)
	}
	if rep.Message != noDocumentsMessage {
		t.Fatalf("message = %q", rep.Message)
	}
	if rep.DocumentCount != 0 || rep.HighQualityCount != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", rep.DocumentCount, rep.HighQualityCount)
	}
}

func TestCalculate_SingleDocumentUsesFixedConsistency(t *testing.T) {
	rep := NewScorer().Calculate(docs(0.9), "vpn", 0.8)

	if got := rep.Factors["document_consistency"]; got != singleDocConsistency {
		t.Fatalf("consistency = %v, want %v", got, singleDocConsistency)
	}
	// 0.9*0.40 + 0.9*0.30 + 0.5*0.15 + 1.0*0.05 + 0.8*0.10 = 0.835,
	// then the thin-evidence penalty: 0.835*0.85 = 0.70975 -> 0.710.
	if rep.Score != 0.710 {
		t.Fatalf("score = %v, want 0.710", rep.Score)
	}
	if rep.Level != LevelAlta {
		t.Fatalf("level = %q, want %q", rep.Level, LevelAlta)
	}
	if _, ok := rep.Factors["doc_count_penalty"]; !ok {
		t.Fatal("expected doc_count_penalty factor for a single document")
	}
}

func TestCalculate_ThreeIdenticalDocumentsNoPenalty(t *testing.T) {
	rep := NewScorer().Calculate(docs(0.8, 0.8, 0.8), "vpn", 1.0)

	// 0.8*0.40 + 0.8*0.30 + 1.0*0.15 + 1.0*0.05 + 1.0*0.10 = 0.86.
	if rep.Score != 0.86 {
		t.Fatalf("score = %v, want 0.86", rep.Score)
	}
	if rep.Level != LevelMuitoAlta {
		t.Fatalf("level = %q, want %q", rep.Level, LevelMuitoAlta)
	}
	if _, ok := rep.Factors["doc_count_penalty"]; ok {
		t.Fatal("unexpected doc_count_penalty with three documents")
	}
	if rep.HighQualityCount != 3 {
		t.Fatalf("high quality count = %d, want 3", rep.HighQualityCount)
	}
}

func TestCalculate_TwoDocumentsTakePenalty(t *testing.T) {
	rep := NewScorer().Calculate(docs(0.8, 0.8), "vpn", 1.0)

	// Same factors as the three-document case, scaled by 0.85.
	want := math.Round(0.86*0.85*1000) / 1000
	if rep.Score != want {
		t.Fatalf("score = %v, want %v", rep.Score, want)
	}
}

func TestCalculate_SpreadScoresLowerConsistency(t *testing.T) {
	s := NewScorer()
	tight := s.Calculate(docs(0.9, 0.9, 0.9), "vpn", 0.5)
	spread := s.Calculate(docs(0.9, 0.9, 0.0), "vpn", 0.5)

	if spread.Factors["document_consistency"] >= tight.Factors["document_consistency"] {
		t.Fatalf("spread consistency %v >= tight %v",
			spread.Factors["document_consistency"], tight.Factors["document_consistency"])
	}
	if spread.Score >= tight.Score {
		t.Fatalf("spread score %v >= tight score %v", spread.Score, tight.Score)
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{0.80, LevelMuitoAlta},
		{0.79, LevelAlta},
		{0.60, LevelAlta},
		{0.59, LevelMedia},
		{0.40, LevelMedia},
		{0.39, LevelBaixa},
		{0.20, LevelBaixa},
		{0.19, LevelMuitoBaixa},
	}
	for _, tc := range cases {
		if got := levelFor(tc.score); got != tc.want {
			t.Errorf("levelFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestEmojiAndWarning(t *testing.T) {
	s := NewScorer()
	if s.Emoji(0.85) != "🟢" || s.Emoji(0.65) != "🔵" || s.Emoji(0.45) != "🟡" ||
		s.Emoji(0.25) != "🟠" || s.Emoji(0.05) != "🔴" {
		t.Fatal("emoji mapping out of band")
	}
	if !s.ShouldShowWarning(0.39) {
		t.Fatal("expected warning below threshold")
	}
	if s.ShouldShowWarning(0.40) {
		t.Fatal("unexpected warning at threshold")
	}
}
