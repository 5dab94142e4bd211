// Package confidence aggregates document scores into a calibrated
// confidence value used to decide between answering and clarifying.
package confidence

import (
	"math"

	"github.com/atendia/respondex/internal/domain"
)

// Level is the discretized confidence bucket.
type Level string

// Confidence levels, inclusive lower bounds.
const (
	LevelMuitoAlta  Level = "muito_alta"  // >= 0.80
	LevelAlta       Level = "alta"        // >= 0.60
	LevelMedia      Level = "media"       // >= 0.40
	LevelBaixa      Level = "baixa"       // >= 0.20
	LevelMuitoBaixa Level = "muito_baixa" // < 0.20
)

// Report is the per-answer confidence assessment.
type Report struct {
	Score            float64            `json:"score"`
	Level            Level              `json:"level"`
	Factors          map[string]float64 `json:"factors"`
	Message          string             `json:"message"`
	DocumentCount    int                `json:"document_count"`
	HighQualityCount int                `json:"high_quality_count"`
}

// Factor weights. Single-document consistency is fixed at 0.5 rather
// than 1.0: one source is weak evidence, not certain evidence.
const (
	avgWeight         = 0.40
	maxWeight         = 0.30
	consistencyWeight = 0.15
	qualityWeight     = 0.05
	domainWeight      = 0.10

	singleDocConsistency = 0.5
	highQualityThreshold = 0.6
	thinEvidencePenalty  = 0.85
	thinEvidenceCount    = 3

	warningThreshold = 0.40
)

var levelMessages = map[Level]string{
	LevelMuitoAlta:  "Alta confiança - resposta baseada em documentos altamente relevantes",
	LevelAlta:       "Boa confiança - resposta baseada em documentos relevantes",
	LevelMedia:      "Confiança moderada - verifique informações adicionais se necessário",
	LevelBaixa:      "Baixa confiança - considere reformular a pergunta ou consultar outras fontes",
	LevelMuitoBaixa: "Confiança muito baixa - documentos encontrados podem não ser relevantes",
}

const noDocumentsMessage = "Nenhum documento relevante encontrado"

// Scorer computes confidence reports. Stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer creates a confidence scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Calculate aggregates document scores and the domain classification
// confidence into a single report. An empty document list is a
// well-defined zero outcome, never an error.
func (s *Scorer) Calculate(
	documents []domain.Document,
	question string,
	domainConfidence float64,
) Report {
	if len(documents) == 0 {
		return Report{
			Score:   0,
			Level:   LevelMuitoBaixa,
			Factors: map[string]float64{},
			Message: noDocumentsMessage,
		}
	}

	scores := make([]float64, len(documents))
	maxScore := 0.0
	sum := 0.0
	highQuality := 0
	for i, d := range documents {
		scores[i] = d.Score
		sum += d.Score
		if d.Score > maxScore {
			maxScore = d.Score
		}
		if d.Score >= highQualityThreshold {
			highQuality++
		}
	}
	avgScore := sum / float64(len(scores))

	consistency := singleDocConsistency
	if len(scores) > 1 {
		sd := sampleStdDev(scores, avgScore)
		if sd > 1 {
			sd = 1
		}
		consistency = 1 - sd
		if consistency < 0 {
			consistency = 0
		}
	}

	qualityRatio := float64(highQuality) / float64(len(documents))

	factors := map[string]float64{
		"avg_document_score":   avgScore,
		"max_document_score":   maxScore,
		"document_consistency": consistency,
		"quality_ratio":        qualityRatio,
		"domain_confidence":    domainConfidence,
	}

	final := avgScore*avgWeight +
		maxScore*maxWeight +
		consistency*consistencyWeight +
		qualityRatio*qualityWeight +
		domainConfidence*domainWeight

	if len(documents) < thinEvidenceCount {
		final *= thinEvidencePenalty
		factors["doc_count_penalty"] = thinEvidencePenalty
	}

	if final < 0 {
		final = 0
	}
	if final > 1 {
		final = 1
	}
	final = math.Round(final*1000) / 1000

	level := levelFor(final)

	return Report{
		Score:            final,
		Level:            level,
		Factors:          factors,
		Message:          levelMessages[level],
		DocumentCount:    len(documents),
		HighQualityCount: highQuality,
	}
}

// Emoji returns the traffic-light emoji for a confidence score.
func (s *Scorer) Emoji(score float64) string {
	switch {
	case score >= 0.80:
		return "🟢"
	case score >= 0.60:
		return "🔵"
	case score >= 0.40:
		return "🟡"
	case score >= 0.20:
		return "🟠"
	default:
		return "🔴"
	}
}

// ShouldShowWarning reports whether the presentation layer should warn
// the user about low confidence.
func (s *Scorer) ShouldShowWarning(score float64) bool {
	return score < warningThreshold
}

func levelFor(score float64) Level {
	switch {
	case score >= 0.80:
		return LevelMuitoAlta
	case score >= 0.60:
		return LevelAlta
	case score >= 0.40:
		return LevelMedia
	case score >= 0.20:
		return LevelBaixa
	default:
		return LevelMuitoBaixa
	}
}

// sampleStdDev is the n-1 standard deviation of scores around mean.
func sampleStdDev(scores []float64, mean float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range scores {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(scores)-1))
}
