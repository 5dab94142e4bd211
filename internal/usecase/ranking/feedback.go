package ranking

import "github.com/atendia/respondex/internal/domain"

// Feedback boost bounds. The boost is additive before the final clamp
// and may be negative when complaints dominate.
const (
	feedbackFloor = -0.2
	feedbackCeil  = 0.2

	popularityCap     = 0.1
	popularityDivisor = 500.0
)

// FeedbackBoost maps usage counters to a bounded additive boost.
// Documents with no feedback at all get exactly zero.
func FeedbackBoost(p domain.Payload) float64 {
	helpful := float64(p.HelpfulVotes)
	complaints := float64(p.Complaints)
	usage := float64(p.UsageCount)

	if helpful == 0 && complaints == 0 && usage == 0 {
		return 0
	}

	denom := helpful + complaints + 1
	if denom < 5 {
		denom = 5
	}
	feedback := (helpful - complaints) / denom

	popularity := usage / popularityDivisor
	if popularity > popularityCap {
		popularity = popularityCap
	}

	boost := feedback + popularity
	if boost < feedbackFloor {
		return feedbackFloor
	}
	if boost > feedbackCeil {
		return feedbackCeil
	}
	return boost
}
