package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	retrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "respondex",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	confidenceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "respondex",
			Name:      "answer_confidence_score",
			Help:      "Confidence score distribution of scored answers",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	clarificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "respondex",
			Name:      "clarifications_total",
			Help:      "Total answers replaced by a clarification question",
		},
	)

	feedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "respondex",
			Name:      "feedback_events_total",
			Help:      "Total feedback events recorded",
		},
		[]string{"kind"}, // "helpful" / "complaint" / "usage"
	)
)

// ObserveRetrievalDuration records one pipeline execution.
func ObserveRetrievalDuration(seconds float64) {
	retrievalDuration.Observe(seconds)
}

// ObserveConfidence records the confidence score of one answer.
func ObserveConfidence(score float64) {
	confidenceScore.Observe(score)
}

// IncClarifications counts an answer that became a clarification.
func IncClarifications() {
	clarificationsTotal.Inc()
}

// IncFeedback counts a recorded feedback event.
func IncFeedback(kind string) {
	feedbackEventsTotal.WithLabelValues(kind).Inc()
}

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(retrievalDuration)
	prometheus.MustRegister(confidenceScore)
	prometheus.MustRegister(clarificationsTotal)
	prometheus.MustRegister(feedbackEventsTotal)
	pipelineMetricsRegistered = true
}
