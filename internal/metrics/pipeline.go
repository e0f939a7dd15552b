package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline metrics.
var (
	// ExtractionTotal counts constraint extraction outcomes: "ok", "call_error", "parse_error".
	ExtractionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_total",
			Help:      "Constraint extraction outcomes",
		},
		[]string{"status"},
	)

	ExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Language model call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// URLFetchTotal counts inlined URL fetches: "ok" or "error".
	URLFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "url_fetch_total",
			Help:      "Quoted URL fetch outcomes during input normalization",
		},
		[]string{"status"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Completed recommendation requests by ranking mode",
		},
		[]string{"mode"},
	)

	RecommendationResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_results",
			Help:      "Number of items returned per recommendation",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 50, 100},
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionTotal)
	prometheus.MustRegister(ExtractionDuration)
	prometheus.MustRegister(URLFetchTotal)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationResults)
	pipelineMetricsRegistered = true
}
