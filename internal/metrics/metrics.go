// Package metrics exposes prediction counters for the /metrics
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PredictionBatches counts prediction requests per model.
	PredictionBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tide_prediction_batches_total",
			Help: "Prediction batches processed, labeled by tide model.",
		},
		[]string{"model"},
	)

	// PredictionPoints counts observation points per model.
	PredictionPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tide_prediction_points_total",
			Help: "Observation points predicted, labeled by tide model.",
		},
		[]string{"model"},
	)

	// InvalidPoints counts points that came back with the fill value.
	InvalidPoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tide_prediction_invalid_points_total",
			Help: "Points outside the model domain or on land.",
		},
		[]string{"model"},
	)

	// OmittedMinorTerms counts inference rows dropped because their
	// admittance sources were not tabulated.
	OmittedMinorTerms = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tide_minor_terms_omitted_total",
			Help: "Minor constituent terms omitted for lack of admittance sources.",
		},
		[]string{"model"},
	)

	// PredictionDuration observes end to end batch latency.
	PredictionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tide_prediction_duration_seconds",
			Help:    "Time spent predicting a batch.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(
		PredictionBatches,
		PredictionPoints,
		InvalidPoints,
		OmittedMinorTerms,
		PredictionDuration,
	)
}
