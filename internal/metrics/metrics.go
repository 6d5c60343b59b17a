// Package metrics exposes prometheus counters for the prediction pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reasons used as the "reason" label
const (
	ReasonEmptyStation = "empty_station"
	ReasonAlignment    = "alignment"
	ReasonModel        = "model"
)

// Metrics groups the collectors registered for one process
type Metrics struct {
	Registry *prometheus.Registry

	PredictionsServed   prometheus.Counter
	PredictionsFailed   *prometheus.CounterVec
	UnhealthyVerdicts   *prometheus.CounterVec
	UnknownStations     prometheus.Counter
	PredictionDuration  prometheus.Histogram
	ArtifactDriftEvents prometheus.Counter
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PredictionsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "waterq_predictions_served_total",
			Help: "Total number of predictions returned to a user.",
		}),
		PredictionsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "waterq_predictions_failed_total",
			Help: "Total number of prediction requests that failed, by reason.",
		}, []string{"reason"}),
		UnhealthyVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "waterq_unhealthy_verdicts_total",
			Help: "Total number of verdicts outside the healthy range, by pollutant.",
		}, []string{"pollutant"}),
		UnknownStations: factory.NewCounter(prometheus.CounterOpts{
			Name: "waterq_unknown_station_queries_total",
			Help: "Total number of queries for a station id absent from the model columns.",
		}),
		PredictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "waterq_prediction_duration_seconds",
			Help:    "Duration of align, predict and classify for one request.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ArtifactDriftEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "waterq_artifact_drift_events_total",
			Help: "Total number of checks that found an artifact changed on disk since load.",
		}),
	}
}
