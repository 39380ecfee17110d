// Package metrics holds the Prometheus collectors of the prediction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Side channels that may fail without failing a prediction.
const (
	ChannelCache   = "cache"
	ChannelPublish = "publish"
	ChannelHistory = "history"
)

var (
	PredictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_predictions_served_total",
		Help: "Total number of predictions served, by ocean proximity category.",
	}, []string{"ocean_proximity"})
	PredictionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housing_prediction_cache_hits_total",
		Help: "Total number of predictions answered from the result cache.",
	})
	ConfidenceFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housing_confidence_fallbacks_total",
		Help: "Total number of predictions whose margin had no precomputed confidence.",
	})
	SideChannelFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "housing_side_channel_failures_total",
		Help: "Total number of failed cache, publish and history writes.",
	}, []string{"channel"})
	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "housing_pipeline_duration_seconds",
		Help:    "Duration of encode, scale and predict for one request.",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	})
)
