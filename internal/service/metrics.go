package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feed_build_duration_seconds",
		Help:    "Time to fetch and reconcile a feed batch",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"filter"})

	feedBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_batch_posts",
		Help:    "Number of posts per feed batch",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})

	interactionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_interaction_total",
		Help: "Toggle operations by kind and result",
	}, []string{"kind", "result"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_cache_lookups_total",
		Help: "Redis cache lookups by cache and outcome",
	}, []string{"cache", "outcome"})
)
