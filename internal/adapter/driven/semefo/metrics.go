package semefo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts backend calls by method and status class.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semefopanel",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of calls made to the SEMEFO backend",
		},
		[]string{"method", "status"},
	)

	// requestDuration measures backend call latency.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semefopanel",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls made to the SEMEFO backend in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
