package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PetitionGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petition_generations_total",
			Help: "Total number of petition generations by result source",
		},
		[]string{"source"},
	)

	PetitionGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petition_generation_duration_seconds",
			Help:    "Duration of petition generation including the upstream call",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)
