package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ExtractionsTotal counts extraction attempts by source category.
	// status: success, failure, rejected (failed URL safety validation).
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_extractions_total",
			Help: "Total number of URL metadata extraction attempts.",
		},
		[]string{"source", "status"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metadata_extraction_duration_seconds",
			Help:    "Duration of URL metadata extractions.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"source"},
	)

	// IngestionJobsTotal counts background ingestion jobs reaching a
	// terminal state. status: completed, failed.
	IngestionJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_jobs_total",
			Help: "Total number of ingestion jobs by terminal status.",
		},
		[]string{"status"},
	)

	JobsInQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingestion_jobs_in_queue",
			Help: "Current number of ingestion jobs waiting in the queue.",
		},
	)
)
