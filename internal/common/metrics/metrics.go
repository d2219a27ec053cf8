// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Matching and catalog metrics.
var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by track",
		},
		[]string{"track"},
	)

	RecommendationTopScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_top_score",
			Help:    "Final score of the best ranked item per request",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"track"},
	)

	CatalogSnapshotItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_items",
			Help: "Number of items in the active catalog snapshot",
		},
		[]string{"collection"},
	)

	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of applied catalog mutations",
		},
		[]string{"collection", "operation"},
	)
)
