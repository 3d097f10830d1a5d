package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ride_etl"

// Metrics holds the Prometheus counters and histograms for the batch jobs.
type Metrics struct {
	RecordsRead         *prometheus.CounterVec // labels: job={partition,standardize}
	RecordsPartitioned  *prometheus.CounterVec // labels: outcome={complete,incomplete,dropped}
	RecordsStandardized *prometheus.CounterVec // labels: kind={full,continuation}
	RidesSkipped        prometheus.Counter
	RecordsLoaded       *prometheus.CounterVec // labels: sink={json,csv,kafka}

	// Cell indexing metrics.
	CellCache *prometheus.CounterVec // labels: result={hit,miss}

	// Pantry metrics.
	PantryRequests *prometheus.CounterVec // labels: outcome={success,error}
	PantryDuration prometheus.Histogram

	JobDuration    *prometheus.HistogramVec // labels: job
	JobLastSuccess *prometheus.GaugeVec     // labels: job
}

// NewMetrics creates all job metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_read_total",
			Help:      "Input elements read by job.",
		}, []string{"job"}),
		RecordsPartitioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_partitioned_total",
			Help:      "Partitioned elements by outcome.",
		}, []string{"outcome"}),
		RecordsStandardized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_standardized_total",
			Help:      "Standardized records emitted by kind.",
		}, []string{"kind"}),
		RidesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rides_skipped_total",
			Help:      "Rides that produced no standardized records.",
		}),
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Standardized records written by sink.",
		}, []string{"sink"}),
		CellCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cell_cache_total",
			Help:      "H3 cell cache lookups by result.",
		}, []string{"result"}),
		PantryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pantry_requests_total",
			Help:      "Pantry PUT requests by outcome.",
		}, []string{"outcome"}),
		PantryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pantry_request_duration_seconds",
			Help:      "Pantry PUT request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of a complete job run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"job"}),
		JobLastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run by job.",
		}, []string{"job"}),
	}

	reg.MustRegister(
		m.RecordsRead,
		m.RecordsPartitioned,
		m.RecordsStandardized,
		m.RidesSkipped,
		m.RecordsLoaded,
		m.CellCache,
		m.PantryRequests,
		m.PantryDuration,
		m.JobDuration,
		m.JobLastSuccess,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
