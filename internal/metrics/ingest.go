package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion and cache Prometheus metrics.
var (
	IngestRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_rows_total",
			Help:      "CSV rows submitted for bulk indexing by outcome",
		},
		[]string{"collection", "status"}, // "indexed" / "failed"
	)

	IngestRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Bulk ingestion runs by result",
		},
		[]string{"collection", "result"}, // "ok" / "rejected" / "aborted" / "error"
	)

	BulkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bulk_duration_seconds",
			Help:      "Bulk indexing duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"collection"},
	)

	AggregationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_cache_total",
			Help:      "Aggregation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers ingestion and cache metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestRowsTotal)
	prometheus.MustRegister(IngestRunsTotal)
	prometheus.MustRegister(BulkDuration)
	prometheus.MustRegister(AggregationCacheTotal)
	ingestMetricsRegistered = true
}
