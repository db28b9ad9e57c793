package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accident_hotspots"

// Metrics - счетчики и гистограммы сервиса
type Metrics struct {
	DatasetRecordsAccepted prometheus.Gauge
	DatasetRecordsRejected prometheus.Gauge
	DatasetLoadDuration    prometheus.Histogram
	DatasetLoadsTotal      prometheus.Counter

	CacheLookups *prometheus.CounterVec // labels: kind, result={hit,miss}
	CacheErrors  *prometheus.CounterVec // labels: op={get,set}

	QueryDuration *prometheus.HistogramVec // labels: kind={accidents,hotspots}
	HotspotCells  prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // labels: method, route, status
}

// NewMetrics создает метрики и регистрирует их в глобальном реестре Prometheus
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetRecordsAccepted,
		m.DatasetRecordsRejected,
		m.DatasetLoadDuration,
		m.DatasetLoadsTotal,
		m.CacheLookups,
		m.CacheErrors,
		m.QueryDuration,
		m.HotspotCells,
		m.HTTPRequests,
	)
	return m
}

// NewMetricsForTesting создает незарегистрированные метрики, чтобы тесты не паниковали
// на повторной регистрации
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRecordsAccepted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records_accepted",
			Help:      "Records accepted during the last dataset load.",
		}),
		DatasetRecordsRejected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records_rejected",
			Help:      "Lines rejected during the last dataset load.",
		}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a full dataset parse.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		DatasetLoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Number of times the dataset file was parsed.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by query kind and result.",
		}, []string{"kind", "result"}),
		CacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Response cache backend failures by operation.",
		}, []string{"op"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Engine computation time on cache miss.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),
		HotspotCells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hotspot_grid_cells",
			Help:      "Number of grid cells allocated per aggregation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 11),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}
}

// Handler возвращает обработчик /metrics
func Handler() http.Handler { return promhttp.Handler() }
