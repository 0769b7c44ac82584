package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"explorer/internal/ports"
)

// Collector records explorer activity on its own registry.
type Collector struct {
	registry      *prometheus.Registry
	ingestTotal   *prometheus.CounterVec
	queryTotal    *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	httpTotal     *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

var _ ports.Observer = (*Collector)(nil)

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ingestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "explorer_ingest_total", Help: "Push events by network, kind and outcome"},
			[]string{"network", "kind", "outcome"},
		),
		queryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "explorer_query_total", Help: "Entity queries by kind and outcome"},
			[]string{"kind", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "explorer_query_duration_seconds", Help: "Entity query latency", Buckets: prometheus.DefBuckets},
			[]string{"kind"},
		),
		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "explorer_http_requests_total", Help: "HTTP requests"},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "explorer_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
			[]string{"route", "method"},
		),
	}
	c.registry.MustRegister(
		c.ingestTotal,
		c.queryTotal,
		c.queryDuration,
		c.httpTotal,
		c.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) ObserveIngest(network string, kind string, outcome string) {
	c.ingestTotal.WithLabelValues(network, kind, outcome).Inc()
}

func (c *Collector) ObserveQuery(kind string, outcome string, elapsed time.Duration) {
	c.queryTotal.WithLabelValues(kind, outcome).Inc()
	c.queryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveHTTP(route string, method string, status int, elapsed time.Duration) {
	c.httpTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
