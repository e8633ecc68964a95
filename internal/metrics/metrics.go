package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baolongdinh/alpha-agent/internal/catalog"
)

const namespace = "alpha"

// Collector records catalog activity. It implements catalog.FetchObserver.
type Collector struct {
	registry *prometheus.Registry

	fetches   *prometheus.CounterVec
	failures  *prometheus.CounterVec
	discards  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	tokens    prometheus.Gauge
	favorites prometheus.Gauge
}

var _ catalog.FetchObserver = (*Collector)(nil)

// NewCollector creates a Collector on its own registry, together with the
// Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Backend fetches by operation.",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Failed backend fetches by operation and failure kind.",
		}, []string{"op", "kind"}),
		discards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_discards_total",
			Help:      "Fetch results discarded because a newer fetch superseded them.",
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Backend fetch latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		tokens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_tokens",
			Help:      "Tokens currently held in the catalog.",
		}),
		favorites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watchlist_symbols",
			Help:      "Symbols in the watchlist.",
		}),
	}

	c.registry.MustRegister(
		c.fetches,
		c.failures,
		c.discards,
		c.latency,
		c.tokens,
		c.favorites,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveFetch records one completed fetch.
func (c *Collector) ObserveFetch(op string, duration time.Duration, err error) {
	c.fetches.WithLabelValues(op).Inc()
	c.latency.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		c.failures.WithLabelValues(op, string(catalog.Classify(err))).Inc()
	}
}

// ObserveDiscard records a superseded fetch.
func (c *Collector) ObserveDiscard(op string) {
	c.discards.WithLabelValues(op).Inc()
}

// SetCatalogSize sets the catalog size gauge.
func (c *Collector) SetCatalogSize(n int) {
	c.tokens.Set(float64(n))
}

// SetWatchlistSize sets the favourites gauge.
func (c *Collector) SetWatchlistSize(n int) {
	c.favorites.Set(float64(n))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
