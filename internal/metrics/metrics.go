// Package metrics exposes Prometheus counters for journal processing and
// catalog lookups.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/habzone/internal/edsm"
)

// Catalog result labels.
const (
	ResultOK     = "ok"
	ResultCached = "cached"
	ResultError  = "error"
	ResultStale  = "stale"
)

// Collector bundles the habzone metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Events          *prometheus.CounterVec
	CatalogFetches  *prometheus.CounterVec
	CatalogDuration prometheus.Histogram

	SessionStars  prometheus.Gauge
	SessionBodies prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "habzone_journal_events_total",
		Help: "Journal events applied to the session, labeled by kind and outcome.",
	}, []string{"kind", "outcome"}), "habzone_journal_events_total")
	if err != nil {
		return nil, err
	}

	fetches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "habzone_catalog_results_total",
		Help: "Catalog results received, labeled by ok, cached, error or stale.",
	}, []string{"result"}), "habzone_catalog_results_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "habzone_catalog_fetch_duration_seconds",
		Help:    "Catalog request latency in seconds, excluding cache hits.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}), "habzone_catalog_fetch_duration_seconds")
	if err != nil {
		return nil, err
	}

	stars, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "habzone_session_stars",
		Help: "Stars recorded for the current system.",
	}), "habzone_session_stars")
	if err != nil {
		return nil, err
	}
	bodies, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "habzone_session_bodies",
		Help: "Classified body entries recorded for the current system.",
	}), "habzone_session_bodies")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Events:          events,
		CatalogFetches:  fetches,
		CatalogDuration: duration,
		SessionStars:    stars,
		SessionBodies:   bodies,
	}, nil
}

// ObserveEvent counts one applied journal event.
func (c *Collector) ObserveEvent(kind, outcome string) {
	if c == nil {
		return
	}
	c.Events.WithLabelValues(kind, outcome).Inc()
}

// ObserveCatalog counts a catalog result. applied is false when the session
// discarded the result as stale.
func (c *Collector) ObserveCatalog(res edsm.Result, applied bool) {
	if c == nil {
		return
	}
	switch {
	case !applied:
		c.CatalogFetches.WithLabelValues(ResultStale).Inc()
	case res.Error != nil:
		c.CatalogFetches.WithLabelValues(ResultError).Inc()
	case res.Cached:
		c.CatalogFetches.WithLabelValues(ResultCached).Inc()
	default:
		c.CatalogFetches.WithLabelValues(ResultOK).Inc()
	}
	if !res.Cached && res.Duration > 0 {
		c.CatalogDuration.Observe(res.Duration.Seconds())
	}
}

// SetSessionCounts updates the session gauges.
func (c *Collector) SetSessionCounts(stars, bodies int) {
	if c == nil {
		return
	}
	c.SessionStars.Set(float64(stars))
	c.SessionBodies.Set(float64(bodies))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
