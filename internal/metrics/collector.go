// Package metrics exposes cache counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/lrucache/internal/lrucache"
)

// StatsSource is implemented by *lrucache.Cache.
type StatsSource interface {
	Stats() lrucache.Stats
}

// Collector reports the counters of one cache on every scrape.
// Reading stats is safe while the owning goroutine keeps using the cache.
type Collector struct {
	src StatsSource

	hitsDesc      *prometheus.Desc
	missesDesc    *prometheus.Desc
	evictionsDesc *prometheus.Desc
	entriesDesc   *prometheus.Desc
}

// NewCollector creates a collector for src. name becomes the "cache" label.
func NewCollector(name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"cache": name}
	return &Collector{
		src: src,
		hitsDesc: prometheus.NewDesc(
			"lrucache_hits_total",
			"Number of lookups that found an entry.",
			nil,
			labels),
		missesDesc: prometheus.NewDesc(
			"lrucache_misses_total",
			"Number of lookups that found no entry.",
			nil,
			labels),
		evictionsDesc: prometheus.NewDesc(
			"lrucache_evictions_total",
			"Number of entries evicted to honour the capacity.",
			nil,
			labels),
		entriesDesc: prometheus.NewDesc(
			"lrucache_entries",
			"Number of entries currently cached.",
			nil,
			labels),
	}
}

// Describe sends the descriptors of the four cache metrics.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitsDesc
	ch <- c.missesDesc
	ch <- c.evictionsDesc
	ch <- c.entriesDesc
}

// Collect reads one Stats snapshot and sends it as const metrics.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.missesDesc, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictionsDesc, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(c.entriesDesc, prometheus.GaugeValue, float64(s.Entries))
}

var _ prometheus.Collector = (*Collector)(nil)
