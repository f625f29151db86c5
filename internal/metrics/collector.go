// Package metrics exports timer registries to Prometheus.
package metrics

import (
	"fmt"
	"io"

	"github.com/MeKo-Tech/tally/internal/timer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes metric names when none is configured.
const DefaultNamespace = "tally"

// Collector reads a Registry on every scrape.
type Collector struct {
	registry *timer.Registry
	seconds  *prometheus.Desc
	stops    *prometheus.Desc
}

// NewCollector creates a collector for reg.
func NewCollector(reg *timer.Registry, namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Collector{
		registry: reg,
		seconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "seconds_total"),
			"Accumulated time measured by named timers",
			[]string{"name"}, nil,
		),
		stops: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "stops_total"),
			"Number of measurements added to named timers",
			[]string{"name"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.seconds
	ch <- c.stops
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, e := range c.registry.Snapshot() {
		ch <- prometheus.MustNewConstMetric(c.seconds, prometheus.CounterValue, e.Total.Seconds(), e.Name)
		ch <- prometheus.MustNewConstMetric(c.stops, prometheus.CounterValue, float64(e.Count), e.Name)
	}
}

// WriteText gathers g and writes the text exposition format to w.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
