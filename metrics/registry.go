// Package metrics exposes process counters for script building and artifact
// loading. Every metric lives in DefaultRegistry so it is reachable without
// passing a registry around.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "callscript"

// DefaultRegistry is the process-wide registry holding the metrics defined
// in standard.go.
var DefaultRegistry = prometheus.NewRegistry()

func newCounter(subsystem, name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
	DefaultRegistry.MustRegister(c)
	return c
}

func newHistogram(subsystem, name, help string, buckets []float64) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	DefaultRegistry.MustRegister(h)
	return h
}

// WriteText writes every metric in DefaultRegistry to w in the Prometheus
// text exposition format.
func WriteText(w io.Writer) error {
	families, err := DefaultRegistry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
