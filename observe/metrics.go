/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package observe

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the repository operation collectors.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors under namespace and registers them with
// reg, or with the default registerer when reg is nil.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repository_operations_total",
				Help:      "Total number of repository operations",
			},
			[]string{"entity", "operation", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "repository_operation_duration_seconds",
				Help:      "Repository operation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"entity", "operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register repository metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) record(entity, operation, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(entity, operation, status).Inc()
	m.Duration.WithLabelValues(entity, operation).Observe(elapsed.Seconds())
}
