// Package metrics provides Prometheus metrics for the eventboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the "eventboard" metric prefix.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem overrides the "site" metric subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the millisecond buckets shared by the render and
// HTTP latency histograms.
func WithLatencyBuckets(buckets ...float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = append([]float64(nil), buckets...)
		}
	}
}

// WithSiteLabel adds a constant "site" label so several club sites can share
// one Prometheus.
func WithSiteLabel(site string) Option {
	return func(m *Manager) {
		if site == "" {
			return
		}
		if m.constLabels == nil {
			m.constLabels = prometheus.Labels{}
		}
		m.constLabels["site"] = site
	}
}

// WithRegisterer registers the metrics on r instead of the default registerer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
