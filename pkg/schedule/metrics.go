package schedule

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/gowork/pkg/metrics"
)

// NewWithMetrics creates a scheduler with metrics enabled using an isolated
// registry, avoiding collisions between instrumented components.
func NewWithMetrics(name string) (Scheduler, error) {
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a scheduler with custom configuration and
// metrics. Registered task counts, fires, and task errors are recorded under
// the given component name.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (Scheduler, error) {
	sched, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !metricsConfig.Enabled {
		return sched, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	s := sched.(*scheduler)
	s.metricsName = name
	s.metricsReg = registry
	return s, nil
}
