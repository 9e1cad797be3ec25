package channel

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/gowork/pkg/metrics"
)

// MetricsChannel wraps a Bounded channel with Prometheus metrics collection.
type MetricsChannel[T any] struct {
	ch       Bounded[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a bounded channel with metrics enabled on its own registry.
func NewWithMetrics[T any](capacity int, name string) (Bounded[T], error) {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithMetricsConfig[T](capacity, name, config)
}

// NewWithMetricsConfig creates a bounded channel with the given metrics configuration.
func NewWithMetricsConfig[T any](capacity int, name string, metricsConfig metrics.Config) (Bounded[T], error) {
	base, err := New[T](capacity)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return base, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mc := &MetricsChannel[T]{
		ch:       base,
		name:     name,
		registry: registry,
		enabled:  true,
	}

	mc.registry.ChannelCapacity.WithLabelValues(mc.name).Set(float64(base.Cap()))
	mc.updateGauges()

	return mc, nil
}

// updateGauges refreshes the length and utilization gauges.
func (mc *MetricsChannel[T]) updateGauges() {
	if !mc.enabled {
		return
	}

	length := mc.ch.Len()
	mc.registry.ChannelLength.WithLabelValues(mc.name).Set(float64(length))
	mc.registry.ChannelUtilization.WithLabelValues(mc.name).Set(float64(length) / float64(mc.ch.Cap()))
}

// Put puts a value and records metrics.
func (mc *MetricsChannel[T]) Put(ctx context.Context, value T) error {
	before := mc.ch.Stats().BlockedPuts
	err := mc.ch.Put(ctx, value)

	if mc.enabled {
		if err == nil {
			mc.registry.ChannelPuts.WithLabelValues(mc.name).Inc()
		}
		if blocked := mc.ch.Stats().BlockedPuts - before; blocked > 0 {
			mc.registry.ChannelBlockedPuts.WithLabelValues(mc.name).Add(float64(blocked))
		}
		mc.updateGauges()
	}

	return err
}

// TryPut attempts a non-blocking put and records metrics.
func (mc *MetricsChannel[T]) TryPut(value T) error {
	err := mc.ch.TryPut(value)

	if mc.enabled {
		if err == nil {
			mc.registry.ChannelPuts.WithLabelValues(mc.name).Inc()
		}
		mc.updateGauges()
	}

	return err
}

// Take takes a value and records metrics.
func (mc *MetricsChannel[T]) Take(ctx context.Context) (T, error) {
	value, err := mc.ch.Take(ctx)

	if mc.enabled {
		if err == nil {
			mc.registry.ChannelTakes.WithLabelValues(mc.name).Inc()
		}
		mc.updateGauges()
	}

	return value, err
}

// TryTake attempts a non-blocking take and records metrics.
func (mc *MetricsChannel[T]) TryTake() (T, bool, error) {
	value, ok, err := mc.ch.TryTake()

	if mc.enabled {
		if ok {
			mc.registry.ChannelTakes.WithLabelValues(mc.name).Inc()
		}
		mc.updateGauges()
	}

	return value, ok, err
}

// Close closes the underlying channel.
func (mc *MetricsChannel[T]) Close() error {
	return mc.ch.Close()
}

// IsClosed returns true if the underlying channel is closed.
func (mc *MetricsChannel[T]) IsClosed() bool {
	return mc.ch.IsClosed()
}

// Len returns the current number of buffered elements.
func (mc *MetricsChannel[T]) Len() int {
	return mc.ch.Len()
}

// Cap returns the buffer capacity.
func (mc *MetricsChannel[T]) Cap() int {
	return mc.ch.Cap()
}

// Stats returns statistics from the underlying channel.
func (mc *MetricsChannel[T]) Stats() Stats {
	return mc.ch.Stats()
}

// EnableMetrics enables metrics collection.
func (mc *MetricsChannel[T]) EnableMetrics(config metrics.Config) error {
	mc.enabled = config.Enabled

	if config.Registry != nil {
		mc.registry = metrics.NewRegistry(config.Registry)
	}

	if mc.enabled {
		mc.registry.ChannelCapacity.WithLabelValues(mc.name).Set(float64(mc.ch.Cap()))
		mc.updateGauges()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mc *MetricsChannel[T]) DisableMetrics() {
	mc.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mc *MetricsChannel[T]) MetricsEnabled() bool {
	return mc.enabled
}
