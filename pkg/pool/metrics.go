package pool

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/gowork/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a worker pool with metrics enabled on its own registry.
func NewWithMetrics(workers int, name string) (Pool, error) {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}
	return NewWithConfigAndMetrics(Config{Workers: workers}, name, config)
}

// NewWithConfigAndMetrics creates a worker pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (Pool, error) {
	basePool, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return basePool, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		pool:     basePool,
		name:     name,
		registry: registry,
		enabled:  true,
	}

	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(basePool.Workers()))
	mp.updateGauges()

	return mp, nil
}

// updateGauges refreshes the current state gauges.
func (mp *MetricsPool) updateGauges() {
	if !mp.enabled {
		return
	}

	mp.registry.PoolActiveWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.ActiveWorkers()))
	mp.registry.PoolQueuedTasks.WithLabelValues(mp.name).Set(float64(mp.pool.QueuedTasks()))
}

// enqueue instruments the task before delegating to the wrapped pool.
func (mp *MetricsPool) enqueue(ctx context.Context, t *task) error {
	if mp.enabled {
		execute := t.execute
		t.execute = func(ctx context.Context) error {
			start := time.Now()
			err := execute(ctx)

			mp.registry.TaskExecutionDuration.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
			if err != nil {
				mp.registry.TasksFailed.WithLabelValues(mp.name).Inc()
			} else {
				mp.registry.TasksCompleted.WithLabelValues(mp.name).Inc()
			}
			mp.updateGauges()

			return err
		}
	}

	err := mp.pool.enqueue(ctx, t)

	if err == nil && mp.enabled {
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
		mp.updateGauges()
	}

	return err
}

// Shutdown initiates graceful shutdown of the wrapped pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	return mp.pool.Shutdown()
}

// AwaitTermination blocks until the wrapped pool stops or the timeout elapses.
func (mp *MetricsPool) AwaitTermination(timeout time.Duration) bool {
	return mp.pool.AwaitTermination(timeout)
}

// State returns the wrapped pool's lifecycle state.
func (mp *MetricsPool) State() State {
	return mp.pool.State()
}

// Workers returns the configured worker count.
func (mp *MetricsPool) Workers() int {
	return mp.pool.Workers()
}

// QueuedTasks returns the current number of queued tasks.
func (mp *MetricsPool) QueuedTasks() int {
	queued := mp.pool.QueuedTasks()

	if mp.enabled {
		mp.registry.PoolQueuedTasks.WithLabelValues(mp.name).Set(float64(queued))
	}

	return queued
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (mp *MetricsPool) ActiveWorkers() int {
	active := mp.pool.ActiveWorkers()

	if mp.enabled {
		mp.registry.PoolActiveWorkers.WithLabelValues(mp.name).Set(float64(active))
	}

	return active
}

// TotalSubmitted returns the total number of accepted submissions.
func (mp *MetricsPool) TotalSubmitted() int64 {
	return mp.pool.TotalSubmitted()
}

// TotalCompleted returns the total number of finished tasks.
func (mp *MetricsPool) TotalCompleted() int64 {
	return mp.pool.TotalCompleted()
}

// TotalFailed returns the number of tasks that finished with an error.
func (mp *MetricsPool) TotalFailed() int64 {
	return mp.pool.TotalFailed()
}

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled

	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}

	if mp.enabled {
		mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.Workers()))
		mp.updateGauges()
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
