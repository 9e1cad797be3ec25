// Package metrics provides Prometheus instrumentation for gowork components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gowork components.
type Registry struct {
	// Channel Metrics
	ChannelPuts        *prometheus.CounterVec
	ChannelTakes       *prometheus.CounterVec
	ChannelBlockedPuts *prometheus.CounterVec
	ChannelLength      *prometheus.GaugeVec
	ChannelCapacity    *prometheus.GaugeVec
	ChannelUtilization *prometheus.GaugeVec

	// Worker Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	PoolWorkers           *prometheus.GaugeVec
	PoolActiveWorkers     *prometheus.GaugeVec
	PoolQueuedTasks       *prometheus.GaugeVec

	// Schedule Metrics
	ScheduledFires  *prometheus.CounterVec
	ScheduledErrors *prometheus.CounterVec
	ScheduledTasks  *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by gowork components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Channel Metrics
		ChannelPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "puts_total",
				Help:      "Total number of completed put operations",
			},
			[]string{"channel_name"},
		),

		ChannelTakes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "takes_total",
				Help:      "Total number of completed take operations",
			},
			[]string{"channel_name"},
		),

		ChannelBlockedPuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "blocked_puts_total",
				Help:      "Total number of puts that had to wait for space",
			},
			[]string{"channel_name"},
		),

		ChannelLength: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "length",
				Help:      "Current number of buffered elements",
			},
			[]string{"channel_name"},
		),

		ChannelCapacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "capacity",
				Help:      "Channel buffer capacity",
			},
			[]string{"channel_name"},
		),

		ChannelUtilization: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "channel",
				Name:      "utilization",
				Help:      "Current buffer utilization (0.0 to 1.0)",
			},
			[]string{"channel_name"},
		),

		// Worker Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Configured worker count",
			},
			[]string{"pool_name"},
		),

		PoolActiveWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing tasks",
			},
			[]string{"pool_name"},
		),

		PoolQueuedTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting for a worker",
			},
			[]string{"pool_name"},
		),

		// Schedule Metrics
		ScheduledFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "schedule",
				Name:      "fires_total",
				Help:      "Total number of scheduled task submissions",
			},
			[]string{"scheduler_name"},
		),

		ScheduledErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gowork",
				Subsystem: "schedule",
				Name:      "errors_total",
				Help:      "Total number of failed scheduled submissions",
			},
			[]string{"scheduler_name"},
		),

		ScheduledTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gowork",
				Subsystem: "schedule",
				Name:      "tasks",
				Help:      "Number of registered scheduled tasks",
			},
			[]string{"scheduler_name"},
		),
	}
}
