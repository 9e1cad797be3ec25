package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/gowork/pkg/channel"
	"github.com/vnykmshr/gowork/pkg/common/validation"
)

// State describes the pool lifecycle.
type State int32

const (
	// Running accepts submissions and executes tasks.
	Running State = iota

	// ShuttingDown rejects new submissions while draining queued tasks.
	ShuttingDown

	// Stopped means all workers have exited.
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pool executes submitted computations on a fixed set of workers.
// Use the package-level Submit function to obtain a typed future per task.
type Pool interface {
	// Shutdown transitions the pool to ShuttingDown: no new submissions are
	// accepted, queued and in-flight tasks run to completion, then workers
	// exit. Idempotent. The returned channel closes once the pool stops.
	Shutdown() <-chan struct{}

	// AwaitTermination blocks until the pool reaches Stopped or the timeout
	// elapses, and reports whether termination was observed.
	AwaitTermination(timeout time.Duration) bool

	// State returns the current lifecycle state.
	State() State

	// Workers returns the configured worker count.
	Workers() int

	// QueuedTasks returns the number of tasks waiting for a worker.
	QueuedTasks() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of accepted submissions.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of finished tasks,
	// successful or not.
	TotalCompleted() int64

	// TotalFailed returns the number of tasks that finished with an error
	// or a panic.
	TotalFailed() int64

	// enqueue hands a prepared task to the queue. Unexported so all
	// submissions flow through the typed Submit helpers.
	enqueue(ctx context.Context, t *task) error
}

// TaskFunc is a parameterless computation producing a value of type T.
// The context carries the pool's TaskTimeout when one is configured.
type TaskFunc[T any] func(ctx context.Context) (T, error)

// task is the queue envelope pairing a task body with its future.
type task struct {
	id string

	// execute runs the body and resolves the future; it returns the
	// wrapped error for pool accounting.
	execute func(ctx context.Context) error

	// fail resolves the future directly, used on the panic path.
	fail func(err error)
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// Workers is the number of workers in the pool. Must be greater than 0.
	Workers int

	// QueueDepth is the capacity of the internal task queue. Submissions
	// block once the queue is full, applying backpressure to producers.
	// Defaults to DefaultQueueDepth when 0.
	QueueDepth int

	// TaskTimeout bounds each task's context. Zero means no timeout.
	// Task bodies that ignore their context are not interrupted.
	TaskTimeout time.Duration

	// PanicHandler is called when a task panics during execution.
	// The panic is always recovered and attached to the task's future;
	// the handler is for logging and alerting.
	PanicHandler func(taskID string, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, taskID string)

	// OnTaskComplete is called after a task finishes (success or failure).
	OnTaskComplete func(workerID int, taskID string, err error, duration time.Duration)
}

// DefaultQueueDepth is the task queue capacity used when Config.QueueDepth
// is zero.
const DefaultQueueDepth = 1024

// workerPool implements the Pool interface. The task queue is a bounded
// channel, so a full queue blocks submitters rather than growing without
// limit.
type workerPool struct {
	config Config

	queue   channel.Bounded[*task]
	workers []worker

	state        atomic.Int32
	stopped      chan struct{}
	shutdownOnce sync.Once
	workerWg     sync.WaitGroup

	active    atomic.Int64
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a worker pool with the given worker count and default queue depth.
func New(workers int) (Pool, error) {
	return NewWithConfig(Config{Workers: workers})
}

// NewWithConfig creates a worker pool with the given configuration.
// Construction fails before any worker starts if the configuration is invalid.
func NewWithConfig(config Config) (Pool, error) {
	if err := validation.ValidatePositive("pool", "workers", config.Workers); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("pool", "queue depth", config.QueueDepth); err != nil {
		return nil, err
	}
	if config.QueueDepth == 0 {
		config.QueueDepth = DefaultQueueDepth
	}

	queue, err := channel.New[*task](config.QueueDepth)
	if err != nil {
		return nil, err
	}

	p := &workerPool{
		config:  config,
		queue:   queue,
		stopped: make(chan struct{}),
	}

	p.workers = make([]worker, config.Workers)
	for i := 0; i < config.Workers; i++ {
		p.workers[i] = worker{id: i, pool: p}
		p.workerWg.Add(1)
		go p.workers[i].run()
	}

	return p, nil
}
