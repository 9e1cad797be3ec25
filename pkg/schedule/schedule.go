package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
	"github.com/vnykmshr/gowork/pkg/common/validation"
	"github.com/vnykmshr/gowork/pkg/metrics"
	"github.com/vnykmshr/gowork/pkg/pool"
)

// Task is a fire-and-forget computation run by the scheduler's pool.
type Task func(ctx context.Context) error

// Entry describes a registered scheduled task.
type Entry struct {
	ID       string
	NextRun  time.Time
	Interval time.Duration // zero for one-time and cron tasks
	CronExpr string        // empty for non-cron tasks
	Created  time.Time
}

// Scheduler submits tasks into a worker pool at scheduled times.
type Scheduler interface {
	// ScheduleAt registers a one-time task for the given instant.
	ScheduleAt(id string, task Task, runAt time.Time) error

	// ScheduleAfter registers a one-time task after the given delay.
	ScheduleAfter(id string, task Task, delay time.Duration) error

	// ScheduleRepeating registers a task firing at a fixed interval,
	// starting one interval from now.
	ScheduleRepeating(id string, task Task, interval time.Duration) error

	// ScheduleCron registers a task using a standard five-field cron
	// expression ("30 14 * * 1-5") or a descriptor ("@hourly").
	ScheduleCron(id string, cronExpr string, task Task) error

	// Cancel removes a scheduled task and reports whether it existed.
	Cancel(id string) bool

	// List returns the registered tasks sorted by next run time.
	List() []Entry

	// Start begins dispatching due tasks. Returns an error if the
	// scheduler is already running or has been stopped.
	Start() error

	// Stop ceases dispatching and, if the scheduler owns its pool, shuts
	// the pool down. The returned channel closes once dispatch has ended.
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Pool executes fired tasks. When nil the scheduler creates and owns
	// a small pool, shutting it down on Stop.
	Pool pool.Pool

	// Location is the timezone for cron evaluation. Defaults to time.Local.
	Location *time.Location

	// TickInterval is how often due tasks are checked. Defaults to 50ms.
	TickInterval time.Duration

	// MaxTasks bounds the number of registered tasks. Defaults to 10000.
	MaxTasks int
}

type scheduledTask struct {
	id       string
	task     Task
	runAt    time.Time
	interval time.Duration
	cronExpr string
	cronSch  cron.Schedule
	created  time.Time
}

type scheduler struct {
	pool         pool.Pool
	ownPool      bool
	location     *time.Location
	tickInterval time.Duration
	maxTasks     int
	cronParser   cron.Parser
	metricsName  string
	metricsReg   *metrics.Registry

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	running bool
	stopped bool
	quit    chan struct{}
	done    chan struct{}
}

// New creates a scheduler with default configuration.
func New() (Scheduler, error) {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	p := cfg.Pool
	ownPool := false
	if p == nil {
		var err error
		p, err = pool.New(4)
		if err != nil {
			return nil, err
		}
		ownPool = true
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10000
	}

	return &scheduler{
		pool:         p,
		ownPool:      ownPool,
		location:     location,
		tickInterval: tickInterval,
		maxTasks:     maxTasks,
		cronParser: cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		),
		tasks: make(map[string]*scheduledTask),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}, nil
}

func (s *scheduler) register(t *scheduledTask) error {
	if err := validation.ValidateNotEmpty("schedule", "id", t.id); err != nil {
		return err
	}
	if t.task == nil {
		return validation.ValidateNotNil("schedule", "task", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.id]; exists {
		return gwerrors.NewValidationError("schedule", "id", t.id, "already registered").
			WithHint("cancel the existing task or use a different ID")
	}
	if len(s.tasks) >= s.maxTasks {
		return gwerrors.NewValidationError("schedule", "tasks", len(s.tasks), "task limit reached")
	}

	t.created = time.Now()
	s.tasks[t.id] = t
	s.updateTaskGauge()
	return nil
}

// updateTaskGauge records the registered task count. Caller holds s.mu.
func (s *scheduler) updateTaskGauge() {
	if s.metricsReg != nil {
		s.metricsReg.ScheduledTasks.WithLabelValues(s.metricsName).Set(float64(len(s.tasks)))
	}
}

func (s *scheduler) ScheduleAt(id string, task Task, runAt time.Time) error {
	if runAt.IsZero() {
		return gwerrors.NewValidationError("schedule", "runAt", runAt, "cannot be zero")
	}
	return s.register(&scheduledTask{id: id, task: task, runAt: runAt})
}

func (s *scheduler) ScheduleAfter(id string, task Task, delay time.Duration) error {
	return s.ScheduleAt(id, task, time.Now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, task Task, interval time.Duration) error {
	if interval <= 0 {
		return gwerrors.NewValidationError("schedule", "interval", interval, "must be positive")
	}
	return s.register(&scheduledTask{
		id:       id,
		task:     task,
		runAt:    time.Now().Add(interval),
		interval: interval,
	})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, task Task) error {
	if err := validation.ValidateNotEmpty("schedule", "cron expression", cronExpr); err != nil {
		return err
	}

	sch, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return gwerrors.NewValidationError("schedule", "cron expression", cronExpr, err.Error()).
			WithHint("use a five-field cron expression or a descriptor like @hourly")
	}

	return s.register(&scheduledTask{
		id:       id,
		task:     task,
		runAt:    sch.Next(time.Now().In(s.location)),
		cronExpr: cronExpr,
		cronSch:  sch,
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; !exists {
		return false
	}
	delete(s.tasks, id)
	s.updateTaskGauge()
	return true
}

func (s *scheduler) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.tasks))
	for _, t := range s.tasks {
		entries = append(entries, Entry{
			ID:       t.id,
			NextRun:  t.runAt,
			Interval: t.interval,
			CronExpr: t.cronExpr,
			Created:  t.created,
		})
	}

	// Sort by next run, then ID for a stable order.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].NextRun.Equal(entries[j].NextRun) {
			return entries[i].NextRun.Before(entries[j].NextRun)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return gwerrors.NewValidationError("schedule", "state", "stopped", "cannot restart a stopped scheduler")
	}
	if s.running {
		return gwerrors.NewValidationError("schedule", "state", "running", "already started")
	}
	s.running = true

	go s.loop()
	return nil
}

func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()

	if s.stopped {
		s.mu.Unlock()
		return s.done
	}
	s.stopped = true
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	close(s.quit)
	if !wasRunning {
		s.finish()
	}

	return s.done
}

// finish shuts down an owned pool and signals completion.
func (s *scheduler) finish() {
	if s.ownPool {
		<-s.pool.Shutdown()
	}
	close(s.done)
}

func (s *scheduler) loop() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			s.finish()
			return
		case now := <-ticker.C:
			s.dispatchDue(now)
		}
	}
}

// dispatchDue submits every due task to the pool and computes its next run.
func (s *scheduler) dispatchDue(now time.Time) {
	s.mu.Lock()
	var due []*scheduledTask
	for _, t := range s.tasks {
		if !t.runAt.After(now) {
			due = append(due, t)
		}
	}
	for _, t := range due {
		switch {
		case t.cronSch != nil:
			t.runAt = t.cronSch.Next(now.In(s.location))
		case t.interval > 0:
			t.runAt = now.Add(t.interval)
		default:
			delete(s.tasks, t.id)
		}
	}
	s.updateTaskGauge()
	s.mu.Unlock()

	for _, t := range due {
		task := t.task
		if s.metricsReg != nil {
			s.metricsReg.ScheduledFires.WithLabelValues(s.metricsName).Inc()
		}
		// Submission failure means the pool is shutting down; dispatch
		// simply stops delivering until Stop is called.
		_, _ = pool.Submit(s.pool, func(ctx context.Context) (struct{}, error) {
			err := task(ctx)
			if err != nil && s.metricsReg != nil {
				s.metricsReg.ScheduledErrors.WithLabelValues(s.metricsName).Inc()
			}
			return struct{}{}, err
		})
	}
}
