package pool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vnykmshr/gowork/pkg/channel"
	gwcontext "github.com/vnykmshr/gowork/pkg/common/context"
	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
)

// enqueue implements Pool.enqueue. It blocks when the task queue is full,
// applying backpressure to the submitter; ctx bounds that wait only.
func (p *workerPool) enqueue(ctx context.Context, t *task) error {
	if State(p.state.Load()) != Running {
		return gwerrors.ErrPoolClosed
	}

	if err := p.queue.Put(ctx, t); err != nil {
		// The queue closes when shutdown begins; a submitter blocked on a
		// full queue observes that as pool closure. Context errors from
		// the queue wait pass through unchanged.
		if err == channel.ErrClosed {
			return gwerrors.ErrPoolClosed
		}
		return err
	}

	p.submitted.Add(1)
	return nil
}

// Shutdown implements Pool.Shutdown.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.state.Store(int32(ShuttingDown))

		// Closing the queue stops intake and lets workers drain the
		// remaining tasks before exiting.
		_ = p.queue.Close()

		go func() {
			p.workerWg.Wait()
			p.state.Store(int32(Stopped))
			close(p.stopped)
		}()
	})

	return p.stopped
}

// AwaitTermination implements Pool.AwaitTermination.
func (p *workerPool) AwaitTermination(timeout time.Duration) bool {
	select {
	case <-p.stopped:
		return true
	case <-time.After(timeout):
		return false
	}
}

// State implements Pool.State.
func (p *workerPool) State() State {
	return State(p.state.Load())
}

// Workers implements Pool.Workers.
func (p *workerPool) Workers() int {
	return p.config.Workers
}

// QueuedTasks implements Pool.QueuedTasks.
func (p *workerPool) QueuedTasks() int {
	return p.queue.Len()
}

// ActiveWorkers implements Pool.ActiveWorkers.
func (p *workerPool) ActiveWorkers() int {
	return int(p.active.Load())
}

// TotalSubmitted implements Pool.TotalSubmitted.
func (p *workerPool) TotalSubmitted() int64 {
	return p.submitted.Load()
}

// TotalCompleted implements Pool.TotalCompleted.
func (p *workerPool) TotalCompleted() int64 {
	return p.completed.Load()
}

// TotalFailed implements Pool.TotalFailed.
func (p *workerPool) TotalFailed() int64 {
	return p.failed.Load()
}

// run is the main loop for a worker. Workers pull tasks until the queue is
// closed and drained, then exit. A failing or panicking task never
// terminates the loop.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if w.pool.config.OnWorkerStart != nil {
		w.pool.config.OnWorkerStart(w.id)
	}
	defer func() {
		if w.pool.config.OnWorkerStop != nil {
			w.pool.config.OnWorkerStop(w.id)
		}
	}()

	for {
		t, err := w.pool.queue.Take(context.Background())
		if err != nil {
			// Queue closed and drained: shutdown complete for this worker.
			return
		}

		w.pool.active.Add(1)
		w.executeTask(t)
		w.pool.active.Add(-1)
	}
}

// executeTask runs a single task, converting panics into task errors so the
// failure reaches the task's future instead of crashing the worker.
func (w *worker) executeTask(t *task) {
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			terr := &gwerrors.TaskError{
				TaskID: t.id,
				Cause:  fmt.Errorf("%v", r),
				Stack:  debug.Stack(),
			}
			t.fail(terr)
			err = terr

			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(t.id, r)
			}
		}

		p := w.pool
		p.completed.Add(1)
		if err != nil {
			p.failed.Add(1)
		}

		if p.config.OnTaskComplete != nil {
			p.config.OnTaskComplete(w.id, t.id, err, time.Since(start))
		}
	}()

	ctx := context.Background()
	if w.pool.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = gwcontext.WithTimeoutOrCancel(ctx, w.pool.config.TaskTimeout)
		defer cancel()
	}

	if w.pool.config.OnTaskStart != nil {
		w.pool.config.OnTaskStart(w.id, t.id)
	}

	err = t.execute(ctx)
}
