/*
Package pool provides a fixed-size worker pool that executes submitted
computations and returns their results through typed futures.

A pool starts its workers at construction and never resizes. Submissions go
onto a bounded internal queue (a channel.Bounded), so a full queue blocks
submitters instead of growing memory without limit. Each submission returns
a *future.Future carrying the task's eventual value or error.

Basic usage:

	p, err := pool.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Shutdown()

	f, err := pool.Submit(p, func(ctx context.Context) (int, error) {
		return expensiveComputation(), nil
	})
	if err != nil {
		log.Printf("submit failed: %v", err)
		return
	}

	v, err := f.Get() // blocks until a worker resolves the future

Because Go methods cannot introduce type parameters, submission is a
package-level generic function taking the pool as its first argument. Each
task gets a unique ID; failures surface as *errors.TaskError wrapping the
original cause:

	_, err = f.Get()
	var te *gwerrors.TaskError
	if errors.As(err, &te) {
		log.Printf("task %s failed: %v", te.TaskID, te.Cause)
	}

Failure Isolation:

A task returning an error or panicking resolves only its own future. The
worker recovers panics, records the stack, and moves on to the next task;
other tasks and their futures are unaffected.

Ordering:

Workers dequeue tasks in submission order, but with several workers running
concurrently the global completion order is unspecified. Only the dequeue
order is FIFO.

Timed Waits:

A future's timed wait abandons the wait, not the task:

	v, err := f.GetTimeout(100 * time.Millisecond)
	if errors.Is(err, future.ErrTimeout) {
		// the task is still running; block for the eventual result
		v, err = f.Get()
	}

There is no cooperative cancellation of a running task beyond the context
handed to the body. Configure TaskTimeout to bound task contexts, and write
bodies that honor ctx.Done() when early exit matters.

Shutdown:

Shutdown stops intake, drains the queue, and waits for in-flight tasks:

	done := p.Shutdown()
	<-done // or: p.AwaitTermination(30 * time.Second)

	_, err := pool.Submit(p, fn) // gwerrors.ErrPoolClosed

Batch Submission:

SubmitAll submits a set of computations and returns their futures; combine
with future.All to gather every result:

	futures, err := pool.SubmitAll(p, tasks...)
	values, err := future.All(futures...).Get()

For Prometheus instrumentation see NewWithMetrics in this package.
*/
package pool
