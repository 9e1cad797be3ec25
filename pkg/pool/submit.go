package pool

import (
	"context"

	"github.com/google/uuid"

	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
	"github.com/vnykmshr/gowork/pkg/common/validation"
	"github.com/vnykmshr/gowork/pkg/future"
)

// Submit enqueues fn for execution and returns a pending future for its
// result. The call blocks only while the task queue is full. After Shutdown
// it returns ErrPoolClosed and no future.
//
// Task failures are wrapped in a *gwerrors.TaskError carrying the task ID;
// the original error remains reachable through errors.Is and errors.As.
func Submit[T any](p Pool, fn TaskFunc[T]) (*future.Future[T], error) {
	return SubmitWithContext(context.Background(), p, fn)
}

// SubmitWithContext is like Submit, but ctx bounds the wait for queue space.
// It does not bound the task's execution; use Config.TaskTimeout for that.
func SubmitWithContext[T any](ctx context.Context, p Pool, fn TaskFunc[T]) (*future.Future[T], error) {
	// A typed nil function does not compare equal to a nil interface, so
	// check directly rather than through ValidateNotNil.
	if fn == nil {
		return nil, validation.ValidateNotNil("pool", "task", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	id := uuid.NewString()
	f := future.New[T]()

	t := &task{
		id: id,
		execute: func(ctx context.Context) error {
			v, err := fn(ctx)
			if err != nil {
				terr := gwerrors.NewTaskError(id, err)
				f.Fail(terr)
				return terr
			}
			f.Complete(v)
			return nil
		},
		fail: func(err error) {
			f.Fail(err)
		},
	}

	if err := p.enqueue(ctx, t); err != nil {
		return nil, err
	}

	return f, nil
}

// SubmitAll enqueues every computation in fns and returns their futures in
// argument order. If a submission fails, the futures accepted so far are
// returned alongside the error; those tasks keep running.
func SubmitAll[T any](p Pool, fns ...TaskFunc[T]) ([]*future.Future[T], error) {
	futures := make([]*future.Future[T], 0, len(fns))
	for _, fn := range fns {
		f, err := Submit(p, fn)
		if err != nil {
			return futures, err
		}
		futures = append(futures, f)
	}
	return futures, nil
}
