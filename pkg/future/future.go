package future

import (
	"context"
	"sync"
	"time"

	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
)

// ErrTimeout is returned by GetTimeout when the wait deadline elapses.
// The underlying computation is unaffected and may still complete later.
var ErrTimeout = gwerrors.ErrTimeout

// Future is a one-shot, write-once result container bridging an asynchronous
// computation to its consumers. It resolves exactly once to either a value
// or an error; the first writer wins and later writes are ignored. Any number
// of goroutines may read the result any number of times.
type Future[T any] struct {
	once sync.Once
	done chan struct{}

	// value and err are written once before done is closed; the channel
	// close publishes them to all readers.
	value T
	err   error
}

// New creates a pending future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed creates a future already resolved with value.
func Completed[T any](value T) *Future[T] {
	f := New[T]()
	f.Complete(value)
	return f
}

// Failed creates a future already resolved with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Complete resolves the future with value. It reports whether this call
// performed the resolution; a future can only resolve once.
func (f *Future[T]) Complete(value T) bool {
	resolved := false
	f.once.Do(func() {
		f.value = value
		close(f.done)
		resolved = true
	})
	return resolved
}

// Fail resolves the future with err. It reports whether this call performed
// the resolution. A nil err is ignored.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		return false
	}
	resolved := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done returns a channel that is closed when the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsDone returns true if the future has resolved.
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the future resolves, then returns its value or error.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetTimeout is like Get but fails with ErrTimeout if the future has not
// resolved within timeout. Timing out abandons only this wait; a later Get
// still returns the eventual result.
func (f *Future[T]) GetTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// GetContext is like Get but returns the context error if ctx is canceled
// before the future resolves.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the result without blocking. The boolean reports whether
// the future has resolved.
func (f *Future[T]) TryGet() (T, bool, error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}
