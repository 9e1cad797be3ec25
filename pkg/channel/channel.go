package channel

import (
	"context"
	"sync"
	"time"

	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
	"github.com/vnykmshr/gowork/pkg/common/validation"
)

// ErrClosed is returned when attempting to operate on a closed channel.
var ErrClosed = gwerrors.ErrChannelClosed

// ErrFull is returned by TryPut when the channel buffer is full.
var ErrFull = gwerrors.ErrChannelFull

// Bounded is a fixed-capacity FIFO channel with blocking put/take semantics.
// A full buffer blocks producers, an empty buffer blocks consumers, giving
// natural backpressure between the two sides.
type Bounded[T any] interface {
	// Put appends value to the buffer, blocking while the buffer is full.
	// It returns ErrClosed if the channel is closed, or the context error
	// if ctx is canceled while waiting. If Put returns nil the value is
	// guaranteed enqueued.
	Put(ctx context.Context, value T) error

	// TryPut appends value without blocking. It returns ErrFull if the
	// buffer is full and ErrClosed if the channel is closed.
	TryPut(value T) error

	// Take removes and returns the oldest buffered value, blocking while
	// the buffer is empty. After Close, Take drains the remaining buffer
	// and then returns ErrClosed.
	Take(ctx context.Context) (T, error)

	// TryTake removes the oldest buffered value without blocking.
	// The boolean reports whether a value was available.
	TryTake() (T, bool, error)

	// Close closes the channel for puts. Idempotent. Blocked operations
	// are woken; buffered values remain takeable.
	Close() error

	// IsClosed returns true if the channel is closed.
	IsClosed() bool

	// Len returns the current number of buffered elements.
	Len() int

	// Cap returns the buffer capacity.
	Cap() int

	// Stats returns channel statistics.
	Stats() Stats
}

// Stats holds statistics about channel activity.
type Stats struct {
	// Puts is the total number of completed put operations.
	Puts int64

	// Takes is the total number of completed take operations.
	Takes int64

	// BlockedPuts is the number of puts that had to wait for space.
	BlockedPuts int64

	// BlockedTakes is the number of takes that had to wait for a value.
	BlockedTakes int64

	// Utilization is the current buffer utilization (0.0 to 1.0).
	Utilization float64

	// LastPutTime is the timestamp of the last completed put.
	LastPutTime time.Time

	// LastTakeTime is the timestamp of the last completed take.
	LastTakeTime time.Time
}

// bounded implements Bounded with a ring buffer guarded by a mutex and a
// pair of condition variables. Both wait loops re-check their predicate
// after every wake.
type bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	buffer []T
	head   int
	tail   int
	count  int
	closed bool

	stats Stats
}

// New creates a bounded channel with the given capacity.
// Capacity must be at least 1.
func New[T any](capacity int) (Bounded[T], error) {
	if err := validation.ValidatePositive("channel", "capacity", capacity); err != nil {
		return nil, err
	}

	ch := &bounded[T]{
		buffer: make([]T, capacity),
	}
	ch.notFull = sync.NewCond(&ch.mu)
	ch.notEmpty = sync.NewCond(&ch.mu)

	return ch, nil
}

// MustNew is like New but panics on invalid capacity.
// Intended for package-level variables and tests.
func MustNew[T any](capacity int) Bounded[T] {
	ch, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return ch
}

// Put implements Bounded.Put.
func (ch *bounded[T]) Put(ctx context.Context, value T) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.count == len(ch.buffer) && !ch.closed {
		// Wake this waiter if the context expires mid-wait. The broadcast
		// runs under the lock, so it cannot race with cond.Wait.
		stop := context.AfterFunc(ctx, func() {
			ch.mu.Lock()
			ch.notFull.Broadcast()
			ch.mu.Unlock()
		})
		defer stop()

		ch.stats.BlockedPuts++
		for ch.count == len(ch.buffer) && !ch.closed && ctx.Err() == nil {
			ch.notFull.Wait()
		}
	}

	if ch.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil && ch.count == len(ch.buffer) {
		return err
	}

	ch.enqueue(value)
	ch.stats.Puts++
	ch.stats.LastPutTime = time.Now()
	ch.notEmpty.Signal()

	return nil
}

// TryPut implements Bounded.TryPut.
func (ch *bounded[T]) TryPut(value T) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return ErrClosed
	}
	if ch.count == len(ch.buffer) {
		return ErrFull
	}

	ch.enqueue(value)
	ch.stats.Puts++
	ch.stats.LastPutTime = time.Now()
	ch.notEmpty.Signal()

	return nil
}

// Take implements Bounded.Take.
func (ch *bounded[T]) Take(ctx context.Context) (T, error) {
	var zero T

	if ctx == nil {
		ctx = context.Background()
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.count == 0 && !ch.closed {
		stop := context.AfterFunc(ctx, func() {
			ch.mu.Lock()
			ch.notEmpty.Broadcast()
			ch.mu.Unlock()
		})
		defer stop()

		ch.stats.BlockedTakes++
		for ch.count == 0 && !ch.closed && ctx.Err() == nil {
			ch.notEmpty.Wait()
		}
	}

	if ch.count == 0 {
		if ch.closed {
			return zero, ErrClosed
		}
		return zero, ctx.Err()
	}

	value := ch.dequeue()
	ch.stats.Takes++
	ch.stats.LastTakeTime = time.Now()
	ch.notFull.Signal()

	return value, nil
}

// TryTake implements Bounded.TryTake.
func (ch *bounded[T]) TryTake() (T, bool, error) {
	var zero T

	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.count == 0 {
		if ch.closed {
			return zero, false, ErrClosed
		}
		return zero, false, nil
	}

	value := ch.dequeue()
	ch.stats.Takes++
	ch.stats.LastTakeTime = time.Now()
	ch.notFull.Signal()

	return value, true, nil
}

// Close implements Bounded.Close.
func (ch *bounded[T]) Close() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.closed {
		return nil
	}
	ch.closed = true

	ch.notFull.Broadcast()
	ch.notEmpty.Broadcast()

	return nil
}

// IsClosed implements Bounded.IsClosed.
func (ch *bounded[T]) IsClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}

// Len implements Bounded.Len.
func (ch *bounded[T]) Len() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.count
}

// Cap implements Bounded.Cap.
func (ch *bounded[T]) Cap() int {
	return len(ch.buffer)
}

// Stats implements Bounded.Stats.
func (ch *bounded[T]) Stats() Stats {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	stats := ch.stats
	stats.Utilization = float64(ch.count) / float64(len(ch.buffer))
	return stats
}

// enqueue appends a value to the ring buffer (must hold lock).
func (ch *bounded[T]) enqueue(value T) {
	ch.buffer[ch.tail] = value
	ch.tail = (ch.tail + 1) % len(ch.buffer)
	ch.count++
}

// dequeue removes the oldest value from the ring buffer (must hold lock).
func (ch *bounded[T]) dequeue() T {
	value := ch.buffer[ch.head]
	var zero T
	ch.buffer[ch.head] = zero // Clear reference
	ch.head = (ch.head + 1) % len(ch.buffer)
	ch.count--
	return value
}
