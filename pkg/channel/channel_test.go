package channel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/gowork/internal/testutil"
	gwerrors "github.com/vnykmshr/gowork/pkg/common/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int
		wantError bool
	}{
		{"valid capacity", 10, false},
		{"capacity one", 1, false},
		{"zero capacity", 0, true},
		{"negative capacity", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := New[int](tt.capacity)

			if tt.wantError {
				testutil.AssertError(t, err)
				if !errors.Is(err, gwerrors.ErrInvalidConfiguration) {
					t.Errorf("expected configuration error, got %v", err)
				}
				return
			}

			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, ch.Cap(), tt.capacity)
			testutil.AssertEqual(t, ch.Len(), 0)
			testutil.AssertEqual(t, ch.IsClosed(), false)
		})
	}
}

func TestMustNew(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid capacity")
		}
	}()

	MustNew[int](0)
}

func TestBasicPutTake(t *testing.T) {
	ch := MustNew[int](5)
	defer ch.Close()

	ctx := context.Background()

	testutil.AssertNoError(t, ch.Put(ctx, 1))
	testutil.AssertNoError(t, ch.Put(ctx, 2))
	testutil.AssertNoError(t, ch.Put(ctx, 3))
	testutil.AssertEqual(t, ch.Len(), 3)

	v1, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v1, 1)

	v2, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v2, 2)

	testutil.AssertEqual(t, ch.Len(), 1)
}

func TestCapacityBoundary(t *testing.T) {
	// C puts never block; the (C+1)-th blocks until a take occurs.
	const capacity = 3
	ch := MustNew[int](capacity)
	defer ch.Close()

	ctx := context.Background()

	for i := 1; i <= capacity; i++ {
		done := make(chan struct{})
		go func(v int) {
			defer close(done)
			_ = ch.Put(ctx, v)
		}(i)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("put %d should not block below capacity", i)
		}
	}

	var extraDone atomic.Bool
	unblocked := make(chan struct{})
	go func() {
		defer close(unblocked)
		_ = ch.Put(ctx, capacity+1)
		extraDone.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	testutil.AssertEqual(t, extraDone.Load(), false)

	// One take frees a slot and unblocks the pending put.
	v, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)

	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("put should unblock after a take")
	}

	testutil.AssertEqual(t, ch.Len(), capacity)
}

func TestFIFOOrder(t *testing.T) {
	// Single producer, single consumer: take order equals put order.
	ch := MustNew[int](4)
	defer ch.Close()

	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := ch.Put(ctx, i); err != nil {
				t.Errorf("put %d: %v", i, err)
				return
			}
		}
	}()

	for i := 0; i < n; i++ {
		v, err := ch.Take(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, v, i)
	}

	wg.Wait()
}

func TestConcurrentProducersConsumers(t *testing.T) {
	// P producers x M puts each, Q consumers draining: exactly P*M distinct
	// values received, none lost, none duplicated.
	const (
		producers       = 5
		putsPerProducer = 200
		consumers       = 3
		total           = producers * putsPerProducer
	)

	ch := MustNew[int](8)
	ctx := context.Background()

	var producerWg sync.WaitGroup
	for p := 0; p < producers; p++ {
		producerWg.Add(1)
		go func(p int) {
			defer producerWg.Done()
			for m := 0; m < putsPerProducer; m++ {
				if err := ch.Put(ctx, p*putsPerProducer+m); err != nil {
					t.Errorf("put: %v", err)
					return
				}
			}
		}(p)
	}

	var mu sync.Mutex
	seen := make(map[int]int, total)

	var consumerWg sync.WaitGroup
	for q := 0; q < consumers; q++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				v, err := ch.Take(ctx)
				if err != nil {
					return // closed and drained
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	producerWg.Wait()
	ch.Close()
	consumerWg.Wait()

	testutil.AssertEqual(t, len(seen), total)
	for v, count := range seen {
		if count != 1 {
			t.Errorf("value %d received %d times", v, count)
		}
	}
}

func TestProducerLagScenario(t *testing.T) {
	// Capacity-3 channel, producer puts 1..5 with lagging consumer:
	// the 4th put blocks; after one take (returns 1) it unblocks and the
	// buffer holds [2,3,4].
	ch := MustNew[int](3)
	defer ch.Close()

	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		testutil.AssertNoError(t, ch.Put(ctx, i))
	}

	put4 := make(chan struct{})
	go func() {
		defer close(put4)
		_ = ch.Put(ctx, 4)
	}()

	time.Sleep(50 * time.Millisecond)
	select {
	case <-put4:
		t.Fatal("4th put should block on a full buffer")
	default:
	}

	v, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)

	select {
	case <-put4:
	case <-time.After(time.Second):
		t.Fatal("4th put should unblock after one take")
	}

	testutil.AssertEqual(t, ch.Len(), 3)
	for want := 2; want <= 4; want++ {
		v, err := ch.Take(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, v, want)
	}
}

func TestTryPutTryTake(t *testing.T) {
	ch := MustNew[string](2)
	defer ch.Close()

	testutil.AssertNoError(t, ch.TryPut("hello"))
	testutil.AssertNoError(t, ch.TryPut("world"))
	testutil.AssertEqual(t, ch.TryPut("overflow"), ErrFull)

	v, ok, err := ch.TryTake()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, v, "hello")

	empty := MustNew[string](2)
	defer empty.Close()

	_, ok, err = empty.TryTake()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, false)
}

func TestContextCancellation(t *testing.T) {
	ch := MustNew[int](1)
	defer ch.Close()

	t.Run("take on empty channel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := ch.Take(ctx)
		testutil.AssertEqual(t, err, context.DeadlineExceeded)
	})

	t.Run("put on full channel", func(t *testing.T) {
		testutil.AssertNoError(t, ch.Put(context.Background(), 1))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := ch.Put(ctx, 2)
		testutil.AssertEqual(t, err, context.DeadlineExceeded)

		// The channel is unaffected; the buffered value is still there.
		v, err := ch.Take(context.Background())
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, v, 1)
	})
}

func TestCloseSemantics(t *testing.T) {
	ch := MustNew[int](3)
	ctx := context.Background()

	testutil.AssertNoError(t, ch.Put(ctx, 1))
	testutil.AssertNoError(t, ch.Put(ctx, 2))

	testutil.AssertNoError(t, ch.Close())
	testutil.AssertNoError(t, ch.Close()) // idempotent
	testutil.AssertEqual(t, ch.IsClosed(), true)

	// Puts fail after close.
	testutil.AssertEqual(t, ch.Put(ctx, 3), ErrClosed)
	testutil.AssertEqual(t, ch.TryPut(3), ErrClosed)

	// Buffered values drain before ErrClosed.
	v, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)

	v, err = ch.Take(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 2)

	_, err = ch.Take(ctx)
	testutil.AssertEqual(t, err, ErrClosed)

	_, ok, err := ch.TryTake()
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, err, ErrClosed)
}

func TestCloseWakesBlockedOperations(t *testing.T) {
	ch := MustNew[int](1)
	ctx := context.Background()

	takeErr := make(chan error, 1)
	go func() {
		_, err := ch.Take(ctx)
		takeErr <- err
	}()

	testutil.AssertNoError(t, ch.Put(ctx, 1))
	putErr := make(chan error, 1)
	go func() {
		putErr <- ch.Put(ctx, 2)
	}()

	time.Sleep(50 * time.Millisecond)
	testutil.AssertNoError(t, ch.Close())

	select {
	case err := <-putErr:
		testutil.AssertEqual(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("blocked put should be woken by close")
	}

	// The blocked take received the buffered value before close took effect,
	// or observed the close; either way it must return promptly.
	select {
	case err := <-takeErr:
		if err != nil && err != ErrClosed {
			t.Errorf("unexpected take error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked take should be woken by close")
	}
}

func TestStats(t *testing.T) {
	ch := MustNew[int](2)
	defer ch.Close()

	ctx := context.Background()

	testutil.AssertNoError(t, ch.Put(ctx, 1))
	testutil.AssertNoError(t, ch.Put(ctx, 2))

	stats := ch.Stats()
	testutil.AssertEqual(t, stats.Puts, int64(2))
	testutil.AssertEqual(t, stats.Takes, int64(0))
	testutil.AssertEqual(t, stats.Utilization, 1.0)

	_, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)

	stats = ch.Stats()
	testutil.AssertEqual(t, stats.Takes, int64(1))
	testutil.AssertEqual(t, stats.Utilization, 0.5)
	testutil.AssertEqual(t, stats.LastPutTime.IsZero(), false)
	testutil.AssertEqual(t, stats.LastTakeTime.IsZero(), false)
}

func TestBlockedPutStats(t *testing.T) {
	ch := MustNew[int](1)
	defer ch.Close()

	ctx := context.Background()
	testutil.AssertNoError(t, ch.Put(ctx, 1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ch.Put(ctx, 2)
	}()

	time.Sleep(50 * time.Millisecond)
	_, err := ch.Take(ctx)
	testutil.AssertNoError(t, err)
	<-done

	stats := ch.Stats()
	testutil.AssertEqual(t, stats.BlockedPuts >= 1, true)
}
