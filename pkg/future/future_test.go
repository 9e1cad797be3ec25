package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/gowork/internal/testutil"
)

func TestCompleteAndGet(t *testing.T) {
	f := New[int]()
	testutil.AssertEqual(t, f.IsDone(), false)

	testutil.AssertEqual(t, f.Complete(42), true)
	testutil.AssertEqual(t, f.IsDone(), true)

	v, err := f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 42)

	// Reads are repeatable.
	v, err = f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 42)
}

func TestFail(t *testing.T) {
	cause := errors.New("boom")
	f := New[string]()

	testutil.AssertEqual(t, f.Fail(cause), true)

	_, err := f.Get()
	testutil.AssertEqual(t, err, cause)
}

func TestFailNilIgnored(t *testing.T) {
	f := New[int]()
	testutil.AssertEqual(t, f.Fail(nil), false)
	testutil.AssertEqual(t, f.IsDone(), false)

	f.Complete(1)
	v, err := f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)
}

func TestResolvesExactlyOnce(t *testing.T) {
	f := New[int]()

	testutil.AssertEqual(t, f.Complete(1), true)
	testutil.AssertEqual(t, f.Complete(2), false)
	testutil.AssertEqual(t, f.Fail(errors.New("late")), false)

	v, err := f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 1)
}

func TestConcurrentResolvers(t *testing.T) {
	// Many writers race; exactly one wins.
	f := New[int]()

	const writers = 16
	var wg sync.WaitGroup
	wins := make(chan int, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if f.Complete(i) {
				wins <- i
			}
		}(i)
	}

	wg.Wait()
	close(wins)

	var winners []int
	for w := range wins {
		winners = append(winners, w)
	}
	testutil.AssertEqual(t, len(winners), 1)

	v, err := f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, winners[0])
}

func TestGetBlocksUntilResolved(t *testing.T) {
	f := New[string]()

	got := make(chan string, 1)
	go func() {
		v, _ := f.Get()
		got <- v
	}()

	select {
	case <-got:
		t.Fatal("Get should block while pending")
	case <-time.After(50 * time.Millisecond):
	}

	f.Complete("ready")

	select {
	case v := <-got:
		testutil.AssertEqual(t, v, "ready")
	case <-time.After(time.Second):
		t.Fatal("Get should return after completion")
	}
}

func TestGetTimeout(t *testing.T) {
	f := New[int]()

	// Resolve well after the timed wait expires.
	go func() {
		time.Sleep(200 * time.Millisecond)
		f.Complete(7)
	}()

	start := time.Now()
	_, err := f.GetTimeout(30 * time.Millisecond)
	testutil.AssertEqual(t, err, ErrTimeout)
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("timed wait took too long: %v", elapsed)
	}

	// Timing out abandons only the wait; the eventual result is intact.
	v, err := f.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 7)
}

func TestGetContext(t *testing.T) {
	f := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := f.GetContext(ctx)
	testutil.AssertEqual(t, err, context.DeadlineExceeded)

	f.Complete(5)
	v, err := f.GetContext(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 5)
}

func TestTryGet(t *testing.T) {
	f := New[int]()

	_, ok, err := f.TryGet()
	testutil.AssertEqual(t, ok, false)
	testutil.AssertNoError(t, err)

	f.Complete(3)

	v, ok, err := f.TryGet()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 3)
}

func TestCompletedAndFailed(t *testing.T) {
	v, err := Completed(10).Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 10)

	cause := errors.New("nope")
	_, err = Failed[int](cause).Get()
	testutil.AssertEqual(t, err, cause)
}

func TestThen(t *testing.T) {
	f := New[int]()
	squared := Then(f, func(v int) (int, error) { return v * v, nil })

	f.Complete(6)

	v, err := squared.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 36)
}

func TestThenPropagatesError(t *testing.T) {
	cause := errors.New("upstream")
	called := false

	out := Then(Failed[int](cause), func(v int) (string, error) {
		called = true
		return "", nil
	})

	_, err := out.Get()
	testutil.AssertEqual(t, err, cause)
	testutil.AssertEqual(t, called, false)
}

func TestCombine(t *testing.T) {
	a := New[int]()
	b := New[int]()

	sum := Combine(a, b, func(x, y int) (int, error) { return x + y, nil })

	b.Complete(2)
	a.Complete(40)

	v, err := sum.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 42)
}

func TestCombineFailure(t *testing.T) {
	cause := errors.New("left side")
	a := Failed[int](cause)
	b := Completed(2)

	_, err := Combine(a, b, func(x, y int) (int, error) { return x + y, nil }).Get()
	testutil.AssertEqual(t, err, cause)
}

func TestCatch(t *testing.T) {
	recovered := Catch(Failed[int](errors.New("boom")), func(err error) (int, error) {
		return -1, nil
	})

	v, err := recovered.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, -1)

	// Success passes through without invoking the handler.
	passthrough := Catch(Completed(9), func(err error) (int, error) {
		t.Error("handler should not run on success")
		return 0, nil
	})

	v, err = passthrough.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 9)
}

func TestAll(t *testing.T) {
	fs := []*Future[int]{New[int](), New[int](), New[int]()}
	all := All(fs...)

	for i, f := range fs {
		f.Complete(i + 1)
	}

	values, err := all.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(values), 3)
	for i, v := range values {
		testutil.AssertEqual(t, v, i+1)
	}
}

func TestAllFailure(t *testing.T) {
	cause := errors.New("second failed")
	all := All(Completed(1), Failed[int](cause), Completed(3))

	_, err := all.Get()
	testutil.AssertEqual(t, err, cause)
}
