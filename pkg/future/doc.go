/*
Package future provides one-shot, write-once result handles for asynchronous
computations.

A Future resolves exactly once to a value or an error. The resolving side
calls Complete or Fail; any number of consumers block on Get (optionally with
a timeout or context) to observe the result. Completed results can be read
any number of times.

	f := future.New[int]()

	go func() {
		v, err := compute()
		if err != nil {
			f.Fail(err)
			return
		}
		f.Complete(v)
	}()

	v, err := f.Get() // blocks until resolved

Timed waits abandon only the wait, never the computation:

	v, err := f.GetTimeout(time.Second)
	if errors.Is(err, future.ErrTimeout) {
		// still running; a later Get returns the eventual result
		v, err = f.Get()
	}

Composition:

Futures can be chained without blocking the caller. Then transforms a value,
Combine joins two futures, Catch recovers from failures, and All collects a
slice of results:

	squared := future.Then(f, func(v int) (int, error) { return v * v, nil })
	sum := future.Combine(a, b, func(x, y int) (int, error) { return x + y, nil })
	safe := future.Catch(f, func(err error) (int, error) { return 0, nil })
	all, err := future.All(f1, f2, f3).Get()

Each composition runs in its own goroutine that exits once the source future
resolves; abandoning a composed future of a never-resolving source leaks that
goroutine, so resolve or fail every future you create.
*/
package future
