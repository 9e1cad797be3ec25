/*
Package gowork provides blocking concurrency primitives for Go applications:
bounded channels, worker pools, and one-shot futures.

Channels (pkg/channel):
  - Bounded: fixed-capacity FIFO channel with blocking put/take and backpressure

Execution (pkg/pool, pkg/future, pkg/schedule):
  - pool: fixed-size worker pool returning a future per submitted task
  - future: write-once result handles with blocking retrieval and composition
  - schedule: delay, interval, and cron submission into a pool

Example usage:

	import (
		"github.com/vnykmshr/gowork/pkg/channel"
		"github.com/vnykmshr/gowork/pkg/pool"
	)

	ch := channel.MustNew[int](16) // capacity 16
	p, _ := pool.New(4)            // 4 workers

	f, _ := pool.Submit(p, func(ctx context.Context) (int, error) {
		return compute(), nil
	})
	v, err := f.Get()
*/
package gowork
