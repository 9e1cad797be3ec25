/*
Package channel provides a bounded, blocking FIFO channel for handing values
between producers and consumers with backpressure.

Unlike Go's built-in channels, a Bounded channel exposes its state (length,
capacity, closed), collects activity statistics, and supports context-aware
blocking operations alongside non-blocking variants.

Core Semantics:

A Bounded channel has a fixed capacity set at construction. Put blocks while
the buffer is full; Take blocks while the buffer is empty. Values are
delivered in the order puts completed. Both operations are safe for any
number of concurrent producers and consumers; no external locking is needed.

	ch, err := channel.New[int](3)
	if err != nil {
		log.Fatal(err)
	}
	defer ch.Close()

	ctx := context.Background()

	// Producer side: the 4th put blocks until a consumer takes.
	ch.Put(ctx, 1)
	ch.Put(ctx, 2)
	ch.Put(ctx, 3)

	// Consumer side: values come back in put order.
	v, _ := ch.Take(ctx) // 1

Blocking and Cancellation:

Blocked operations are woken by the complementary operation, by Close, or by
cancellation of the supplied context. A context error abandons only the wait;
the channel itself is unaffected.

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := ch.Take(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		// no value arrived in time
	}

Close Semantics:

Close is idempotent and only stops puts. Buffered values remain takeable;
once the buffer is drained, Take returns ErrClosed. This lets a producer
signal end-of-stream without losing in-flight values:

	go func() {
		for _, v := range values {
			ch.Put(ctx, v)
		}
		ch.Close()
	}()

	for {
		v, err := ch.Take(ctx)
		if err != nil {
			break // ErrClosed after the buffer drains
		}
		process(v)
	}

Non-Blocking Variants:

TryPut and TryTake never block. TryPut returns ErrFull when there is no
space; TryTake reports absence through its boolean result.

Statistics:

Stats exposes put/take counts, how often each side had to wait, and current
buffer utilization, which makes sizing decisions observable:

	stats := ch.Stats()
	fmt.Printf("blocked puts: %d, utilization: %.0f%%\n",
		stats.BlockedPuts, stats.Utilization*100)

For Prometheus integration see NewWithMetrics in this package.
*/
package channel
