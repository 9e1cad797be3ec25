/*
Package schedule submits tasks into a worker pool at scheduled times.

The scheduler supports one-time tasks (at an instant or after a delay),
fixed-interval repetition, and cron expressions. Fired tasks execute on a
pool.Pool, so scheduling inherits the pool's concurrency limits, failure
isolation, and shutdown behavior.

	s, err := schedule.New()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}
	defer func() { <-s.Stop() }()

	s.ScheduleAfter("warmup", warmCache, 5*time.Second)
	s.ScheduleRepeating("heartbeat", sendHeartbeat, time.Minute)
	s.ScheduleCron("nightly-report", "0 2 * * *", buildReport)

Pass an existing pool through Config to share workers with other
submissions; otherwise the scheduler creates a small pool of its own and
shuts it down on Stop.

Dispatch resolution is bounded by Config.TickInterval (50ms by default):
a task fires on the first tick at or after its scheduled time. Repeating
tasks reschedule relative to the firing tick, not the previous target, so
intervals do not drift ahead of a slow pool.
*/
package schedule
