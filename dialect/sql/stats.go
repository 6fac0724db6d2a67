package sql

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// catalogStats counts the catalog queries issued by a Driver. Inspectors
// run concurrently, so every field is updated atomically.
type catalogStats struct {
	queries atomic.Int64
	failed  atomic.Int64
	slow    atomic.Int64
	elapsed atomic.Int64 // nanoseconds
	slowest atomic.Int64 // nanoseconds
}

func (s *catalogStats) observe(d time.Duration, failed, slow bool) {
	s.queries.Add(1)
	s.elapsed.Add(int64(d))
	if failed {
		s.failed.Add(1)
	}
	if slow {
		s.slow.Add(1)
	}
	for {
		cur := s.slowest.Load()
		if int64(d) <= cur || s.slowest.CompareAndSwap(cur, int64(d)) {
			return
		}
	}
}

// Usage is the catalog query usage of a Driver at one point in time.
type Usage struct {
	Queries int64
	Failed  int64
	Slow    int64
	Elapsed time.Duration
	Slowest time.Duration
}

func (s *catalogStats) usage() Usage {
	return Usage{
		Queries: s.queries.Load(),
		Failed:  s.failed.Load(),
		Slow:    s.slow.Load(),
		Elapsed: time.Duration(s.elapsed.Load()),
		Slowest: time.Duration(s.slowest.Load()),
	}
}

// Mean returns the mean duration of a catalog query, 0 when none ran.
func (u Usage) Mean() time.Duration {
	if u.Queries == 0 {
		return 0
	}
	return u.Elapsed / time.Duration(u.Queries)
}

func (u Usage) String() string {
	return fmt.Sprintf("queries=%d failed=%d slow=%d elapsed=%s mean=%s slowest=%s",
		u.Queries, u.Failed, u.Slow, u.Elapsed, u.Mean(), u.Slowest)
}

// SlowQueryHook is called for each catalog query slower than the
// driver threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)
