// Package scheduler runs periodic tasks with cooperative cancellation.
package scheduler

import (
	"context"
	"time"

	"bfuture/internal/logger"
)

// IntervalScheduler executes a task, waits Interval, and repeats until its
// context is cancelled. The wait is a fixed gap between runs, not an aligned
// tick: a slow task simply delays the next one instead of stacking up.
type IntervalScheduler struct {
	Interval       time.Duration
	RunImmediately bool

	ctx context.Context
}

func NewIntervalScheduler(ctx context.Context, interval time.Duration) *IntervalScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &IntervalScheduler{Interval: interval, RunImmediately: true, ctx: ctx}
}

// Start blocks until the context is cancelled. The task receives the
// scheduler's context so in-flight work observes cancellation too.
func (s *IntervalScheduler) Start(task func(context.Context)) {
	if s == nil {
		return
	}
	if task == nil {
		logger.Warnf("IntervalScheduler: task is nil, exit")
		return
	}
	if s.Interval <= 0 {
		logger.Warnf("IntervalScheduler: invalid interval=%s, exit", s.Interval)
		return
	}
	logger.Infof("IntervalScheduler: started interval=%s run_immediately=%v", s.Interval, s.RunImmediately)

	if s.RunImmediately {
		if s.ctx.Err() != nil {
			return
		}
		task(s.ctx)
	}
	for {
		timer := time.NewTimer(s.Interval)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			logger.Infof("IntervalScheduler: ctx done, exit")
			return
		case <-timer.C:
		}
		task(s.ctx)
	}
}
