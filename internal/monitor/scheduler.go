package monitor

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives periodic focus checks. Checks are serialized: the next
// tick waits until the previous check returns.
type Scheduler struct {
	monitor  *Monitor
	interval time.Duration
	onResult func(CheckResult)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler runs a check every interval and passes each result to
// onResult (may be nil).
func NewScheduler(m *Monitor, interval time.Duration, onResult func(CheckResult)) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{monitor: m, interval: interval, onResult: onResult}
}

// Start launches the check loop. It is a no-op if already running.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		slog.Info("focus check scheduler started", "interval", s.interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				result := s.monitor.RunCheck(ctx)
				if s.onResult != nil {
					s.onResult(result)
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight check to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Running reports whether the scheduler loop is active.
func (s *Scheduler) Running() bool { return s.cancel != nil }
