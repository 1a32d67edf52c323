package service

import (
	"context"
	"time"

	"timetrack/internal/modules/session/domain"
	"timetrack/internal/platform/clock"
)

const DefaultLiveInterval = time.Second

// Elapsed is one live display update.
type Elapsed struct {
	At       time.Time
	Duration time.Duration
}

func (e Elapsed) String() string {
	return domain.FormatElapsed(e.Duration)
}

// LiveReporter recomputes elapsed time for an open session on a fixed
// cadence. It never reads or writes the store.
type LiveReporter struct {
	clock     clock.Clock
	interval  time.Duration
	newTicker clock.TickerFunc
}

func NewLiveReporter(clk clock.Clock, interval time.Duration, newTicker clock.TickerFunc) *LiveReporter {
	if interval <= 0 {
		interval = DefaultLiveInterval
	}
	if newTicker == nil {
		newTicker = clock.NewTicker
	}
	return &LiveReporter{clock: clk, interval: interval, newTicker: newTicker}
}

// Run emits an update immediately and then once per tick until ctx is done.
// A context that is already done produces no updates.
func (r *LiveReporter) Run(ctx context.Context, startedAt time.Time, sink func(Elapsed)) {
	if ctx.Err() != nil {
		return
	}
	emit := func() {
		now := r.clock.Now()
		elapsed := now.Sub(startedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		sink(Elapsed{At: now, Duration: elapsed})
	}

	emit()
	ticker := r.newTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			// Both cases may be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			emit()
		}
	}
}
