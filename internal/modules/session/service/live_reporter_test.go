package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/modules/session/service"
	"timetrack/internal/platform/clock"
)

func TestLiveReporterPreCancelledEmitsNothing(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	reporter := service.NewLiveReporter(&fakeClock{values: []time.Time{at(9, 0, 0)}}, time.Second, func(time.Duration) clock.Ticker {
		t.Fatal("ticker must not be created for a cancelled context")
		return nil
	})
	reporter.Run(ctx, at(9, 0, 0), func(service.Elapsed) { calls++ })
	assert.Zero(t, calls)
}

func TestLiveReporterEmitsPerTickUntilCancelled(t *testing.T) {
	t.Parallel()
	start := at(9, 0, 0)
	clk := &fakeClock{values: []time.Time{start, start.Add(time.Second), start.Add(2 * time.Second), start.Add(time.Hour + 3*time.Second)}}
	ticker := newManualTicker()
	var interval time.Duration
	reporter := service.NewLiveReporter(clk, 0, func(d time.Duration) clock.Ticker {
		interval = d
		return ticker
	})

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan service.Elapsed, 8)
	done := make(chan struct{})
	go func() {
		reporter.Run(ctx, start, func(e service.Elapsed) { updates <- e })
		close(done)
	}()

	first := <-updates
	assert.Equal(t, "00:00:00", first.String())

	want := []string{"00:00:01", "00:00:02", "01:00:03"}
	for _, w := range want {
		ticker.ch <- time.Now()
		got := <-updates
		assert.Equal(t, w, got.String())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not stop after cancellation")
	}
	<-ticker.stopped
	require.Equal(t, service.DefaultLiveInterval, interval)
	assert.Empty(t, updates)
}

func TestLiveReporterClampsFutureStart(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	ticker := newManualTicker()
	reporter := service.NewLiveReporter(&fakeClock{values: []time.Time{at(9, 0, 0)}}, time.Second, func(time.Duration) clock.Ticker { return ticker })

	var got []service.Elapsed
	done := make(chan struct{})
	go func() {
		reporter.Run(ctx, at(9, 5, 0), func(e service.Elapsed) {
			got = append(got, e)
			cancel()
		})
		close(done)
	}()
	<-done
	require.Len(t, got, 1)
	assert.Equal(t, time.Duration(0), got[0].Duration)
}
