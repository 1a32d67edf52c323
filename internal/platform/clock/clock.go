package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the process location, so day
// boundaries follow the user's local midnight.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// InLocation converts every reading of the wrapped clock to loc.
type InLocation struct {
	Clock    Clock
	Location *time.Location
}

func (c InLocation) Now() time.Time {
	now := c.Clock.Now()
	if c.Location == nil {
		return now
	}
	return now.In(c.Location)
}

// Ticker delivers periodic ticks; tests substitute a manual implementation.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc builds a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type systemTicker struct {
	t *time.Ticker
}

func NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
