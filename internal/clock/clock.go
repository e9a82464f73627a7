// Package clock abstracts wall-clock time and timer scheduling so that
// session ticking, alarm firing, and toast expiry can be driven
// deterministically in tests. The session and alarm state machines own
// their Ticker/Timer handles, which makes cancel-before-replace a
// structural guarantee rather than a convention.
package clock

import "time"

// Clock provides the current time and timer construction.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn to run once after d. Stop cancels it.
	AfterFunc(d time.Duration, fn func()) Timer

	// TickerFunc invokes fn repeatedly every interval until stopped.
	TickerFunc(interval time.Duration, fn func()) Ticker
}

// Timer is a cancellable one-shot.
type Timer interface {
	// Stop cancels the timer. Reports whether it was still pending.
	Stop() bool
}

// Ticker is a cancellable repeating callback.
type Ticker interface {
	Stop()
}

// System returns a Clock backed by the time package.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

func (systemClock) TickerFunc(interval time.Duration, fn func()) Ticker {
	t := &systemTicker{
		ticker: time.NewTicker(interval),
		quit:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}

type systemTicker struct {
	ticker *time.Ticker
	quit   chan struct{}
}

func (t *systemTicker) run(fn func()) {
	for {
		select {
		case <-t.ticker.C:
			fn()
		case <-t.quit:
			return
		}
	}
}

// Stop ends the tick loop. No callback starts after Stop returns the
// channel close, though one already in flight may finish.
func (t *systemTicker) Stop() {
	t.ticker.Stop()
	close(t.quit)
}
