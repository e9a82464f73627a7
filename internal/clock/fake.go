package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests. Advance fires due timers
// and tickers synchronously on the calling goroutine, in timestamp order,
// so a test observes every side effect before Advance returns.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	nextSeq int
	events  []*fakeEvent
}

type fakeEvent struct {
	at       time.Time
	seq      int // tiebreaker for equal timestamps, preserves schedule order
	interval time.Duration // 0 for one-shots
	fn       func()
	stopped  bool
}

// NewFake creates a fake clock frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules a one-shot at now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev := f.schedule(f.now.Add(d), 0, fn)
	return &fakeTimer{f: f, ev: ev}
}

// TickerFunc schedules a repeating callback every interval.
func (f *Fake) TickerFunc(interval time.Duration, fn func()) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev := f.schedule(f.now.Add(interval), interval, fn)
	return &fakeTicker{f: f, ev: ev}
}

func (f *Fake) schedule(at time.Time, interval time.Duration, fn func()) *fakeEvent {
	ev := &fakeEvent{at: at, seq: f.nextSeq, interval: interval, fn: fn}
	f.nextSeq++
	f.events = append(f.events, ev)
	return ev
}

// Advance moves the clock forward by d, firing every timer and ticker
// callback that comes due, in order. Callbacks run without the internal
// lock held, so they may schedule or stop timers themselves.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		ev := f.nextDue(target)
		if ev == nil {
			break
		}
		f.now = ev.at
		if ev.interval > 0 {
			ev.at = ev.at.Add(ev.interval)
		} else {
			ev.stopped = true
		}
		fn := ev.fn
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}

	f.now = target
	f.compact()
	f.mu.Unlock()
}

// nextDue returns the earliest unstopped event at or before target.
func (f *Fake) nextDue(target time.Time) *fakeEvent {
	var due *fakeEvent
	for _, ev := range f.events {
		if ev.stopped || ev.at.After(target) {
			continue
		}
		if due == nil || ev.at.Before(due.at) || (ev.at.Equal(due.at) && ev.seq < due.seq) {
			due = ev
		}
	}
	return due
}

func (f *Fake) compact() {
	live := f.events[:0]
	for _, ev := range f.events {
		if !ev.stopped {
			live = append(live, ev)
		}
	}
	f.events = live
	sort.SliceStable(f.events, func(i, j int) bool {
		return f.events[i].at.Before(f.events[j].at)
	})
}

// Pending returns the number of scheduled, unstopped timers and tickers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ev := range f.events {
		if !ev.stopped {
			n++
		}
	}
	return n
}

type fakeTimer struct {
	f  *Fake
	ev *fakeEvent
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	was := !t.ev.stopped
	t.ev.stopped = true
	return was
}

type fakeTicker struct {
	f  *Fake
	ev *fakeEvent
}

func (t *fakeTicker) Stop() {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	t.ev.stopped = true
}
