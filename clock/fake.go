package clock

import (
	"sync"
	"time"
)

// Fake is a Scheduler running on virtual time. Nothing fires until Advance
// moves the clock forward. Callbacks run on the goroutine calling Advance,
// in order of due time and then creation order, without the clock's lock
// held, so a callback may schedule or stop other callbacks.
type Fake struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers map[uint64]*fakeTimer
}

type fakeTimer struct {
	f      *Fake
	id     uint64
	due    time.Duration
	period time.Duration // zero for one-shot timers
	fn     func()
}

// NewFake returns a virtual clock positioned at zero.
func NewFake() *Fake {
	return &Fake{timers: make(map[uint64]*fakeTimer)}
}

// Now returns the virtual time elapsed since NewFake.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Pending returns the number of live handles.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// After implements Scheduler.
func (f *Fake) After(d time.Duration, fn func()) Handle {
	return f.add(d, 0, fn)
}

// Every implements Scheduler. Like time.NewTicker it panics on a
// non-positive period.
func (f *Fake) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return f.add(d, d, fn)
}

func (f *Fake) add(d, period time.Duration, fn func()) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &fakeTimer{f: f, id: f.nextID, due: f.now + d, period: period, fn: fn}
	f.timers[t.id] = t
	return t
}

// Advance moves the clock forward by d, firing every callback that falls
// due on the way, including callbacks scheduled by earlier callbacks.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		t := f.earliest(target)
		if t == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			delete(f.timers, t.id)
		}
		fn := t.fn
		f.mu.Unlock()

		fn()
	}
}

func (f *Fake) earliest(limit time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, t := range f.timers {
		if t.due > limit {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

func (t *fakeTimer) Stop() {
	t.f.mu.Lock()
	delete(t.f.timers, t.id)
	t.f.mu.Unlock()
}
