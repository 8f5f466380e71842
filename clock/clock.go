// Package clock provides the timer facility that drives repeating commands.
// Callers depend on the Scheduler interface so that tests can replace real
// elapsed time with the virtual clock in fake.go.
package clock

import (
	"sync"
	"time"
)

// Handle is a pending scheduled callback. Stop guarantees that no further
// callbacks start from the handle; a callback already running is not
// interrupted. Stop may be called any number of times.
type Handle interface {
	Stop()
}

// Scheduler schedules recurring and one-shot callbacks.
type Scheduler interface {
	// Every calls fn every d until the returned handle is stopped. The
	// first call happens after d, not immediately.
	Every(d time.Duration, fn func()) Handle
	// After calls fn once after d.
	After(d time.Duration, fn func()) Handle
}

// System is the Scheduler backed by the runtime timers.
var System Scheduler = systemScheduler{}

type systemScheduler struct{}

func (systemScheduler) After(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(d, fn)}
}

func (systemScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{ticker: time.NewTicker(d), done: make(chan struct{})}
	go h.run(fn)
	return h
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Stop() {
	h.t.Stop()
}

// tickerHandle owns the goroutine that forwards ticks to fn. The goroutine
// exits once Stop closes done.
type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(fn func()) {
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			// A tick and Stop can be ready together; Stop wins.
			select {
			case <-h.done:
				return
			default:
			}
			fn()
		}
	}
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
