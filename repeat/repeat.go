// Package repeat turns press and release signals from a UI control into a
// timed stream of command dispatches. A press dispatches once immediately,
// then on a normal cadence, and on a fast cadence once the press has been
// held long enough. Releasing, cancelling or leaving the control stops it.
//
// A Controller tracks one press at a time. Give each control its own
// Controller when several may be held together.
package repeat

import (
	"fmt"
	"sync"
	"time"

	"HoldPad/clock"

	"go.uber.org/zap"
)

// Sender delivers one command. The controller calls it on its own goroutine
// and does not wait for it; a failed send does not stop repetition.
type Sender func(command string) error

// Cadence configures the repeat timing.
type Cadence struct {
	Interval     time.Duration // period while the press is young
	FastInterval time.Duration // period after SpeedupAfter
	SpeedupAfter time.Duration
}

// DefaultCadence is 500ms, switching to 100ms after 5s.
var DefaultCadence = Cadence{
	Interval:     500 * time.Millisecond,
	FastInterval: 100 * time.Millisecond,
	SpeedupAfter: 5 * time.Second,
}

// Validate reports whether c can drive a controller.
func (c Cadence) Validate() error {
	switch {
	case c.Interval <= 0:
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	case c.FastInterval <= 0:
		return fmt.Errorf("fast interval must be positive, got %v", c.FastInterval)
	case c.SpeedupAfter <= 0:
		return fmt.Errorf("speedup delay must be positive, got %v", c.SpeedupAfter)
	case c.FastInterval >= c.Interval:
		return fmt.Errorf("fast interval %v is not shorter than interval %v", c.FastInterval, c.Interval)
	}
	return nil
}

// State is the repeat phase of a controller.
type State int

const (
	Idle State = iota
	Normal
	Fast
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event is the input event handed to a touch-start handler. PreventDefault
// suppresses whatever the platform would synthesize after the touch.
type Event interface {
	PreventDefault()
}

// EventHandlerSet holds the handlers a view binds to one control.
type EventHandlerSet struct {
	PressStart  func()
	PressEnd    func()
	PressLeave  func()
	TouchStart  func(Event)
	TouchEnd    func()
	TouchCancel func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithCadence overrides DefaultCadence.
func WithCadence(c Cadence) Option {
	return func(ctl *Controller) { ctl.cadence = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// press is the live part of a held control. A nil press means Idle. Timer
// callbacks compare their press against the current one, so a callback that
// outlives its press dispatches nothing. owner identifies the handler set
// that started the press; zero means Start was called directly.
type press struct {
	command  string
	owner    uint64
	fast     bool
	interval clock.Handle
	speedup  clock.Handle
}

// Controller dispatches a command repeatedly while a control is held.
type Controller struct {
	send    Sender
	sched   clock.Scheduler
	cadence Cadence
	logger  *zap.Logger

	mu        sync.Mutex
	active    *press
	lastOwner uint64

	inflight sync.WaitGroup
}

// New returns an idle controller that dispatches through send and schedules
// on sched. A nil sched means clock.System.
func New(send Sender, sched clock.Scheduler, opts ...Option) *Controller {
	if sched == nil {
		sched = clock.System
	}
	c := &Controller{
		send:    send,
		sched:   sched,
		cadence: DefaultCadence,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ButtonEvents returns the handlers that repeat command while the control
// they are bound to is held. The stop handlers of a set only end a press the
// same set started, so releasing one control never stops another.
func (c *Controller) ButtonEvents(command string) EventHandlerSet {
	c.mu.Lock()
	c.lastOwner++
	owner := c.lastOwner
	c.mu.Unlock()

	stop := func() { c.stopOwned(owner) }
	return EventHandlerSet{
		PressStart: func() { c.start(command, owner) },
		PressEnd:   stop,
		PressLeave: stop,
		TouchStart: func(e Event) {
			if e != nil {
				e.PreventDefault()
			}
			c.start(command, owner)
		},
		TouchEnd:    stop,
		TouchCancel: stop,
	}
}

// Start dispatches command now and keeps dispatching it until Stop. A press
// already in progress is cancelled first.
func (c *Controller) Start(command string) {
	c.start(command, 0)
}

func (c *Controller) start(command string, owner uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.logger.Debug("Replacing active press",
			zap.String("previous", c.active.command),
			zap.String("command", command))
		c.cancelLocked()
	}

	p := &press{command: command, owner: owner}
	c.active = p
	c.logger.Debug("Repeat started", zap.String("command", command))

	c.dispatch(command)
	p.interval = c.sched.Every(c.cadence.Interval, func() { c.tick(p) })
	p.speedup = c.sched.After(c.cadence.SpeedupAfter, func() { c.speedUp(p) })
}

// Stop cancels the active press, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return
	}
	c.logger.Debug("Repeat stopped", zap.String("command", c.active.command))
	c.cancelLocked()
}

// stopOwned cancels the active press only if owner started it.
func (c *Controller) stopOwned(owner uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.owner != owner {
		return
	}
	c.logger.Debug("Repeat stopped", zap.String("command", c.active.command))
	c.cancelLocked()
}

// State returns the current repeat phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.active == nil:
		return Idle
	case c.active.fast:
		return Fast
	default:
		return Normal
	}
}

// Command returns the command being repeated, or "" when idle.
func (c *Controller) Command() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ""
	}
	return c.active.command
}

// Wait blocks until every send started so far has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) cancelLocked() {
	p := c.active
	if p.interval != nil {
		p.interval.Stop()
	}
	if p.speedup != nil {
		p.speedup.Stop()
	}
	c.active = nil
}

func (c *Controller) tick(p *press) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != p {
		return
	}
	c.dispatch(p.command)
}

func (c *Controller) speedUp(p *press) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != p || p.fast {
		return
	}
	p.interval.Stop()
	p.interval = c.sched.Every(c.cadence.FastInterval, func() { c.tick(p) })
	p.speedup = nil
	p.fast = true
	c.logger.Debug("Repeat sped up",
		zap.String("command", p.command),
		zap.Duration("interval", c.cadence.FastInterval))
}

// dispatch must be called with mu held so that Wait sees every send that a
// live press started.
func (c *Controller) dispatch(command string) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if err := c.send(command); err != nil {
			c.logger.Debug("Send failed", zap.String("command", command), zap.Error(err))
		}
	}()
}
