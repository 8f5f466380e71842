package control

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Handler applies one command.
type Handler func(Command) error

const (
	queueSize      = 256
	enqueueTimeout = 150 * time.Millisecond
	replyTimeout   = 200 * time.Millisecond
)

// Loop serializes commands onto a single goroutine.
type Loop struct {
	ch     chan Command
	handle Handler
	logger *zap.Logger

	EnqueueTimeout time.Duration
	ReplyTimeout   time.Duration
}

// NewLoop returns a loop that applies commands with handle once Run is
// started.
func NewLoop(handle Handler, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		// Use a large buffer to reduce drops under fast-cadence bursts.
		ch:             make(chan Command, queueSize),
		handle:         handle,
		logger:         logger,
		EnqueueTimeout: enqueueTimeout,
		ReplyTimeout:   replyTimeout,
	}
}

// Run applies queued commands until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.ch:
			err := l.handle(cmd)
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

// Enqueue posts cmd without blocking the caller indefinitely. If the queue
// stays full for EnqueueTimeout the command is dropped.
func (l *Loop) Enqueue(cmd Command) error {
	select {
	case l.ch <- cmd:
		return nil
	case <-time.After(l.EnqueueTimeout):
		l.logger.Warn("Dropping command, queue full", zap.String("command", cmd.Name))
		return fmt.Errorf("%w: %s", ErrQueueFull, cmd.Name)
	}
}

// Send enqueues a command and waits for the handler's result. It has the
// shape of repeat.Sender.
func (l *Loop) Send(name string) error {
	reply := make(chan error, 1)
	if err := l.Enqueue(Command{Name: name, Reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-time.After(l.ReplyTimeout):
		return fmt.Errorf("%w: %s", ErrReplyTimeout, name)
	}
}
