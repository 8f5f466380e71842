// Package control defines the command messages that hold controllers send
// to the application, and the loop that applies them one at a time. The
// loop centralizes state changes to avoid races and to simplify
// synchronization.
package control

import "errors"

var (
	// ErrQueueFull is returned when a command could not be queued in time.
	ErrQueueFull = errors.New("command queue full")
	// ErrReplyTimeout is returned when the loop did not confirm a command
	// in time.
	ErrReplyTimeout = errors.New("command reply timed out")
)

// Command is the message sent to Loop. Name is opaque to the loop and is
// interpreted by its Handler. The optional Reply channel receives the
// handler's result.
type Command struct {
	Name  string
	Reply chan error // optional reply channel
}
