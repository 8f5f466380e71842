package device

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedCommand is returned for a command that is not "<axis>+"
	// or "<axis>-".
	ErrMalformedCommand = errors.New("malformed command")
	// ErrUnknownCommand is returned for a command naming an axis the pad
	// does not have.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrAtLimit is returned when a step would move an axis past a bound
	// it already sits on.
	ErrAtLimit = errors.New("axis at limit")
)

// Direction is the sign of a step.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

func (d Direction) suffix() string {
	if d == Down {
		return "-"
	}
	return "+"
}

// FormatCommand builds the command that steps axis in direction d.
func FormatCommand(axis string, d Direction) string {
	return axis + d.suffix()
}

// ParseCommand splits a command into its axis name and direction.
func ParseCommand(command string) (string, Direction, error) {
	command = strings.TrimSpace(command)
	if len(command) < 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedCommand, command)
	}
	axis, sign := command[:len(command)-1], command[len(command)-1]
	switch sign {
	case '+':
		return axis, Up, nil
	case '-':
		return axis, Down, nil
	}
	return "", 0, fmt.Errorf("%w: %q", ErrMalformedCommand, command)
}
