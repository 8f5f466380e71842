// Package device holds the state that commands act on: a pad of named axes,
// each stepped up or down within its bounds.
//
// Pad is shared between the command loop, which applies commands, and the
// UI, which renders snapshots. All access goes through its RWMutex.
package device

import (
	"errors"
	"fmt"
	"sync"
)

// AxisConfig holds the static configuration for one axis.
type AxisConfig struct {
	Name    string `yaml:"name"`
	Label   string `yaml:"label"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max"`
	Step    int    `yaml:"step"`
	Initial int    `yaml:"initial"`

	// Optional key names (fyne.KeyName) that hold the axis down or up.
	DecKey string `yaml:"dec_key"`
	IncKey string `yaml:"inc_key"`
}

// Validate checks the bounds and step of a single axis.
func (c AxisConfig) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("axis name is empty")
	case c.Step <= 0:
		return fmt.Errorf("axis %q: step must be positive, got %d", c.Name, c.Step)
	case c.Min >= c.Max:
		return fmt.Errorf("axis %q: min %d is not below max %d", c.Name, c.Min, c.Max)
	case c.Initial < c.Min || c.Initial > c.Max:
		return fmt.Errorf("axis %q: initial %d outside [%d, %d]", c.Name, c.Initial, c.Min, c.Max)
	}
	return nil
}

// Axis is a point-in-time view of one axis.
type Axis struct {
	Name  string
	Label string
	Value int
	Min   int
	Max   int
}

type axisState struct {
	*AxisConfig
	value int
}

// Pad is a set of axes addressed by name.
type Pad struct {
	mu    sync.RWMutex
	axes  []*axisState
	index map[string]*axisState
}

// NewPad creates a pad with every axis at its initial value.
func NewPad(configs []AxisConfig) (*Pad, error) {
	p := &Pad{index: make(map[string]*axisState, len(configs))}
	for i := range configs {
		c := configs[i]
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := p.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate axis %q", c.Name)
		}
		a := &axisState{AxisConfig: &c, value: c.Initial}
		p.axes = append(p.axes, a)
		p.index[c.Name] = a
	}
	return p, nil
}

// Apply executes one step command. On ErrAtLimit the returned snapshot
// still describes the axis.
func (p *Pad) Apply(command string) (Axis, error) {
	name, dir, err := ParseCommand(command)
	if err != nil {
		return Axis{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.index[name]
	if !ok {
		return Axis{}, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	next := a.value + int(dir)*a.Step
	if next > a.Max {
		next = a.Max
	}
	if next < a.Min {
		next = a.Min
	}
	if next == a.value {
		return a.snapshot(), fmt.Errorf("%w: %s at %d", ErrAtLimit, name, a.value)
	}
	a.value = next
	return a.snapshot(), nil
}

// Axis returns a snapshot of the named axis.
func (p *Pad) Axis(name string) (Axis, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.index[name]
	if !ok {
		return Axis{}, false
	}
	return a.snapshot(), true
}

// Snapshot returns every axis in configuration order.
func (p *Pad) Snapshot() []Axis {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Axis, 0, len(p.axes))
	for _, a := range p.axes {
		out = append(out, a.snapshot())
	}
	return out
}

// Reset puts every axis back at its initial value.
func (p *Pad) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.axes {
		a.value = a.Initial
	}
}

func (a *axisState) snapshot() Axis {
	label := a.Label
	if label == "" {
		label = a.Name
	}
	return Axis{Name: a.Name, Label: label, Value: a.value, Min: a.Min, Max: a.Max}
}
