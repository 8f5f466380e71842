package main

import (
	"sync"
	"testing"
	"time"

	"HoldPad/clock"
	"HoldPad/config"
	"HoldPad/control"
	"HoldPad/device"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type recordingView struct {
	mu   sync.Mutex
	last device.Axis
	n    int
}

func (v *recordingView) UpdateDisplay(axis device.Axis) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = axis
	v.n++
}

func (v *recordingView) value() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last.Value
}

func newTestApp(t *testing.T) (*AppManager, *clock.Fake) {
	t.Helper()
	defaults, err := content.ReadFile(defaultConfigFile)
	require.NoError(t, err)
	cfg, err := config.Load(defaults, "")
	require.NoError(t, err)

	fake := clock.NewFake()
	a, err := NewAppManager(cfg, content, zap.NewNop(), fake, false)
	require.NoError(t, err)
	return a, fake
}

// settle advances the fake clock and waits until every dispatched command
// has been applied by the loop.
func (a *AppManager) settle(fake *clock.Fake, d time.Duration) {
	fake.Advance(d)
	a.controllersLock.Lock()
	defer a.controllersLock.Unlock()
	for _, c := range a.controllers {
		c.Wait()
	}
}

func axisValue(t *testing.T, a *AppManager, name string) int {
	t.Helper()
	axis, ok := a.pad.Axis(name)
	require.True(t, ok)
	return axis.Value
}

func TestHeldKeyRepeats(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)
	defer a.Shutdown()

	view := &recordingView{}
	a.RegisterAxisView("pan", view)

	right := &fyne.KeyEvent{Name: fyne.KeyRight}
	a.HandleKeyDown(right)
	a.settle(fake, 600*time.Millisecond)
	a.HandleKeyDown(right)
	a.settle(fake, 400*time.Millisecond)
	assert.Equal(t, 3, axisValue(t, a, "pan"), "OS key repeat does not restart the press")

	a.HandleKeyUp(right)
	a.settle(fake, 10*time.Second)
	assert.Equal(t, 3, axisValue(t, a, "pan"))
	assert.Equal(t, 3, view.value())
}

func TestHeldKeySpeedsUp(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)
	defer a.Shutdown()

	a.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyDown})
	for i := 0; i < 52; i++ {
		a.settle(fake, 100*time.Millisecond)
	}
	a.HandleKeyUp(&fyne.KeyEvent{Name: fyne.KeyDown})

	assert.Equal(t, -13, axisValue(t, a, "tilt"))
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)
	defer a.Shutdown()

	a.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyF1})
	a.HandleKeyUp(&fyne.KeyEvent{Name: fyne.KeyF1})
	a.HandleKeyUp(&fyne.KeyEvent{Name: fyne.KeyRight})
	a.settle(fake, time.Second)

	snap := a.Snapshot()
	require.Len(t, snap, len(a.cfg.Axes))
	for i, axis := range snap {
		assert.Equal(t, a.cfg.Axes[i].Initial, axis.Value, axis.Name)
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)
	defer a.Shutdown()

	view := &recordingView{}
	a.RegisterAxisView("pan", view)

	a.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyLeft})
	a.settle(fake, time.Second)
	require.Equal(t, -3, axisValue(t, a, "pan"))

	a.HandleKeyRune('r')
	a.resets.Wait()
	require.NoError(t, a.loop.Send("volume+"))

	assert.Equal(t, 0, axisValue(t, a, "pan"))
	assert.Equal(t, 32, axisValue(t, a, "volume"))
	assert.Equal(t, 0, view.value())

	a.settle(fake, time.Second)
	assert.Equal(t, 0, axisValue(t, a, "pan"), "reset stops held keys")
}

// gatedView holds the command loop inside UpdateDisplay until open is
// closed.
type gatedView struct {
	open chan struct{}
}

func (v *gatedView) UpdateDisplay(device.Axis) {
	<-v.open
}

func TestResetLandsAfterInFlightSends(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)
	defer a.Shutdown()

	gate := &gatedView{open: make(chan struct{})}
	a.RegisterAxisView("volume", gate)
	require.NoError(t, a.loop.Enqueue(control.Command{Name: "volume+"}))

	// The loop is stuck on volume+, so this press's send is still pending
	// when the reset is requested.
	a.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyLeft})
	a.ResetPad()
	close(gate.open)

	a.resets.Wait()
	require.NoError(t, a.loop.Send("zoom+"))
	a.settle(fake, time.Second)

	assert.Equal(t, 0, axisValue(t, a, "pan"), "pan- from before the reset did not land after it")
	assert.Equal(t, 30, axisValue(t, a, "volume"))
}

func TestHandleCommandErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, _ := newTestApp(t)
	defer a.Shutdown()

	assert.ErrorIs(t, a.loop.Send("focus+"), device.ErrUnknownCommand)
	assert.ErrorIs(t, a.loop.Send("zoom-"), device.ErrAtLimit)
	assert.ErrorIs(t, a.loop.Send("zoom"), device.ErrMalformedCommand)
	assert.NoError(t, a.loop.Send("zoom+"))
	assert.Equal(t, 2, axisValue(t, a, "zoom"))
}

func TestShutdownIsCleanWhileHeld(t *testing.T) {
	defer goleak.VerifyNone(t)
	a, fake := newTestApp(t)

	a.HandleKeyDown(&fyne.KeyEvent{Name: fyne.KeyUp})
	a.settle(fake, 700*time.Millisecond)
	a.Shutdown()

	fake.Advance(time.Minute)
	assert.Equal(t, 2, axisValue(t, a, "tilt"))
	assert.Equal(t, 0, fake.Pending())
}
