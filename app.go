// Package main contains the application wiring and the AppManager, which
// coordinates the pad, the hold controllers, audio feedback and the UI.
//
// Concurrency model:
//   - Every command, whether from a held button, a held key or the reset
//     button, goes through a single control.Loop goroutine, so pad updates
//     are applied one at a time and in order.
//   - Hold controllers dispatch from timer goroutines and block on the
//     loop's reply, never on the UI.
//   - Views are refreshed with fyne.Do from the loop goroutine.
//   - heldKeys is only touched from fyne's event goroutine.
package main

import (
	"context"
	"embed"
	"errors"
	"sync"
	"time"

	"HoldPad/clock"
	"HoldPad/config"
	"HoldPad/control"
	"HoldPad/device"
	"HoldPad/i18n"
	"HoldPad/repeat"
	"HoldPad/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// cmdReset is handled by the loop itself. It can never parse as an axis
// command because it does not end in a sign.
const cmdReset = "reset"

const (
	clickSampleRate = beep.SampleRate(44100)
	clickFrequency  = 880.0
	clickLength     = 15 * time.Millisecond
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	cfg        *config.Config
	pad        *device.Pad
	sched      clock.Scheduler
	logger     *zap.Logger

	loop       *control.Loop
	loopCancel context.CancelFunc
	loopDone   chan struct{}

	controllersLock sync.Mutex
	controllers     []*repeat.Controller
	resets          sync.WaitGroup

	viewsLock sync.Mutex
	views     map[string]ui.AxisView

	keyBindings map[fyne.KeyName]repeat.EventHandlerSet
	heldKeys    map[fyne.KeyName]bool

	click       *beep.Buffer
	speakerLock sync.Mutex
	content     embed.FS // Embedded file system for assets
}

// NewAppManager creates the application manager and starts its command
// loop. Controllers it creates schedule on sched.
func NewAppManager(cfg *config.Config, content embed.FS, logger *zap.Logger, sched clock.Scheduler, sound bool) (*AppManager, error) {
	pad, err := device.NewPad(cfg.Axes)
	if err != nil {
		return nil, err
	}

	a := &AppManager{
		cfg:         cfg,
		pad:         pad,
		sched:       sched,
		logger:      logger,
		views:       make(map[string]ui.AxisView),
		keyBindings: make(map[fyne.KeyName]repeat.EventHandlerSet),
		heldKeys:    make(map[fyne.KeyName]bool),
		content:     content,
	}
	logger.Info("Loaded pad", zap.Int("axes", len(cfg.Axes)))

	if sound {
		a.loadClick()
	}

	a.loop = control.NewLoop(a.handleCommand, logger.Named("control"))
	ctx, cancel := context.WithCancel(context.Background())
	a.loopCancel = cancel
	a.loopDone = make(chan struct{})
	go func() {
		defer close(a.loopDone)
		a.loop.Run(ctx)
	}()

	for _, c := range cfg.Axes {
		a.bindKey(c.DecKey, device.FormatCommand(c.Name, device.Down))
		a.bindKey(c.IncKey, device.FormatCommand(c.Name, device.Up))
	}

	return a, nil
}

func (a *AppManager) bindKey(key, command string) {
	if key == "" {
		return
	}
	name := fyne.KeyName(key)
	if _, dup := a.keyBindings[name]; dup {
		a.logger.Warn("Key bound twice, keeping first binding", zap.String("key", key), zap.String("command", command))
		return
	}
	a.keyBindings[name] = a.NewController().ButtonEvents(command)
}

// NewController returns a hold controller that sends through the command
// loop. The manager stops it on Shutdown.
func (a *AppManager) NewController() *repeat.Controller {
	c := repeat.New(a.loop.Send, a.sched,
		repeat.WithCadence(a.cfg.Cadence.Repeat()),
		repeat.WithLogger(a.logger.Named("repeat")))

	a.controllersLock.Lock()
	a.controllers = append(a.controllers, c)
	a.controllersLock.Unlock()
	return c
}

// Snapshot returns every axis.
func (a *AppManager) Snapshot() []device.Axis {
	return a.pad.Snapshot()
}

// RegisterAxisView sets the view refreshed when the named axis changes.
func (a *AppManager) RegisterAxisView(name string, v ui.AxisView) {
	a.viewsLock.Lock()
	defer a.viewsLock.Unlock()
	a.views[name] = v
}

func (a *AppManager) handleCommand(cmd control.Command) error {
	if cmd.Name == cmdReset {
		a.pad.Reset()
		for _, axis := range a.pad.Snapshot() {
			a.updateView(axis)
		}
		a.logger.Debug("Pad reset")
		return nil
	}

	axis, err := a.pad.Apply(cmd.Name)
	switch {
	case errors.Is(err, device.ErrAtLimit):
		a.logger.Debug("Axis at limit", zap.String("command", cmd.Name), zap.Int("value", axis.Value))
		return err
	case err != nil:
		a.logger.Warn("Rejected command", zap.String("command", cmd.Name), zap.Error(err))
		return err
	}

	a.logger.Debug("Applied command", zap.String("command", cmd.Name), zap.Int("value", axis.Value))
	a.updateView(axis)
	a.PlaySound()
	return nil
}

func (a *AppManager) updateView(axis device.Axis) {
	a.viewsLock.Lock()
	v := a.views[axis.Name]
	a.viewsLock.Unlock()
	if v != nil {
		v.UpdateDisplay(axis)
	}
}

// ResetPad stops every held control and queues a reset once their
// in-flight sends have been applied, so no step lands after the reset. The
// wait happens off the caller's goroutine.
func (a *AppManager) ResetPad() {
	ctls := a.stopControllers()
	a.resets.Add(1)
	go func() {
		defer a.resets.Done()
		for _, c := range ctls {
			c.Wait()
		}
		if err := a.loop.Enqueue(control.Command{Name: cmdReset}); err != nil {
			a.logger.Warn("Reset dropped", zap.Error(err))
		}
	}()
}

// HandleKeyDown starts repeating the command bound to the key. Key repeat
// from the OS does not restart the press.
func (a *AppManager) HandleKeyDown(ev *fyne.KeyEvent) {
	events, ok := a.keyBindings[ev.Name]
	if !ok || a.heldKeys[ev.Name] {
		return
	}
	a.heldKeys[ev.Name] = true
	events.PressStart()
}

// HandleKeyUp stops the command bound to the key.
func (a *AppManager) HandleKeyUp(ev *fyne.KeyEvent) {
	if !a.heldKeys[ev.Name] {
		return
	}
	delete(a.heldKeys, ev.Name)
	a.keyBindings[ev.Name].PressEnd()
}

// HandleKeyRune handles shortcut characters.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case 'r', 'R':
		a.ResetPad()
	case '?':
		a.ShowInfoDialog(i18n.T("Help"), ui.HelpFile, fyne.NewSize(420, 300))
	}
}

// ShowInfoDialog shows a dialog with the given title and embedded text file.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	if a.mainWindow == nil {
		return
	}
	bytes, err := a.content.ReadFile(contentFile)
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	text := widget.NewLabel(string(bytes))
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

func (a *AppManager) loadClick() {
	if err := speaker.Init(clickSampleRate, clickSampleRate.N(time.Second/20)); err != nil {
		a.logger.Warn("Audio disabled: failed to initialize speaker", zap.Error(err))
		return
	}

	tone, err := generators.SineTone(clickSampleRate, clickFrequency)
	if err != nil {
		a.logger.Warn("Audio disabled: failed to generate click", zap.Error(err))
		return
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: clickSampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(beep.Take(clickSampleRate.N(clickLength), tone))
	a.click = buffer
}

// PlaySound plays the click, if audio is enabled.
func (a *AppManager) PlaySound() {
	if a.click == nil {
		return
	}

	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()

	speaker.Play(a.click.Streamer(0, a.click.Len()))
}

func (a *AppManager) stopControllers() []*repeat.Controller {
	a.controllersLock.Lock()
	ctls := append([]*repeat.Controller(nil), a.controllers...)
	a.controllersLock.Unlock()

	for _, c := range ctls {
		c.Stop()
	}
	return ctls
}

// Shutdown stops every controller, waits for their sends and pending
// resets, then stops the command loop.
func (a *AppManager) Shutdown() {
	for _, c := range a.stopControllers() {
		c.Wait()
	}
	a.resets.Wait()

	if a.loopCancel != nil {
		a.loopCancel()
		<-a.loopDone
	}
	if a.click != nil {
		speaker.Close()
	}
}
