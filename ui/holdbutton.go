package ui

import (
	"image/color"

	"HoldPad/repeat"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	_ desktop.Mouseable = (*HoldButton)(nil)
	_ desktop.Hoverable = (*HoldButton)(nil)
	_ mobile.Touchable  = (*HoldButton)(nil)
	_ fyne.Tappable     = (*HoldButton)(nil)
)

// HoldButton is a button that reports press, release and drag-off to a
// repeat.EventHandlerSet instead of firing once per tap.
//
// The drivers follow a completed mouse or touch press with a synthesized
// Tapped event. That tap is swallowed, so a held press is never counted
// twice. A Tapped event with no press before it, such as one triggered from
// the keyboard, counts as a single press and release.
type HoldButton struct {
	widget.BaseWidget
	Text string

	events     repeat.EventHandlerSet
	background *canvas.Rectangle
	pressed    bool
	swallowTap bool
}

// NewHoldButton creates a button bound to events.
func NewHoldButton(text string, events repeat.EventHandlerSet) *HoldButton {
	b := &HoldButton{
		Text:       text,
		events:     events,
		background: canvas.NewRectangle(theme.ButtonColor()),
	}
	b.background.CornerRadius = theme.InputRadiusSize()
	b.ExtendBaseWidget(b)
	return b
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	label := widget.NewLabelWithStyle(b.Text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	sizer := canvas.NewRectangle(color.Transparent)
	sizer.SetMinSize(fyne.NewSize(HoldButtonWidth, 0))
	return widget.NewSimpleRenderer(container.NewStack(sizer, b.background, label))
}

// IsPressed reports whether a press is in progress.
func (b *HoldButton) IsPressed() bool {
	return b.pressed
}

func (b *HoldButton) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.swallowTap = true
	b.setPressed(true)
	b.events.PressStart()
}

func (b *HoldButton) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.setPressed(false)
	b.events.PressEnd()
}

func (b *HoldButton) MouseIn(*desktop.MouseEvent) {}

func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut stops a press dragged off the button. No Tapped follows.
func (b *HoldButton) MouseOut() {
	b.swallowTap = false
	if !b.pressed {
		return
	}
	b.setPressed(false)
	b.events.PressLeave()
}

func (b *HoldButton) TouchDown(e *mobile.TouchEvent) {
	b.setPressed(true)
	b.events.TouchStart(&touchEvent{TouchEvent: e, button: b})
}

func (b *HoldButton) TouchUp(*mobile.TouchEvent) {
	b.setPressed(false)
	b.events.TouchEnd()
}

func (b *HoldButton) TouchCancel(*mobile.TouchEvent) {
	b.setPressed(false)
	b.events.TouchCancel()
}

func (b *HoldButton) Tapped(*fyne.PointEvent) {
	if b.swallowTap {
		b.swallowTap = false
		return
	}
	b.events.PressStart()
	b.events.PressEnd()
}

func (b *HoldButton) setPressed(pressed bool) {
	if b.pressed == pressed {
		return
	}
	b.pressed = pressed
	if pressed {
		b.background.FillColor = theme.PressedColor()
	} else {
		b.background.FillColor = theme.ButtonColor()
	}
	b.background.Refresh()
}

// touchEvent carries a touch into repeat.Event.
type touchEvent struct {
	*mobile.TouchEvent
	button *HoldButton
}

func (e *touchEvent) PreventDefault() {
	e.button.swallowTap = true
}
