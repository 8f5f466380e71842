package ui

import (
	"strconv"

	"HoldPad/device"
	"HoldPad/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AxisView is what the application refreshes after a command changes an
// axis.
type AxisView interface {
	UpdateDisplay(device.Axis)
}

// AxisWidget shows one axis as a level bar between hold-to-repeat minus
// and plus buttons.
type AxisWidget struct {
	widget.BaseWidget
	Name string

	label *canvas.Text
	bar   *widget.ProgressBar
	Dec   *HoldButton
	Inc   *HoldButton
}

// NewAxisWidget creates the widget for axis and registers it with a. Each
// button gets its own controller so both can be held independently.
func NewAxisWidget(a App, axis device.Axis) *AxisWidget {
	w := &AxisWidget{Name: axis.Name}

	w.label = canvas.NewText(i18n.T(axis.Label), theme.ForegroundColor())
	w.label.TextSize = LabelSize
	w.label.TextStyle.Bold = true

	w.bar = widget.NewProgressBar()
	w.bar.Min = float64(axis.Min)
	w.bar.Max = float64(axis.Max)
	w.bar.Value = float64(axis.Value)
	w.bar.TextFormatter = func() string {
		return strconv.Itoa(int(w.bar.Value))
	}

	dec := a.NewController().ButtonEvents(device.FormatCommand(axis.Name, device.Down))
	inc := a.NewController().ButtonEvents(device.FormatCommand(axis.Name, device.Up))
	w.Dec = NewHoldButton("-", dec)
	w.Inc = NewHoldButton("+", inc)

	a.RegisterAxisView(axis.Name, w)
	w.ExtendBaseWidget(w)
	return w
}

func (w *AxisWidget) CreateRenderer() fyne.WidgetRenderer {
	middle := container.NewVBox(
		container.New(layout.NewCenterLayout(), w.label),
		w.bar,
	)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, w.Dec, w.Inc, middle))
}

// UpdateDisplay may be called from any goroutine.
func (w *AxisWidget) UpdateDisplay(axis device.Axis) {
	fyne.Do(func() {
		w.bar.SetValue(float64(axis.Value))
	})
}

// Value returns the displayed value.
func (w *AxisWidget) Value() int {
	return int(w.bar.Value)
}
