// Package ui builds the HoldPad window: one row per axis with hold-to-repeat
// buttons, and a footer with reset and help.
package ui

import (
	"image/color"

	"HoldPad/device"
	"HoldPad/i18n"
	"HoldPad/repeat"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is what the UI needs from the application.
type App interface {
	Snapshot() []device.Axis
	NewController() *repeat.Controller
	RegisterAxisView(name string, v AxisView)
	ResetPad()
	HandleKeyDown(*fyne.KeyEvent)
	HandleKeyUp(*fyne.KeyEvent)
	HandleKeyRune(rune)
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
}

// HelpFile is the embedded help text shown by the footer.
const HelpFile = "assets/help.txt"

// BuildAxisList creates an AxisWidget for every axis.
func BuildAxisList(a App) (*fyne.Container, []*AxisWidget) {
	listContainer := container.NewVBox()
	var widgets []*AxisWidget
	for _, axis := range a.Snapshot() {
		w := NewAxisWidget(a, axis)
		widgets = append(widgets, w)
		listContainer.Add(w)

		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(0, AxisSpacing))
		listContainer.Add(spacer)
	}
	return listContainer, widgets
}

// BuildFooter returns the reset button and the footer containing it.
func BuildFooter(a App) (*widget.Button, fyne.CanvasObject) {
	resetButton := widget.NewButton(i18n.T("Reset"), a.ResetPad)

	helpIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewTappableContainer(helpIcon, func() {
		a.ShowInfoDialog(i18n.T("Help"), HelpFile, fyne.NewSize(420, 300))
	})

	centered := container.NewHBox(layout.NewSpacer(), resetButton, layout.NewSpacer())
	footer := container.New(
		layout.NewBorderLayout(nil, nil, helpButton, nil),
		helpButton,
		centered,
	)
	return resetButton, footer
}

// CreateMainWindow builds the pad window and wires keyboard handling.
func CreateMainWindow(a App, fyneApp fyne.App, title string) fyne.Window {
	if title == "" {
		title = fyneApp.Metadata().Name
	}
	if title == "" {
		title = "HoldPad"
	}
	w := fyneApp.NewWindow(title)

	listContainer, _ := BuildAxisList(a)
	_, footer := BuildFooter(a)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)
	if dc, ok := w.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(a.HandleKeyDown)
		dc.SetOnKeyUp(a.HandleKeyUp)
	}

	w.SetContent(container.NewVBox(listContainer, footer))
	w.Resize(fyne.NewSize(WindowWidth, w.Content().MinSize().Height))
	return w
}

// TappableContainer makes any canvas object respond to a primary tap.
type TappableContainer struct {
	widget.BaseWidget
	Content  fyne.CanvasObject
	OnTapped func()
}

func NewTappableContainer(c fyne.CanvasObject, onTapped func()) *TappableContainer {
	t := &TappableContainer{Content: c, OnTapped: onTapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}
