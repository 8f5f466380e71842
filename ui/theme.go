package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Sizes used across the pad.
const (
	WindowWidth     = 360
	LabelSize       = 16
	HoldButtonWidth = 56
	AxisSpacing     = 6
)

// AccentColor tints the primary and pressed colors.
var AccentColor = color.NRGBA{R: 0xf2, G: 0x8c, B: 0x28, A: 0xff}

// CustomTheme is the default theme with an accent color.
type CustomTheme struct {
	fyne.Theme
	accent color.Color
}

// NewCustomTheme creates a theme tinted with accent.
func NewCustomTheme(accent color.Color) fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme(), accent: accent}
}

// Color returns the accent for primary and pressed states.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return t.accent
	case theme.ColorNamePressed:
		return withAlpha(t.accent, 0x99)
	}
	return t.Theme.Color(name, variant)
}

func withAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
