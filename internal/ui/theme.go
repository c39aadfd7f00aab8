// Package ui provides the BinStack application UI components.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// appTheme pins the light/dark variant chosen in the config and trims window
// chrome. BinStack's main surface is a large carton diagram flanked by an
// item list and a short settings form: shaving padding and separator weight
// hands that space to the diagram, while text sizes stay at the Fyne defaults
// because the item list is the primary reading surface.
//
// Embedding the base theme keeps Font and Icon untouched.
type appTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newAppTheme(variant fyne.ThemeVariant) fyne.Theme {
	return &appTheme{Theme: theme.DefaultTheme(), variant: variant}
}

// Color ignores the variant Fyne asks for and answers with the configured one.
func (t *appTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

// Size tightens spacing around the diagram area.
func (t *appTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 4
	case theme.SizeNameSeparatorThickness:
		return 1
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameScrollBarSmall:
		return 4
	default:
		return t.Theme.Size(name)
	}
}
