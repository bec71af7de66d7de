package theme

import (
	"image/color"
)

// Theme defines the colour palette for the window chrome and the edit
// overlay. Colours are non-premultiplied so a theme file's #RRGGBBAA reads the
// way it is written.
type Theme struct {
	Name string

	// General
	Background color.NRGBA // behind the letterboxed image
	Foreground color.NRGBA // status text

	// Toolbar
	ToolbarBackground  color.NRGBA
	StatusBackground   color.NRGBA
	ButtonBackground   color.NRGBA
	ButtonActive       color.NRGBA // selected tool or width
	ButtonDisabled     color.NRGBA
	ButtonText         color.NRGBA
	ButtonTextDisabled color.NRGBA
	ButtonBorder       color.NRGBA

	// Canvas
	CheckerLight color.NRGBA
	CheckerDark  color.NRGBA

	// Overlay
	PaintStroke      color.NRGBA
	EraseStroke      color.NRGBA
	SelectionFill    color.NRGBA
	SelectionOutline color.NRGBA
	VertexMarker     color.NRGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:               "Default",
		Background:         color.NRGBA{60, 60, 60, 255},
		Foreground:         color.NRGBA{0, 0, 0, 255},
		ToolbarBackground:  color.NRGBA{220, 220, 220, 255},
		StatusBackground:   color.NRGBA{235, 235, 235, 255},
		ButtonBackground:   color.NRGBA{200, 200, 200, 255},
		ButtonActive:       color.NRGBA{150, 180, 230, 255},
		ButtonDisabled:     color.NRGBA{215, 215, 215, 255},
		ButtonText:         color.NRGBA{0, 0, 0, 255},
		ButtonTextDisabled: color.NRGBA{150, 150, 150, 255},
		ButtonBorder:       color.NRGBA{0, 0, 0, 255},
		CheckerLight:       color.NRGBA{220, 220, 220, 255},
		CheckerDark:        color.NRGBA{192, 192, 192, 255},
		PaintStroke:        color.NRGBA{40, 200, 80, 140},
		EraseStroke:        color.NRGBA{230, 40, 40, 140},
		SelectionFill:      color.NRGBA{40, 120, 230, 60},
		SelectionOutline:   color.NRGBA{40, 120, 230, 255},
		VertexMarker:       color.NRGBA{255, 255, 255, 255},
	}
}

// Clone returns an independent copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	return &c
}
