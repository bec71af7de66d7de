package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/mobile/event/key"

	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
	buttonStates
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [buttonStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if state < 0 || state >= buttonStates {
		state = StateDefault
	}
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [buttonStates]*image.RGBA{}
	}
}

// buttonColors picks the fill and label colours for a state.
func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.NRGBA) {
	switch state {
	case StateHover:
		return mix(th.ButtonBackground, th.ButtonActive), th.ButtonText
	case StatePressed:
		return th.ButtonActive, th.ButtonText
	case StateDisabled:
		return th.ButtonDisabled, th.ButtonTextDisabled
	}
	return th.ButtonBackground, th.ButtonText
}

func mix(a, b color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: uint8((int(a.A) + int(b.A)) / 2),
	}
}

func drawBorder(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// ToolButton selects a tool. Tools that are not enabled render greyed out and
// ignore activation.
type ToolButton struct {
	th       *theme.Theme
	kind     tools.Kind
	hotkey   int
	rect     image.Rectangle
	onSelect func(tools.Kind)
}

func (tb *ToolButton) label() string {
	return fmt.Sprintf("%d:%s", tb.hotkey, tb.kind.Label())
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	if !tb.kind.Enabled() {
		state = StateDisabled
	}
	bg, fg := buttonColors(tb.th, state)
	draw.Draw(dst, tb.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	_, h, _ := measureText(tb.label(), labelSize)
	drawText(dst, tb.rect.Min.X+4, tb.rect.Min.Y+(tb.rect.Dy()-h)/2, tb.label(), fg, labelSize)
}

func (tb *ToolButton) Rect() image.Rectangle     { return tb.rect }
func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.kind.Enabled() && tb.onSelect != nil {
		tb.onSelect(tb.kind)
	}
}

// WidthButton sets the width of the active drawing tool. The sample bar
// grows with the width it selects.
type WidthButton struct {
	th       *theme.Theme
	value    float64
	rect     image.Rectangle
	onSelect func(float64)
}

func (wb *WidthButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(wb.th, state)
	draw.Draw(dst, wb.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	txt := fmt.Sprintf("%g", wb.value)
	_, h, _ := measureText(txt, labelSize)
	drawText(dst, wb.rect.Min.X+4, wb.rect.Min.Y+(wb.rect.Dy()-h)/2, txt, fg, labelSize)

	thick := int(wb.value / 50 * float64(wb.rect.Dy()-4))
	if thick < 1 {
		thick = 1
	}
	cy := wb.rect.Min.Y + wb.rect.Dy()/2
	bar := image.Rect(wb.rect.Min.X+28, cy-thick/2, wb.rect.Max.X-4, cy-thick/2+thick)
	draw.Draw(dst, bar.Intersect(wb.rect), image.NewUniform(fg), image.Point{}, draw.Over)
}

func (wb *WidthButton) Rect() image.Rectangle     { return wb.rect }
func (wb *WidthButton) SetRect(r image.Rectangle) { wb.rect = r }

func (wb *WidthButton) Activate() {
	if wb.onSelect != nil {
		wb.onSelect(wb.value)
	}
}

// Shortcut is a clickable entry in the bottom bar.
type Shortcut struct {
	th     *theme.Theme
	label  string
	action string
	rect   image.Rectangle
	run    func(string)
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(s.th, state)
	draw.Draw(dst, s.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	drawBorder(dst, s.rect, s.th.ButtonBorder)
	drawCentered(dst, s.rect, s.label, fg, labelSize)
}

func (s *Shortcut) Rect() image.Rectangle     { return s.rect }
func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.run != nil {
		s.run(s.action)
	}
}
