package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	labelSize   = 13
	messageSize = 28
)

var (
	uiFont    *opentype.Font
	faceCache sync.Map // map[float64]font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	uiFont = f
}

// faceForSize returns a goregular face, falling back to the fixed basic face
// when the font cannot be sized.
func faceForSize(size float64) font.Face {
	if face, ok := faceCache.Load(size); ok {
		return face.(font.Face)
	}
	face, err := opentype.NewFace(uiFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face %v: %v", size, err)
		return basicfont.Face7x13
	}
	actual, _ := faceCache.LoadOrStore(size, face)
	return actual.(font.Face)
}

// measureText returns the box of text at size and the offset of its
// baseline from the top.
func measureText(text string, size float64) (width, height, baseline int) {
	face := faceForSize(size)
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil(), m.Ascent.Ceil()
}

// drawText renders text with its top-left corner at (x, y).
func drawText(dst draw.Image, x, y int, text string, col color.Color, size float64) {
	face := faceForSize(size)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawCentered renders text centred inside r.
func drawCentered(dst draw.Image, r image.Rectangle, text string, col color.Color, size float64) {
	w, h, _ := measureText(text, size)
	drawText(dst, r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()-h)/2, text, col, size)
}
