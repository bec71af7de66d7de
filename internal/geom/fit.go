// Package geom converts between the bounded display surface the user draws on
// and the pixel space of the source image.
package geom

import (
	"image"
	"math"
)

// Point is a floating point coordinate. Whether it is display-space or
// image-space depends on where it came from; strokes always store
// display-space points.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Size is a display surface size in pixels.
type Size struct {
	W, H float64
}

// DefaultMinDisplay is the floor applied to tiny containers so the tools stay
// usable.
var DefaultMinDisplay = Size{W: 300, H: 150}

// Fit records how a source image of SourceWidth x SourceHeight pixels is
// letterboxed into a DisplayWidth x DisplayHeight surface.
type Fit struct {
	SourceWidth   int
	SourceHeight  int
	DisplayWidth  float64
	DisplayHeight float64
	Scale         float64
	OffsetX       float64
	OffsetY       float64
}

// ComputeFit scales the source to fit entirely inside the display surface and
// centres it.
func ComputeFit(sourceWidth, sourceHeight int, displayWidth, displayHeight float64) Fit {
	f := Fit{
		SourceWidth:   sourceWidth,
		SourceHeight:  sourceHeight,
		DisplayWidth:  displayWidth,
		DisplayHeight: displayHeight,
	}
	if sourceWidth <= 0 || sourceHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return f
	}
	sx := displayWidth / float64(sourceWidth)
	sy := displayHeight / float64(sourceHeight)
	f.Scale = math.Min(sx, sy)
	f.OffsetX = (displayWidth - float64(sourceWidth)*f.Scale) / 2
	f.OffsetY = (displayHeight - float64(sourceHeight)*f.Scale) / 2
	return f
}

// FloorDisplay raises a container size to at least min on each axis. Only the
// inputs to ComputeFit change; the fit formula stays the same.
func FloorDisplay(w, h float64, min Size) (float64, float64) {
	if w < min.W {
		w = min.W
	}
	if h < min.H {
		h = min.H
	}
	return w, h
}

// Valid reports whether the fit can map coordinates.
func (f Fit) Valid() bool {
	return f.Scale > 0 && !math.IsInf(f.Scale, 0) && !math.IsNaN(f.Scale)
}

// ToImageSpace maps a display-space point into source pixel space. The result
// is not clamped; points outside the raster are clipped later by the raster
// bounds.
func ToImageSpace(p Point, f Fit) Point {
	return Point{
		X: (p.X - f.OffsetX) / f.Scale,
		Y: (p.Y - f.OffsetY) / f.Scale,
	}
}

// ToDisplaySpace is the inverse of ToImageSpace.
func ToDisplaySpace(p Point, f Fit) Point {
	return Point{
		X: p.X*f.Scale + f.OffsetX,
		Y: p.Y*f.Scale + f.OffsetY,
	}
}

// Rebase maps a point drawn under from onto the display surface described by
// to. It is used for display only; stored stroke points are never rebased.
func Rebase(p Point, from, to Fit) Point {
	if from == to {
		return p
	}
	return ToDisplaySpace(ToImageSpace(p, from), to)
}

// ImageWidth converts a display-space length into source pixels.
func (f Fit) ImageWidth(w float64) float64 {
	return w / f.Scale
}

// DisplayWidthOf converts a source pixel length into display space.
func (f Fit) DisplayWidthOf(w float64) float64 {
	return w * f.Scale
}

// DisplayBounds is the integer size of the display surface.
func (f Fit) DisplayBounds() image.Rectangle {
	return image.Rect(0, 0, int(math.Ceil(f.DisplayWidth)), int(math.Ceil(f.DisplayHeight)))
}

// ImageRect is the letterboxed rectangle the source occupies on the display
// surface.
func (f Fit) ImageRect() image.Rectangle {
	x0 := int(math.Round(f.OffsetX))
	y0 := int(math.Round(f.OffsetY))
	x1 := int(math.Round(f.OffsetX + float64(f.SourceWidth)*f.Scale))
	y1 := int(math.Round(f.OffsetY + float64(f.SourceHeight)*f.Scale))
	return image.Rect(x0, y0, x1, y1)
}
