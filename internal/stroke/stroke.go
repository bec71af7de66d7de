// Package stroke models a single freehand mark made with the pencil or the
// eraser.
package stroke

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/example/vastucrop/internal/geom"
)

// Tool selects how a stroke composites.
type Tool int

const (
	Paint Tool = iota
	Erase
)

func (t Tool) String() string {
	switch t {
	case Paint:
		return "paint"
	case Erase:
		return "erase"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// Composite is the compositing mode a stroke is baked with.
type Composite int

const (
	// CompositeNone leaves the destination untouched. Paint strokes mark
	// kept regions for feedback only.
	CompositeNone Composite = iota
	// CompositeDestinationOut removes destination coverage under the stroke.
	CompositeDestinationOut
)

const (
	MinWidth     = 5
	MaxWidth     = 50
	DefaultWidth = 20

	// MinSpacing drops points closer than this to the previous point.
	MinSpacing = 0.5
)

// ErrTooFewPoints is returned by Validate for taps.
var ErrTooFewPoints = errors.New("stroke has fewer than two points")

// Stroke is one continuous gesture. Points are display-space and Fit is the
// fit that was active when the gesture began.
type Stroke struct {
	ID     string
	Tool   Tool
	Width  float64
	Points []geom.Point
	Fit    geom.Fit
}

// ClampWidth forces w into [MinWidth, MaxWidth].
func ClampWidth(w float64) float64 {
	if math.IsNaN(w) || w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// Begin starts a stroke with a single point.
func Begin(tool Tool, start geom.Point, width float64, fit geom.Fit) Stroke {
	if width <= 0 {
		width = DefaultWidth
	}
	return Stroke{
		ID:     uuid.NewString(),
		Tool:   tool,
		Width:  width,
		Points: []geom.Point{start},
		Fit:    fit,
	}
}

// Extend appends p unless it sits within MinSpacing of the last point.
func Extend(s Stroke, p geom.Point) Stroke {
	if n := len(s.Points); n > 0 && s.Points[n-1].Dist(p) < MinSpacing {
		return s
	}
	s.Points = append(s.Points, p)
	return s
}

// Composite derives the compositing mode from the tool.
func (s Stroke) Composite() Composite {
	if s.Tool == Erase {
		return CompositeDestinationOut
	}
	return CompositeNone
}

// Validate reports whether the stroke is worth committing.
func (s Stroke) Validate() error {
	if len(s.Points) < 2 {
		return ErrTooFewPoints
	}
	return nil
}

// Freeze returns a copy that shares no memory with s.
func (s Stroke) Freeze() Stroke {
	out := s
	out.Points = make([]geom.Point, len(s.Points))
	copy(out.Points, s.Points)
	return out
}

// ImagePoints maps the stroke into source pixel space using its own fit, and
// returns the width in source pixels.
func (s Stroke) ImagePoints() ([]geom.Point, float64) {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.ToImageSpace(p, s.Fit)
	}
	return pts, s.Fit.ImageWidth(s.Width)
}

// DisplayPoints maps the stroke onto the display surface described by to.
func (s Stroke) DisplayPoints(to geom.Fit) ([]geom.Point, float64) {
	if s.Fit == to {
		return s.Points, s.Width
	}
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = geom.Rebase(p, s.Fit, to)
	}
	return pts, to.DisplayWidthOf(s.Fit.ImageWidth(s.Width))
}
