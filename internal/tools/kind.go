// Package tools interprets normalized pointer events into strokes and shape
// selections according to the active tool.
package tools

import (
	"fmt"
	"strings"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/stroke"
)

// Kind identifies a tool.
type Kind int

const (
	Pointer Kind = iota
	Pencil
	Eraser
	Rectangle
	Square
	Polygon
	AutoDetect
)

var kindNames = [...]string{
	Pointer:    "pointer",
	Pencil:     "pencil",
	Eraser:     "eraser",
	Rectangle:  "rectangle",
	Square:     "square",
	Polygon:    "polygon",
	AutoDetect: "autodetect",
}

var kindLabels = [...]string{
	Pointer:    "Select",
	Pencil:     "Pencil",
	Eraser:     "Eraser",
	Rectangle:  "Rect",
	Square:     "Square",
	Polygon:    "Polygon",
	AutoDetect: "Auto",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label is the short toolbar caption.
func (k Kind) Label() string {
	if k < 0 || int(k) >= len(kindLabels) {
		return k.String()
	}
	return kindLabels[k]
}

// Kinds lists every tool in toolbar order.
func Kinds() []Kind {
	return []Kind{Pointer, Pencil, Eraser, Rectangle, Square, Polygon, AutoDetect}
}

// ParseKind resolves a tool name. A few aliases are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pointer", "select", "selection":
		return Pointer, nil
	case "pencil", "paint", "brush":
		return Pencil, nil
	case "eraser", "erase":
		return Eraser, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "square":
		return Square, nil
	case "polygon", "poly":
		return Polygon, nil
	case "autodetect", "auto":
		return AutoDetect, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Drawing reports whether the tool produces strokes.
func (k Kind) Drawing() bool { return k == Pencil || k == Eraser }

// Enabled is false for placeholder tools.
func (k Kind) Enabled() bool { return k != AutoDetect }

// StrokeTool maps a drawing kind to the stroke tool it produces.
func (k Kind) StrokeTool() (stroke.Tool, bool) {
	switch k {
	case Pencil:
		return stroke.Paint, true
	case Eraser:
		return stroke.Erase, true
	}
	return 0, false
}

// ShapeKind records which tool produced a selection.
type ShapeKind int

const (
	ShapeSelection ShapeKind = iota
	ShapeRectangle
	ShapeSquare
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSelection:
		return "selection"
	case ShapeRectangle:
		return "rectangle"
	case ShapeSquare:
		return "square"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// Shape is a rectangle, square or polygon selection in display space.
type Shape struct {
	Kind   ShapeKind
	Points []geom.Point
	Closed bool
}

func (s *Shape) clone() *Shape {
	if s == nil {
		return nil
	}
	out := *s
	out.Points = append([]geom.Point(nil), s.Points...)
	return &out
}

// FromMouse converts a mouse position into an event point.
func FromMouse(x, y float64) geom.Point { return geom.Pt(x, y) }

// FromTouches picks the primary contact. ok is false when no contact is down.
func FromTouches(contacts []geom.Point) (geom.Point, bool) {
	if len(contacts) == 0 {
		return geom.Point{}, false
	}
	return contacts[0], true
}
