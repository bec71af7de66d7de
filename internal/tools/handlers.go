package tools

import (
	"fmt"
	"math"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/stroke"
)

type drawHandler struct{}

func (drawHandler) start(m *Machine, p geom.Point) (Result, error) {
	tool, _ := m.kind.StrokeTool()
	s := stroke.Begin(tool, p, m.widths[m.kind], m.fit)
	m.current = &s
	m.active = true
	return Result{Redraw: true}, nil
}

func (drawHandler) move(m *Machine, p geom.Point) (Result, error) {
	s := stroke.Extend(*m.current, p)
	m.current = &s
	return Result{Redraw: true}, nil
}

func (drawHandler) end(m *Machine, p geom.Point) (Result, error) {
	s := stroke.Extend(*m.current, p)
	m.current = nil
	if err := s.Validate(); err != nil {
		return Result{Redraw: true}, fmt.Errorf("%w: %w", ErrDegenerateGesture, err)
	}
	s = s.Freeze()
	return Result{Committed: &s, Redraw: true}, nil
}

// dragHandler serves the pointer, rectangle and square tools, which all drag
// out a four-corner box from an anchor.
type dragHandler struct {
	shape ShapeKind
}

func (h dragHandler) start(m *Machine, p geom.Point) (Result, error) {
	m.anchor = p
	m.active = true
	m.dragging = true
	m.selection = &Shape{Kind: h.shape, Points: box(p, p)}
	return Result{Redraw: true}, nil
}

func (h dragHandler) corner(m *Machine, p geom.Point) geom.Point {
	if h.shape != ShapeSquare {
		return p
	}
	dx := p.X - m.anchor.X
	dy := p.Y - m.anchor.Y
	side := math.Max(math.Abs(dx), math.Abs(dy))
	return geom.Pt(m.anchor.X+math.Copysign(side, dx), m.anchor.Y+math.Copysign(side, dy))
}

func (h dragHandler) move(m *Machine, p geom.Point) (Result, error) {
	m.selection = &Shape{Kind: h.shape, Points: box(m.anchor, h.corner(m, p))}
	return Result{Redraw: true}, nil
}

func (h dragHandler) end(m *Machine, p geom.Point) (Result, error) {
	c := h.corner(m, p)
	m.dragging = false
	w := math.Abs(c.X - m.anchor.X)
	hgt := math.Abs(c.Y - m.anchor.Y)
	if h.shape == ShapeSelection {
		if w <= DeadZone || hgt <= DeadZone {
			m.selection = nil
			return Result{Redraw: true}, fmt.Errorf("selection %.0fx%.0f inside dead zone: %w", w, hgt, ErrDegenerateGesture)
		}
	} else if w == 0 || hgt == 0 {
		m.selection = nil
		return Result{Redraw: true}, fmt.Errorf("empty %v: %w", h.shape, ErrDegenerateGesture)
	}
	m.selection = &Shape{Kind: h.shape, Points: box(m.anchor, c), Closed: true}
	return Result{Redraw: true}, nil
}

// box returns the corners of the axis aligned rectangle spanned by a and b,
// clockwise from the top left.
func box(a, b geom.Point) []geom.Point {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
}

type polygonHandler struct{}

func (polygonHandler) start(m *Machine, p geom.Point) (Result, error) {
	sel := m.selection
	if sel == nil || sel.Kind != ShapePolygon || sel.Closed {
		m.selection = &Shape{Kind: ShapePolygon, Points: []geom.Point{p}}
		return Result{Redraw: true}, nil
	}
	if len(sel.Points) >= 3 && p.Dist(sel.Points[0]) <= SnapRadius {
		sel.Closed = true
		return Result{Redraw: true}, nil
	}
	sel.Points = append(sel.Points, p)
	return Result{Redraw: true}, nil
}

func (polygonHandler) move(*Machine, geom.Point) (Result, error) { return Result{}, nil }
func (polygonHandler) end(*Machine, geom.Point) (Result, error)  { return Result{}, nil }

type inertHandler struct{}

func (inertHandler) start(*Machine, geom.Point) (Result, error) {
	return Result{}, ErrInvalidToolTransition
}
func (inertHandler) move(*Machine, geom.Point) (Result, error) {
	return Result{}, ErrInvalidToolTransition
}
func (inertHandler) end(*Machine, geom.Point) (Result, error) {
	return Result{}, ErrInvalidToolTransition
}
