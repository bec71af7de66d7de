package tools

import (
	"errors"
	"fmt"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/stroke"
)

const (
	// DeadZone is the minimum width and height of a pointer selection.
	DeadZone = 10
	// SnapRadius is how close a click must land to the first polygon vertex
	// to close it.
	SnapRadius = 15
)

var (
	// ErrDegenerateGesture marks a tap or a selection too small to keep. It
	// is a no-op rather than a failure.
	ErrDegenerateGesture = errors.New("degenerate gesture")
	// ErrInvalidToolTransition is returned for events under a tool that has
	// no lifecycle for them.
	ErrInvalidToolTransition = errors.New("invalid tool transition")
	// ErrGestureActive rejects tool changes while a gesture is in flight.
	ErrGestureActive = errors.New("gesture in progress")
)

// Result tells the caller what an event changed.
type Result struct {
	// Committed is set when a pencil or eraser gesture finished.
	Committed *stroke.Stroke
	// Redraw is set when the overlay is stale.
	Redraw bool
}

type handler interface {
	start(m *Machine, p geom.Point) (Result, error)
	move(m *Machine, p geom.Point) (Result, error)
	end(m *Machine, p geom.Point) (Result, error)
}

// Machine holds the active tool and whatever gesture it has in flight.
type Machine struct {
	kind     Kind
	widths   map[Kind]float64
	fit      geom.Fit
	handlers map[Kind]handler

	active    bool
	last      geom.Point
	current   *stroke.Stroke
	anchor    geom.Point
	selection *Shape
	dragging  bool
}

// New returns a machine with the pencil selected.
func New() *Machine {
	m := &Machine{
		kind: Pencil,
		widths: map[Kind]float64{
			Pencil: stroke.DefaultWidth,
			Eraser: stroke.DefaultWidth,
		},
	}
	m.handlers = map[Kind]handler{
		Pointer:    dragHandler{shape: ShapeSelection},
		Pencil:     drawHandler{},
		Eraser:     drawHandler{},
		Rectangle:  dragHandler{shape: ShapeRectangle},
		Square:     dragHandler{shape: ShapeSquare},
		Polygon:    polygonHandler{},
		AutoDetect: inertHandler{},
	}
	return m
}

// Kind is the active tool.
func (m *Machine) Kind() Kind { return m.kind }

// SetTool switches tools. Switching during a gesture is refused, and so are
// tools that are not enabled. An open polygon is dropped when leaving the
// polygon tool.
func (m *Machine) SetTool(k Kind) error {
	if _, ok := m.handlers[k]; !ok {
		return fmt.Errorf("select %v: %w", k, ErrInvalidToolTransition)
	}
	if !k.Enabled() {
		return fmt.Errorf("select %v: not available: %w", k, ErrInvalidToolTransition)
	}
	if m.active {
		return fmt.Errorf("select %v: %w", k, ErrGestureActive)
	}
	if k != m.kind && m.selection != nil && m.selection.Kind == ShapePolygon && !m.selection.Closed {
		m.selection = nil
	}
	m.kind = k
	return nil
}

// Width returns the configured width of a drawing tool.
func (m *Machine) Width(k Kind) float64 {
	if w, ok := m.widths[k]; ok {
		return w
	}
	return 0
}

// SetWidth clamps and stores the width of a drawing tool. It takes effect on
// the next gesture.
func (m *Machine) SetWidth(k Kind, w float64) (float64, error) {
	if !k.Drawing() {
		return 0, fmt.Errorf("%v has no width: %w", k, ErrInvalidToolTransition)
	}
	w = stroke.ClampWidth(w)
	m.widths[k] = w
	return w, nil
}

// SetFit sets the fit stamped on strokes started from now on.
func (m *Machine) SetFit(f geom.Fit) { m.fit = f }

// Fit is the fit new strokes are stamped with.
func (m *Machine) Fit() geom.Fit { return m.fit }

// Active reports whether a gesture is in flight.
func (m *Machine) Active() bool { return m.active }

// Multitouch reports whether host multi-touch gestures such as pinch zoom must
// be suppressed.
func (m *Machine) Multitouch() bool { return m.active }

// InProgress returns a copy of the stroke being drawn, if any.
func (m *Machine) InProgress() *stroke.Stroke {
	if m.current == nil {
		return nil
	}
	s := m.current.Freeze()
	return &s
}

// Selection returns a copy of the current shape selection, if any.
func (m *Machine) Selection() *Shape { return m.selection.clone() }

// Dragging reports whether the selection is still being dragged out.
func (m *Machine) Dragging() bool { return m.dragging }

// ClearSelection drops the shape selection.
func (m *Machine) ClearSelection() {
	m.selection = nil
	m.dragging = false
}

// Reset drops the in-progress gesture and the selection. The tool, widths and
// fit are kept.
func (m *Machine) Reset() {
	m.active = false
	m.current = nil
	m.selection = nil
	m.dragging = false
}

// Start handles pointer down.
func (m *Machine) Start(p geom.Point) (Result, error) {
	if m.active {
		// A down without an up; finish the previous gesture first.
		if _, err := m.End(m.last); err != nil && !errors.Is(err, ErrDegenerateGesture) {
			return Result{}, err
		}
	}
	m.last = p
	return m.handlers[m.kind].start(m, p)
}

// Move handles pointer motion. Motion without a gesture is ignored.
func (m *Machine) Move(p geom.Point) (Result, error) {
	if !m.active {
		if m.kind == AutoDetect {
			return Result{}, ErrInvalidToolTransition
		}
		return Result{}, nil
	}
	m.last = p
	return m.handlers[m.kind].move(m, p)
}

// End handles pointer up.
func (m *Machine) End(p geom.Point) (Result, error) {
	if !m.active {
		if m.kind == AutoDetect {
			return Result{}, ErrInvalidToolTransition
		}
		return Result{}, nil
	}
	m.last = p
	res, err := m.handlers[m.kind].end(m, p)
	m.active = false
	return res, err
}

// Abandon ends a gesture whose release was lost, for example when the pointer
// left the surface.
func (m *Machine) Abandon() (Result, error) {
	if !m.active {
		return Result{}, nil
	}
	return m.End(m.last)
}

// Click is a start immediately followed by an end at the same point.
func (m *Machine) Click(p geom.Point) (Result, error) {
	res, err := m.Start(p)
	if err != nil {
		return res, err
	}
	end, err := m.End(p)
	end.Redraw = end.Redraw || res.Redraw
	if end.Committed == nil {
		end.Committed = res.Committed
	}
	return end, err
}
