// Package overlay draws the edit feedback layer and the live preview.
//
// Nothing here touches source pixels. The overlay is rebuilt from scratch on
// every call so undo and redo never leave stale marks behind.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/render"
	"github.com/example/vastucrop/internal/stroke"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

// MarkerSize is the side of an open polygon's vertex markers.
const MarkerSize = 7

// Scene is everything the overlay shows.
type Scene struct {
	Fit        geom.Fit
	Strokes    []stroke.Stroke
	InProgress *stroke.Stroke
	Selection  *tools.Shape
	Dragging   bool
}

// Renderer draws scenes with a fixed palette.
type Renderer struct {
	Paint            color.NRGBA
	Erase            color.NRGBA
	SelectionFill    color.NRGBA
	SelectionOutline color.NRGBA
	Vertex           color.NRGBA
}

// NewRenderer takes its colours from th; nil means the default theme.
func NewRenderer(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{
		Paint:            th.PaintStroke,
		Erase:            th.EraseStroke,
		SelectionFill:    th.SelectionFill,
		SelectionOutline: th.SelectionOutline,
		Vertex:           th.VertexMarker,
	}
}

func (r *Renderer) tint(s stroke.Stroke) color.NRGBA {
	if s.Tool == stroke.Erase {
		return r.Erase
	}
	return r.Paint
}

// Render clears dst and paints, in order, committed strokes, the stroke in
// progress, the selection and the open polygon's vertex markers.
func (r *Renderer) Render(dst *image.RGBA, sc Scene) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for _, s := range sc.Strokes {
		r.drawStroke(dst, s, sc.Fit)
	}
	if sc.InProgress != nil {
		r.drawStroke(dst, *sc.InProgress, sc.Fit)
	}
	if sel := sc.Selection; sel != nil && len(sel.Points) > 0 {
		if len(sel.Points) >= 3 && (sel.Closed || sc.Dragging) {
			render.FillPolygon(dst, sel.Points, r.SelectionFill)
		}
		r.outline(dst, sel)
		if sel.Kind == tools.ShapePolygon && !sel.Closed {
			for _, p := range sel.Points {
				render.DrawMarker(dst, p, MarkerSize, r.Vertex, r.SelectionOutline)
			}
		}
	}
}

func (r *Renderer) drawStroke(dst *image.RGBA, s stroke.Stroke, fit geom.Fit) {
	pts, w := s.DisplayPoints(fit)
	if len(pts) == 0 {
		return
	}
	// Each stroke is masked separately so overlapping segments of one stroke
	// do not darken the tint.
	render.DrawPolyline(dst, pts, w, r.tint(s))
}

func (r *Renderer) outline(dst *image.RGBA, sel *tools.Shape) {
	pts := sel.Points
	if sel.Closed && len(pts) > 2 {
		pts = append(append([]geom.Point(nil), pts...), pts[0])
	}
	render.DrawPolyline(dst, pts, 2, r.SelectionOutline)
}
