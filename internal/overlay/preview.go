package overlay

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/render"
	"github.com/example/vastucrop/internal/stroke"
)

// BuildPreview scales src into a display sized raster letterboxed per fit and
// applies strokes to it. The letterbox margins stay transparent.
func BuildPreview(src image.Image, fit geom.Fit, strokes []stroke.Stroke) *image.NRGBA {
	dst := image.NewNRGBA(fit.DisplayBounds())
	if src == nil || !fit.Valid() {
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, fit.ImageRect(), src, src.Bounds(), draw.Src, nil)
	for _, s := range strokes {
		ApplyStroke(dst, s, fit)
	}
	return dst
}

// ApplyStroke bakes one committed stroke into the preview. Erase strokes clear
// coverage; paint strokes only exist on the overlay.
func ApplyStroke(preview *image.NRGBA, s stroke.Stroke, fit geom.Fit) {
	if preview == nil || s.Composite() != stroke.CompositeDestinationOut {
		return
	}
	pts, w := s.DisplayPoints(fit)
	render.ErasePolyline(preview, pts, w)
}
