// Package render holds the raster primitives shared by the live overlay and
// the finalize pipeline: round-capped polyline coverage, destination-out
// erasing and polygon fills.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/vastucrop/internal/geom"
)

// PolylineMask rasterises a polyline of the given width with round caps and
// joins into an alpha mask. The mask covers the polyline's bounding box
// clipped to clip; a nil result means nothing falls inside clip.
//
// Coverage is computed from the distance of each pixel centre to the nearest
// segment with a one pixel linear ramp, so a stroke of width w clears w pixels
// across with half-covered pixels at its edges.
func PolylineMask(pts []geom.Point, width float64, clip image.Rectangle) *image.Alpha {
	if len(pts) == 0 || width <= 0 || clip.Empty() {
		return nil
	}
	hw := width / 2
	bounds := polylineBounds(pts, hw+1).Intersect(clip)
	if bounds.Empty() {
		return nil
	}
	mask := image.NewAlpha(bounds)
	if len(pts) == 1 {
		stampSegment(mask, pts[0], pts[0], hw)
		return mask
	}
	for i := 1; i < len(pts); i++ {
		stampSegment(mask, pts[i-1], pts[i], hw)
	}
	return mask
}

func polylineBounds(pts []geom.Point, pad float64) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX-pad)),
		int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)),
		int(math.Ceil(maxY+pad)),
	)
}

// stampSegment raises the mask to the coverage of the capsule a-b with radius
// hw. Overlapping segments take the maximum so joins do not double up.
func stampSegment(mask *image.Alpha, a, b geom.Point, hw float64) {
	r := polylineBounds([]geom.Point{a, b}, hw+1).Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		i := mask.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+1 {
			px := float64(x) + 0.5
			cov := capsuleCoverage(px, py, a, b, hw)
			if cov <= 0 {
				continue
			}
			v := uint8(cov*255 + 0.5)
			if v > mask.Pix[i] {
				mask.Pix[i] = v
			}
		}
	}
}

func capsuleCoverage(px, py float64, a, b geom.Point, hw float64) float64 {
	d := segmentDistance(px, py, a, b)
	cov := hw - d + 0.5
	if cov <= 0 {
		return 0
	}
	if cov >= 1 {
		return 1
	}
	return cov
}

func segmentDistance(px, py float64, a, b geom.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-a.X, py-a.Y)
	}
	t := ((px-a.X)*dx + (py-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(a.X+t*dx), py-(a.Y+t*dy))
}

// DestinationOut removes coverage from dst wherever mask is set:
// dst.alpha = dst.alpha * (1 - mask). Colour channels of the non-premultiplied
// raster are left alone so untouched pixels stay bit-identical.
func DestinationOut(dst *image.NRGBA, mask *image.Alpha) {
	if dst == nil || mask == nil {
		return
	}
	r := mask.Rect.Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := mask.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(mask.Pix[mi])
			if m != 0 {
				a := uint32(dst.Pix[di+3])
				dst.Pix[di+3] = uint8((a*(255-m) + 127) / 255)
			}
			mi++
			di += 4
		}
	}
}

// StrokeOver paints col through mask onto dst.
func StrokeOver(dst draw.Image, mask *image.Alpha, col color.Color) {
	if dst == nil || mask == nil {
		return
	}
	draw.DrawMask(dst, mask.Rect, image.NewUniform(col), image.Point{}, mask, mask.Rect.Min, draw.Over)
}

// DrawPolyline is PolylineMask followed by StrokeOver.
func DrawPolyline(dst draw.Image, pts []geom.Point, width float64, col color.Color) {
	StrokeOver(dst, PolylineMask(pts, width, dst.Bounds()), col)
}

// ErasePolyline is PolylineMask followed by DestinationOut.
func ErasePolyline(dst *image.NRGBA, pts []geom.Point, width float64) {
	DestinationOut(dst, PolylineMask(pts, width, dst.Bounds()))
}
