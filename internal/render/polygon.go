package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/example/vastucrop/internal/geom"
)

// FillPolygon fills the closed polygon pts with col using the non-zero
// accumulation of x/image/vector. Fewer than three points draw nothing.
func FillPolygon(dst draw.Image, pts []geom.Point, col color.Color) {
	if dst == nil || len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	ox := float32(b.Min.X)
	oy := float32(b.Min.Y)
	z.MoveTo(float32(pts[0].X)-ox, float32(pts[0].Y)-oy)
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X)-ox, float32(p.Y)-oy)
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// DrawMarker draws a filled square vertex marker of the given size centred on
// p with a one pixel outline.
func DrawMarker(dst draw.Image, p geom.Point, size int, fill, outline color.Color) {
	half := size / 2
	cx := int(p.X)
	cy := int(p.Y)
	r := image.Rect(cx-half, cy-half, cx-half+size, cy-half+size)
	draw.Draw(dst, r, image.NewUniform(outline), image.Point{}, draw.Over)
	draw.Draw(dst, r.Inset(1), image.NewUniform(fill), image.Point{}, draw.Over)
}

// Checkerboard fills rect of dst with a checkerboard pattern so transparent
// pixels remain visible. size controls the square size.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	l := image.NewUniform(light)
	d := image.NewUniform(dark)
	for y := rect.Min.Y - rect.Min.Y%size; y < rect.Max.Y; y += size {
		for x := rect.Min.X - rect.Min.X%size; x < rect.Max.X; x += size {
			src := l
			if ((x/size)+(y/size))%2 != 0 {
				src = d
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}
