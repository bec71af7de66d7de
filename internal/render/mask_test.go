package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/vastucrop/internal/geom"
)

func opaque(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 200
		img.Pix[i+1] = 100
		img.Pix[i+2] = 50
		img.Pix[i+3] = 255
	}
	return img
}

func TestPolylineMaskCoversBand(t *testing.T) {
	mask := PolylineMask([]geom.Point{geom.Pt(10, 10), geom.Pt(30, 10)}, 4, image.Rect(0, 0, 40, 20))
	if mask == nil {
		t.Fatal("expected mask")
	}
	if got := mask.AlphaAt(20, 10).A; got != 255 {
		t.Fatalf("centre coverage %d, want 255", got)
	}
	if got := mask.AlphaAt(20, 15).A; got != 0 {
		t.Fatalf("coverage outside band %d, want 0", got)
	}
	// round cap reaches past the end point
	if got := mask.AlphaAt(31, 10).A; got == 0 {
		t.Fatal("expected round cap coverage past the end point")
	}
}

func TestPolylineMaskClipped(t *testing.T) {
	if m := PolylineMask([]geom.Point{geom.Pt(-50, -50), geom.Pt(-40, -40)}, 4, image.Rect(0, 0, 10, 10)); m != nil {
		t.Fatalf("expected nil mask outside clip, got %v", m.Rect)
	}
	m := PolylineMask([]geom.Point{geom.Pt(-5, 5), geom.Pt(5, 5)}, 4, image.Rect(0, 0, 10, 10))
	if m == nil || m.Rect.Min.X < 0 {
		t.Fatalf("mask should be clipped to the raster, got %v", m)
	}
}

func TestDestinationOutClearsOnlyCoveredAlpha(t *testing.T) {
	img := opaque(40, 20)
	ErasePolyline(img, []geom.Point{geom.Pt(10, 10), geom.Pt(30, 10)}, 4)
	if got := img.NRGBAAt(20, 10); got.A != 0 {
		t.Fatalf("erased pixel alpha %d, want 0", got.A)
	}
	if got := img.NRGBAAt(20, 10); got.R != 200 || got.G != 100 || got.B != 50 {
		t.Fatalf("colour channels changed: %+v", got)
	}
	if got := img.NRGBAAt(2, 2); got != (color.NRGBA{200, 100, 50, 255}) {
		t.Fatalf("untouched pixel changed: %+v", got)
	}
}

func TestDrawPolylineTints(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawPolyline(dst, []geom.Point{geom.Pt(2, 10), geom.Pt(18, 10)}, 4, color.RGBA{255, 0, 0, 255})
	if got := dst.RGBAAt(10, 10); got.R != 255 || got.A != 255 {
		t.Fatalf("stroke pixel %+v", got)
	}
	if got := dst.RGBAAt(10, 2); got.A != 0 {
		t.Fatalf("overlay outside stroke should stay transparent, got %+v", got)
	}
}

func TestFillPolygon(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	FillPolygon(dst, []geom.Point{geom.Pt(5, 5), geom.Pt(15, 5), geom.Pt(15, 15), geom.Pt(5, 15)}, color.RGBA{0, 0, 255, 255})
	if got := dst.RGBAAt(10, 10); got.B != 255 || got.A != 255 {
		t.Fatalf("inside pixel %+v", got)
	}
	if got := dst.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("outside pixel %+v", got)
	}
	FillPolygon(dst, []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, color.Black)
}

func TestCheckerboard(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	light := color.RGBA{220, 220, 220, 255}
	dark := color.RGBA{192, 192, 192, 255}
	Checkerboard(dst, dst.Bounds(), 8, light, dark)
	if dst.RGBAAt(0, 0) != light || dst.RGBAAt(8, 0) != dark || dst.RGBAAt(8, 8) != light {
		t.Fatal("unexpected checkerboard layout")
	}
}
