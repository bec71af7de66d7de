package geom

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFitLetterboxes(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH       int
		dispW, dispH     float64
		scale, offX, offY float64
	}{
		{"exact double", 200, 100, 400, 200, 2, 0, 0},
		{"wide container", 200, 100, 600, 200, 2, 100, 0},
		{"tall container", 200, 100, 400, 400, 2, 0, 100},
		{"downscale", 4000, 3000, 800, 800, 0.2, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ComputeFit(tt.srcW, tt.srcH, tt.dispW, tt.dispH)
			require.True(t, f.Valid())
			assert.InDelta(t, tt.scale, f.Scale, 1e-9)
			assert.InDelta(t, tt.offX, f.OffsetX, 1e-9)
			assert.InDelta(t, tt.offY, f.OffsetY, 1e-9)
		})
	}
}

func TestComputeFitRejectsEmpty(t *testing.T) {
	assert.False(t, ComputeFit(0, 10, 100, 100).Valid())
	assert.False(t, ComputeFit(10, 10, 0, 100).Valid())
}

func TestCoordinateRoundTrip(t *testing.T) {
	fits := []Fit{
		ComputeFit(200, 100, 400, 200),
		ComputeFit(1234, 987, 640, 480),
		ComputeFit(37, 911, 300, 150),
	}
	for _, f := range fits {
		r := f.ImageRect()
		for y := r.Min.Y; y < r.Max.Y; y += 7 {
			for x := r.Min.X; x < r.Max.X; x += 5 {
				p := Pt(float64(x)+0.25, float64(y)+0.75)
				back := ToDisplaySpace(ToImageSpace(p, f), f)
				assert.InDelta(t, p.X, back.X, 1e-9)
				assert.InDelta(t, p.Y, back.Y, 1e-9)
			}
		}
	}
}

func TestToImageSpaceDoesNotClamp(t *testing.T) {
	f := ComputeFit(200, 100, 400, 400)
	p := ToImageSpace(Pt(-20, 0), f)
	assert.InDelta(t, -10, p.X, 1e-9)
	assert.InDelta(t, -50, p.Y, 1e-9)
}

func TestRebaseFollowsImageSpace(t *testing.T) {
	from := ComputeFit(200, 100, 400, 200)
	to := ComputeFit(200, 100, 200, 200)
	p := Rebase(Pt(100, 100), from, to)
	// image (50, 50) under scale 1 with a 50px vertical letterbox
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
}

func TestFloorDisplay(t *testing.T) {
	w, h := FloorDisplay(120, 80, DefaultMinDisplay)
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 150.0, h)
	w, h = FloorDisplay(400, 200, DefaultMinDisplay)
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 200.0, h)
}

func TestImageRect(t *testing.T) {
	f := ComputeFit(200, 100, 600, 200)
	assert.Equal(t, image.Rect(100, 0, 500, 200), f.ImageRect())
	assert.Equal(t, image.Rect(0, 0, 600, 200), f.DisplayBounds())
	assert.InDelta(t, 5, f.ImageWidth(10), 1e-9)
}
