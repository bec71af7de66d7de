package stroke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vastucrop/internal/geom"
)

func TestBeginExtend(t *testing.T) {
	fit := geom.ComputeFit(200, 100, 400, 200)
	s := Begin(Erase, geom.Pt(50, 50), 10, fit)
	require.Len(t, s.Points, 1)
	assert.NotEmpty(t, s.ID)
	assert.ErrorIs(t, s.Validate(), ErrTooFewPoints)

	s = Extend(s, geom.Pt(50.2, 50.1))
	assert.Len(t, s.Points, 1, "sub-pixel jitter is decimated")

	s = Extend(s, geom.Pt(150, 50))
	require.Len(t, s.Points, 2)
	assert.NoError(t, s.Validate())
	assert.Equal(t, CompositeDestinationOut, s.Composite())
}

func TestPaintDoesNotComposite(t *testing.T) {
	s := Begin(Paint, geom.Pt(0, 0), 10, geom.Fit{})
	assert.Equal(t, CompositeNone, s.Composite())
}

func TestBeginAssignsDistinctIDs(t *testing.T) {
	a := Begin(Paint, geom.Pt(0, 0), 10, geom.Fit{})
	b := Begin(Paint, geom.Pt(0, 0), 10, geom.Fit{})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFreezeIsIndependent(t *testing.T) {
	s := Begin(Erase, geom.Pt(1, 1), 10, geom.Fit{})
	s = Extend(s, geom.Pt(5, 5))
	frozen := s.Freeze()
	s.Points[0] = geom.Pt(99, 99)
	assert.Equal(t, geom.Pt(1, 1), frozen.Points[0])
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, float64(MinWidth), ClampWidth(1))
	assert.Equal(t, float64(MaxWidth), ClampWidth(500))
	assert.Equal(t, 12.0, ClampWidth(12))
}

func TestImagePointsUsesOwnFit(t *testing.T) {
	fit := geom.ComputeFit(200, 100, 400, 200)
	s := Extend(Begin(Erase, geom.Pt(50, 50), 10, fit), geom.Pt(150, 50))
	pts, w := s.ImagePoints()
	assert.Equal(t, []geom.Point{geom.Pt(25, 25), geom.Pt(75, 25)}, pts)
	assert.InDelta(t, 5, w, 1e-9)
}

func TestDisplayPointsRebases(t *testing.T) {
	from := geom.ComputeFit(200, 100, 400, 200)
	to := geom.ComputeFit(200, 100, 200, 100)
	s := Extend(Begin(Erase, geom.Pt(50, 50), 10, from), geom.Pt(150, 50))
	pts, w := s.DisplayPoints(to)
	assert.Equal(t, []geom.Point{geom.Pt(25, 25), geom.Pt(75, 25)}, pts)
	assert.InDelta(t, 5, w, 1e-9)
	assert.Equal(t, geom.Pt(50, 50), s.Points[0], "stored points are untouched")
}
