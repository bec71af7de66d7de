package cropper

import (
	"fmt"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/tools"
)

// Status is a point in time summary of the session.
type Status struct {
	Loaded     bool
	SourceW    int
	SourceH    int
	Fit        geom.Fit
	Tool       tools.Kind
	Strokes    int
	Snapshots  int
	Cursor     int
	CanUndo    bool
	CanRedo    bool
	Selection  *tools.Shape
	Gesturing  bool
	Finalized  bool
	OutputSize int
}

// Status summarises the session.
func (c *Cropper) Status() Status {
	c.lock()
	defer c.unlock()
	st := Status{
		Loaded:    c.src != nil,
		Fit:       c.fit,
		Tool:      c.machine.Kind(),
		Strokes:   len(c.strokes),
		Snapshots: c.hist.Len(),
		Cursor:    c.hist.Cursor(),
		CanUndo:   c.hist.CanUndo(),
		CanRedo:   c.hist.CanRedo(),
		Selection: c.machine.Selection(),
		Gesturing: c.machine.Active(),
		Finalized: c.finalized != nil,
	}
	if c.src != nil {
		st.SourceW = c.src.Bounds().Dx()
		st.SourceH = c.src.Bounds().Dy()
	}
	if c.finalized != nil {
		st.OutputSize = len(c.finalized.PNG)
	}
	return st
}

func (s Status) String() string {
	if !s.Loaded {
		return fmt.Sprintf("no image; tool=%v", s.Tool)
	}
	sel := "none"
	if s.Selection != nil {
		state := "open"
		if s.Selection.Closed {
			state = "closed"
		}
		sel = fmt.Sprintf("%v/%d/%s", s.Selection.Kind, len(s.Selection.Points), state)
	}
	out := fmt.Sprintf("image=%dx%d display=%.0fx%.0f scale=%.4g tool=%v strokes=%d history=%d/%d selection=%s",
		s.SourceW, s.SourceH, s.Fit.DisplayWidth, s.Fit.DisplayHeight, s.Fit.Scale,
		s.Tool, s.Strokes, s.Cursor+1, s.Snapshots, sel)
	if s.Finalized {
		out += fmt.Sprintf(" finalized=%dB", s.OutputSize)
	}
	return out
}
