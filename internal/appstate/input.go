package appstate

import (
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/tools"
)

// touchTracker keeps the contacts that are down in the order they landed.
type touchTracker struct {
	seqs []touch.Sequence
	pts  []geom.Point
}

func (t *touchTracker) index(seq touch.Sequence) int {
	for i, s := range t.seqs {
		if s == seq {
			return i
		}
	}
	return -1
}

// update applies e, located at p, and reports whether it belongs to the
// primary contact.
func (t *touchTracker) update(e touch.Event, p geom.Point) bool {
	i := t.index(e.Sequence)
	switch e.Type {
	case touch.TypeBegin:
		if i < 0 {
			t.seqs = append(t.seqs, e.Sequence)
			t.pts = append(t.pts, p)
			return len(t.seqs) == 1
		}
		t.pts[i] = p
	case touch.TypeMove:
		if i >= 0 {
			t.pts[i] = p
		}
	case touch.TypeEnd:
		if i >= 0 {
			t.pts[i] = p
			defer func() {
				t.seqs = append(t.seqs[:i], t.seqs[i+1:]...)
				t.pts = append(t.pts[:i], t.pts[i+1:]...)
			}()
		}
	}
	return i == 0
}

func (t *touchTracker) primary() (geom.Point, bool) { return tools.FromTouches(t.pts) }

// pointer routes window pointer input onto the session. A gesture is only
// started inside the canvas and ends as soon as the pointer leaves it.
type pointer struct {
	c       *cropper.Cropper
	down    bool
	touches touchTracker
}

// mouse handles a mouse event and reports whether the canvas consumed it.
func (p *pointer) mouse(l layout, e mouse.Event) (bool, error) {
	in := l.inCanvas(e.X, e.Y)
	pt := l.toCanvas(e.X, e.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if !in {
			return false, nil
		}
		p.down = true
		return true, p.c.PointerDown(pt)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !p.down {
			return false, nil
		}
		p.down = false
		return true, p.c.PointerUp(pt)
	case e.Direction == mouse.DirNone:
		if !p.down {
			return false, nil
		}
		if !in {
			return true, p.leave()
		}
		return true, p.c.PointerMove(pt)
	}
	return false, nil
}

// touch handles a touch event. Only the first contact draws; later contacts
// are tracked so the primary can be told apart.
func (p *pointer) touch(l layout, e touch.Event) error {
	in := l.inCanvas(e.X, e.Y)
	at := l.toCanvas(e.X, e.Y)
	if !p.touches.update(e, at) {
		return nil
	}
	pt, ok := p.touches.primary()
	if !ok || e.Type == touch.TypeEnd {
		pt = at
	}
	switch e.Type {
	case touch.TypeBegin:
		if !in {
			return nil
		}
		p.down = true
		return p.c.PointerDown(pt)
	case touch.TypeMove:
		if !p.down {
			return nil
		}
		if !in {
			return p.leave()
		}
		return p.c.PointerMove(pt)
	case touch.TypeEnd:
		if !p.down {
			return nil
		}
		p.down = false
		return p.c.PointerUp(pt)
	}
	return nil
}

// leave ends the gesture in flight because its release will not arrive.
func (p *pointer) leave() error {
	if !p.down {
		return nil
	}
	p.down = false
	return p.c.PointerLeave()
}
