package appstate

import (
	"image"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/tools"
)

const (
	titleHeight     = 24
	bottomHeight    = 28
	toolHeight      = 24
	widthHeight     = 18
	minToolbarWidth = 64
	checkerSize     = 8
)

// layout splits the window into the title bar, the toolbar on the left, the
// shortcut bar at the bottom and the canvas.
type layout struct {
	width, height int
	toolbar       int
}

func newLayout(width, height int) layout {
	return layout{width: width, height: height, toolbar: toolbarWidth()}
}

// toolbarWidth fits the widest tool label.
func toolbarWidth() int {
	w := minToolbarWidth
	if tw, _, _ := measureText(appTitle, labelSize); tw+8 > w {
		w = tw + 8
	}
	for i, k := range tools.Kinds() {
		tb := ToolButton{kind: k, hotkey: i + 1}
		if lw, _, _ := measureText(tb.label(), labelSize); lw+8 > w {
			w = lw + 8
		}
	}
	return w
}

// windowSize returns the window that shows a display surface of d unclipped.
func windowSize(d geom.Size) (int, int) {
	tb := toolbarWidth()
	w := tb + int(d.W)
	h := titleHeight + bottomHeight + int(d.H)
	minH := titleHeight + bottomHeight + len(tools.Kinds())*toolHeight + len(widthSteps())*widthHeight + 8
	if h < minH {
		h = minH
	}
	return w, h
}

func (l layout) title() image.Rectangle { return image.Rect(0, 0, l.width, titleHeight) }

func (l layout) toolbarRect() image.Rectangle {
	return image.Rect(0, titleHeight, l.toolbar, l.height-bottomHeight)
}

func (l layout) bottom() image.Rectangle {
	return image.Rect(0, l.height-bottomHeight, l.width, l.height)
}

func (l layout) canvas() image.Rectangle {
	r := image.Rect(l.toolbar, titleHeight, l.width, l.height-bottomHeight)
	if r.Empty() {
		return image.Rectangle{Min: r.Min, Max: r.Min}
	}
	return r
}

// canvasSize is the container size handed to the cropper.
func (l layout) canvasSize() geom.Size {
	r := l.canvas()
	return geom.Size{W: float64(r.Dx()), H: float64(r.Dy())}
}

// toCanvas translates window coordinates into display space.
func (l layout) toCanvas(x, y float32) geom.Point {
	r := l.canvas()
	return tools.FromMouse(float64(x)-float64(r.Min.X), float64(y)-float64(r.Min.Y))
}

func (l layout) inCanvas(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(l.canvas())
}
