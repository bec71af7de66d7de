package appstate

import (
	"context"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/render"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// paintState is everything a frame needs, captured on the event loop.
type paintState struct {
	layout    layout
	tool      tools.Kind
	width     float64
	gesturing bool
	fit       geom.Fit
	preview   *image.NRGBA
	overlay   *image.RGBA
	status    string
	message   string
}

// composeFrame renders st into dst. It returns false when ctx was cancelled
// part way.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState, ch *chrome, th *theme.Theme) bool {
	l := st.layout
	canvas := l.canvas()
	draw.Draw(dst, canvas, image.NewUniform(th.Background), image.Point{}, draw.Src)

	if st.preview != nil {
		img := st.fit.ImageRect().Add(canvas.Min).Intersect(canvas)
		render.Checkerboard(dst, img, checkerSize, th.CheckerLight, th.CheckerDark)
		if ctx.Err() != nil {
			return false
		}
		draw.Draw(dst, canvas, st.preview, st.preview.Bounds().Min, draw.Over)
	} else {
		drawCentered(dst, canvas, "no image loaded", th.CheckerLight, labelSize)
	}
	if ctx.Err() != nil {
		return false
	}
	if st.overlay != nil {
		draw.Draw(dst, canvas, st.overlay, st.overlay.Bounds().Min, draw.Over)
	}
	if ctx.Err() != nil {
		return false
	}

	draw.Draw(dst, l.title(), image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	drawText(dst, 4, 5, appTitle, th.Foreground, labelSize)
	drawText(dst, l.toolbar+4, 5, st.status, th.Foreground, labelSize)
	ch.draw(dst, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" {
		drawMessage(dst, l, st.message, th)
	}
	return ctx.Err() == nil
}

func drawMessage(dst *image.RGBA, l layout, msg string, th *theme.Theme) {
	w, h, _ := measureText(msg, messageSize)
	c := l.canvas()
	x := c.Min.X + (c.Dx()-w)/2
	y := c.Min.Y + (c.Dy()-h)/2
	box := image.Rect(x-8, y-8, x+w+8, y+h+8)
	bg := th.StatusBackground
	bg.A = 230
	draw.Draw(dst, box, image.NewUniform(bg), image.Point{}, draw.Over)
	drawBorder(dst, box, th.ButtonBorder)
	drawText(dst, x, y, msg, th.Foreground, messageSize)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, ch *chrome, th *theme.Theme) {
	b, err := s.NewBuffer(image.Point{st.layout.width, st.layout.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !composeFrame(ctx, b.RGBA(), st, ch, th) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
