package cropper

import (
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

// Option configures a Cropper.
type Option func(*Cropper)

// WithTheme sets the overlay palette.
func WithTheme(th *theme.Theme) Option {
	return func(c *Cropper) { c.theme = th }
}

// WithMinDisplay sets the floor applied to the container size.
func WithMinDisplay(min geom.Size) Option {
	return func(c *Cropper) {
		if min.W > 0 && min.H > 0 {
			c.minDisplay = min
		}
	}
}

// WithDisplaySize sets the initial container size.
func WithDisplaySize(w, h float64) Option {
	return func(c *Cropper) { c.container = geom.Size{W: w, H: h} }
}

// WithBrushWidth sets the initial pencil width.
func WithBrushWidth(w float64) Option {
	return func(c *Cropper) { c.widths[tools.Pencil] = w }
}

// WithEraserWidth sets the initial eraser width.
func WithEraserWidth(w float64) Option {
	return func(c *Cropper) { c.widths[tools.Eraser] = w }
}

// WithOnCropComplete registers the CropComplete listener.
func WithOnCropComplete(fn func(CropEvent)) Option {
	return func(c *Cropper) { c.onCrop = fn }
}

// WithOnError registers a listener for reported errors.
func WithOnError(fn func(error)) Option {
	return func(c *Cropper) { c.onError = fn }
}

// WithOnChange registers a listener called whenever the preview or overlay
// changed and the host should repaint.
func WithOnChange(fn func()) Option {
	return func(c *Cropper) { c.onChange = fn }
}
