// Package cropper owns one edit session: the loaded source, the active tool,
// the committed strokes with their history, and the finalized result.
//
// All methods are safe for concurrent use. Listeners run after the session
// lock is released, so they may call back into the Cropper.
package cropper

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"sync"

	"github.com/example/vastucrop/internal/finalize"
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/history"
	"github.com/example/vastucrop/internal/overlay"
	"github.com/example/vastucrop/internal/stroke"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

// CropEvent is delivered to the CropComplete listener.
type CropEvent struct {
	// MaskInfo is reserved; it is always nil.
	MaskInfo any
	// UserInteracted is true when the session holds user strokes, or when
	// the event is the result of a finalize.
	UserInteracted bool
	// EncodedImageURL is a data URL of the finalized PNG, empty otherwise.
	EncodedImageURL string
	// PNG is the finalized image, nil otherwise.
	PNG []byte
}

// Cropper is an interactive mask cropping session.
type Cropper struct {
	mu    sync.Mutex
	queue []func()

	theme      *theme.Theme
	renderer   *overlay.Renderer
	minDisplay geom.Size
	container  geom.Size
	widths     map[tools.Kind]float64

	onCrop   func(CropEvent)
	onError  func(error)
	onChange func()

	src           image.Image
	fit           geom.Fit
	pendingResize *geom.Size
	machine       *tools.Machine
	hist          *history.History
	strokes       []stroke.Stroke
	preview       *image.NRGBA
	overlay       *image.RGBA
	finalized     *finalize.Result
}

// New returns an empty session.
func New(opts ...Option) *Cropper {
	c := &Cropper{
		minDisplay: geom.DefaultMinDisplay,
		widths: map[tools.Kind]float64{
			tools.Pencil: stroke.DefaultWidth,
			tools.Eraser: stroke.DefaultWidth,
		},
		machine: tools.New(),
		hist:    history.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.renderer = overlay.NewRenderer(c.theme)
	for k, w := range c.widths {
		_, _ = c.machine.SetWidth(k, w)
	}
	return c
}

func (c *Cropper) lock() { c.mu.Lock() }

// unlock releases the session and then runs queued listener calls.
func (c *Cropper) unlock() {
	q := c.queue
	c.queue = nil
	c.mu.Unlock()
	for _, fn := range q {
		fn()
	}
}

func (c *Cropper) emit(ev CropEvent) {
	if fn := c.onCrop; fn != nil {
		c.queue = append(c.queue, func() { fn(ev) })
	}
}

func (c *Cropper) changed() {
	if fn := c.onChange; fn != nil {
		c.queue = append(c.queue, fn)
	}
}

// report logs err and hands it to the error listener.
func (c *Cropper) report(err error) error {
	log.Printf("cropper: %v", err)
	if fn := c.onError; fn != nil {
		c.queue = append(c.queue, func() { fn(err) })
	}
	return err
}

// Load decodes a new source. Any format registered with the image package is
// accepted and EXIF orientation is applied.
func (c *Cropper) Load(r io.Reader) error {
	img, err := decodeFn(r)
	c.lock()
	defer c.unlock()
	if err != nil {
		c.setSource(nil)
		return c.report(fmt.Errorf("%w: %v", ErrUnsupportedInput, err))
	}
	c.setSource(img)
	return nil
}

// LoadFile opens and decodes path.
func (c *Cropper) LoadFile(path string) error {
	img, err := openFn(path)
	c.lock()
	defer c.unlock()
	if err != nil {
		c.setSource(nil)
		return c.report(fmt.Errorf("%w: %s: %v", ErrUnsupportedInput, path, err))
	}
	c.setSource(img)
	return nil
}

// LoadImage starts a session over an already decoded image.
func (c *Cropper) LoadImage(img image.Image) error {
	c.lock()
	defer c.unlock()
	if img == nil || img.Bounds().Empty() {
		c.setSource(nil)
		return c.report(fmt.Errorf("%w: empty image", ErrUnsupportedInput))
	}
	c.setSource(img)
	return nil
}

// setSource resets the whole session around img, which may be nil.
func (c *Cropper) setSource(img image.Image) {
	c.src = img
	c.hist = history.New()
	c.strokes = nil
	c.finalized = nil
	c.pendingResize = nil
	c.machine.Reset()
	c.refit()
}

// Resize records a new container size. While a gesture is in flight the
// resize is held back until the gesture ends.
func (c *Cropper) Resize(w, h float64) {
	c.lock()
	defer c.unlock()
	if c.machine.Active() {
		c.pendingResize = &geom.Size{W: w, H: h}
		return
	}
	c.container = geom.Size{W: w, H: h}
	c.refit()
}

func (c *Cropper) applyPendingResize() {
	if c.pendingResize == nil || c.machine.Active() {
		return
	}
	c.container = *c.pendingResize
	c.pendingResize = nil
	c.refit()
}

func (c *Cropper) refit() {
	w, h := geom.FloorDisplay(c.container.W, c.container.H, c.minDisplay)
	if c.src == nil {
		c.fit = geom.Fit{DisplayWidth: w, DisplayHeight: h}
	} else {
		b := c.src.Bounds()
		c.fit = geom.ComputeFit(b.Dx(), b.Dy(), w, h)
	}
	c.machine.SetFit(c.fit)
	c.rebuildPreview()
	c.redraw()
}

func (c *Cropper) base() image.Image {
	if c.finalized != nil && len(c.strokes) == 0 {
		return c.finalized.Image
	}
	return c.src
}

func (c *Cropper) rebuildPreview() {
	if c.src == nil {
		c.preview = nil
		return
	}
	c.preview = overlay.BuildPreview(c.base(), c.fit, c.strokes)
}

func (c *Cropper) redraw() {
	b := c.fit.DisplayBounds()
	if c.overlay == nil || c.overlay.Bounds() != b {
		c.overlay = image.NewRGBA(b)
	}
	c.renderer.Render(c.overlay, overlay.Scene{
		Fit:        c.fit,
		Strokes:    c.strokes,
		InProgress: c.machine.InProgress(),
		Selection:  c.machine.Selection(),
		Dragging:   c.machine.Dragging(),
	})
	c.changed()
}

// SelectTool switches the active tool. It fails with ErrGestureActive while a
// gesture is in flight.
func (c *Cropper) SelectTool(k tools.Kind) error {
	c.lock()
	defer c.unlock()
	if err := c.machine.SetTool(k); err != nil {
		return err
	}
	c.redraw()
	return nil
}

// SetWidth sets the pencil or eraser width, clamped to the allowed range. The
// stored width is returned.
func (c *Cropper) SetWidth(k tools.Kind, w float64) (float64, error) {
	c.lock()
	defer c.unlock()
	w, err := c.machine.SetWidth(k, w)
	if err != nil {
		return 0, err
	}
	c.widths[k] = w
	return w, nil
}

// Width returns the configured width of a drawing tool.
func (c *Cropper) Width(k tools.Kind) float64 {
	c.lock()
	defer c.unlock()
	return c.machine.Width(k)
}

// PointerDown starts a gesture, or places a polygon vertex.
func (c *Cropper) PointerDown(p geom.Point) error {
	c.lock()
	defer c.unlock()
	if c.src == nil {
		return nil
	}
	return c.handle(c.machine.Start(p))
}

// PointerMove extends the gesture in flight.
func (c *Cropper) PointerMove(p geom.Point) error {
	c.lock()
	defer c.unlock()
	if c.src == nil {
		return nil
	}
	return c.handle(c.machine.Move(p))
}

// PointerUp ends the gesture in flight.
func (c *Cropper) PointerUp(p geom.Point) error {
	c.lock()
	defer c.unlock()
	if c.src == nil {
		return nil
	}
	return c.handle(c.machine.End(p))
}

// PointerLeave ends a gesture whose release will never arrive.
func (c *Cropper) PointerLeave() error {
	c.lock()
	defer c.unlock()
	if c.src == nil {
		return nil
	}
	return c.handle(c.machine.Abandon())
}

func (c *Cropper) handle(res tools.Result, err error) error {
	defer c.applyPendingResize()
	if res.Committed != nil {
		c.commit(*res.Committed)
	}
	if res.Redraw || res.Committed != nil {
		c.redraw()
	}
	if err != nil && !quiet(err) {
		return c.report(err)
	}
	return nil
}

func (c *Cropper) commit(s stroke.Stroke) {
	next := make([]stroke.Stroke, len(c.strokes), len(c.strokes)+1)
	copy(next, c.strokes)
	next = append(next, s)
	if c.finalized != nil {
		// The preview showed the finalized image; go back to the source.
		c.finalized = nil
		c.strokes = next
		c.rebuildPreview()
	} else {
		c.strokes = next
		overlay.ApplyStroke(c.preview, s, c.fit)
	}
	c.hist.Commit(c.strokes)
	c.emit(CropEvent{UserInteracted: true})
}

// Undo steps back one commit. It reports whether anything changed.
func (c *Cropper) Undo() bool {
	c.lock()
	defer c.unlock()
	strokes, moved := c.hist.Undo()
	if moved {
		c.restore(strokes)
	}
	return moved
}

// Redo steps forward one commit. It reports whether anything changed.
func (c *Cropper) Redo() bool {
	c.lock()
	defer c.unlock()
	strokes, moved := c.hist.Redo()
	if moved {
		c.restore(strokes)
	}
	return moved
}

func (c *Cropper) restore(strokes []stroke.Stroke) {
	c.strokes = strokes
	c.finalized = nil
	c.rebuildPreview()
	c.redraw()
	c.emit(CropEvent{UserInteracted: len(strokes) > 0})
}

// Clear drops every stroke, the history, the selection and the finalized
// result.
func (c *Cropper) Clear() {
	c.lock()
	defer c.unlock()
	c.hist.Clear()
	c.strokes = nil
	c.finalized = nil
	c.machine.Reset()
	c.applyPendingResize()
	c.rebuildPreview()
	c.redraw()
	c.emit(CropEvent{})
}

// Finalize bakes the committed strokes into a full resolution PNG. A gesture
// in flight is ended first. On success the edit session is consumed; on
// failure it is left as it was. Finalizing again always starts from the
// loaded source, so with no new strokes the result is the untouched source.
func (c *Cropper) Finalize(ctx context.Context) (*finalize.Result, error) {
	c.lock()
	defer c.unlock()
	if c.machine.Active() {
		if err := c.handle(c.machine.Abandon()); err != nil {
			return nil, err
		}
	}
	res, err := finalize.Finalize(ctx, c.src, c.strokes)
	if err != nil {
		return nil, c.report(fmt.Errorf("finalize: %w", err))
	}
	log.Printf("cropper: finalized %dx%d from %d strokes (%d bytes)", res.Image.Bounds().Dx(), res.Image.Bounds().Dy(), len(c.strokes), len(res.PNG))
	c.finalized = res
	c.strokes = nil
	c.hist.Clear()
	c.machine.Reset()
	c.rebuildPreview()
	c.redraw()
	c.emit(CropEvent{UserInteracted: true, EncodedImageURL: res.DataURL(), PNG: res.PNG})
	return res, nil
}

// Dispose releases the source and the display rasters. Strokes and history
// stay inspectable but nothing can be finalized afterwards.
func (c *Cropper) Dispose() {
	c.lock()
	defer c.unlock()
	c.src = nil
	c.preview = nil
	c.overlay = nil
	c.machine.Reset()
}

// Fit is the current display fit.
func (c *Cropper) Fit() geom.Fit {
	c.lock()
	defer c.unlock()
	return c.fit
}

// Tool is the active tool.
func (c *Cropper) Tool() tools.Kind {
	c.lock()
	defer c.unlock()
	return c.machine.Kind()
}

// Gesturing reports whether a gesture is in flight. Hosts disable tool
// switching and suppress pinch zoom while it is true.
func (c *Cropper) Gesturing() bool {
	c.lock()
	defer c.unlock()
	return c.machine.Multitouch()
}

// Strokes returns the committed strokes in commit order.
func (c *Cropper) Strokes() []stroke.Stroke {
	c.lock()
	defer c.unlock()
	return append([]stroke.Stroke(nil), c.strokes...)
}

// Selection returns the current shape selection, if any.
func (c *Cropper) Selection() *tools.Shape {
	c.lock()
	defer c.unlock()
	return c.machine.Selection()
}

// Finalized returns the last finalized result, if it is still current.
func (c *Cropper) Finalized() *finalize.Result {
	c.lock()
	defer c.unlock()
	return c.finalized
}

// Source returns the loaded image.
func (c *Cropper) Source() image.Image {
	c.lock()
	defer c.unlock()
	return c.src
}

// Preview returns a copy of the display resolution working image, or nil
// when nothing is loaded.
func (c *Cropper) Preview() *image.NRGBA {
	c.lock()
	defer c.unlock()
	if c.preview == nil {
		return nil
	}
	out := *c.preview
	out.Pix = append([]uint8(nil), c.preview.Pix...)
	return &out
}

// Overlay returns a copy of the feedback layer.
func (c *Cropper) Overlay() *image.RGBA {
	c.lock()
	defer c.unlock()
	if c.overlay == nil {
		return nil
	}
	out := *c.overlay
	out.Pix = append([]uint8(nil), c.overlay.Pix...)
	return &out
}
