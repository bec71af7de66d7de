// Package appstate is the desktop window around a crop session: a toolbar of
// tools and widths, a canvas showing the working image and its overlay, and
// a bar of shortcuts.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/notify"
	"github.com/example/vastucrop/internal/theme"
)

// DefaultResizeDebounce is used when no debounce is configured.
const DefaultResizeDebounce = 100 * time.Millisecond

// AppState holds application configuration for the UI.
type AppState struct {
	Cropper        *cropper.Cropper
	Output         string
	Title          string
	Theme          *theme.Theme
	Notifier       *notify.Notifier
	ResizeDebounce time.Duration
	// CopyImage places an image on the clipboard. nil disables copying.
	CopyImage func(image.Image) error

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCropper sets the session shown in the window.
func WithCropper(c *cropper.Cropper) Option { return func(a *AppState) { a.Cropper = c } }

// WithOutput sets the file written by save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithTheme sets the chrome palette.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithNotifier sets the desktop notifier for finalize, save and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithResizeDebounce sets how long size events settle before the session is
// refitted.
func WithResizeDebounce(d time.Duration) Option {
	return func(a *AppState) { a.ResizeDebounce = d }
}

// WithClipboard sets the function used by copy.
func WithClipboard(fn func(image.Image) error) Option {
	return func(a *AppState) { a.CopyImage = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:          appTitle,
		ResizeDebounce: DefaultResizeDebounce,
		updateCh:       make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Cropper == nil {
		a.Cropper = cropper.New(cropper.WithTheme(a.Theme))
	}
	return a
}

// NotifyImageChanged requests a repaint. It is safe to call from any
// goroutine, including cropper listeners.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// snapshot captures what the next frame shows.
func (a *AppState) snapshot(l layout, ct *controller) paintState {
	c := a.Cropper
	tool := c.Tool()
	st := paintState{
		layout:    l,
		tool:      tool,
		gesturing: c.Gesturing(),
		fit:       c.Fit(),
		preview:   c.Preview(),
		overlay:   c.Overlay(),
		status:    c.Status().String(),
		message:   ct.activeMessage(),
	}
	if tool.Drawing() {
		st.width = c.Width(tool)
	}
	return st
}

func (a *AppState) Main(s screen.Screen) {
	fit := a.Cropper.Fit()
	width, height := windowSize(geom.Size{W: fit.DisplayWidth, H: fit.DisplayHeight})
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repaint := func() { w.Send(paint.Event{}) }

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				repaint()
			case <-done:
				return
			}
		}
	}()

	ct := &controller{
		c:         a.Cropper,
		output:    a.Output,
		notifier:  a.Notifier,
		copyImage: a.CopyImage,
		now:       time.Now,
	}
	ct.onFlash = func() { time.AfterFunc(messageDuration, repaint) }

	quit := false
	ch := newChrome(a.Theme, ct.selectTool, ct.setWidth, func(action string) {
		if ct.run(ctx, action) {
			quit = true
		}
	})

	l := newLayout(width, height)
	in := &pointer{c: a.Cropper}
	resize := &debouncer{delay: a.ResizeDebounce}
	defer resize.stop()

	report := func(err error) {
		if err != nil {
			ct.flash("%v", err)
		}
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			fctx, fcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = fcancel
			paintMu.Unlock()
			drawFrame(fctx, s, w, st, ch, a.Theme)
			paintMu.Lock()
			paintCancel = nil
			if fctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			fcancel()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				report(in.leave())
				repaint()
			}
		case size.Event:
			l.width, l.height = e.WidthPx, e.HeightPx
			sz := l.canvasSize()
			resize.trigger(func() {
				a.Cropper.Resize(sz.W, sz.H)
				repaint()
			})
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.snapshot(l, ct)
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		case mouse.Event:
			if e.Direction == mouse.DirPress && ct.dismiss() {
				repaint()
			}
			handled, err := in.mouse(l, e)
			report(err)
			if handled {
				repaint()
				continue
			}
			p := image.Pt(int(e.X), int(e.Y))
			b := ch.hit(l, a.Cropper.Tool(), p)
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && b != nil {
				b.Activate()
				if quit {
					return
				}
				repaint()
				continue
			}
			if ch.setHover(b) {
				repaint()
			}
		case touch.Event:
			report(in.touch(l, e))
			repaint()
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if action, ok := lookupKey(e); ok {
				if ct.run(ctx, action) {
					return
				}
				repaint()
				continue
			}
			if e.Modifiers == 0 {
				if k, ok := toolForRune(e.Rune); ok {
					ct.selectTool(k)
					repaint()
				}
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}
