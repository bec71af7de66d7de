package appstate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

func session(t *testing.T) *cropper.Cropper {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{90, 120, 150, 255})
	}
	c := cropper.New(cropper.WithDisplaySize(400, 200))
	require.NoError(t, c.LoadImage(img))
	return c
}

func testLayout() layout {
	w, h := windowSize(geom.Size{W: 400, H: 200})
	return newLayout(w, h)
}

// at converts display coordinates into window coordinates for l.
func at(l layout, x, y float32) (float32, float32) {
	c := l.canvas()
	return float32(c.Min.X) + x, float32(c.Min.Y) + y
}

func mouseAt(l layout, x, y float32, dir mouse.Direction) mouse.Event {
	wx, wy := at(l, x, y)
	return mouse.Event{X: wx, Y: wy, Button: mouse.ButtonLeft, Direction: dir}
}

func TestLayoutCanvasFitsDisplay(t *testing.T) {
	l := testLayout()
	sz := l.canvasSize()
	assert.Equal(t, 400.0, sz.W)
	assert.GreaterOrEqual(t, sz.H, 200.0, "tall enough for the toolbar")
	assert.GreaterOrEqual(t, l.toolbar, minToolbarWidth)

	p := l.toCanvas(at(l, 12, 34))
	assert.Equal(t, geom.Pt(12, 34), p)
	assert.True(t, l.inCanvas(at(l, 0, 0)))
	assert.False(t, l.inCanvas(at(l, -1, 0)))
	assert.False(t, l.inCanvas(at(l, 400, 10)))
	assert.False(t, l.inCanvas(at(l, 10, float32(sz.H))))
}

func TestWindowSizeFitsToolbar(t *testing.T) {
	_, h := windowSize(geom.Size{W: 300, H: 10})
	assert.GreaterOrEqual(t, h, titleHeight+bottomHeight+len(tools.Kinds())*toolHeight)
}

func TestPointerDrawsAndLeaves(t *testing.T) {
	c := session(t)
	l := testLayout()
	p := &pointer{c: c}

	handled, err := p.mouse(l, mouseAt(l, 20, 20, mouse.DirPress))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.True(t, c.Gesturing())

	_, err = p.mouse(l, mouseAt(l, 120, 20, mouse.DirNone))
	require.NoError(t, err)
	handled, err = p.mouse(l, mouseAt(l, 450, 20, mouse.DirNone))
	require.NoError(t, err)
	assert.True(t, handled)
	assert.False(t, c.Gesturing(), "leaving the canvas ends the gesture")
	assert.Len(t, c.Strokes(), 1)

	handled, err = p.mouse(l, mouseAt(l, 120, 20, mouse.DirRelease))
	require.NoError(t, err)
	assert.False(t, handled, "the release was already accounted for")
	assert.Len(t, c.Strokes(), 1)
}

func TestPointerIgnoresPressOutsideCanvas(t *testing.T) {
	c := session(t)
	l := testLayout()
	p := &pointer{c: c}
	handled, err := p.mouse(l, mouse.Event{X: 2, Y: float32(titleHeight + 2), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	require.NoError(t, err)
	assert.False(t, handled)
	assert.False(t, c.Gesturing())
}

func TestTouchUsesPrimaryContact(t *testing.T) {
	c := session(t)
	l := testLayout()
	p := &pointer{c: c}
	ev := func(seq touch.Sequence, typ touch.Type, x, y float32) touch.Event {
		wx, wy := at(l, x, y)
		return touch.Event{X: wx, Y: wy, Sequence: seq, Type: typ}
	}

	require.NoError(t, p.touch(l, ev(1, touch.TypeBegin, 20, 40)))
	require.NoError(t, p.touch(l, ev(2, touch.TypeBegin, 300, 150)))
	require.NoError(t, p.touch(l, ev(2, touch.TypeMove, 310, 160)))
	require.NoError(t, p.touch(l, ev(1, touch.TypeMove, 100, 40)))
	require.NoError(t, p.touch(l, ev(1, touch.TypeEnd, 140, 40)))
	require.NoError(t, p.touch(l, ev(2, touch.TypeEnd, 310, 160)))

	strokes := c.Strokes()
	require.Len(t, strokes, 1)
	pts := strokes[0].Points
	assert.Equal(t, geom.Pt(20, 40), pts[0])
	assert.Equal(t, geom.Pt(140, 40), pts[len(pts)-1])
	assert.Empty(t, p.touches.seqs)
}

func TestLookupKey(t *testing.T) {
	cases := []struct {
		ev   key.Event
		want string
	}{
		{key.Event{Rune: 'z', Modifiers: key.ModControl}, actionUndo},
		{key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}, actionRedo},
		{key.Event{Rune: 'y', Code: key.CodeY, Modifiers: key.ModControl}, actionRedo},
		{key.Event{Rune: '\r', Code: key.CodeReturnEnter}, actionFinalize},
		{key.Event{Rune: -1, Code: key.CodeDeleteForward}, actionClear},
		{key.Event{Rune: 'Q', Code: key.CodeQ}, actionQuit},
		{key.Event{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}, actionSave},
	}
	for _, tc := range cases {
		got, ok := lookupKey(tc.ev)
		assert.True(t, ok, "%+v", tc.ev)
		assert.Equal(t, tc.want, got)
	}
	_, ok := lookupKey(key.Event{Rune: 's', Code: key.CodeS})
	assert.False(t, ok)
}

func TestToolForRune(t *testing.T) {
	k, ok := toolForRune('2')
	require.True(t, ok)
	assert.Equal(t, tools.Pencil, k)
	k, ok = toolForRune('7')
	require.True(t, ok)
	assert.Equal(t, tools.AutoDetect, k)
	_, ok = toolForRune('8')
	assert.False(t, ok)
	_, ok = toolForRune('0')
	assert.False(t, ok)
}

func newController(t *testing.T, c *cropper.Cropper) *controller {
	t.Helper()
	now := time.Unix(1000, 0)
	return &controller{c: c, now: func() time.Time { return now }}
}

func eraseAcross(t *testing.T, c *cropper.Cropper) {
	t.Helper()
	require.NoError(t, c.SelectTool(tools.Eraser))
	require.NoError(t, c.PointerDown(geom.Pt(50, 50)))
	require.NoError(t, c.PointerMove(geom.Pt(150, 50)))
	require.NoError(t, c.PointerUp(geom.Pt(150, 50)))
}

func TestControllerUndoRedoMessages(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	assert.False(t, ct.run(context.Background(), actionUndo))
	assert.Equal(t, "nothing to undo", ct.activeMessage())
	assert.True(t, ct.dismiss())
	assert.Empty(t, ct.activeMessage())

	eraseAcross(t, c)
	ct.run(context.Background(), actionUndo)
	assert.Empty(t, c.Strokes())
	ct.run(context.Background(), actionRedo)
	assert.Len(t, c.Strokes(), 1)
	assert.True(t, ct.run(context.Background(), actionQuit))
}

func TestControllerSaveFinalizesOnce(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	ct.output = filepath.Join(t.TempDir(), "out", "plan.png")
	eraseAcross(t, c)

	ct.run(context.Background(), actionSave)
	data, err := os.ReadFile(ct.output)
	require.NoError(t, err)
	res := c.Finalized()
	require.NotNil(t, res)
	assert.Equal(t, res.PNG, data)
	assert.Equal(t, "saved "+ct.output, ct.activeMessage())

	ct.run(context.Background(), actionSave)
	assert.Same(t, res, c.Finalized(), "a second save writes the same result")

	ct.run(context.Background(), actionFinalize)
	again := c.Finalized()
	require.NotNil(t, again)
	assert.NotSame(t, res, again)
	assert.Same(t, c.Source(), again.Image, "finalizing again starts from the source")
	assert.Equal(t, "finalized 200x100", ct.activeMessage())
}

func TestControllerSaveWithoutOutput(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	ct.run(context.Background(), actionSave)
	assert.Equal(t, "no output file", ct.activeMessage())
	assert.Nil(t, c.Finalized())
}

func TestControllerCopy(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	ct.run(context.Background(), actionCopy)
	assert.Equal(t, "clipboard unavailable", ct.activeMessage())

	var copied image.Image
	ct.copyImage = func(img image.Image) error {
		copied = img
		return nil
	}
	ct.run(context.Background(), actionCopy)
	require.NotNil(t, copied)
	assert.Same(t, c.Source(), copied, "no erase strokes means the source is copied as is")

	ct.copyImage = func(image.Image) error { return errors.New("no display") }
	ct.run(context.Background(), actionCopy)
	assert.Equal(t, "copy failed: no display", ct.activeMessage())
}

func TestControllerToolLockedDuringGesture(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	require.NoError(t, c.PointerDown(geom.Pt(10, 10)))
	ct.selectTool(tools.Rectangle)
	assert.Equal(t, tools.Pencil, c.Tool())
	assert.Equal(t, "finish the current gesture first", ct.activeMessage())
	require.NoError(t, c.PointerUp(geom.Pt(60, 10)))
	ct.selectTool(tools.Rectangle)
	assert.Equal(t, tools.Rectangle, c.Tool())

	k, ok := toolForRune('7')
	require.True(t, ok)
	ct.selectTool(k)
	assert.Equal(t, tools.Rectangle, c.Tool())
	assert.Equal(t, "autodetect is not available", ct.activeMessage())
}

func TestControllerWidthSteps(t *testing.T) {
	c := session(t)
	ct := newController(t, c)
	ct.setWidth(35)
	assert.Equal(t, 35.0, c.Width(tools.Pencil))
	ct.run(context.Background(), actionWider)
	assert.Equal(t, 40.0, c.Width(tools.Pencil))
	ct.setWidth(500)
	assert.Equal(t, 50.0, c.Width(tools.Pencil))

	ct.selectTool(tools.Square)
	ct.run(context.Background(), actionNarrower)
	assert.Equal(t, 50.0, c.Width(tools.Pencil))
}

func TestChromeHitTesting(t *testing.T) {
	th := theme.Default()
	var picked tools.Kind = -1
	var width float64
	var action string
	ch := newChrome(th, func(k tools.Kind) { picked = k }, func(w float64) { width = w }, func(a string) { action = a })
	l := testLayout()

	b := ch.hit(l, tools.Pencil, image.Pt(4, titleHeight+2*toolHeight+2))
	require.NotNil(t, b)
	b.Activate()
	assert.Equal(t, tools.Eraser, picked)

	b = ch.hit(l, tools.Pointer, image.Pt(4, titleHeight+6*toolHeight+2))
	require.NotNil(t, b)
	picked = -1
	b.Activate()
	assert.Equal(t, tools.Kind(-1), picked, "disabled tools ignore clicks")

	y := titleHeight + len(tools.Kinds())*toolHeight + 4 + 1
	assert.Nil(t, ch.hit(l, tools.Pointer, image.Pt(4, y)), "width buttons hidden for shape tools")
	b = ch.hit(l, tools.Eraser, image.Pt(4, y+widthHeight))
	require.NotNil(t, b)
	b.Activate()
	assert.Equal(t, 10.0, width)

	b = ch.hit(l, tools.Pointer, image.Pt(l.toolbar+6, l.height-bottomHeight/2))
	require.NotNil(t, b)
	b.Activate()
	assert.Equal(t, actionUndo, action)

	assert.True(t, ch.setHover(b))
	assert.False(t, ch.setHover(b))
}

func TestComposeFrame(t *testing.T) {
	c := session(t)
	eraseAcross(t, c)
	l := testLayout()
	th := theme.Default()
	ch := newChrome(th, nil, nil, nil)
	ct := newController(t, c)
	a := &AppState{Cropper: c}
	st := a.snapshot(l, ct)
	assert.Equal(t, tools.Eraser, st.tool)
	assert.Equal(t, 20.0, st.width)

	dst := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	require.True(t, composeFrame(context.Background(), dst, st, ch, th))

	cv := l.canvas().Min
	// Untouched image pixels show the source.
	assert.Equal(t, color.RGBA{90, 120, 150, 255}, dst.RGBAAt(cv.X+100, cv.Y+150))
	// The bar shows the theme background on the toolbar.
	assert.Equal(t, color.RGBA{th.ToolbarBackground.R, th.ToolbarBackground.G, th.ToolbarBackground.B, 255}, dst.RGBAAt(1, l.height-bottomHeight-1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, composeFrame(ctx, image.NewRGBA(dst.Bounds()), st, ch, th))
}

func TestComposeFrameWithoutImage(t *testing.T) {
	l := testLayout()
	th := theme.Default()
	ch := newChrome(th, nil, nil, nil)
	a := New(WithTheme(th))
	st := a.snapshot(l, newController(t, a.Cropper))
	assert.Nil(t, st.preview)
	dst := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	assert.True(t, composeFrame(context.Background(), dst, st, ch, th))
}

func TestDebouncerKeepsLastCall(t *testing.T) {
	d := &debouncer{delay: 20 * time.Millisecond}
	var last atomic.Int32
	fired := make(chan struct{}, 4)
	for i := int32(1); i <= 3; i++ {
		i := i
		d.trigger(func() {
			last.Store(i)
			fired <- struct{}{}
		})
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), last.Load())
	assert.Empty(t, fired)

	ran := false
	(&debouncer{}).trigger(func() { ran = true })
	assert.True(t, ran)
}

func TestNotifyImageChangedDoesNotBlock(t *testing.T) {
	a := New()
	a.NotifyImageChanged()
	a.NotifyImageChanged()
	assert.Len(t, a.updateCh, 1)
}
