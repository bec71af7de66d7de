package appstate

import (
	"image"
	"image/draw"
	"sync"

	"github.com/example/vastucrop/internal/stroke"
	"github.com/example/vastucrop/internal/theme"
	"github.com/example/vastucrop/internal/tools"
)

const appTitle = "VastuCrop"

const widthStep = 5

// widthSteps lists the selectable stroke widths.
func widthSteps() []float64 {
	var out []float64
	for w := float64(stroke.MinWidth); w <= stroke.MaxWidth; w += widthStep {
		out = append(out, w)
	}
	return out
}

// shortcutEntries is the bottom bar in display order.
var shortcutEntries = []struct {
	label, action string
}{
	{"^Z:undo", actionUndo},
	{"^Y:redo", actionRedo},
	{"Del:clear", actionClear},
	{"Enter:finalize", actionFinalize},
	{"^S:save", actionSave},
	{"^C:copy", actionCopy},
	{"Q:quit", actionQuit},
}

// chrome holds the toolbar and shortcut buttons. The event loop hit tests
// them while the paint goroutine draws them, so access is serialised.
type chrome struct {
	mu        sync.Mutex
	th        *theme.Theme
	tools     []*CacheButton
	widths    []*CacheButton
	shortcuts []*CacheButton
	hover     Button
}

func newChrome(th *theme.Theme, onTool func(tools.Kind), onWidth func(float64), onAction func(string)) *chrome {
	ch := &chrome{th: th}
	for i, k := range tools.Kinds() {
		ch.tools = append(ch.tools, &CacheButton{Button: &ToolButton{th: th, kind: k, hotkey: i + 1, onSelect: onTool}})
	}
	for _, w := range widthSteps() {
		ch.widths = append(ch.widths, &CacheButton{Button: &WidthButton{th: th, value: w, onSelect: onWidth}})
	}
	for _, e := range shortcutEntries {
		ch.shortcuts = append(ch.shortcuts, &CacheButton{Button: &Shortcut{th: th, label: e.label, action: e.action, run: onAction}})
	}
	return ch
}

// arrange places every button for the layout. Width buttons only occupy
// space while a drawing tool is active.
func (ch *chrome) arrange(l layout, tool tools.Kind) {
	y := titleHeight
	for _, b := range ch.tools {
		b.SetRect(image.Rect(0, y, l.toolbar, y+toolHeight))
		y += toolHeight
	}
	y += 4
	for _, b := range ch.widths {
		if tool.Drawing() {
			b.SetRect(image.Rect(0, y, l.toolbar, y+widthHeight))
			y += widthHeight
		} else {
			b.SetRect(image.Rectangle{})
		}
	}
	x := l.toolbar + 4
	top := l.height - bottomHeight + 3
	for _, b := range ch.shortcuts {
		w, _, _ := measureText(b.Button.(*Shortcut).label, labelSize)
		b.SetRect(image.Rect(x, top, x+w+8, top+bottomHeight-6))
		x += w + 8 + 6
	}
}

// hit returns the button under p, or nil.
func (ch *chrome) hit(l layout, tool tools.Kind, p image.Point) Button {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.arrange(l, tool)
	for _, group := range [][]*CacheButton{ch.tools, ch.widths, ch.shortcuts} {
		for _, b := range group {
			if p.In(b.Rect()) {
				return b
			}
		}
	}
	return nil
}

// setHover records the hovered button and reports whether it changed.
func (ch *chrome) setHover(b Button) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.hover == b {
		return false
	}
	ch.hover = b
	return true
}

func (ch *chrome) state(b Button, pressed, disabled bool) ButtonState {
	switch {
	case disabled:
		return StateDisabled
	case pressed:
		return StatePressed
	case b == ch.hover:
		return StateHover
	}
	return StateDefault
}

// draw renders the toolbar and the shortcut bar for st.
func (ch *chrome) draw(dst *image.RGBA, st paintState) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	l := st.layout
	ch.arrange(l, st.tool)

	draw.Draw(dst, l.toolbarRect(), image.NewUniform(ch.th.ToolbarBackground), image.Point{}, draw.Src)
	for _, b := range ch.tools {
		k := b.Button.(*ToolButton).kind
		locked := st.gesturing && k != st.tool
		b.Draw(dst, ch.state(b, k == st.tool, !k.Enabled() || locked))
	}
	if st.tool.Drawing() {
		for _, b := range ch.widths {
			v := b.Button.(*WidthButton).value
			b.Draw(dst, ch.state(b, v == st.width, false))
		}
	}

	draw.Draw(dst, l.bottom(), image.NewUniform(ch.th.StatusBackground), image.Point{}, draw.Src)
	for _, b := range ch.shortcuts {
		b.Draw(dst, ch.state(b, false, false))
	}
}
