package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/finalize"
	"github.com/example/vastucrop/internal/notify"
	"github.com/example/vastucrop/internal/tools"
)

const (
	actionUndo     = "undo"
	actionRedo     = "redo"
	actionClear    = "clear"
	actionFinalize = "finalize"
	actionSave     = "save"
	actionCopy     = "copy"
	actionQuit     = "quit"
	actionWider    = "wider"
	actionNarrower = "narrower"
)

const messageDuration = 2 * time.Second

// keymap binds keyboard shortcuts to actions.
var keymap = map[KeyShortcut]string{}

func register(action string, keys KeyboardShortcuts) {
	for _, sc := range keys.KeyboardShortcuts() {
		keymap[sc] = action
	}
}

func init() {
	register(actionUndo, shortcutList{{Rune: 'z', Modifiers: key.ModControl}})
	register(actionRedo, shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	})
	register(actionClear, shortcutList{{Code: key.CodeDeleteForward}})
	register(actionFinalize, shortcutList{{Code: key.CodeReturnEnter}, {Code: key.CodeKeypadEnter}})
	register(actionSave, shortcutList{{Rune: 's', Modifiers: key.ModControl}})
	register(actionCopy, shortcutList{{Rune: 'c', Modifiers: key.ModControl}})
	register(actionQuit, shortcutList{{Rune: 'q'}})
	register(actionWider, shortcutList{{Rune: ']'}})
	register(actionNarrower, shortcutList{{Rune: '['}})
}

// lookupKey resolves a key event. Drivers differ in whether they report a
// rune, a code or both, so each is tried on its own as well.
func lookupKey(e key.Event) (string, bool) {
	r := unicode.ToLower(e.Rune)
	for _, ks := range []KeyShortcut{
		{Rune: r, Code: e.Code, Modifiers: e.Modifiers},
		{Code: e.Code, Modifiers: e.Modifiers},
		{Rune: r, Modifiers: e.Modifiers},
	} {
		if action, ok := keymap[ks]; ok {
			return action, true
		}
	}
	return "", false
}

// toolForRune maps the digit hotkeys onto the toolbar order.
func toolForRune(r rune) (tools.Kind, bool) {
	kinds := tools.Kinds()
	i := int(r - '1')
	if i < 0 || i >= len(kinds) {
		return 0, false
	}
	return kinds[i], true
}

// controller runs window actions against a session and keeps the transient
// message shown over the canvas.
type controller struct {
	c         *cropper.Cropper
	output    string
	notifier  *notify.Notifier
	copyImage func(image.Image) error
	now       func() time.Time
	// onFlash runs after a message was shown, so the host can repaint once
	// it expires.
	onFlash func()

	message      string
	messageUntil time.Time
}

func (ct *controller) flash(format string, args ...any) {
	ct.message = fmt.Sprintf(format, args...)
	ct.messageUntil = ct.now().Add(messageDuration)
	log.Print(ct.message)
	if ct.onFlash != nil {
		ct.onFlash()
	}
}

// activeMessage returns the message while it is still on screen.
func (ct *controller) activeMessage() string {
	if ct.message == "" || !ct.now().Before(ct.messageUntil) {
		return ""
	}
	return ct.message
}

// dismiss hides the message. It reports whether one was showing.
func (ct *controller) dismiss() bool {
	shown := ct.activeMessage() != ""
	ct.messageUntil = time.Time{}
	return shown
}

// run performs a named action and reports whether the window should close.
func (ct *controller) run(ctx context.Context, action string) bool {
	switch action {
	case actionUndo:
		if !ct.c.Undo() {
			ct.flash("nothing to undo")
		}
	case actionRedo:
		if !ct.c.Redo() {
			ct.flash("nothing to redo")
		}
	case actionClear:
		ct.c.Clear()
		ct.flash("cleared")
	case actionFinalize:
		if res, err := ct.c.Finalize(ctx); err != nil {
			ct.flash("finalize failed: %v", err)
		} else {
			b := res.Image.Bounds()
			ct.flash("finalized %dx%d", b.Dx(), b.Dy())
			ct.notifier.Finalize(filepath.Base(ct.output), res.Image)
		}
	case actionSave:
		ct.save(ctx)
	case actionCopy:
		ct.copy(ctx)
	case actionWider:
		ct.stepWidth(widthStep)
	case actionNarrower:
		ct.stepWidth(-widthStep)
	case actionQuit:
		return true
	default:
		log.Printf("unknown action %q", action)
	}
	return false
}

// finalize returns the current result, finalizing only when there is none,
// so save and copy publish what is on screen.
func (ct *controller) finalize(ctx context.Context) (*finalize.Result, error) {
	if res := ct.c.Finalized(); res != nil {
		return res, nil
	}
	res, err := ct.c.Finalize(ctx)
	if err != nil {
		ct.flash("finalize failed: %v", err)
		return nil, err
	}
	return res, nil
}

func (ct *controller) save(ctx context.Context) {
	if ct.output == "" {
		ct.flash("no output file")
		return
	}
	res, err := ct.finalize(ctx)
	if err != nil {
		return
	}
	if dir := filepath.Dir(ct.output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			ct.flash("save failed: %v", err)
			return
		}
	}
	if err := os.WriteFile(ct.output, res.PNG, 0o644); err != nil {
		ct.flash("save failed: %v", err)
		return
	}
	ct.flash("saved %s", ct.output)
	ct.notifier.Save(ct.output)
}

func (ct *controller) copy(ctx context.Context) {
	if ct.copyImage == nil {
		ct.flash("clipboard unavailable")
		return
	}
	res, err := ct.finalize(ctx)
	if err != nil {
		return
	}
	if err := ct.copyImage(res.Image); err != nil {
		ct.flash("copy failed: %v", err)
		return
	}
	ct.flash("copied image")
	ct.notifier.Copy("image")
}

func (ct *controller) selectTool(k tools.Kind) {
	err := ct.c.SelectTool(k)
	switch {
	case err == nil:
	case errors.Is(err, cropper.ErrGestureActive):
		ct.flash("finish the current gesture first")
	case errors.Is(err, cropper.ErrInvalidToolTransition):
		ct.flash("%v is not available", k)
	default:
		ct.flash("%v", err)
	}
}

func (ct *controller) setWidth(w float64) {
	k := ct.c.Tool()
	if !k.Drawing() {
		return
	}
	if _, err := ct.c.SetWidth(k, w); err != nil {
		ct.flash("%v", err)
	}
}

func (ct *controller) stepWidth(delta float64) {
	k := ct.c.Tool()
	if !k.Drawing() {
		return
	}
	ct.setWidth(ct.c.Width(k) + delta)
}
