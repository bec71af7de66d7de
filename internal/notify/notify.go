package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/example/vastucrop/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventFinalize fires when an edit session is baked into an output image.
	EventFinalize Event = "finalize"
	// EventSave fires when an image is persisted to disk.
	EventSave Event = "save"
	// EventCopy fires when an image is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in display order.
func Events() []Event { return []Event{EventFinalize, EventSave, EventCopy} }

// PreviewSize bounds the thumbnail attached to finalize notifications.
const PreviewSize = 128

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from the environment.
type Preferences struct {
	Title   string
	Timeout time.Duration
	Events  map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:   "VastuCrop",
		Timeout: 5 * time.Second,
		Events: map[Event]EventPreference{
			EventFinalize: {Template: "Cropped %s"},
			EventSave:     {Template: "Saved %s"},
			EventCopy:     {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences overlays VASTUCROP_NOTIFY_* environment variables on the
// defaults.
func LoadPreferences() Preferences {
	return preferencesFrom(os.Getenv)
}

func preferencesFrom(getenv func(string) string) Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("VASTUCROP_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events() {
		key := "VASTUCROP_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// notifyFn is swapped in tests.
var notifyFn = platform.Notify

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Timeout: prefs.Timeout, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Finalize announces a finished crop with a thumbnail of the result.
func (n *Notifier) Finalize(detail string, img image.Image) {
	if !n.enabledFor(EventFinalize) {
		return
	}
	opts := n.options()
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventFinalize, detail, opts)
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := n.options()
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, n.options())
}

func (n *Notifier) options() platform.Options {
	return platform.Options{Timeout: n.prefs.Timeout}
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := template
	if strings.Contains(template, "%") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	if err := notifyFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	dir, err := os.MkdirTemp("", "vastucrop-preview-")
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, "preview.png")
	thumb := imaging.Fit(img, PreviewSize, PreviewSize, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
