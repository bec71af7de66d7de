package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/stroke"
	"github.com/example/vastucrop/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Finalize bool
	Save     bool
	Copy     bool
}

// Display holds the display surface settings.
type Display struct {
	MinWidth       float64
	MinHeight      float64
	ResizeDebounce time.Duration
}

// MinSize is the display floor as a geom.Size.
func (d Display) MinSize() geom.Size {
	return geom.Size{W: d.MinWidth, H: d.MinHeight}
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Output     string
	BrushSize  float64
	EraserSize float64
	Display    Display
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// DefaultResizeDebounce is how long the window waits for resize events to
// settle before refitting.
const DefaultResizeDebounce = 100 * time.Millisecond

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:      "", // empty falls through to the env var and then the default
		BrushSize:  stroke.DefaultWidth,
		EraserSize: stroke.DefaultWidth,
		Display: Display{
			MinWidth:       geom.DefaultMinDisplay.W,
			MinHeight:      geom.DefaultMinDisplay.H,
			ResizeDebounce: DefaultResizeDebounce,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "[brush]\nsize = %g\n\n", c.BrushSize)
	fmt.Fprintf(&sb, "[eraser]\nsize = %g\n\n", c.EraserSize)

	sb.WriteString("[display]\n")
	fmt.Fprintf(&sb, "min_width = %g\n", c.Display.MinWidth)
	fmt.Fprintf(&sb, "min_height = %g\n", c.Display.MinHeight)
	fmt.Fprintf(&sb, "resize_debounce_ms = %d\n", c.Display.ResizeDebounce.Milliseconds())
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "finalize = %v\n", c.Notify.Finalize)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
