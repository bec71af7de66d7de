package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/plans
output = "cropped.png"

[brush]
size = 12

[eraser]
size: 35

[display]
min_width = 320
min_height = 160
resize_debounce_ms = 250

[notify]
finalize = true
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
EraseStroke = #FF000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/plans" {
		t.Errorf("Expected save_dir '/tmp/plans', got '%s'", cfg.SaveDir)
	}
	if cfg.Output != "cropped.png" {
		t.Errorf("Expected quoted output to be unwrapped, got %q", cfg.Output)
	}
	if cfg.BrushSize != 12 || cfg.EraserSize != 35 {
		t.Errorf("Unexpected sizes brush=%v eraser=%v", cfg.BrushSize, cfg.EraserSize)
	}
	if cfg.Display.MinWidth != 320 || cfg.Display.MinHeight != 160 {
		t.Errorf("Unexpected display floor %+v", cfg.Display)
	}
	if cfg.Display.ResizeDebounce != 250*time.Millisecond {
		t.Errorf("Unexpected debounce %v", cfg.Display.ResizeDebounce)
	}
	if !cfg.Notify.Finalize || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
	if th.EraseStroke.A != 0x80 {
		t.Errorf("Unexpected EraseStroke alpha: %+v", th.EraseStroke)
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()
	if cfg.BrushSize != 20 || cfg.EraserSize != 20 {
		t.Errorf("unexpected default sizes %v %v", cfg.BrushSize, cfg.EraserSize)
	}
	if got := cfg.Display.MinSize(); got.W != 300 || got.H != 150 {
		t.Errorf("unexpected display floor %+v", got)
	}
	if cfg.Display.ResizeDebounce != DefaultResizeDebounce {
		t.Errorf("unexpected debounce %v", cfg.Display.ResizeDebounce)
	}
}

func TestParseErrorsNameLine(t *testing.T) {
	_, err := Parse(strings.NewReader("[notify]\nsave = maybe\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), "[notify]") {
		t.Errorf("error should name the line and section: %v", err)
	}
	if _, err := Parse(strings.NewReader("[display]\nmin_width = -1\n")); err == nil {
		t.Error("expected negative width to be rejected")
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/plans

[eraser]
size = 42

[display]
resize_debounce_ms = 0

[notify]
finalize = true
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
SelectionFill = #00FF0040
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.EraserSize != cfg2.EraserSize || cfg.BrushSize != cfg2.BrushSize {
		t.Errorf("Size mismatch: %v/%v vs %v/%v", cfg.BrushSize, cfg.EraserSize, cfg2.BrushSize, cfg2.EraserSize)
	}
	if cfg.Display != cfg2.Display {
		t.Errorf("Display mismatch: %+v vs %+v", cfg.Display, cfg2.Display)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch:\n%+v\n%+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("expected override path, got %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", cfg.Theme)
	}
}
