package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/vastucrop/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}

		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			currentSection = strings.ToLower(strings.TrimSpace(text[1 : len(text)-1]))
			currentTheme = nil
			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			key, value, ok = strings.Cut(text, ":")
		}
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.Set(currentTheme, key, value)
		case currentSection == "":
			setRootField(cfg, key, value)
		case currentSection == "brush":
			err = setSize(&cfg.BrushSize, key, value)
		case currentSection == "eraser":
			err = setSize(&cfg.EraserSize, key, value)
		case currentSection == "display":
			err = setDisplayField(&cfg.Display, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d in section [%s]: %w", line, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "output":
		cfg.Output = value
	}
}

func setSize(dst *float64, key, value string) error {
	if key != "size" {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid size %q", value)
	}
	*dst = v
	return nil
}

func setDisplayField(d *Display, key, value string) error {
	switch key {
	case "min_width", "min_height":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("invalid %s %q", key, value)
		}
		if key == "min_width" {
			d.MinWidth = v
		} else {
			d.MinHeight = v
		}
	case "resize_debounce_ms":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid %s %q", key, value)
		}
		d.ResizeDebounce = time.Duration(v) * time.Millisecond
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "finalize":
		n.Finalize = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
