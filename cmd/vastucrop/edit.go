package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/example/vastucrop/internal/appstate"
	"github.com/example/vastucrop/internal/clipboard"
	"github.com/example/vastucrop/internal/cropper"
)

const (
	maxInitialWidth  = 1200
	maxInitialHeight = 800
)

// runWindowFn and readClipboardFn are replaced in tests.
var (
	runWindowFn     = func(a *appstate.AppState) { a.Run() }
	readClipboardFn = clipboard.ReadImage
	copyImageFn     = clipboard.WriteImage
)

// editCmd opens the crop window.
type editCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	output        string
	fromClipboard bool
}

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }
func (e *editCmd) Program() string        { return e.root.program + " edit" }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.output, "output", "", "file written by save (defaults to <name>-cropped.png)")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "edit the image on the clipboard")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case e.fromClipboard && fs.NArg() == 0:
	case !e.fromClipboard && fs.NArg() == 1:
		e.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: e}
	}
	if e.fromClipboard && e.output == "" && e.root.config.Output == "" {
		return nil, errors.New("an output file is required when editing the clipboard")
	}
	return e, nil
}

// defaultOutput derives the save target from the source name.
func defaultOutput(src string) string {
	if src == "" {
		return ""
	}
	ext := filepath.Ext(src)
	return src[:len(src)-len(ext)] + "-cropped.png"
}

func (e *editCmd) Run() error {
	var app *appstate.AppState
	c := e.newCropper(
		cropper.WithDisplaySize(maxInitialWidth, maxInitialHeight),
		cropper.WithOnChange(func() {
			if app != nil {
				app.NotifyImageChanged()
			}
		}),
		cropper.WithOnCropComplete(func(ev cropper.CropEvent) {
			if ev.PNG != nil {
				log.Printf("edit: crop complete (%d bytes)", len(ev.PNG))
			}
		}),
	)

	name := e.file
	if e.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
		if err := c.LoadImage(img); err != nil {
			return err
		}
		name = "clipboard"
	} else if err := c.LoadFile(e.file); err != nil {
		return err
	}
	fitWindow(c)

	output := e.output
	if output == "" && e.root.config.Output == "" {
		output = defaultOutput(e.file)
	}
	app = appstate.New(
		appstate.WithCropper(c),
		appstate.WithOutput(e.outputPath(output)),
		appstate.WithTitle(fmt.Sprintf("%s - %s", filepath.Base(name), e.root.program)),
		appstate.WithTheme(e.activeTheme),
		appstate.WithNotifier(e.notifier),
		appstate.WithResizeDebounce(e.root.config.Display.ResizeDebounce),
		appstate.WithClipboard(copyImageFn),
	)
	runWindowFn(app)
	return nil
}

// fitWindow shrinks the initial display to the image when it is smaller than
// the largest initial window, so small plans open at their natural size.
func fitWindow(c *cropper.Cropper) {
	src := c.Source()
	if src == nil {
		return
	}
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= maxInitialWidth && h <= maxInitialHeight {
		c.Resize(w, h)
	}
}
