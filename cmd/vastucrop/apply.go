package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/vastucrop/internal/script"
)

// applyCmd runs a gesture script without a window.
type applyCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	scriptPath    string
	output        string
	display       string
	toClipboard   bool
	fromClipboard bool
}

func (a *applyCmd) FlagSet() *flag.FlagSet { return a.fs }
func (a *applyCmd) Program() string        { return a.root.program + " apply" }

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	a := &applyCmd{root: r, fs: fs}
	fs.StringVar(&a.scriptPath, "script", "-", "gesture script to run, - for stdin")
	fs.StringVar(&a.output, "output", "", "write the finalized PNG here")
	fs.StringVar(&a.display, "display", "", "display surface size as WxH before the script runs")
	fs.BoolVar(&a.toClipboard, "to-clipboard", false, "copy the finalized image to the clipboard")
	fs.BoolVar(&a.fromClipboard, "from-clipboard", false, "load the image on the clipboard before the script runs")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		a.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: a}
	}
	if a.file != "" && a.fromClipboard {
		return nil, fmt.Errorf("-from-clipboard cannot be combined with an image file")
	}
	return a, nil
}

func (a *applyCmd) Run() error {
	ctx := context.Background()
	c := a.newCropper()
	runner := &script.Runner{C: c, Out: a.stdout, Saved: a.notifySave}

	if a.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
		if err := c.LoadImage(img); err != nil {
			return err
		}
	} else if a.file != "" {
		if err := c.LoadFile(a.file); err != nil {
			return err
		}
	}
	if a.display != "" {
		var w, h float64
		if _, err := fmt.Sscanf(a.display, "%gx%g", &w, &h); err != nil {
			return fmt.Errorf("invalid -display %q: %w", a.display, err)
		}
		c.Resize(w, h)
	}

	src, name, err := a.openScript()
	if err != nil {
		return err
	}
	defer src.Close()
	if name != "" {
		runner.Dir = filepath.Dir(name)
	}
	if err := runner.Run(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}

	if a.output == "" && !a.toClipboard {
		if res := c.Finalized(); res != nil {
			a.notifyFinalize(displayName(name), res.Image)
		}
		return nil
	}
	res := c.Finalized()
	if res == nil {
		if res, err = c.Finalize(ctx); err != nil {
			return err
		}
	}
	a.notifyFinalize(filepath.Base(a.output), res.Image)
	if a.output != "" {
		out := a.outputPath(a.output)
		if dir := filepath.Dir(out); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(out, res.PNG, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(a.stdout, "saved %s\n", out)
		a.notifySave(out)
	}
	if a.toClipboard {
		if err := copyImageFn(res.Image); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(a.stdout, "copied image to clipboard")
		a.notifyCopy("image")
	}
	return nil
}

func (a *applyCmd) openScript() (io.ReadCloser, string, error) {
	if a.scriptPath == "" || a.scriptPath == "-" {
		return io.NopCloser(a.stdin), "", nil
	}
	f, err := os.Open(a.scriptPath)
	if err != nil {
		return nil, "", err
	}
	return f, a.scriptPath, nil
}

func displayName(name string) string {
	if name == "" {
		return "stdin"
	}
	return name
}
