package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vastucrop/internal/config"
	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/notify"
	"github.com/example/vastucrop/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs             *flag.FlagSet
	program        string
	notifier       *notify.Notifier
	config         *config.Config
	finalizeAlerts bool
	saveAlerts     bool
	copyAlerts     bool
	themeName      string
	activeTheme    *theme.Theme
	stdin          io.Reader
	stdout         io.Writer
	stderr         io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("vastucrop", flag.ContinueOnError),
		program:  "vastucrop",
		notifier: notify.New(prefs),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.finalizeAlerts, "notify-finalize", cfg.Notify.Finalize, "show a desktop notification after finalizing a crop")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Embedded(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventFinalize, r.finalizeAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme(os.Getenv)

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme named on the command line, then in
// VASTUCROP_THEME, then in the config file. Themes defined inside the config
// win over the built in ones of the same name.
func (r *root) resolveTheme(getenv func(string) string) *theme.Theme {
	name := r.themeName
	if name == "" {
		name = getenv("VASTUCROP_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	if r.config != nil {
		loader.Custom = r.config.Themes
	}
	t, err := loader.Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// newCropper builds a session from the configuration.
func (r *root) newCropper(opts ...cropper.Option) *cropper.Cropper {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	th := r.activeTheme
	if th == nil {
		th = theme.Default()
	}
	base := []cropper.Option{
		cropper.WithTheme(th),
		cropper.WithMinDisplay(cfg.Display.MinSize()),
		cropper.WithBrushWidth(cfg.BrushSize),
		cropper.WithEraserWidth(cfg.EraserSize),
	}
	return cropper.New(append(base, opts...)...)
}

// outputPath places relative names under the configured save directory.
func (r *root) outputPath(name string) string {
	if name == "" && r.config != nil {
		name = r.config.Output
	}
	if name == "" || filepath.IsAbs(name) || r.config == nil || r.config.SaveDir == "" {
		return name
	}
	return filepath.Join(r.config.SaveDir, name)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyFinalize(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Finalize(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
