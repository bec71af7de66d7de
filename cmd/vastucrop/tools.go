package main

import (
	"flag"
	"fmt"

	"github.com/example/vastucrop/internal/stroke"
	"github.com/example/vastucrop/internal/tools"
)

// toolsCmd lists the tools and the stroke width range.
type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func (t *toolsCmd) FlagSet() *flag.FlagSet { return t.fs }
func (t *toolsCmd) Program() string        { return t.root.program + " tools" }

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	cmd := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (t *toolsCmd) Run() error {
	fmt.Fprintln(t.stdout, "tools:")
	for i, k := range tools.Kinds() {
		note := ""
		switch {
		case !k.Enabled():
			note = " (not available)"
		case k.Drawing():
			st, _ := k.StrokeTool()
			note = fmt.Sprintf(" (%v stroke)", st)
		}
		fmt.Fprintf(t.stdout, "  %d  %-10s %s%s\n", i+1, k, k.Label(), note)
	}
	fmt.Fprintf(t.stdout, "widths: %g-%g (default %g)\n", float64(stroke.MinWidth), float64(stroke.MaxWidth), float64(stroke.DefaultWidth))
	if t.config != nil {
		fmt.Fprintf(t.stdout, "configured: pencil %g, eraser %g\n", stroke.ClampWidth(t.config.BrushSize), stroke.ClampWidth(t.config.EraserSize))
	}
	return nil
}
