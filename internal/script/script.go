// Package script drives a cropper from line oriented gesture commands. It
// backs the headless apply command and the interactive prompt.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/tools"
)

// ErrUsage marks a malformed command.
var ErrUsage = errors.New("usage")

// ErrNotFinalized is returned by save before anything was finalized.
var ErrNotFinalized = errors.New("nothing finalized yet")

// Runner executes commands against one cropper.
type Runner struct {
	C *cropper.Cropper
	// Out receives status and confirmation lines. nil discards them.
	Out io.Writer
	// Dir resolves relative paths. Empty means the working directory.
	Dir string
	// Saved is called after an output file was written.
	Saved func(path string)
}

type command struct {
	args string
	help string
	run  func(r *Runner, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"load":     {"PATH", "load a source image", (*Runner).load},
		"display":  {"W H", "resize the display surface", (*Runner).display},
		"tool":     {"NAME", "select a tool", (*Runner).tool},
		"width":    {"[TOOL] N", "set the pencil or eraser width", (*Runner).width},
		"down":     {"X Y", "pointer down", pointer((*cropper.Cropper).PointerDown)},
		"move":     {"X Y", "pointer move", pointer((*cropper.Cropper).PointerMove)},
		"up":       {"X Y", "pointer up", pointer((*cropper.Cropper).PointerUp)},
		"leave":    {"", "pointer left the surface", (*Runner).leave},
		"click":    {"X Y", "pointer down and up", (*Runner).click},
		"stroke":   {"TOOL WIDTH X1 Y1 X2 Y2 ...", "draw a complete stroke", (*Runner).stroke},
		"undo":     {"", "undo the last commit", (*Runner).undo},
		"redo":     {"", "redo", (*Runner).redo},
		"clear":    {"", "drop all strokes and history", (*Runner).clear},
		"finalize": {"[PATH]", "bake strokes and optionally write the PNG", (*Runner).finalize},
		"save":     {"PATH", "write the finalized PNG", (*Runner).save},
		"status":   {"", "print the session state", (*Runner).status},
	}
}

// Help lists the commands in the form NAME ARGS - description.
func Help() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, n := range names {
		c := commands[n]
		out[i] = strings.TrimSpace(n+" "+c.args) + " - " + c.help
	}
	return out
}

// Run executes every line of src and stops at the first failure. The error
// names the offending line.
func (r *Runner) Run(ctx context.Context, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	n := 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(ctx, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line. Blank lines and # comments are ignored.
func (r *Runner) Exec(ctx context.Context, line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", fields[0], ErrUsage)
	}
	if err := cmd.run(r, ctx, fields[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%s %s: %w", name, cmd.args, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

func (r *Runner) path(p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d: %w", n, len(args), ErrUsage)
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, ErrUsage)
		}
		out[i] = v
	}
	return out, nil
}

func point(args []string) (geom.Point, error) {
	v, err := floats(args, 2)
	if err != nil {
		return geom.Point{}, err
	}
	return tools.FromMouse(v[0], v[1]), nil
}

func pointer(fn func(*cropper.Cropper, geom.Point) error) func(*Runner, context.Context, []string) error {
	return func(r *Runner, _ context.Context, args []string) error {
		p, err := point(args)
		if err != nil {
			return err
		}
		return fn(r.C, p)
	}
}

func (r *Runner) load(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := r.C.LoadFile(r.path(args[0])); err != nil {
		return err
	}
	st := r.C.Status()
	r.printf("loaded %s (%dx%d)\n", args[0], st.SourceW, st.SourceH)
	return nil
}

func (r *Runner) display(_ context.Context, args []string) error {
	v, err := floats(args, 2)
	if err != nil {
		return err
	}
	r.C.Resize(v[0], v[1])
	return nil
}

func (r *Runner) tool(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	k, err := tools.ParseKind(args[0])
	if err != nil {
		return err
	}
	return r.C.SelectTool(k)
}

func (r *Runner) width(_ context.Context, args []string) error {
	k := r.C.Tool()
	switch len(args) {
	case 1:
	case 2:
		var err error
		if k, err = tools.ParseKind(args[0]); err != nil {
			return err
		}
		args = args[1:]
	default:
		return ErrUsage
	}
	v, err := floats(args, 1)
	if err != nil {
		return err
	}
	w, err := r.C.SetWidth(k, v[0])
	if err != nil {
		return err
	}
	if w != v[0] {
		r.printf("%v width clamped to %g\n", k, w)
	}
	return nil
}

func (r *Runner) leave(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return r.C.PointerLeave()
}

func (r *Runner) click(_ context.Context, args []string) error {
	p, err := point(args)
	if err != nil {
		return err
	}
	if err := r.C.PointerDown(p); err != nil {
		return err
	}
	return r.C.PointerUp(p)
}

func (r *Runner) stroke(_ context.Context, args []string) error {
	if len(args) < 4 || len(args)%2 != 0 {
		return ErrUsage
	}
	k, err := tools.ParseKind(args[0])
	if err != nil {
		return err
	}
	if _, ok := k.StrokeTool(); !ok {
		return fmt.Errorf("%v does not draw strokes: %w", k, ErrUsage)
	}
	coords, err := floats(args[1:], len(args)-1)
	if err != nil {
		return err
	}
	if err := r.C.SelectTool(k); err != nil {
		return err
	}
	if _, err := r.C.SetWidth(k, coords[0]); err != nil {
		return err
	}
	pts := make([]geom.Point, 0, len(coords)/2)
	for i := 1; i+1 < len(coords); i += 2 {
		pts = append(pts, tools.FromMouse(coords[i], coords[i+1]))
	}
	if err := r.C.PointerDown(pts[0]); err != nil {
		return err
	}
	for _, p := range pts[1:] {
		if err := r.C.PointerMove(p); err != nil {
			return err
		}
	}
	return r.C.PointerUp(pts[len(pts)-1])
}

func (r *Runner) undo(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if !r.C.Undo() {
		r.printf("nothing to undo\n")
	}
	return nil
}

func (r *Runner) redo(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if !r.C.Redo() {
		r.printf("nothing to redo\n")
	}
	return nil
}

func (r *Runner) clear(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	r.C.Clear()
	return nil
}

func (r *Runner) finalize(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	res, err := r.C.Finalize(ctx)
	if err != nil {
		return err
	}
	b := res.Image.Bounds()
	r.printf("finalized %dx%d (%d bytes)\n", b.Dx(), b.Dy(), len(res.PNG))
	if len(args) == 1 {
		return r.write(args[0], res.PNG)
	}
	return nil
}

func (r *Runner) save(_ context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	res := r.C.Finalized()
	if res == nil {
		return ErrNotFinalized
	}
	return r.write(args[0], res.PNG)
}

func (r *Runner) write(p string, data []byte) error {
	full := r.path(p)
	if dir := filepath.Dir(full); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	r.printf("saved %s\n", p)
	if r.Saved != nil {
		r.Saved(full)
	}
	return nil
}

func (r *Runner) status(_ context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	r.printf("%s\n", r.C.Status())
	return nil
}
