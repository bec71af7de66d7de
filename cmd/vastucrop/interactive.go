package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/example/vastucrop/internal/cropper"
	"github.com/example/vastucrop/internal/script"
)

// interactiveCmd reads gesture commands from a prompt.
type interactiveCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet { return i.fs }
func (i *interactiveCmd) Program() string        { return i.root.program + " interactive" }

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		i.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	ctx := context.Background()
	c := i.newCropper()
	runner := &script.Runner{C: c, Out: i.stdout, Saved: i.notifySave}
	if i.file != "" {
		if err := c.LoadFile(i.file); err != nil {
			return err
		}
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			for _, h := range script.Help() {
				fmt.Fprintln(i.stdout, "  "+h)
			}
			fmt.Fprintln(i.stdout, "  copy - copy the finalized image to the clipboard")
			continue
		case "copy":
			if err := i.copy(c); err != nil {
				fmt.Fprintln(i.stderr, err)
			}
			continue
		}
		if err := runner.Exec(ctx, line); err != nil {
			fmt.Fprintln(i.stderr, err)
			continue
		}
		if strings.HasPrefix(line, "finalize") {
			if res := c.Finalized(); res != nil {
				i.notifyFinalize("session", res.Image)
			}
		}
	}
	return scanner.Err()
}

func (i *interactiveCmd) copy(c *cropper.Cropper) error {
	res := c.Finalized()
	if res == nil {
		return fmt.Errorf("copy: %w", script.ErrNotFinalized)
	}
	if err := copyImageFn(res.Image); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	fmt.Fprintln(i.stdout, "copied image to clipboard")
	i.notifyCopy("image")
	return nil
}
