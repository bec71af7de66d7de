package cropper

import (
	"errors"

	"github.com/example/vastucrop/internal/finalize"
	"github.com/example/vastucrop/internal/tools"
)

var (
	// ErrUnsupportedInput is returned when a source cannot be decoded. The
	// session is reset to empty.
	ErrUnsupportedInput = errors.New("unsupported input")
	// ErrNoSource is returned by operations that need a loaded image.
	ErrNoSource = errors.New("no image loaded")

	ErrSourceUnavailable     = finalize.ErrSourceUnavailable
	ErrDegenerateGesture     = tools.ErrDegenerateGesture
	ErrInvalidToolTransition = tools.ErrInvalidToolTransition
	ErrGestureActive         = tools.ErrGestureActive
)

// quiet reports errors that are no-ops rather than failures.
func quiet(err error) bool {
	return errors.Is(err, ErrDegenerateGesture) || errors.Is(err, ErrInvalidToolTransition)
}
