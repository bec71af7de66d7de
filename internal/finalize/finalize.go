// Package finalize bakes erase strokes into a full resolution copy of the
// source and encodes it losslessly.
package finalize

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/example/vastucrop/internal/render"
	"github.com/example/vastucrop/internal/stroke"
)

// ErrSourceUnavailable is returned when there is no decodable source to bake.
var ErrSourceUnavailable = errors.New("source image unavailable")

// MIMEType of the encoded result.
const MIMEType = "image/png"

// Result is a finalized image.
type Result struct {
	Image image.Image
	PNG   []byte
}

// DataURL renders the PNG as a data: URL.
func (r *Result) DataURL() string {
	if r == nil {
		return ""
	}
	return "data:" + MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.PNG)
}

// Finalize applies strokes to src in commit order. Each stroke is mapped back
// to source pixels with the fit it was drawn under. Without erase strokes the
// source is encoded untouched.
func Finalize(ctx context.Context, src image.Image, strokes []stroke.Stroke) (*Result, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrSourceUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := src
	if hasErase(strokes) {
		work := imaging.Clone(src)
		for i, s := range strokes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if s.Composite() != stroke.CompositeDestinationOut {
				continue
			}
			if !s.Fit.Valid() {
				return nil, fmt.Errorf("stroke %d has no usable fit", i)
			}
			pts, w := s.ImagePoints()
			render.ErasePolyline(work, pts, w)
		}
		out = work
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return &Result{Image: out, PNG: buf.Bytes()}, nil
}

func hasErase(strokes []stroke.Stroke) bool {
	for _, s := range strokes {
		if s.Composite() == stroke.CompositeDestinationOut {
			return true
		}
	}
	return false
}
