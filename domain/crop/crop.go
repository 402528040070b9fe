// Package crop cuts rotated rectangles out of images.
package crop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/soocke/blitzcrop/domain/geometry"
)

// ErrEmptySelection is returned when the rectangle rounds to zero pixels.
var ErrEmptySelection = errors.New("crop: empty selection")

// Options tune the resampling of Crop. The zero value uses Catmull-Rom and
// a transparent background.
type Options struct {
	Interpolator draw.Interpolator
	// Background fills the parts of the rectangle outside the source.
	Background color.Color
}

// Size returns the pixel size of the output for r.
func Size(r geometry.RotatedRect) (w, h int) {
	return int(math.Round(r.Width())), int(math.Round(r.Height()))
}

// Crop extracts r, given in src pixel coordinates, into a new upright image.
// Output pixel (u, v) samples src at UL + u*e1 + v*e2 where e1 runs along the
// top edge and e2 is its clockwise normal.
func Crop(src image.Image, r geometry.RotatedRect, opts Options) (*image.NRGBA, error) {
	if src == nil {
		return nil, errors.New("crop: nil source")
	}
	w, h := Size(r)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptySelection, w, h)
	}
	q := opts.Interpolator
	if q == nil {
		q = draw.CatmullRom
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	q.Transform(dst, sourceToCrop(r), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// sourceToCrop returns the affine map from src to output coordinates:
// u = e1·(p-UL), v = e2·(p-UL).
func sourceToCrop(r geometry.RotatedRect) f64.Aff3 {
	e1 := r.Direction()
	e2 := r.Normal()
	o := r.UpperLeft
	return f64.Aff3{
		e1.X, e1.Y, -e1.Dot(o),
		e2.X, e2.Y, -e2.Dot(o),
	}
}

// Interpolator resolves a configured interpolation name. Unknown names fall
// back to Catmull-Rom.
func Interpolator(name string) draw.Interpolator {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest", "nearestneighbor":
		return draw.NearestNeighbor
	case "approxbilinear":
		return draw.ApproxBiLinear
	case "bilinear", "linear":
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}
