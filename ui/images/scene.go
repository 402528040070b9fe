package images

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/soocke/blitzcrop/domain/geometry"
	"github.com/soocke/blitzcrop/domain/gesture"
)

// Palette holds the colours used to paint a scene.
type Palette struct {
	Canvas color.NRGBA
	Circle color.NRGBA
	Rect   color.NRGBA
	Handle color.NRGBA
}

const (
	lineWidth    = 2.0
	handleRadius = 5.0
)

// Scene is an image letterboxed into a canvas of fixed size. The scaled
// image is computed once; Render only paints the overlay on a copy.
type Scene struct {
	base *image.RGBA
	vp   geometry.Viewport
	pal  Palette
	z    *vector.Rasterizer
}

// NewScene scales img (nearest neighbour) to the largest size that fits a
// w x h canvas and centres it. img may be nil for an empty canvas.
func NewScene(img image.Image, w, h int, pal Palette) *Scene {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(base, base.Bounds(), image.NewUniform(pal.Canvas), image.Point{}, draw.Src)
	s := &Scene{base: base, pal: pal, vp: geometry.Viewport{Scale: 1}, z: vector.NewRasterizer(w, h)}
	if img == nil {
		return s
	}
	b := img.Bounds()
	s.vp = geometry.NewViewport(w, h, b.Dx(), b.Dy())
	if s.vp.Empty() {
		return s
	}
	scaled := imaging.Resize(img, s.vp.Width, s.vp.Height, imaging.NearestNeighbor)
	at := image.Pt(int(s.vp.Offset.X), int(s.vp.Offset.Y))
	draw.Draw(base, scaled.Bounds().Add(at), scaled, image.Point{}, draw.Over)
	return s
}

// Viewport maps between canvas and image coordinates of this scene.
func (s *Scene) Viewport() geometry.Viewport { return s.vp }

// Size returns the canvas size.
func (s *Scene) Size() (int, int) { return s.base.Rect.Dx(), s.base.Rect.Dy() }

// Render returns a copy of the scene with o painted on top: the circle in
// red, the rectangle in blue and the handle as a filled yellow dot.
func (s *Scene) Render(o gesture.Overlay) *image.RGBA {
	dst := image.NewRGBA(s.base.Rect)
	copy(dst.Pix, s.base.Pix)
	if o.Circle != nil {
		outer := circlePath(o.Circle.Center, o.Circle.Radius+lineWidth/2)
		inner := circlePath(o.Circle.Center, o.Circle.Radius-lineWidth/2)
		s.fill(dst, s.pal.Circle, outer, reversed(inner))
	}
	if o.Rect != nil {
		s.fill(dst, s.pal.Rect, rectRing(*o.Rect, lineWidth/2)...)
	}
	if o.Handle != nil {
		s.fill(dst, s.pal.Handle, circlePath(*o.Handle, handleRadius))
	}
	return dst
}

// fill rasterises the closed paths together. Paths wound in opposite
// directions cancel, which cuts holes.
func (s *Scene) fill(dst *image.RGBA, c color.NRGBA, paths ...[]geometry.Point) {
	w, h := s.Size()
	s.z.Reset(w, h)
	for _, p := range paths {
		if len(p) < 3 {
			continue
		}
		s.z.MoveTo(float32(p[0].X), float32(p[0].Y))
		for _, q := range p[1:] {
			s.z.LineTo(float32(q.X), float32(q.Y))
		}
		s.z.ClosePath()
	}
	s.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// circlePath approximates a circle by a clockwise polygon.
func circlePath(c geometry.Point, r float64) []geometry.Point {
	if r <= 0 {
		return nil
	}
	n := int(r / 2)
	if n < 24 {
		n = 24
	}
	if n > 360 {
		n = 360
	}
	pts := make([]geometry.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geometry.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

// rectRing returns the outline of r, grown and shrunk by half, as two paths
// of opposite winding. Thin rectangles are filled completely.
func rectRing(r geometry.RotatedRect, half float64) [][]geometry.Point {
	outer := offsetRect(r, half)
	if r.Width() <= 2*half || r.Height() <= 2*half {
		return [][]geometry.Point{outer}
	}
	return [][]geometry.Point{outer, reversed(offsetRect(r, -half))}
}

func offsetRect(r geometry.RotatedRect, d float64) []geometry.Point {
	e1 := r.Direction().Mul(d)
	e2 := r.Normal().Mul(d)
	return []geometry.Point{
		r.UpperLeft.Sub(e1).Sub(e2),
		r.UpperRight.Add(e1).Sub(e2),
		r.LowerRight.Add(e1).Add(e2),
		r.LowerLeft.Sub(e1).Add(e2),
	}
}

func reversed(p []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(p))
	for i, q := range p {
		out[len(p)-1-i] = q
	}
	return out
}
