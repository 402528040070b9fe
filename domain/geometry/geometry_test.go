package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestCircleFromDiameter(t *testing.T) {
	c := CircleFromDiameter(Pt(0, 0), Pt(6, 8))
	assert.InDelta(t, 3, c.Center.X, eps)
	assert.InDelta(t, 4, c.Center.Y, eps)
	assert.InDelta(t, 5, c.Radius, eps)

	lo, hi := c.Bounds()
	assert.Equal(t, Pt(-2, -1), lo)
	assert.Equal(t, Pt(8, 9), hi)
}

func TestCircleProject(t *testing.T) {
	c := Circle{Center: Pt(10, 10), Radius: 5}

	q, ok := c.Project(Pt(30, 10))
	require.True(t, ok)
	assert.InDelta(t, 15, q.X, eps)
	assert.InDelta(t, 10, q.Y, eps)

	q, ok = c.Project(Pt(11, 11))
	require.True(t, ok)
	assert.True(t, c.Contains(q, 1e-9), "projected point %v not on circle", q)

	_, ok = c.Project(Pt(10, 10))
	assert.False(t, ok, "centre has no projection")
}

func TestCentralInversion(t *testing.T) {
	assert.Equal(t, Pt(6, 4), CentralInversion(Pt(0, 0), Pt(3, 2)))
	assert.Equal(t, Pt(3, 2), CentralInversion(Pt(3, 2), Pt(3, 2)))
}

func TestRescaledSize(t *testing.T) {
	tests := []struct {
		name                   string
		cw, ch, iw, ih, ew, eh int
	}{
		{"wide image cuts height", 400, 600, 800, 400, 400, 200},
		{"narrow image cuts width", 400, 600, 300, 900, 200, 600},
		{"same ratio", 400, 300, 800, 600, 400, 300},
		{"upscale", 400, 400, 100, 50, 400, 200},
		{"empty canvas", 0, 300, 100, 100, 0, 0},
		{"empty image", 300, 300, 0, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := RescaledSize(tt.cw, tt.ch, tt.iw, tt.ih)
			assert.Equal(t, tt.ew, w)
			assert.Equal(t, tt.eh, h)
		})
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(400, 600, 800, 400)
	assert.Equal(t, 400, v.Width)
	assert.Equal(t, 200, v.Height)
	assert.Equal(t, Pt(0, 200), v.Offset)
	assert.InDelta(t, 0.5, v.Scale, eps)

	p := v.ToImage(Pt(100, 250))
	assert.InDelta(t, 200, p.X, eps)
	assert.InDelta(t, 100, p.Y, eps)

	back := v.ToCanvas(p)
	assert.InDelta(t, 100, back.X, eps)
	assert.InDelta(t, 250, back.Y, eps)
}

func TestViewportEmpty(t *testing.T) {
	v := NewViewport(0, 0, 10, 10)
	assert.True(t, v.Empty())
	assert.Equal(t, Pt(3, 4), v.ToImage(Pt(3, 4)))
}

func TestRotationAngle(t *testing.T) {
	assert.InDelta(t, 0, RotationAngle(Pt(0, 0), Pt(10, 0)), eps)
	// y grows downwards, so going "up" to the right is counter-clockwise.
	assert.InDelta(t, math.Pi/4, RotationAngle(Pt(0, 0), Pt(10, -10)), eps)
	assert.InDelta(t, -math.Pi/4, RotationAngle(Pt(0, 0), Pt(10, 10)), eps)
	assert.InDelta(t, math.Pi/2, RotationAngle(Pt(0, 10), Pt(0, 0)), eps)
	assert.False(t, math.IsNaN(RotationAngle(Pt(5, 5), Pt(5, 5))))
}

func TestRotationAngleHasNoNegativeZero(t *testing.T) {
	assert.False(t, math.Signbit(RotationAngle(Pt(0, 0), Pt(30, 0))))
	assert.False(t, math.Signbit(RotationAngle(Pt(5, 7), Pt(5, 7))))

	r := RectFromCorners(Pt(0, 0), Pt(30, 0), Pt(30, 20), Pt(0, 20))
	assert.False(t, math.Signbit(r.Angle()))
	assert.Equal(t, "0.0", fmt.Sprintf("%.1f", r.Degrees()))
}

func TestRectFromCornersAxisAligned(t *testing.T) {
	want := RotatedRect{Pt(0, 0), Pt(100, 0), Pt(100, 50), Pt(0, 50)}

	// every cyclic order and direction normalises to the same rectangle
	orders := [][4]Point{
		{Pt(0, 0), Pt(100, 0), Pt(100, 50), Pt(0, 50)},
		{Pt(0, 0), Pt(0, 50), Pt(100, 50), Pt(100, 0)},
		{Pt(100, 50), Pt(0, 50), Pt(0, 0), Pt(100, 0)},
		{Pt(100, 50), Pt(100, 0), Pt(0, 0), Pt(0, 50)},
	}
	for _, o := range orders {
		r := RectFromCorners(o[0], o[1], o[2], o[3])
		assert.Equal(t, want, r, "order %v", o)
		assert.InDelta(t, 100, r.Width(), eps)
		assert.InDelta(t, 50, r.Height(), eps)
		assert.InDelta(t, 0, r.Angle(), eps)
	}
}

func TestRectFromCornersRotated(t *testing.T) {
	// square rotated 45 degrees counter-clockwise
	r := RectFromCorners(Pt(0, 0), Pt(10, -10), Pt(20, 0), Pt(10, 10))
	assert.InDelta(t, 45, r.Degrees(), 1e-6)
	assert.InDelta(t, math.Sqrt(200), r.Width(), 1e-9)
	assert.InDelta(t, math.Sqrt(200), r.Height(), 1e-9)

	// the same square drawn from the opposite corner keeps the angle range
	r2 := RectFromCorners(Pt(20, 0), Pt(10, 10), Pt(0, 0), Pt(10, -10))
	assert.Equal(t, r, r2)

	for _, c := range [][4]Point{
		{Pt(0, 0), Pt(-10, -1), Pt(-9, 9), Pt(1, 10)},
		{Pt(0, 0), Pt(1, 30), Pt(-5, 31), Pt(-6, 1)},
	} {
		r := RectFromCorners(c[0], c[1], c[2], c[3])
		a := r.Angle()
		assert.True(t, a > -math.Pi/2 && a <= math.Pi/2, "angle %v out of range", a)
		d1 := r.UpperRight.Sub(r.UpperLeft)
		d2 := r.LowerRight.Sub(r.UpperRight)
		assert.Greater(t, d1.Cross(d2), 0.0, "corners not clockwise")
	}
}

func TestRotatedRectMapAndDegenerate(t *testing.T) {
	r := RotatedRect{Pt(10, 10), Pt(20, 10), Pt(20, 30), Pt(10, 30)}
	v := Viewport{Offset: Pt(10, 10), Scale: 0.5}
	m := r.Map(v.ToImage)
	assert.Equal(t, Pt(0, 0), m.UpperLeft)
	assert.Equal(t, Pt(20, 40), m.LowerRight)
	assert.InDelta(t, 20, m.Width(), eps)
	assert.InDelta(t, 40, m.Height(), eps)
	assert.Equal(t, Pt(10, 20), m.Center())

	assert.False(t, r.Degenerate(5))
	assert.True(t, r.Degenerate(15))
	flat := RotatedRect{Pt(0, 0), Pt(10, 0), Pt(10, 0), Pt(0, 0)}
	assert.True(t, flat.Degenerate(0))
}
