package geometry

import "math"

// RotationAngle returns the angle by which a selection with the given upper
// left and upper right corners is rotated, in radians. Counter-clockwise on
// screen is positive; the minus corrects for y growing downwards. To undo
// the rotation, rotate the image by the negated angle.
func RotationAngle(upperLeft, upperRight Point) float64 {
	d := upperRight.Sub(upperLeft)
	a := -math.Atan2(d.Y, d.X)
	if a == 0 {
		return 0 // no negative zero
	}
	return a
}

// RotatedRect is a rectangle with arbitrary rotation. Corners are kept in
// clockwise screen order starting at the upper left one.
type RotatedRect struct {
	UpperLeft  Point
	UpperRight Point
	LowerRight Point
	LowerLeft  Point
}

// RectFromCorners orders four rectangle corners given in cyclic order.
// The result is clockwise on screen and its rotation angle lies in
// (-pi/2, pi/2].
func RectFromCorners(c0, c1, c2, c3 Point) RotatedRect {
	pts := [4]Point{c0, c1, c2, c3}
	if c1.Sub(c0).Cross(c2.Sub(c1)) < 0 {
		pts[1], pts[3] = pts[3], pts[1]
	}
	if a := RotationAngle(pts[0], pts[1]); a > math.Pi/2 || a <= -math.Pi/2 {
		pts = [4]Point{pts[2], pts[3], pts[0], pts[1]}
	}
	return RotatedRect{UpperLeft: pts[0], UpperRight: pts[1], LowerRight: pts[2], LowerLeft: pts[3]}
}

// Width is the length of the top edge.
func (r RotatedRect) Width() float64 { return r.UpperLeft.Dist(r.UpperRight) }

// Height is the distance of the bottom edge from the top edge.
func (r RotatedRect) Height() float64 {
	return math.Abs(r.LowerRight.Sub(r.UpperRight).Dot(r.Normal()))
}

// Angle is the rotation of the top edge, see RotationAngle.
func (r RotatedRect) Angle() float64 { return RotationAngle(r.UpperLeft, r.UpperRight) }

// Degrees is Angle in degrees.
func (r RotatedRect) Degrees() float64 { return r.Angle() * 180 / math.Pi }

// Direction is the unit vector along the top edge.
func (r RotatedRect) Direction() Point { return r.UpperRight.Sub(r.UpperLeft).Unit() }

// Normal is the unit vector pointing from the top edge towards the bottom.
func (r RotatedRect) Normal() Point {
	d := r.Direction()
	return Point{-d.Y, d.X}
}

// Corners returns the corners in clockwise order from the upper left.
func (r RotatedRect) Corners() [4]Point {
	return [4]Point{r.UpperLeft, r.UpperRight, r.LowerRight, r.LowerLeft}
}

// Center is the intersection of the diagonals.
func (r RotatedRect) Center() Point {
	return r.UpperLeft.Add(r.LowerRight).Mul(0.5)
}

// Map applies f to every corner. f must be a similarity transform
// (uniform scale, translation) so the rectangle stays a rectangle.
func (r RotatedRect) Map(f func(Point) Point) RotatedRect {
	return RotatedRect{
		UpperLeft:  f(r.UpperLeft),
		UpperRight: f(r.UpperRight),
		LowerRight: f(r.LowerRight),
		LowerLeft:  f(r.LowerLeft),
	}
}

// Degenerate reports whether either side is shorter than minSide.
func (r RotatedRect) Degenerate(minSide float64) bool {
	if minSide <= 0 {
		minSide = 1e-9
	}
	return r.Width() < minSide || r.Height() < minSide
}
