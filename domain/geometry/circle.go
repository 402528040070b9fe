package geometry

// Circle is defined by centre and radius.
type Circle struct {
	Center Point
	Radius float64
}

// CircleFromDiameter returns the circle having a and b as diametric points.
func CircleFromDiameter(a, b Point) Circle {
	c := Point{a.X + (b.X-a.X)/2, a.Y + (b.Y-a.Y)/2}
	return Circle{Center: c, Radius: c.Dist(a)}
}

// Bounds returns the bounding box of the circle as top-left and bottom-right corners.
func (c Circle) Bounds() (lo, hi Point) {
	r := Point{c.Radius, c.Radius}
	return c.Center.Sub(r), c.Center.Add(r)
}

// Project moves p along the ray from the centre onto the circle.
// ok is false when p coincides with the centre and no ray exists.
func (c Circle) Project(p Point) (q Point, ok bool) {
	d := p.Sub(c.Center)
	l := d.Len()
	if l == 0 {
		return Point{}, false
	}
	return c.Center.Add(d.Mul(c.Radius / l)), true
}

// Contains reports whether p lies on the circle within eps.
func (c Circle) Contains(p Point, eps float64) bool {
	d := p.Dist(c.Center) - c.Radius
	return d <= eps && d >= -eps
}
