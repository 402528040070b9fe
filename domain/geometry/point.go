// Package geometry holds the plane geometry behind the crop gesture.
package geometry

import (
	"image"
	"math"
)

// Point is a position in canvas or image space. Y grows downwards.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromImagePoint converts an integer pixel position.
func FromImagePoint(p image.Point) Point { return Point{X: float64(p.X), Y: float64(p.Y)} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point   { return Point{p.X * k, p.Y * k} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64  { return p.Sub(q).Len() }

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// CentralInversion reflects p through c (point reflection).
func CentralInversion(p, c Point) Point {
	return Point{2*c.X - p.X, 2*c.Y - p.Y}
}
