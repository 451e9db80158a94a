// Package geom provides 2D point and rectangle primitives for layout math.
// These are engine-level constructs usable by any grid-based game.
package geom

import "math"

// Point is a position or size in world units.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// R is shorthand for constructing a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 {
	return r.X + r.W
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.H
}

// Inflate returns the rect grown by m on all four sides.
// Negative m shrinks the rect; width/height never go below zero.
func (r Rect) Inflate(m float64) Rect {
	w := r.W + 2*m
	h := r.H + 2*m
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X - m, Y: r.Y - m, W: w, H: h}
}

// Intersects reports whether r and o overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains reports whether p lies within r (inclusive of the min edges,
// exclusive of the max edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// ClampPoint returns p constrained to r shrunk by margin on all sides.
func (r Rect) ClampPoint(p Point, margin float64) Point {
	inner := r.Inflate(-margin)
	if p.X < inner.X {
		p.X = inner.X
	}
	if p.X > inner.MaxX() {
		p.X = inner.MaxX()
	}
	if p.Y < inner.Y {
		p.Y = inner.Y
	}
	if p.Y > inner.MaxY() {
		p.Y = inner.MaxY()
	}
	return p
}
