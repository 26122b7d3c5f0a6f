// Package geom holds the small 2D value types shared by the layout, the
// viewport and the tooltip placement.
package geom

// Point is a position; screen points are in terminal cells, content points in
// layout units
type Point struct {
	X, Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale multiplies both coordinates by s
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Size is a width/height pair
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// Min returns the top-left corner
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the midpoint of r
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Size returns the dimensions of r
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Contains reports whether p lies inside r (right and bottom edges excluded)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
