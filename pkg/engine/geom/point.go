// Package geom holds the integer coordinate primitives shared by the engine
// packages: grid points and the eight compass directions.
package geom

import "fmt"

// Point is a cell coordinate. X grows east, Y grows south.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Step returns the neighbor of p in the given direction.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// In reports whether p lies inside [0,width)×[0,height).
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Abs returns the absolute value of n.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Chebyshev returns the chessboard distance between a and b.
func Chebyshev(a, b Point) int {
	dx, dy := Abs(a.X-b.X), Abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Manhattan returns the taxicab distance between a and b.
func Manhattan(a, b Point) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}
