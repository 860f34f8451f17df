package fov

import "mcrogueface/pkg/engine/geom"

// Set is a dense visibility set over the grid a FOV was computed on.
type Set struct {
	width, height int
	origin        geom.Point
	radius        int
	cells         []bool
	count         int
}

func newSet(width, height int, origin geom.Point, radius int) *Set {
	return &Set{
		width:  width,
		height: height,
		origin: origin,
		radius: radius,
		cells:  make([]bool, width*height),
	}
}

// mark adds (x, y) if it is inside the grid and within the set's radius.
func (s *Set) mark(x, y int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	if !InRange(x-s.origin.X, y-s.origin.Y, s.radius) {
		return
	}
	i := y*s.width + x
	if !s.cells[i] {
		s.cells[i] = true
		s.count++
	}
}

// Contains reports whether (x, y) is visible. Out of bounds is never visible.
func (s *Set) Contains(x, y int) bool {
	if s == nil || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	return s.cells[y*s.width+x]
}

// Count returns the number of visible cells.
func (s *Set) Count() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Origin returns the cell the FOV was computed from.
func (s *Set) Origin() geom.Point { return s.origin }

// Radius returns the radius the FOV was computed with.
func (s *Set) Radius() int { return s.radius }

// Each calls fn for every visible cell in row-major order.
func (s *Set) Each(fn func(p geom.Point)) {
	if s == nil {
		return
	}
	for i, v := range s.cells {
		if v {
			fn(geom.Pt(i%s.width, i/s.width))
		}
	}
}

// Points returns the visible cells in row-major order.
func (s *Set) Points() []geom.Point {
	out := make([]geom.Point, 0, s.Count())
	s.Each(func(p geom.Point) {
		out = append(out, p)
	})
	return out
}

// SubsetOf reports whether every cell in s is also in other.
func (s *Set) SubsetOf(other *Set) bool {
	ok := true
	s.Each(func(p geom.Point) {
		if ok && !other.Contains(p.X, p.Y) {
			ok = false
		}
	})
	return ok
}
