package fov

import "mcrogueface/pkg/engine/geom"

// computeBasic marks every in-range cell whose Bresenham line from the origin
// is clear. Each cell is tested on its own, so growing the radius never hides
// a cell that was visible before.
func computeBasic(src Transparency, s *Set) {
	ox, oy, r := s.origin.X, s.origin.Y, s.radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if !InRange(dx, dy, r) {
				continue
			}
			x, y := ox+dx, oy+dy
			if x < 0 || y < 0 || x >= s.width || y >= s.height {
				continue
			}
			if hasLineOfSight(src, ox, oy, x, y) {
				s.mark(x, y)
			}
		}
	}
}

// hasLineOfSight returns true if no opaque cell lies strictly between
// (x0,y0) and (x1,y1) on the Bresenham line joining them.
func hasLineOfSight(src Transparency, x0, y0, x1, y1 int) bool {
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 && dy == 0 {
		return true
	}

	absDx, absDy := geom.Abs(dx), geom.Abs(dy)
	stepX, stepY := sign(dx), sign(dy)
	x, y := x0, y0

	if absDx >= absDy {
		// Step along x
		err := 2*absDy - absDx
		for {
			x += stepX
			if err > 0 {
				y += stepY
				err -= 2 * absDx
			}
			err += 2 * absDy
			if x == x1 {
				return true
			}
			if !src.Transparent(x, y) {
				return false
			}
		}
	}

	// Step along y
	err := 2*absDx - absDy
	for {
		y += stepY
		if err > 0 {
			x += stepX
			err -= 2 * absDy
		}
		err += 2 * absDx
		if y == y1 {
			return true
		}
		if !src.Transparent(x, y) {
			return false
		}
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
