package fov

import "mcrogueface/pkg/engine/geom"

// diamondThreshold is the highest inherited obscurity a transparent cell can
// carry and still be seen.
const diamondThreshold = 0.5

// computeDiamond propagates obscurity outward one Manhattan ring at a time.
//
// A cell at offset (dx, dy) has up to two parents one step closer to the
// origin: (dx∓1, dy) and (dx, dy∓1). Its obscurity is the average of what
// its parents pass on, weighted by |dx| and |dy| respectively; an opaque
// parent passes 1, a transparent one passes its own obscurity. The rule only
// depends on |dx| and |dy|, so the result is mirror symmetric on both axes
// and both diagonals.
func computeDiamond(src Transparency, s *Set) {
	r := s.radius
	side := 2*r + 1
	obscurity := make([]float64, side*side)
	opaque := make([]bool, side*side)
	lit := make([]bool, side*side)
	at := func(dx, dy int) int { return (dy+r)*side + dx + r }

	lit[at(0, 0)] = true

	for d := 1; d <= 2*r; d++ {
		for dx := -d; dx <= d; dx++ {
			rest := d - geom.Abs(dx)
			dys := [2]int{rest, -rest}
			n := 2
			if rest == 0 {
				n = 1
			}
			for _, dy := range dys[:n] {
				if !InRange(dx, dy, r) {
					continue
				}
				i := at(dx, dy)
				x, y := s.origin.X+dx, s.origin.Y+dy
				if x < 0 || y < 0 || x >= s.width || y >= s.height {
					opaque[i] = true
					obscurity[i] = 1
					continue
				}

				ax, ay := geom.Abs(dx), geom.Abs(dy)
				var sum float64
				feedsFace := false
				if dx != 0 {
					p := at(dx-sign(dx), dy)
					sum += float64(ax) * passed(obscurity, opaque, p)
					feedsFace = feedsFace || (lit[p] && !opaque[p])
				}
				if dy != 0 {
					p := at(dx, dy-sign(dy))
					sum += float64(ay) * passed(obscurity, opaque, p)
					feedsFace = feedsFace || (lit[p] && !opaque[p])
				}
				obscurity[i] = sum / float64(ax+ay)
				opaque[i] = !src.Transparent(x, y)

				// A wall is seen when light reaches its face, even if the
				// wavefront behind it is too obscured to continue.
				if obscurity[i] <= diamondThreshold || (opaque[i] && feedsFace) {
					lit[i] = true
					s.mark(x, y)
				}
			}
		}
	}
}

func passed(obscurity []float64, opaque []bool, i int) float64 {
	if opaque[i] {
		return 1
	}
	return obscurity[i]
}
