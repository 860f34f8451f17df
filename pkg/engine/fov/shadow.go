package fov

// octant maps sweep coordinates (i across the row, j along the row axis)
// to a world offset: x = i*xx + j*xy, y = i*yx + j*yy.
type octant struct {
	xx, xy, yx, yy int
}

var octants = [8]octant{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
}

type caster struct {
	src Transparency
	set *Set
	cut float64
	o   octant
}

// computeShadow runs recursive shadowcasting in all eight octants. A
// blocker corner with no opaque cell touching it loses a square of side cut
// (a fraction of a cell), letting light leak past it; 0 gives classic
// shadowcasting. Corners shared with other blockers are never cut, so a
// continuous wall stays solid.
func computeShadow(src Transparency, s *Set, cut float64) {
	c := &caster{src: src, set: s, cut: cut}
	for _, o := range octants {
		c.o = o
		c.cast(1, 1.0, 0.0)
	}
}

func (c *caster) opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= c.set.width || y >= c.set.height {
		return true
	}
	return !c.src.Transparent(x, y)
}

// opaqueAt tests the cell at sweep coordinates (i, j) of the current octant.
func (c *caster) opaqueAt(i, j int) bool {
	ox, oy := c.set.origin.X, c.set.origin.Y
	return c.opaque(ox+i*c.o.xx+j*c.o.xy, oy+i*c.o.yx+j*c.o.yy)
}

// cast scans rows from row outward, lighting cells whose slope span overlaps
// [end, start]. Slopes are i/j, so start is the high edge of the beam. The
// beam only ever narrows within a row.
func (c *caster) cast(row int, start, end float64) {
	if start < end {
		return
	}
	ox, oy, radius := c.set.origin.X, c.set.origin.Y, c.set.radius

	for j := row; j <= radius; j++ {
		fj := float64(j)
		blocked := false
		newStart := start

		for i := j; i >= 0; i-- {
			fi := float64(i)
			hi := (fi + 0.5) / (fj - 0.5)
			lo := (fi - 0.5) / (fj + 0.5)
			if start < lo {
				continue // above the beam
			}
			if end > hi {
				break // below the beam, and so is the rest of the row
			}

			c.set.mark(ox+i*c.o.xx+j*c.o.xy, oy+i*c.o.yx+j*c.o.yy)

			opaque := c.opaqueAt(i, j)
			if blocked {
				if opaque {
					newStart = c.shadowLow(i, j)
					continue
				}
				blocked = false
				start = min(start, newStart)
				if start < end {
					return
				}
			} else if opaque && j < radius {
				blocked = true
				c.cast(j+1, start, c.shadowHigh(i, j))
				newStart = c.shadowLow(i, j)
			}
		}

		if blocked {
			// a cut corner can leave light below the last blocker
			start = min(start, newStart)
			if start < end {
				return
			}
		}
	}
}

// shadowHigh is the top slope of the shadow cast by blocker (i, j). It comes
// from the near corner at (i+½, j-½), cut back when nothing else touches it.
func (c *caster) shadowHigh(i, j int) float64 {
	fi, fj := float64(i), float64(j)
	if c.cut == 0 || c.opaqueAt(i+1, j) || c.opaqueAt(i, j-1) || c.opaqueAt(i+1, j-1) {
		return (fi + 0.5) / (fj - 0.5)
	}
	return max((fi+0.5-c.cut)/(fj-0.5), (fi+0.5)/(fj-0.5+c.cut))
}

// shadowLow is the bottom slope, from the far corner at (i-½, j+½).
func (c *caster) shadowLow(i, j int) float64 {
	fi, fj := float64(i), float64(j)
	if c.cut == 0 || c.opaqueAt(i-1, j) || c.opaqueAt(i, j+1) || c.opaqueAt(i-1, j+1) {
		return (fi - 0.5) / (fj + 0.5)
	}
	return min((fi-0.5+c.cut)/(fj+0.5), (fi-0.5)/(fj+0.5-c.cut))
}
