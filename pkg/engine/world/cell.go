package world

import "mcrogueface/pkg/engine/geom"

// Cell is a live view of one grid position. It holds no data of its own:
// reads and writes go straight through to the grid.
type Cell struct {
	grid *Grid
	x, y int
}

// Position returns the cell coordinates.
func (c *Cell) Position() geom.Point {
	return geom.Pt(c.x, c.y)
}

func (c *Cell) X() int { return c.x }
func (c *Cell) Y() int { return c.y }

// Walkable reports the base walkable flag.
func (c *Cell) Walkable() bool {
	return c.grid.base[c.grid.index(c.x, c.y)].Walkable
}

// Transparent reports the base transparent flag.
func (c *Cell) Transparent() bool {
	return c.grid.base[c.grid.index(c.x, c.y)].Transparent
}

// Properties returns both base flags.
func (c *Cell) Properties() Properties {
	return c.grid.base[c.grid.index(c.x, c.y)]
}

func (c *Cell) SetWalkable(walkable bool) {
	c.grid.SetWalkable(c.x, c.y, walkable)
}

func (c *Cell) SetTransparent(transparent bool) {
	c.grid.SetTransparent(c.x, c.y, transparent)
}

// LayerValue reads this cell from the layer with id. ok is false when the
// layer does not belong to the grid.
func (c *Cell) LayerValue(id LayerID) (v Value, ok bool) {
	l := c.grid.LayerByID(id)
	if l == nil {
		return Value{}, false
	}
	return l.Get(c.x, c.y)
}

// SetLayerValue writes this cell on the layer with id. It returns false when
// the layer is unknown or v is of the wrong kind.
func (c *Cell) SetLayerValue(id LayerID, v Value) bool {
	l := c.grid.LayerByID(id)
	if l == nil {
		return false
	}
	return l.Set(c.x, c.y, v)
}

// Neighbor returns the adjacent cell in direction dir, or nil at the edge.
func (c *Cell) Neighbor(dir geom.Direction) *Cell {
	if c == nil {
		return nil
	}
	p := c.Position().Step(dir)
	return c.grid.At(p.X, p.Y)
}
