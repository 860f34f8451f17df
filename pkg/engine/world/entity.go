package world

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/logger"
)

// EntityID is a stable handle to an entity. The low 32 bits are the arena
// slot, the high 32 bits its generation, so a handle to a removed entity
// never resolves to whatever later reuses the slot. The zero ID is never
// issued.
type EntityID uint64

func makeEntityID(slot, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(slot))
}

func (id EntityID) slot() uint32       { return uint32(id) }
func (id EntityID) generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.slot(), id.generation())
}

// Visibility is what an entity knows about one cell.
type Visibility struct {
	Visible    bool
	Discovered bool
}

// Knowledge is the answer to Entity.At. Cell is only set for discovered cells.
type Knowledge struct {
	Visible    bool
	Discovered bool
	Cell       *Cell
}

type entitySlot struct {
	gen    uint32
	entity *Entity
}

// Entity is something that stands on the grid and remembers what it has seen.
type Entity struct {
	id          EntityID
	grid        *Grid
	pos         geom.Point
	sightRadius int
	vis         []Visibility
}

// AddEntity places a new entity at (x, y). Coordinates are not validated
// against walkability; out of bounds positions are clamped into the grid.
func (g *Grid) AddEntity(x, y int) *Entity {
	var slot uint32
	if n := len(g.freeSlots); n > 0 {
		slot = g.freeSlots[n-1]
		g.freeSlots = g.freeSlots[:n-1]
	} else {
		slot = uint32(len(g.slots))
		g.slots = append(g.slots, entitySlot{})
	}
	s := &g.slots[slot]
	s.gen++
	e := &Entity{
		id:   makeEntityID(slot, s.gen),
		grid: g,
		pos:  geom.Pt(clamp(x, 0, g.width-1), clamp(y, 0, g.height-1)),
		vis:  make([]Visibility, g.width*g.height),
	}
	s.entity = e
	g.entityOrder = append(g.entityOrder, e.id)

	logger.Log.WithFields(logrus.Fields{
		"entity": e.id.String(),
		"pos":    e.pos.String(),
	}).Debug("entity added")
	return e
}

// Entity resolves id, returning nil for removed or unknown entities.
func (g *Grid) Entity(id EntityID) *Entity {
	slot := id.slot()
	if int(slot) >= len(g.slots) {
		return nil
	}
	s := g.slots[slot]
	if s.entity == nil || s.gen != id.generation() {
		return nil
	}
	return s.entity
}

// RemoveEntity removes the entity and detaches it from the grid. It returns
// false if id does not resolve.
func (g *Grid) RemoveEntity(id EntityID) bool {
	e := g.Entity(id)
	if e == nil {
		return false
	}
	slot := id.slot()
	g.slots[slot].entity = nil
	g.freeSlots = append(g.freeSlots, slot)
	if i := slices.Index(g.entityOrder, id); i >= 0 {
		g.entityOrder = slices.Delete(g.entityOrder, i, i+1)
	}
	e.grid = nil

	logger.Log.WithField("entity", id.String()).Debug("entity removed")
	return true
}

// Entities returns the live entities in the order they were added.
func (g *Grid) Entities() []*Entity {
	out := make([]*Entity, 0, len(g.entityOrder))
	for _, id := range g.entityOrder {
		out = append(out, g.Entity(id))
	}
	return out
}

// EntityCount returns the number of live entities.
func (g *Grid) EntityCount() int {
	return len(g.entityOrder)
}

// EachEntity calls fn for every live entity in insertion order. fn may add
// or remove entities: removed entities are skipped, entities added during
// the walk are not visited.
func (g *Grid) EachEntity(fn func(e *Entity)) {
	for _, id := range slices.Clone(g.entityOrder) {
		if e := g.Entity(id); e != nil {
			fn(e)
		}
	}
}

// ID returns the entity handle.
func (e *Entity) ID() EntityID { return e.id }

// Grid returns the owning grid, or nil once removed.
func (e *Entity) Grid() *Grid { return e.grid }

// Position returns the current cell.
func (e *Entity) Position() geom.Point { return e.pos }

// SetPosition moves the entity to (x, y) if it is on the grid. Visibility is
// not updated; call UpdateVisibility.
func (e *Entity) SetPosition(x, y int) bool {
	if e.grid == nil || !e.grid.InBounds(x, y) {
		return false
	}
	e.pos = geom.Pt(x, y)
	return true
}

// Move steps one cell in dir if the target is walkable. Diagonal steps may
// not cut wall corners. Visibility is not updated.
func (e *Entity) Move(dir geom.Direction) bool {
	if e.grid == nil || !dir.IsValid() {
		return false
	}
	to := e.pos.Step(dir)
	if !e.grid.Walkable(to.X, to.Y) {
		return false
	}
	if dir.IsDiagonal() {
		a, b := dir.Flanks()
		fa, fb := e.pos.Step(a), e.pos.Step(b)
		if !e.grid.Walkable(fa.X, fa.Y) || !e.grid.Walkable(fb.X, fb.Y) {
			return false
		}
	}
	e.pos = to
	return true
}

// SightRadius returns the entity's own radius, or 0 when it uses the grid default.
func (e *Entity) SightRadius() int { return e.sightRadius }

// SetSightRadius sets the FOV radius for UpdateVisibility. 0 or less means
// the grid default.
func (e *Entity) SetSightRadius(r int) {
	e.sightRadius = max(r, 0)
}

// UpdateVisibility recomputes FOV from the entity's position with the grid's
// algorithm and merges it into what the entity knows: cells in view become
// visible and discovered, everything else stops being visible but stays
// discovered. The result also becomes the grid's last FOV.
//
// Returns nil for a removed entity.
func (e *Entity) UpdateVisibility() *fov.Set {
	if e.grid == nil {
		return nil
	}
	radius := e.sightRadius
	if radius <= 0 {
		radius = -1
	}
	s := e.grid.ComputeFOV(e.pos.X, e.pos.Y, radius)
	for i := range e.vis {
		e.vis[i].Visible = false
	}
	s.Each(func(p geom.Point) {
		v := &e.vis[p.Y*e.grid.width+p.X]
		v.Visible = true
		v.Discovered = true
	})
	return s
}

// At reports what the entity knows about (x, y). The live cell is only
// handed out for discovered cells.
func (e *Entity) At(x, y int) Knowledge {
	if e.grid == nil || !e.grid.InBounds(x, y) {
		return Knowledge{}
	}
	v := e.vis[y*e.grid.width+x]
	k := Knowledge{Visible: v.Visible, Discovered: v.Discovered}
	if v.Discovered {
		k.Cell = e.grid.At(x, y)
	}
	return k
}

// Visibility returns a copy of the entity's knowledge in row-major order.
func (e *Entity) Visibility() []Visibility {
	return slices.Clone(e.vis)
}

// DiscoveredCount returns how many cells the entity has ever seen.
func (e *Entity) DiscoveredCount() int {
	n := 0
	for _, v := range e.vis {
		if v.Discovered {
			n++
		}
	}
	return n
}

// ResetVisibility forgets everything the entity has seen.
func (e *Entity) ResetVisibility() {
	clear(e.vis)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
