// Package generator builds playable maps on a world.Grid: base properties,
// the standard layers, a start cell and an exit as far from it as possible.
package generator

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/engine/world"
)

// Layer names every generator creates.
const (
	LayerTiles = "tiles"
	LayerDecor = "decor"
	LayerTint  = "tint"
)

// Sprite indices written to the tile and decor layers.
const (
	SpriteWall = iota
	SpriteFloor
	SpriteCorridor
	SpriteExit
	SpriteRubble
	SpriteCrate
)

// ErrTooSmall is returned when the requested size cannot hold a map.
var ErrTooSmall = errors.New("map too small for generator")

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(width, height int, rng *rand.Rand, opts ...world.Option) (*Map, error)
	Name() string
}

// Available generators
var (
	LineWalker = &LineWalkerGenerator{}
	BSP        = &BSPGenerator{}
	Arena      = &ArenaGenerator{}
)

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = BSP

var registry = map[string]GridGenerator{
	"arena":      Arena,
	"bsp":        BSP,
	"linewalker": LineWalker,
}

// ByName returns the generator registered as name.
func ByName(name string) (GridGenerator, error) {
	if g, ok := registry[name]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("generator %q: unknown", name)
}

// Names lists the registered generators, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Room is a named rectangle of floor.
type Room struct {
	Name                string
	X, Y, Width, Height int
}

// Contains reports whether p is inside the room.
func (r Room) Contains(p geom.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the middle cell of the room.
func (r Room) Center() geom.Point {
	return geom.Pt(r.X+r.Width/2, r.Y+r.Height/2)
}

// Map is a generated level.
type Map struct {
	Grid  *world.Grid
	Start geom.Point
	Exit  geom.Point
	Rooms []Room

	// Corridors holds the floor cells that are not part of any room.
	Corridors mapset.Set[geom.Point]
}

// RoomAt returns the room containing p.
func (m *Map) RoomAt(p geom.Point) (Room, bool) {
	for _, r := range m.Rooms {
		if r.Contains(p) {
			return r, true
		}
	}
	return Room{}, false
}

// Tiles returns the tile layer.
func (m *Map) Tiles() *world.Layer { return m.Grid.Layer(LayerTiles) }

// Decor returns the decoration layer.
func (m *Map) Decor() *world.Layer { return m.Grid.Layer(LayerDecor) }

// Tint returns the color layer.
func (m *Map) Tint() *world.Layer { return m.Grid.Layer(LayerTint) }

// roomTints are the per-room floor colors, cycled.
var roomTints = []color.RGBA{
	{R: 0x3a, G: 0x4a, B: 0x6a, A: 0xff},
	{R: 0x4a, G: 0x3a, B: 0x5a, A: 0xff},
	{R: 0x3a, G: 0x5a, B: 0x4a, A: 0xff},
	{R: 0x5a, G: 0x4a, B: 0x3a, A: 0xff},
	{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff},
}

var corridorTint = color.RGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 0xff}

// newMap creates a grid filled with wall and the standard layers.
func newMap(width, height int, opts []world.Option) (*Map, error) {
	g, err := world.NewGrid(width, height, opts...)
	if err != nil {
		return nil, err
	}
	g.FillProperties(world.Wall)
	tiles, err := g.AddSpriteLayer(LayerTiles, 0)
	if err != nil {
		return nil, err
	}
	tiles.Fill(world.SpriteValue(SpriteWall))
	if _, err := g.AddSpriteLayer(LayerDecor, 1); err != nil {
		return nil, err
	}
	if _, err := g.AddColorLayer(LayerTint, -1); err != nil {
		return nil, err
	}
	return &Map{Grid: g, Corridors: mapset.New[geom.Point]()}, nil
}

// carveRoom marks a room as floor and tints it.
func (m *Map) carveRoom(r Room) {
	m.Grid.FillPropertiesRect(r.X, r.Y, r.Width, r.Height, world.Floor)
	m.Tiles().FillRect(r.X, r.Y, r.Width, r.Height, world.SpriteValue(SpriteFloor))
	tint := roomTints[len(m.Rooms)%len(roomTints)]
	m.Tint().FillRect(r.X, r.Y, r.Width, r.Height, world.ColorValue(tint))
	m.Rooms = append(m.Rooms, r)
}

// carveCorridor marks a single cell as corridor unless it is already floor.
func (m *Map) carveCorridor(x, y int) {
	if m.Grid.Walkable(x, y) {
		return
	}
	if !m.Grid.SetProperties(x, y, world.Floor) {
		return
	}
	m.Tiles().Set(x, y, world.SpriteValue(SpriteCorridor))
	m.Tint().Set(x, y, world.ColorValue(corridorTint))
	m.Corridors.Put(geom.Pt(x, y))
}

// scatter puts decoration sprites on a share of the room floor cells.
func (m *Map) scatter(rng *rand.Rand, chance float64) {
	decor := m.Decor()
	for _, r := range m.Rooms {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if rng.Float64() >= chance {
					continue
				}
				sprite := SpriteRubble
				if rng.Intn(3) == 0 {
					sprite = SpriteCrate
				}
				decor.Set(x, y, world.SpriteValue(sprite))
			}
		}
	}
}

// placeExit puts the exit on the room cell farthest from start, falling
// back to the farthest reachable cell of any kind.
func (m *Map) placeExit() {
	field := m.Grid.GetDijkstraMap(m.Start.X, m.Start.Y)
	best, bestDist := geom.Point{}, -1.0
	for _, r := range m.Rooms {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if !field.Reachable(x, y) {
					continue
				}
				if d := field.Distance(x, y); d > bestDist {
					best, bestDist = geom.Pt(x, y), d
				}
			}
		}
	}
	if bestDist < 0 {
		best, bestDist = field.Farthest()
	}
	m.Exit = best
	m.Tiles().Set(best.X, best.Y, world.SpriteValue(SpriteExit))
	m.Decor().Set(best.X, best.Y, world.SpriteValue(world.NoSprite))

	logger.Log.WithFields(logrus.Fields{
		"start":    m.Start.String(),
		"exit":     best.String(),
		"distance": bestDist,
		"rooms":    len(m.Rooms),
	}).Debug("exit placed")
}
