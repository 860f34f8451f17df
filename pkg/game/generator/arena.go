package generator

import (
	"fmt"
	"math/rand"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/world"
)

// ArenaGenerator builds one hall with a regular grid of pillars. The layout
// does not depend on the random source, which makes it useful for comparing
// FOV algorithms side by side.
type ArenaGenerator struct{}

// Name returns the name of this generator
func (g *ArenaGenerator) Name() string {
	return "Pillar Arena"
}

const (
	arenaMinSize = 7
	// pillars stand on every pillarSpacing-th cell, away from the walls
	pillarSpacing = 3
)

// Generate carves the hall, raises the pillars and starts the player in the
// top-left corner. Crates sit in the middle row of pillars so toggling the
// decor layer shows on screen.
func (g *ArenaGenerator) Generate(width, height int, rng *rand.Rand, opts ...world.Option) (*Map, error) {
	if width < arenaMinSize || height < arenaMinSize {
		return nil, fmt.Errorf("arena %dx%d: %w", width, height, ErrTooSmall)
	}
	m, err := newMap(width, height, opts)
	if err != nil {
		return nil, err
	}

	m.carveRoom(Room{Name: "Pillar Hall", X: 1, Y: 1, Width: width - 2, Height: height - 2})

	tiles, decor := m.Tiles(), m.Decor()
	mid := (height / 2 / pillarSpacing) * pillarSpacing
	for y := pillarSpacing; y < height-2; y += pillarSpacing {
		for x := pillarSpacing; x < width-2; x += pillarSpacing {
			m.Grid.SetProperties(x, y, world.Wall)
			tiles.Set(x, y, world.SpriteValue(SpriteWall))
			if y == mid {
				decor.Set(x-1, y, world.SpriteValue(SpriteCrate))
			}
		}
	}

	m.Start = geom.Pt(1, 1)
	m.placeExit()
	return m, nil
}
