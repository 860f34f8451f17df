// Package renderer turns a session into drawable cells: it composites the
// grid's visible layers and applies the player's fog of war. Backends only
// decide how a CellView becomes characters or pixels.
package renderer

import (
	"image/color"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/generator"
	"mcrogueface/pkg/game/state"
)

// Fog is how much the player knows about a cell.
type Fog int

const (
	FogUnknown Fog = iota // never seen
	FogMemory             // seen before, not in view now
	FogVisible            // in view
)

// Icons used for sprites and the player.
const (
	PlayerIcon = "@"
	IconVoid   = " "
)

// spriteIcons maps sprite indices to terminal glyphs.
var spriteIcons = map[int]string{
	generator.SpriteWall:     "▒",
	generator.SpriteFloor:    "·",
	generator.SpriteCorridor: "░",
	generator.SpriteExit:     ">",
	generator.SpriteRubble:   ",",
	generator.SpriteCrate:    "■",
}

// spriteColors maps sprite indices to foreground colors.
var spriteColors = map[int]color.RGBA{
	generator.SpriteWall:     {R: 0x90, G: 0x90, B: 0x90, A: 0xff},
	generator.SpriteFloor:    {R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
	generator.SpriteCorridor: {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	generator.SpriteExit:     {R: 0x40, G: 0xe0, B: 0x40, A: 0xff},
	generator.SpriteRubble:   {R: 0x9a, G: 0x7a, B: 0x50, A: 0xff},
	generator.SpriteCrate:    {R: 0xc0, G: 0x90, B: 0x40, A: 0xff},
}

// PlayerColor is the foreground of the player glyph.
var PlayerColor = color.RGBA{R: 0xff, G: 0xff, B: 0x40, A: 0xff}

// CellView is everything a backend needs to draw one cell.
type CellView struct {
	Icon       string
	Foreground color.RGBA
	Background color.RGBA
	Sprite     int
	Fog        Fog
	Player     bool
}

// Icon returns the glyph for a sprite index.
func Icon(sprite int) string {
	if s, ok := spriteIcons[sprite]; ok {
		return s
	}
	return IconVoid
}

// Composite builds the view of (x, y): visible layers in draw order, the
// topmost sprite and color winning, then the player's knowledge applied.
// Undiscovered cells come back blank.
func Composite(g *state.Game, layers []*world.Layer, x, y int) CellView {
	k := g.Player.At(x, y)
	if !k.Discovered {
		return CellView{Icon: IconVoid, Sprite: world.NoSprite, Fog: FogUnknown}
	}

	v := CellView{Sprite: world.NoSprite, Fog: FogMemory}
	if k.Visible {
		v.Fog = FogVisible
	}
	for _, l := range layers {
		val, ok := l.Get(x, y)
		if !ok {
			continue
		}
		if idx, ok := val.Sprite(); ok && idx != world.NoSprite {
			v.Sprite = idx
		}
		if c, ok := val.Color(); ok && c.A > 0 {
			v.Background = c
		}
	}
	v.Icon = Icon(v.Sprite)
	v.Foreground = spriteColors[v.Sprite]

	if g.Player.Position() == geom.Pt(x, y) {
		v.Icon = PlayerIcon
		v.Foreground = PlayerColor
		v.Player = true
	}
	if v.Fog == FogMemory {
		v.Foreground = Dim(v.Foreground)
		v.Background = Dim(v.Background)
	}
	return v
}

// Dim darkens a color for remembered cells.
func Dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: c.A}
}

// Viewport returns the top-left cell of a rows×cols window centered on the
// player and clamped to the grid.
func Viewport(g *state.Game, rows, cols int) (x0, y0 int) {
	grid := g.Grid()
	p := g.Player.Position()
	x0 = clamp(p.X-cols/2, 0, max(grid.Width()-cols, 0))
	y0 = clamp(p.Y-rows/2, 0, max(grid.Height()-rows, 0))
	return x0, y0
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
