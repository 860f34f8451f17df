package renderer

import (
	"image/color"
	"testing"

	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/generator"
	"mcrogueface/pkg/game/state"
)

// smallGame builds a 7x3 corridor with a player at (1,1) who has looked around.
func smallGame(t *testing.T) *state.Game {
	t.Helper()
	grid := world.MustNewGrid(7, 3, world.WithFOVRadius(2))
	grid.FillPropertiesRect(1, 1, 5, 1, world.Floor)
	tiles, _ := grid.AddSpriteLayer(generator.LayerTiles, 0)
	tiles.Fill(world.SpriteValue(generator.SpriteWall))
	tiles.FillRect(1, 1, 5, 1, world.SpriteValue(generator.SpriteFloor))
	decor, _ := grid.AddSpriteLayer(generator.LayerDecor, 1)
	decor.Set(2, 1, world.SpriteValue(generator.SpriteCrate))
	tint, _ := grid.AddColorLayer(generator.LayerTint, -1)
	tint.Set(2, 1, world.ColorValue(color.RGBA{R: 90, A: 255}))

	g := state.NewGame(1)
	g.Map = &generator.Map{Grid: grid}
	g.Player = grid.AddEntity(1, 1)
	g.Player.UpdateVisibility()
	return g
}

// TestCompositeLayersAndFog tests layer stacking and the three fog states
func TestCompositeLayersAndFog(t *testing.T) {
	g := smallGame(t)
	layers := g.Grid().VisibleLayers()

	if v := Composite(g, layers, 2, 1); v.Sprite != generator.SpriteCrate || v.Fog != FogVisible || v.Background.R != 90 {
		t.Errorf("(2,1) = %+v, want visible crate on tint", v)
	}
	if v := Composite(g, layers, 1, 1); !v.Player || v.Icon != PlayerIcon {
		t.Errorf("(1,1) = %+v, want player", v)
	}
	if v := Composite(g, layers, 6, 1); v.Fog != FogUnknown || v.Icon != IconVoid {
		t.Errorf("(6,1) = %+v, want unknown", v)
	}

	g.Player.SetPosition(5, 1)
	g.Player.UpdateVisibility()
	v := Composite(g, layers, 2, 1)
	if v.Fog != FogMemory {
		t.Errorf("(2,1) after moving away fog = %v, want memory", v.Fog)
	}
	if v.Background.R != 30 {
		t.Errorf("remembered background = %v, want dimmed", v.Background)
	}

	g.Grid().Layer(generator.LayerDecor).SetVisible(false)
	if v := Composite(g, g.Grid().VisibleLayers(), 2, 1); v.Sprite != generator.SpriteFloor {
		t.Errorf("(2,1) with decor hidden = %d, want floor", v.Sprite)
	}
}

func TestViewportClamps(t *testing.T) {
	g := smallGame(t)
	if x0, y0 := Viewport(g, 3, 3); x0 != 0 || y0 != 0 {
		t.Errorf("Viewport near the corner = (%d,%d), want (0,0)", x0, y0)
	}
	g.Player.SetPosition(6, 2)
	if x0, _ := Viewport(g, 3, 3); x0 != 4 {
		t.Errorf("Viewport near the right edge x0 = %d, want 4", x0)
	}
	if x0, y0 := Viewport(g, 10, 10); x0 != 0 || y0 != 0 {
		t.Errorf("Viewport larger than the grid = (%d,%d), want (0,0)", x0, y0)
	}
}
