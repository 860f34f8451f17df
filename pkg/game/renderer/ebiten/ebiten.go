// Package ebiten renders an exploration session in a window. Cells are
// placed with the grid's camera, so zooming and following the player work
// the same way for every consumer of the camera.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	engineinput "mcrogueface/pkg/engine/input"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/game/gameplay"
	"mcrogueface/pkg/game/menu"
	"mcrogueface/pkg/game/renderer"
	"mcrogueface/pkg/game/state"
)

// dynamicGet is used for runtime translation key lookups.
var dynamicGet = gotext.Get

// EbitenRenderer implements renderer.Renderer and ebiten.Game.
type EbitenRenderer struct {
	game     *state.Game
	settings gameplay.Settings

	tileSize int
	width    int
	height   int

	fontSource     *text.GoTextFaceSource
	cachedTileFace *text.GoTextFace
	cachedUIFace   *text.GoTextFace

	ticks int
	err   error
}

var _ renderer.Renderer = (*EbitenRenderer)(nil)

// New creates a windowed renderer.
func New() *EbitenRenderer {
	return &EbitenRenderer{
		tileSize: defaultTileSize,
		width:    windowCols * defaultTileSize,
		height:   windowRows*defaultTileSize + statusHeight,
	}
}

// Init sets up the window and loads the font. Without a font cells are
// drawn as plain squares.
func (e *EbitenRenderer) Init() {
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(dynamicGet("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	src, err := loadMonoFont()
	if err != nil {
		logger.Log.WithError(err).Warn("font unavailable, drawing tiles without glyphs")
		return
	}
	e.fontSource = src
}

// RenderFrame records the session to draw. Ebiten calls Draw on its own
// schedule.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.game = g
}

// GetViewportSize returns how many cells fit in the map area at the
// current zoom.
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	tile := e.scaledTile()
	return int(float64(e.mapHeight()) / tile), int(float64(e.width) / tile)
}

func (e *EbitenRenderer) scaledTile() float64 {
	zoom := 1.0
	if e.game != nil && e.game.Grid() != nil {
		zoom = e.game.Grid().Camera().Zoom
	}
	return float64(e.tileSize) * zoom
}

func (e *EbitenRenderer) mapHeight() int {
	return max(e.height-statusHeight, e.tileSize)
}

// Run opens the window and blocks until the player quits or the window
// closes.
func (e *EbitenRenderer) Run(g *state.Game, s gameplay.Settings) error {
	e.game = g
	e.settings = s
	e.Init()
	gameplay.FollowPlayer(g)

	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	return e.err
}

// Update handles input and auto-walking (Ebiten interface).
func (e *EbitenRenderer) Update() error {
	g := e.game
	if g == nil || g.Quit {
		return ebiten.Termination
	}
	e.ticks++

	if intent := checkInput(); intent.Action != engineinput.ActionNone {
		logger.Log.WithFields(logrus.Fields{
			"action": engineinput.ActionName(intent.Action),
		}).Trace("key")
		if err := gameplay.ProcessIntent(g, e.settings, intent); err != nil {
			e.err = err
			return ebiten.Termination
		}
	} else if g.Route != nil && e.ticks%ticksPerRouteStep == 0 {
		if _, err := gameplay.StepRoute(g, e.settings); err != nil {
			e.err = err
			return ebiten.Termination
		}
	}

	if g.Quit {
		return ebiten.Termination
	}
	gameplay.FollowPlayer(g)
	return nil
}

// Draw renders the map and status bar (Ebiten interface).
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g := e.game
	if g == nil || g.Grid() == nil || g.Player == nil {
		return
	}
	e.drawMap(screen, g)
	e.drawRoute(screen, g)
	e.drawStatus(screen, g)
	if g.ShowHelp {
		e.drawHelp(screen)
	}
}

// Layout follows the window size (Ebiten interface).
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.width, e.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (e *EbitenRenderer) drawMap(screen *ebiten.Image, g *state.Game) {
	grid := g.Grid()
	cam := grid.Camera()
	viewH := e.mapHeight()
	tile := e.scaledTile()
	layers := grid.VisibleLayers()

	x0, y0, x1, y1 := cam.VisibleBounds(e.tileSize, e.width, viewH)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, grid.Width()), min(y1, grid.Height())

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			v := renderer.Composite(g, layers, x, y)
			if v.Fog == renderer.FogUnknown {
				continue
			}
			sx, sy := cam.WorldToScreen(float64(x), float64(y), e.tileSize, e.width, viewH)
			e.drawCell(screen, v, sx, sy, tile)
		}
	}
}

func (e *EbitenRenderer) drawCell(screen *ebiten.Image, v renderer.CellView, sx, sy, tile float64) {
	if v.Background.A > 0 {
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(tile), float32(tile), v.Background, false)
	}
	if v.Icon == renderer.IconVoid {
		return
	}
	if e.fontSource == nil {
		inset := tile / 4
		vector.DrawFilledRect(screen, float32(sx+inset), float32(sy+inset), float32(tile-2*inset), float32(tile-2*inset), v.Foreground, false)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(sx+tile/2, sy+tile/2)
	op.ColorScale.ScaleWithColor(v.Foreground)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, v.Icon, e.tileFace(tile), op)
}

// drawRoute tints the cells the player has yet to walk.
func (e *EbitenRenderer) drawRoute(screen *ebiten.Image, g *state.Game) {
	if g.Route == nil {
		return
	}
	cam := g.Grid().Camera()
	tile := e.scaledTile()
	steps := g.Route.Steps()
	for _, p := range steps[len(steps)-g.Route.Remaining():] {
		sx, sy := cam.WorldToScreen(float64(p.X), float64(p.Y), e.tileSize, e.width, e.mapHeight())
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(tile), float32(tile), colorRoute, false)
	}
}

func (e *EbitenRenderer) drawStatus(screen *ebiten.Image, g *state.Game) {
	top := float32(e.mapHeight())
	vector.DrawFilledRect(screen, 0, top, float32(e.width), statusHeight, colorStatusBg, false)
	if e.fontSource == nil {
		return
	}

	status := parseMarkup("GT{LEVEL} ACTION{%d}  GT{TURN} ACTION{%d}  ROOM{%s}  GT{FOV} ACTION{%s}  GT{SEEN} ACTION{%d}",
		g.Level, g.Turn, gameplay.RoomName(g), g.Grid().FOVAlgorithm().String(), g.Player.DiscoveredCount())
	e.drawSegments(screen, status, 8, float64(top)+4)

	if n := len(g.Messages); n > 0 {
		e.drawSegments(screen, parseMarkup(g.Messages[n-1]), 8, float64(top)+24)
	}
}

// drawHelp lists the key bindings over the map.
func (e *EbitenRenderer) drawHelp(screen *ebiten.Image) {
	const lineHeight = 18
	lines := menu.HelpLines()
	h := float32(len(lines)*lineHeight + 16)
	vector.DrawFilledRect(screen, 16, 16, float32(e.width-32), h, colorStatusBg, false)
	if e.fontSource == nil {
		return
	}
	for i, l := range lines {
		e.drawSegments(screen, []textSegment{{text: l, color: colorText}}, 24, float64(24+i*lineHeight))
	}
}
