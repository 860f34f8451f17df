package gameplay

import (
	"github.com/sirupsen/logrus"

	engineinput "mcrogueface/pkg/engine/input"
	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/game/state"
)

// ProcessIntent applies one player intent to the session. Errors only come
// from generating a new level.
func ProcessIntent(g *state.Game, s Settings, intent engineinput.Intent) error {
	if d, ok := intent.Action.Direction(); ok {
		g.Route = nil
		return MovePlayer(g, s, d)
	}

	switch intent.Action {
	case engineinput.ActionNone:
		return nil

	case engineinput.ActionWait:
		g.Turn++
		g.Player.UpdateVisibility()

	case engineinput.ActionGotoExit:
		PlanRouteToExit(g)

	case engineinput.ActionCycleFOV:
		grid := g.Grid()
		next := nextAlgorithm(grid.FOVAlgorithm())
		grid.SetFOVAlgorithm(next)
		g.Player.UpdateVisibility()
		logMessage(g, "FOV_ALGORITHM", next.String())

	case engineinput.ActionForget:
		g.Player.ResetVisibility()
		g.Player.UpdateVisibility()
		logMessage(g, "MAP_FORGOTTEN")

	case engineinput.ActionToggleLayer:
		if l := g.Map.Decor(); l != nil {
			l.SetVisible(!l.Visible())
		}

	case engineinput.ActionZoomIn, engineinput.ActionZoomOut:
		zoomCamera(g, intent.Action == engineinput.ActionZoomIn)

	case engineinput.ActionHelp:
		g.ShowHelp = !g.ShowHelp

	case engineinput.ActionQuit:
		g.Quit = true
	}
	return nil
}

// MovePlayer steps the player one cell and refreshes what they can see.
// Reaching the exit generates the next level.
func MovePlayer(g *state.Game, s Settings, d geom.Direction) error {
	if !g.Player.Move(d) {
		logMessage(g, "BLOCKED", d.String())
		return nil
	}
	g.Turn++
	g.Player.UpdateVisibility()

	logger.Log.WithFields(logrus.Fields{
		"turn": g.Turn,
		"pos":  g.Player.Position().String(),
	}).Trace("player moved")

	if g.AtExit() {
		return AdvanceLevel(g, s)
	}
	return nil
}

// PlanRouteToExit computes an A* route from the player to the exit and
// stores it on the session for StepRoute to follow.
func PlanRouteToExit(g *state.Game) {
	pos := g.Player.Position()
	g.Route = g.Grid().FindPath(pos.X, pos.Y, g.Map.Exit.X, g.Map.Exit.Y)
	if g.Route == nil {
		logMessage(g, "NO_ROUTE")
		return
	}
	logMessage(g, "ROUTE_PLANNED", g.Route.Len())
}

// StepRoute advances the player one step along the planned route. It
// returns false when there is nothing left to follow. A route that runs
// into a cell the player cannot enter is dropped.
func StepRoute(g *state.Game, s Settings) (bool, error) {
	if g.Route == nil {
		return false, nil
	}
	next, ok := g.Route.Peek()
	if !ok {
		g.Route = nil
		return false, nil
	}
	d, ok := directionTo(g.Player.Position(), next)
	if !ok || !g.Player.Move(d) {
		g.Route = nil
		logMessage(g, "ROUTE_BLOCKED")
		return false, nil
	}
	g.Route.Walk()
	g.Turn++
	g.Player.UpdateVisibility()

	if g.AtExit() {
		g.Route = nil
		return true, AdvanceLevel(g, s)
	}
	return true, nil
}

// directionTo returns the direction of an adjacent cell.
func directionTo(from, to geom.Point) (geom.Direction, bool) {
	delta := to.Sub(from)
	for _, d := range geom.AllDirections() {
		dx, dy := d.Delta()
		if dx == delta.X && dy == delta.Y {
			return d, true
		}
	}
	return 0, false
}

// nextAlgorithm cycles basic, diamond, shadow, permissive0..8.
func nextAlgorithm(a fov.Algorithm) fov.Algorithm {
	if a >= fov.Permissive8 || !a.IsValid() {
		return fov.Basic
	}
	return a + 1
}

const (
	minZoom  = 0.5
	maxZoom  = 4
	zoomStep = 1.25
)

func zoomCamera(g *state.Game, in bool) {
	grid := g.Grid()
	z := grid.Camera().Zoom
	if in {
		z = min(z*zoomStep, maxZoom)
	} else {
		z = max(z/zoomStep, minZoom)
	}
	if err := grid.SetCameraZoom(z); err != nil {
		logger.Log.WithError(err).Warn("zoom rejected")
	}
}

// FollowPlayer centers the camera on the player.
func FollowPlayer(g *state.Game) {
	p := g.Player.Position()
	g.Grid().SetCameraCenter(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// RoomName returns the name of the room the player is in, or the
// corridor label.
func RoomName(g *state.Game) string {
	if r, ok := g.Map.RoomAt(g.Player.Position()); ok {
		return r.Name
	}
	return dynamicGet("CORRIDOR")
}
