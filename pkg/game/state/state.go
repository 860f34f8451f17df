// Package state holds the state of an exploration session.
package state

import (
	"mcrogueface/pkg/engine/path"
	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/generator"
)

// Game represents one exploration session
type Game struct {
	Map    *generator.Map
	Player *world.Entity

	// Route is the A* path the player is following, or nil.
	Route *path.Path

	Messages []string

	Level int // Current level, starting at 1
	Turn  int
	Seed  int64

	// ShowHelp makes renderers list the key bindings.
	ShowHelp bool

	// Quit is set when the player asks to leave.
	Quit bool
}

// NewGame creates a new session on level 1.
func NewGame(seed int64) *Game {
	return &Game{
		Messages: make([]string, 0),
		Level:    1,
		Seed:     seed,
	}
}

// Grid returns the current level's grid, or nil before the first level.
func (g *Game) Grid() *world.Grid {
	if g.Map == nil {
		return nil
	}
	return g.Map.Grid
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// AtExit reports whether the player stands on the exit.
func (g *Game) AtExit() bool {
	return g.Map != nil && g.Player != nil && g.Player.Position() == g.Map.Exit
}

// AdvanceLevel increments the level counter and resets level-specific state
func (g *Game) AdvanceLevel() {
	g.Level++
	g.Route = nil
	g.Map = nil
	g.Player = nil
}
