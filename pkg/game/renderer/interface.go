package renderer

import (
	"mcrogueface/pkg/game/state"
)

// Renderer defines the interface for rendering backends.
type Renderer interface {
	// Init prepares colors, fonts or windows.
	Init()

	// RenderFrame draws the map, status line and messages.
	RenderFrame(g *state.Game)

	// GetViewportSize returns how many cells fit on screen (rows, cols).
	GetViewportSize() (rows, cols int)
}
