// Package gameplay runs an exploration session: level setup, player
// movement, visibility updates and auto-walking to the exit.
package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/generator"
	"mcrogueface/pkg/game/state"
)

// Settings configure how levels are built.
type Settings struct {
	Generator    generator.GridGenerator
	Width        int
	Height       int
	FOVAlgorithm fov.Algorithm
	SightRadius  int
}

// DefaultSettings returns a 60x30 BSP map with shadowcasting at radius 8.
func DefaultSettings() Settings {
	return Settings{
		Generator:    generator.DefaultGenerator,
		Width:        60,
		Height:       30,
		FOVAlgorithm: fov.DefaultAlgorithm,
		SightRadius:  world.DefaultFOVRadius,
	}
}

// levelSeed derives a per-level seed so levels differ but resets repeat.
func levelSeed(seed int64, level int) int64 {
	return seed*7919 + int64(level)
}

// BuildGame creates a session and sets up its first level.
func BuildGame(seed int64, s Settings) (*state.Game, error) {
	g := state.NewGame(seed)
	if err := SetupLevel(g, s); err != nil {
		return nil, err
	}
	g.ClearMessages()
	logMessage(g, "WELCOME")
	ShowLevelObjectives(g)
	return g, nil
}

// SetupLevel generates the map for g.Level and places the player on the
// start cell. A level replacing another keeps the FOV algorithm the player
// last picked; the first level uses s.FOVAlgorithm.
func SetupLevel(g *state.Game, s Settings) error {
	if s.Generator == nil {
		s.Generator = generator.DefaultGenerator
	}
	alg := s.FOVAlgorithm
	if grid := g.Grid(); grid != nil {
		alg = grid.FOVAlgorithm()
	}
	rng := rand.New(rand.NewSource(levelSeed(g.Seed, g.Level)))
	m, err := s.Generator.Generate(s.Width, s.Height, rng,
		world.WithFOVAlgorithm(alg),
		world.WithFOVRadius(s.SightRadius),
	)
	if err != nil {
		return fmt.Errorf("level %d: %w", g.Level, err)
	}

	g.Map = m
	g.Route = nil
	g.Player = m.Grid.AddEntity(m.Start.X, m.Start.Y)
	g.Player.UpdateVisibility()

	logger.Log.WithFields(logrus.Fields{
		"level":     g.Level,
		"generator": s.Generator.Name(),
		"size":      fmt.Sprintf("%dx%d", s.Width, s.Height),
		"rooms":     len(m.Rooms),
		"fov":       m.Grid.FOVAlgorithm().String(),
	}).Info("level ready")
	return nil
}

// ResetLevel rebuilds the current level from its seed. The player forgets
// everything they had seen.
func ResetLevel(g *state.Game, s Settings) error {
	if err := SetupLevel(g, s); err != nil {
		return err
	}
	g.ClearMessages()
	logMessage(g, "LEVEL_RESET")
	ShowLevelObjectives(g)
	return nil
}

// AdvanceLevel generates the next level.
func AdvanceLevel(g *state.Game, s Settings) error {
	g.AdvanceLevel()
	if err := SetupLevel(g, s); err != nil {
		return err
	}
	g.ClearMessages()
	logMessage(g, "LEVEL_ENTERED", g.Level)
	ShowLevelObjectives(g)
	return nil
}

// ShowLevelObjectives tells the player where to go.
func ShowLevelObjectives(g *state.Game) {
	f := g.Grid().GetDijkstraMap(g.Map.Start.X, g.Map.Start.Y)
	steps := len(f.PathFrom(g.Map.Exit.X, g.Map.Exit.Y))
	logMessage(g, "OBJECTIVE_EXIT", steps)
}

// dynamicGet looks up message keys chosen at runtime.
var dynamicGet = gotext.Get

// logMessage translates key and appends it to the message log.
func logMessage(g *state.Game, key string, a ...any) {
	g.AddMessage(dynamicGet(key, a...))
}
