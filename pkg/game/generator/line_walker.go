package generator

import (
	"fmt"
	"math/rand"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/world"
)

// LineWalkerGenerator generates cave-like maps by walking lines in random
// directions from the center, branching as it goes.
type LineWalkerGenerator struct{}

// Name returns the name of this generator
func (g *LineWalkerGenerator) Name() string {
	return "Line Walker"
}

const (
	walkerBranchProb = 0.35
	walkerMinSize    = 5
)

// lineWalk carries the state shared by every branch of one generation.
type lineWalk struct {
	m       *Map
	rng     *rand.Rand
	minDist int
	maxDist int
}

// Generate walks corridors outward from the center in all four cardinal
// directions. There are no rooms; the exit is the farthest reachable cell.
func (g *LineWalkerGenerator) Generate(width, height int, rng *rand.Rand, opts ...world.Option) (*Map, error) {
	if width < walkerMinSize || height < walkerMinSize {
		return nil, fmt.Errorf("line walker %dx%d: %w", width, height, ErrTooSmall)
	}
	m, err := newMap(width, height, opts)
	if err != nil {
		return nil, err
	}

	// corridor length scales with the smaller side
	side := min(width, height)
	w := &lineWalk{
		m:       m,
		rng:     rng,
		minDist: max(2, side/8),
		maxDist: max(4, side/3),
	}

	cx, cy := m.Grid.CenterPosition()
	m.Start = geom.Pt(cx, cy)
	for _, dir := range geom.Cardinals() {
		w.line(m.Start, dir, walkerBranchProb)
	}
	for i := 0; i < side/6; i++ {
		p := m.Start.Add(geom.Pt(rng.Intn(5)-2, rng.Intn(5)-2))
		// only branch off floor that is already connected
		if w.playable(p) && m.Grid.Walkable(p.X, p.Y) {
			w.line(p, w.randomDirection(), walkerBranchProb)
		}
	}

	m.placeExit()
	return m, nil
}

// playable excludes the perimeter.
func (w *lineWalk) playable(p geom.Point) bool {
	return p.X > 0 && p.Y > 0 && p.X < w.m.Grid.Width()-1 && p.Y < w.m.Grid.Height()-1
}

func (w *lineWalk) randomDirection() geom.Direction {
	return geom.Cardinals()[w.rng.Intn(4)]
}

// line carves a corridor from p in dir, stopping at the perimeter, and
// returns where it ended. Each step may spawn a branch with less chance of
// branching again.
func (w *lineWalk) line(p geom.Point, dir geom.Direction, branchProb float64) geom.Point {
	distance := w.minDist + w.rng.Intn(w.maxDist-w.minDist+1)

	for segment := 0; segment < distance; segment++ {
		if w.playable(p) {
			w.m.carveCorridor(p.X, p.Y)
		}
		next := p.Step(dir)
		if !w.playable(next) {
			return p
		}
		if w.rng.Float64() < branchProb {
			w.line(p, w.randomDirection(), branchProb-0.1)
		}
		p = next
	}

	if w.playable(p) {
		w.m.carveCorridor(p.X, p.Y)
	}
	return p
}
