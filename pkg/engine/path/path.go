// Package path finds routes over the walkable cells of a grid.
//
// Two models share one adjacency rule. Find runs A* between two cells and
// returns a Path that is consumed step by step. NewDistanceField runs
// Dijkstra from a root over the whole grid and answers distance and descent
// queries for any cell afterwards.
//
// Movement is 8-directional by default with orthogonal steps costing 1 and
// diagonal steps costing DiagonalCost. A diagonal step is only allowed when
// both orthogonal cells it passes between are walkable, so routes never cut
// the corner of a wall.
package path

import (
	"math"

	"mcrogueface/pkg/engine/geom"
)

// Walkability is the read side of a grid that path finding needs.
type Walkability interface {
	Width() int
	Height() int
	Walkable(x, y int) bool
}

// DiagonalCost is the default cost of a diagonal step.
const DiagonalCost = math.Sqrt2

// Unreachable is the distance reported for cells with no route to the root.
var Unreachable = math.Inf(1)

// Options control adjacency and step costs.
type Options struct {
	Diagonals    bool
	DiagonalCost float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns 8-way movement with DiagonalCost.
func DefaultOptions() Options {
	return Options{Diagonals: true, DiagonalCost: DiagonalCost}
}

// WithDiagonalCost sets the diagonal step cost, clamped to [1, 2] so the
// octile heuristic stays admissible.
func WithDiagonalCost(cost float64) Option {
	return func(o *Options) {
		o.DiagonalCost = clampDiagonalCost(cost)
	}
}

func clampDiagonalCost(cost float64) float64 {
	return math.Min(2, math.Max(1, cost))
}

// WithoutDiagonals restricts movement to the four cardinal directions.
func WithoutDiagonals() Option {
	return func(o *Options) {
		o.Diagonals = false
	}
}

// WithOptions replaces all options at once. A zero DiagonalCost means the
// default; any other value is clamped as by WithDiagonalCost.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
		if o.DiagonalCost == 0 {
			o.DiagonalCost = DiagonalCost
		}
		o.DiagonalCost = clampDiagonalCost(o.DiagonalCost)
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Heuristic is the octile distance between a and b under o (Manhattan when
// diagonals are off). It never exceeds the true cost on an open grid.
func (o Options) Heuristic(a, b geom.Point) float64 {
	dx, dy := geom.Abs(a.X-b.X), geom.Abs(a.Y-b.Y)
	if !o.Diagonals {
		return float64(dx + dy)
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo) + float64(lo)*o.DiagonalCost
}

func (o Options) directions() []geom.Direction {
	if o.Diagonals {
		return geom.AllDirections()
	}
	return geom.Cardinals()
}

// neighbors calls fn for each cell reachable in one step from p. The
// destination must satisfy enter; the two cells a diagonal squeezes between
// must satisfy pass. Directions are visited in a fixed order.
func (o Options) neighbors(w, h int, p geom.Point, enter, pass func(q geom.Point) bool, fn func(q geom.Point, cost float64)) {
	for _, d := range o.directions() {
		q := p.Step(d)
		if !q.In(w, h) || !enter(q) {
			continue
		}
		if !d.IsDiagonal() {
			fn(q, 1)
			continue
		}
		a, b := d.Flanks()
		fa, fb := p.Step(a), p.Step(b)
		if !pass(fa) || !pass(fb) {
			continue
		}
		fn(q, o.DiagonalCost)
	}
}

// walkableIn wraps src so callers can test points without separate bounds checks.
func walkableIn(src Walkability) func(q geom.Point) bool {
	w, h := src.Width(), src.Height()
	return func(q geom.Point) bool {
		return q.In(w, h) && src.Walkable(q.X, q.Y)
	}
}
