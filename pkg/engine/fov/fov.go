// Package fov computes fields of view over a rectangular grid of cells.
//
// Compute is a pure function of the transparency data, the origin, the radius
// and the algorithm: it never retains the source and returns a fresh Set.
// Every algorithm bounds the result with the same metric, a cell at offset
// (dx, dy) from the origin being in range when dx²+dy² <= r²+r (Euclidean
// distance below r+½). The origin is always part of the result.
package fov

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mcrogueface/pkg/engine/geom"
)

// Transparency is the read side of a grid that FOV needs.
// Out of bounds coordinates are never passed to Transparent.
type Transparency interface {
	Width() int
	Height() int
	Transparent(x, y int) bool
}

// Algorithm selects how visibility propagates from the origin.
type Algorithm int

const (
	// Basic traces a Bresenham line from the origin to every cell in range.
	// Fast and simple; the lines are not symmetric so small gaps can appear
	// next to obstruction corners.
	Basic Algorithm = iota
	// Diamond grows a diamond shaped wavefront, each cell inheriting the
	// obscurity of the two cells behind it. Results are symmetric.
	Diamond
	// Shadow is recursive shadowcasting per octant. It is the default.
	Shadow
	// Permissive0 through Permissive8 are shadowcasting where each exposed
	// blocker corner is cut back by a square n/16 of a cell wide, so more
	// light leaks around single corners as n grows. Walls stay solid and
	// every level sees a superset of the level below it. Permissive0 casts
	// the same shadows as Shadow.
	Permissive0
	Permissive1
	Permissive2
	Permissive3
	Permissive4
	Permissive5
	Permissive6
	Permissive7
	Permissive8
)

// DefaultAlgorithm is used when none is configured.
const DefaultAlgorithm = Shadow

// MaxPermissiveness is the highest permissive level.
const MaxPermissiveness = 8

// ErrUnknownAlgorithm is returned by ParseAlgorithm.
var ErrUnknownAlgorithm = errors.New("unknown fov algorithm")

// Permissive returns the permissive variant of the given level, clamped to 0..8.
func Permissive(level int) Algorithm {
	if level < 0 {
		level = 0
	}
	if level > MaxPermissiveness {
		level = MaxPermissiveness
	}
	return Permissive0 + Algorithm(level)
}

// Permissiveness returns the level of a permissive variant.
func (a Algorithm) Permissiveness() (int, bool) {
	if a < Permissive0 || a > Permissive8 {
		return 0, false
	}
	return int(a - Permissive0), true
}

// IsValid reports whether a is one of the defined algorithms.
func (a Algorithm) IsValid() bool {
	return a >= Basic && a <= Permissive8
}

func (a Algorithm) String() string {
	switch a {
	case Basic:
		return "basic"
	case Diamond:
		return "diamond"
	case Shadow:
		return "shadow"
	}
	if n, ok := a.Permissiveness(); ok {
		return "permissive" + strconv.Itoa(n)
	}
	return "Algorithm(" + strconv.Itoa(int(a)) + ")"
}

// ParseAlgorithm accepts the names produced by String, plus "permissive-N"
// and "permissive_N".
func ParseAlgorithm(name string) (Algorithm, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case "basic":
		return Basic, nil
	case "diamond":
		return Diamond, nil
	case "shadow", "":
		return Shadow, nil
	}
	if rest, ok := strings.CutPrefix(s, "permissive"); ok {
		rest = strings.TrimLeft(rest, "-_")
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 0 && n <= MaxPermissiveness {
			return Permissive(n), nil
		}
	}
	return Shadow, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// InRange reports whether offset (dx, dy) is within radius.
func InRange(dx, dy, radius int) bool {
	return dx*dx+dy*dy <= radius*radius+radius
}

// Compute returns the cells visible from origin within radius.
//
// An origin outside the grid yields an empty set. A radius <= 0 yields just
// the origin. Opaque cells are themselves visible when light reaches them;
// they only hide what lies behind them.
func Compute(src Transparency, origin geom.Point, radius int, alg Algorithm) *Set {
	if radius < 0 {
		radius = 0
	}
	s := newSet(src.Width(), src.Height(), origin, radius)
	if !origin.In(s.width, s.height) {
		return s
	}
	s.mark(origin.X, origin.Y)
	if radius == 0 {
		return s
	}

	switch alg {
	case Basic:
		computeBasic(src, s)
	case Diamond:
		computeDiamond(src, s)
	default:
		n, ok := alg.Permissiveness()
		if !ok {
			n = 0
		}
		computeShadow(src, s, float64(n)/16)
	}
	return s
}
