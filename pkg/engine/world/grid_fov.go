package world

import (
	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/logger"
)

// FOVAlgorithm returns the algorithm ComputeFOV uses.
func (g *Grid) FOVAlgorithm() fov.Algorithm {
	return g.fovAlgorithm
}

// SetFOVAlgorithm selects the algorithm for later ComputeFOV calls. Invalid
// values fall back to fov.DefaultAlgorithm.
func (g *Grid) SetFOVAlgorithm(alg fov.Algorithm) {
	if !alg.IsValid() {
		alg = fov.DefaultAlgorithm
	}
	g.fovAlgorithm = alg
}

// FOVRadius returns the default radius.
func (g *Grid) FOVRadius() int {
	return g.fovRadius
}

// SetFOVRadius sets the radius used when ComputeFOV gets a negative radius
// and for entities without their own sight radius.
func (g *Grid) SetFOVRadius(radius int) {
	g.fovRadius = max(radius, 0)
}

// ComputeFOV returns the cells visible from (x, y) within radius, using the
// grid's algorithm. A negative radius means FOVRadius(). The result is kept
// as the grid's last FOV, replacing the previous one.
func (g *Grid) ComputeFOV(x, y, radius int) *fov.Set {
	if radius < 0 {
		radius = g.fovRadius
	}
	s := fov.Compute(g, geom.Pt(x, y), radius, g.fovAlgorithm)
	g.lastFOV = s

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.WithFields(logrus.Fields{
			"origin":    geom.Pt(x, y).String(),
			"radius":    radius,
			"algorithm": g.fovAlgorithm.String(),
			"visible":   s.Count(),
		}).Debug("fov computed")
	}
	return s
}

// LastFOV returns the result of the most recent ComputeFOV, or nil.
func (g *Grid) LastFOV() *fov.Set {
	return g.lastFOV
}

// IsInFOV reports whether (x, y) is in the last computed FOV. It is false
// before any FOV has been computed.
func (g *Grid) IsInFOV(x, y int) bool {
	return g.lastFOV.Contains(x, y)
}
