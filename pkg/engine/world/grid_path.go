package world

import (
	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/engine/path"
)

// FindPath runs A* from (x0, y0) to (x1, y1) over walkable cells. It returns
// nil when there is no route or an endpoint is off the grid or the
// destination is blocked.
func (g *Grid) FindPath(x0, y0, x1, y1 int) *path.Path {
	return path.Find(g, geom.Pt(x0, y0), geom.Pt(x1, y1), g.pathOpts...)
}

// GetDijkstraMap returns the distance field rooted at (x, y), computing and
// caching it on first use. It returns nil when the root is off the grid.
//
// Cached fields are never invalidated automatically. After changing any
// walkable flag, call ClearDijkstraMaps or the cached fields keep
// describing the old layout.
func (g *Grid) GetDijkstraMap(x, y int) *path.DistanceField {
	if !g.InBounds(x, y) {
		return nil
	}
	root := geom.Pt(x, y)
	if f, ok := g.dijkstra[root]; ok {
		logger.Log.WithField("root", root.String()).Trace("distance field cache hit")
		return f
	}
	f := path.NewDistanceField(g, root, g.pathOpts...)
	g.dijkstra[root] = f

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		far, d := f.Farthest()
		logger.Log.WithFields(logrus.Fields{
			"root":     root.String(),
			"farthest": far.String(),
			"distance": d,
			"cached":   len(g.dijkstra),
		}).Debug("distance field computed")
	}
	return f
}

// ClearDijkstraMaps drops every cached distance field.
func (g *Grid) ClearDijkstraMaps() {
	if n := len(g.dijkstra); n > 0 {
		logger.Log.WithField("dropped", n).Debug("distance field cache cleared")
	}
	clear(g.dijkstra)
}

// DijkstraMapCount returns how many distance fields are cached.
func (g *Grid) DijkstraMapCount() int {
	return len(g.dijkstra)
}
