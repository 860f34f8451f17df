package path

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"mcrogueface/pkg/engine/geom"
)

// DistanceField holds the shortest distance from every cell to a root.
//
// The field is a snapshot: it does not observe later changes to the grid it
// was computed from.
type DistanceField struct {
	root          geom.Point
	width, height int
	dist          []float64
	opts          Options
	walkable      []bool
}

type fieldNode struct {
	idx  int
	dist float64
	seq  uint64
}

// NewDistanceField runs Dijkstra outward from root over walkable cells.
//
// The root always has distance 0, even if it is not walkable itself; every
// other reached cell is walkable. A root outside the grid yields a field in
// which every cell is Unreachable.
func NewDistanceField(src Walkability, root geom.Point, opts ...Option) *DistanceField {
	o := buildOptions(opts)
	w, h := src.Width(), src.Height()
	f := &DistanceField{
		root:     root,
		width:    w,
		height:   h,
		dist:     make([]float64, w*h),
		opts:     o,
		walkable: make([]bool, w*h),
	}
	for i := range f.dist {
		f.dist[i] = Unreachable
		f.walkable[i] = src.Walkable(i%w, i/w)
	}
	if !root.In(w, h) {
		return f
	}

	walkable := f.canPass
	var seq uint64
	open := heap.New(func(a, b fieldNode) bool {
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return a.seq < b.seq
	})
	ri := root.Y*w + root.X
	f.dist[ri] = 0
	open.Push(fieldNode{idx: ri})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if cur.dist > f.dist[cur.idx] {
			continue // stale entry
		}
		p := geom.Pt(cur.idx%w, cur.idx/w)
		o.neighbors(w, h, p, walkable, walkable, func(q geom.Point, cost float64) {
			qi := q.Y*w + q.X
			nd := cur.dist + cost
			if nd >= f.dist[qi] {
				return
			}
			f.dist[qi] = nd
			seq++
			open.Push(fieldNode{idx: qi, dist: nd, seq: seq})
		})
	}
	return f
}

func (f *DistanceField) canPass(q geom.Point) bool {
	return q.In(f.width, f.height) && f.walkable[q.Y*f.width+q.X]
}

func (f *DistanceField) canEnter(q geom.Point) bool {
	return q == f.root || f.canPass(q)
}

// Root returns the cell distances are measured to.
func (f *DistanceField) Root() geom.Point { return f.root }

// Distance returns the cost of the shortest route from (x, y) to the root,
// or Unreachable. Out of bounds cells are Unreachable.
func (f *DistanceField) Distance(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Unreachable
	}
	return f.dist[y*f.width+x]
}

// Reachable reports whether (x, y) has a route to the root.
func (f *DistanceField) Reachable(x, y int) bool {
	return !math.IsInf(f.Distance(x, y), 1)
}

// StepFrom returns the neighbor of (x, y) one step closer to the root: the
// neighbor with the lowest distance, which must be strictly lower than the
// distance at (x, y). ok is false at the root and for unreachable cells.
func (f *DistanceField) StepFrom(x, y int) (step geom.Point, ok bool) {
	p := geom.Pt(x, y)
	here := f.Distance(x, y)
	if p == f.root || math.IsInf(here, 1) {
		return geom.Point{}, false
	}
	best := here
	f.opts.neighbors(f.width, f.height, p, f.canEnter, f.canPass, func(q geom.Point, _ float64) {
		if d := f.dist[q.Y*f.width+q.X]; d < best {
			best = d
			step = q
			ok = true
		}
	})
	return step, ok
}

// PathFrom descends the field from (x, y) to the root and returns every step,
// excluding (x, y) and including the root. It returns nil for unreachable
// cells and an empty slice at the root.
func (f *DistanceField) PathFrom(x, y int) []geom.Point {
	if !f.Reachable(x, y) {
		return nil
	}
	steps := []geom.Point{}
	cur := geom.Pt(x, y)
	for cur != f.root {
		next, ok := f.StepFrom(cur.X, cur.Y)
		if !ok {
			return nil
		}
		steps = append(steps, next)
		cur = next
	}
	return steps
}

// Farthest returns the reachable cell with the largest distance and that
// distance. Ties go to the first cell in row-major order.
func (f *DistanceField) Farthest() (geom.Point, float64) {
	best, bestIdx := -1.0, -1
	for i, d := range f.dist {
		if !math.IsInf(d, 1) && d > best {
			best, bestIdx = d, i
		}
	}
	if bestIdx < 0 {
		return f.root, Unreachable
	}
	return geom.Pt(bestIdx%f.width, bestIdx/f.width), best
}
