package path

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"mcrogueface/pkg/engine/geom"
)

// Path is a route produced by Find. Steps exclude the origin and include the
// destination; Walk consumes them in order.
type Path struct {
	origin      geom.Point
	destination geom.Point
	steps       []geom.Point
	cursor      int
	cost        float64
}

// Origin returns the cell the search started from.
func (p *Path) Origin() geom.Point { return p.origin }

// Destination returns the cell the path leads to.
func (p *Path) Destination() geom.Point { return p.destination }

// Cost returns the total step cost of the whole route.
func (p *Path) Cost() float64 { return p.cost }

// Len returns the total number of steps, consumed or not.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Remaining returns the number of steps not yet walked.
func (p *Path) Remaining() int {
	if p == nil {
		return 0
	}
	return len(p.steps) - p.cursor
}

// Peek returns the next step without consuming it. ok is false once the
// path is exhausted.
func (p *Path) Peek() (step geom.Point, ok bool) {
	if p.Remaining() == 0 {
		return geom.Point{}, false
	}
	return p.steps[p.cursor], true
}

// Walk returns the next step and advances past it. Once the path is
// exhausted every call returns ok == false.
func (p *Path) Walk() (step geom.Point, ok bool) {
	step, ok = p.Peek()
	if ok {
		p.cursor++
	}
	return step, ok
}

// Steps returns a copy of every step, including consumed ones.
func (p *Path) Steps() []geom.Point {
	if p == nil {
		return nil
	}
	return append([]geom.Point(nil), p.steps...)
}

type openNode struct {
	idx int
	f   float64
	seq uint64
}

// Find runs A* from start to end over walkable cells.
//
// It returns nil when either point is outside the grid, end is not walkable,
// or no route exists. start itself need not be walkable. When start == end
// the path is empty. Nodes with equal priority leave the open set in the
// order they entered it, so identical input always yields the same route.
func Find(src Walkability, start, end geom.Point, opts ...Option) *Path {
	o := buildOptions(opts)
	w, h := src.Width(), src.Height()
	walkable := walkableIn(src)
	if !start.In(w, h) || !walkable(end) {
		return nil
	}
	if start == end {
		return &Path{origin: start, destination: end}
	}

	n := w * h
	g := make([]float64, n)
	came := make([]int, n)
	closed := make([]bool, n)
	for i := range g {
		g[i] = math.Inf(1)
		came[i] = -1
	}

	var seq uint64
	open := heap.New(func(a, b openNode) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.seq < b.seq
	})

	si := start.Y*w + start.X
	ei := end.Y*w + end.X
	g[si] = 0
	open.Push(openNode{idx: si, f: o.Heuristic(start, end), seq: seq})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.idx] {
			continue
		}
		if cur.idx == ei {
			return buildPath(start, end, came, g[ei], w)
		}
		closed[cur.idx] = true

		p := geom.Pt(cur.idx%w, cur.idx/w)
		o.neighbors(w, h, p, walkable, walkable, func(q geom.Point, cost float64) {
			qi := q.Y*w + q.X
			if closed[qi] {
				return
			}
			ng := g[cur.idx] + cost
			if ng >= g[qi] {
				return
			}
			g[qi] = ng
			came[qi] = cur.idx
			seq++
			open.Push(openNode{idx: qi, f: ng + o.Heuristic(q, end), seq: seq})
		})
	}
	return nil
}

func buildPath(start, end geom.Point, came []int, cost float64, w int) *Path {
	var rev []geom.Point
	si := start.Y*w + start.X
	for i := end.Y*w + end.X; i != si; i = came[i] {
		rev = append(rev, geom.Pt(i%w, i/w))
	}
	steps := make([]geom.Point, len(rev))
	for i, p := range rev {
		steps[len(rev)-1-i] = p
	}
	return &Path{origin: start, destination: end, steps: steps, cost: cost}
}
