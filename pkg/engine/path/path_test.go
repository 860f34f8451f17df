package path

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"mcrogueface/pkg/engine/geom"
)

// asciiMap is a Walkability built from rows of text; '#' is not walkable.
type asciiMap struct {
	width, height int
	blocked       []bool
}

func parseMap(rows ...string) *asciiMap {
	m := &asciiMap{width: len(rows[0]), height: len(rows)}
	m.blocked = make([]bool, m.width*m.height)
	for y, row := range rows {
		for x, ch := range row {
			m.blocked[y*m.width+x] = ch == '#'
		}
	}
	return m
}

func openMap(width, height int) *asciiMap {
	rows := make([]string, height)
	for y := range rows {
		rows[y] = strings.Repeat(".", width)
	}
	return parseMap(rows...)
}

func (m *asciiMap) Width() int  { return m.width }
func (m *asciiMap) Height() int { return m.height }
func (m *asciiMap) Walkable(x, y int) bool {
	return !m.blocked[y*m.width+x]
}

// splitMap is 10x9 with a solid wall across row 4.
func splitMap() *asciiMap {
	return parseMap(
		"..........",
		"..........",
		"..........",
		"..........",
		"##########",
		"..........",
		"..........",
		"..........",
		"..........",
	)
}

const eps = 1e-9

func TestFindStraightCorridor(t *testing.T) {
	m := openMap(10, 1)
	p := Find(m, geom.Pt(0, 0), geom.Pt(9, 0))
	if p == nil {
		t.Fatal("Find() = nil, want a path")
	}
	if p.Remaining() != 9 || p.Len() != 9 {
		t.Errorf("Remaining() = %d, Len() = %d, want 9, 9", p.Remaining(), p.Len())
	}
	if math.Abs(p.Cost()-9) > eps {
		t.Errorf("Cost() = %v, want 9", p.Cost())
	}
	if p.Origin() != geom.Pt(0, 0) || p.Destination() != geom.Pt(9, 0) {
		t.Errorf("Origin/Destination = %v/%v", p.Origin(), p.Destination())
	}
	steps := p.Steps()
	for i, s := range steps {
		if s != geom.Pt(i+1, 0) {
			t.Errorf("step %d = %v, want %v", i, s, geom.Pt(i+1, 0))
		}
	}
}

// TestFindDisconnectedHalves expects no path across a wall spanning the grid.
func TestFindDisconnectedHalves(t *testing.T) {
	if p := Find(splitMap(), geom.Pt(2, 1), geom.Pt(7, 7)); p != nil {
		t.Errorf("Find() across the wall = %v, want nil", p.Steps())
	}
}

func TestFindRejectsBadEndpoints(t *testing.T) {
	m := parseMap(
		"...",
		".#.",
		"...",
	)
	cases := []struct {
		name       string
		start, end geom.Point
	}{
		{"end blocked", geom.Pt(0, 0), geom.Pt(1, 1)},
		{"end out of bounds", geom.Pt(0, 0), geom.Pt(3, 0)},
		{"start out of bounds", geom.Pt(-1, 0), geom.Pt(2, 2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if p := Find(m, c.start, c.end); p != nil {
				t.Errorf("Find(%v, %v) = %v, want nil", c.start, c.end, p.Steps())
			}
		})
	}
	// A blocked start is allowed: the occupant may path out of it.
	if p := Find(m, geom.Pt(1, 1), geom.Pt(1, 0)); p == nil || p.Remaining() != 1 {
		t.Errorf("Find from a blocked start = %v, want a one step path", p)
	}
}

func TestFindSameCell(t *testing.T) {
	p := Find(openMap(3, 3), geom.Pt(1, 1), geom.Pt(1, 1))
	if p == nil {
		t.Fatal("Find(same cell) = nil, want an empty path")
	}
	if p.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", p.Remaining())
	}
	if _, ok := p.Walk(); ok {
		t.Error("Walk() on an empty path should report exhaustion")
	}
}

// TestWalkConsumesExactlyRemaining walks a path dry and keeps walking.
func TestWalkConsumesExactlyRemaining(t *testing.T) {
	p := Find(openMap(8, 8), geom.Pt(0, 0), geom.Pt(7, 3))
	if p == nil {
		t.Fatal("Find() = nil")
	}
	n := p.Remaining()
	want := p.Steps()
	for i := 0; i < n; i++ {
		peeked, ok := p.Peek()
		if !ok {
			t.Fatalf("Peek() exhausted after %d of %d steps", i, n)
		}
		step, ok := p.Walk()
		if !ok || step != peeked || step != want[i] {
			t.Fatalf("Walk() #%d = %v, %v; want %v (peeked %v)", i, step, ok, want[i], peeked)
		}
		if p.Remaining() != n-i-1 {
			t.Errorf("Remaining() = %d, want %d", p.Remaining(), n-i-1)
		}
	}
	if want[len(want)-1] != p.Destination() {
		t.Errorf("last step = %v, want destination %v", want[len(want)-1], p.Destination())
	}
	for i := 0; i < 3; i++ {
		step, ok := p.Walk()
		if ok || step != (geom.Point{}) {
			t.Errorf("Walk() after exhaustion = %v, %v; want zero, false", step, ok)
		}
		if _, ok := p.Peek(); ok {
			t.Error("Peek() after exhaustion should report false")
		}
	}
}

func TestNilPathIsExhausted(t *testing.T) {
	var p *Path
	if p.Remaining() != 0 || p.Len() != 0 {
		t.Error("nil path should have no steps")
	}
	if _, ok := p.Walk(); ok {
		t.Error("Walk() on nil path should report exhaustion")
	}
}

func TestFindDiagonalAndCardinalCosts(t *testing.T) {
	m := openMap(5, 5)
	p := Find(m, geom.Pt(0, 0), geom.Pt(4, 4))
	if p == nil || p.Remaining() != 4 {
		t.Fatalf("8-way Find() = %v, want 4 diagonal steps", p)
	}
	if math.Abs(p.Cost()-4*math.Sqrt2) > eps {
		t.Errorf("8-way Cost() = %v, want %v", p.Cost(), 4*math.Sqrt2)
	}

	p = Find(m, geom.Pt(0, 0), geom.Pt(4, 4), WithoutDiagonals())
	if p == nil || p.Remaining() != 8 {
		t.Fatalf("4-way Find() = %v, want 8 steps", p)
	}
	if math.Abs(p.Cost()-8) > eps {
		t.Errorf("4-way Cost() = %v, want 8", p.Cost())
	}
	prev := p.Origin()
	for _, s := range p.Steps() {
		if geom.Manhattan(prev, s) != 1 {
			t.Errorf("4-way step %v -> %v is not orthogonal", prev, s)
		}
		prev = s
	}

	p = Find(m, geom.Pt(0, 0), geom.Pt(4, 4), WithDiagonalCost(2))
	if p == nil || math.Abs(p.Cost()-8) > eps {
		t.Errorf("diagonal cost 2: Cost() = %v, want 8", p.Cost())
	}
}

// TestWithOptionsClampsDiagonalCost checks a cheap diagonal set through
// WithOptions is clamped like WithDiagonalCost, keeping the heuristic admissible.
func TestWithOptionsClampsDiagonalCost(t *testing.T) {
	for _, cost := range []float64{0.3, -1, 5} {
		o := buildOptions([]Option{WithOptions(Options{Diagonals: true, DiagonalCost: cost})})
		want := math.Min(2, math.Max(1, cost))
		if o.DiagonalCost != want {
			t.Errorf("WithOptions(DiagonalCost: %v) gave %v, want %v", cost, o.DiagonalCost, want)
		}
	}
	if o := buildOptions([]Option{WithOptions(Options{Diagonals: true})}); o.DiagonalCost != DiagonalCost {
		t.Errorf("zero DiagonalCost gave %v, want the default %v", o.DiagonalCost, DiagonalCost)
	}

	m := openMap(5, 3)
	opt := WithOptions(Options{Diagonals: true, DiagonalCost: 0.3})
	start, end := geom.Pt(0, 1), geom.Pt(4, 1)
	p := Find(m, start, end, opt)
	if p == nil {
		t.Fatal("Find() = nil on an open map")
	}
	if math.Abs(p.Cost()-4) > eps {
		t.Errorf("Cost() = %v, want 4", p.Cost())
	}
	if h := buildOptions([]Option{opt}).Heuristic(start, end); h > p.Cost()+eps {
		t.Errorf("heuristic %v exceeds the path cost %v", h, p.Cost())
	}
	f := NewDistanceField(m, start, opt)
	if d := f.Distance(end.X, end.Y); math.Abs(d-p.Cost()) > eps {
		t.Errorf("distance field gives %v, A* gives %v", d, p.Cost())
	}
}

// TestNoCornerCutting checks a diagonal is refused when either flanking cell is blocked.
func TestNoCornerCutting(t *testing.T) {
	closed := parseMap(
		".#",
		"#.",
	)
	if p := Find(closed, geom.Pt(0, 0), geom.Pt(1, 1)); p != nil {
		t.Errorf("Find through a closed corner = %v, want nil", p.Steps())
	}

	oneSide := parseMap(
		"..",
		"#.",
	)
	p := Find(oneSide, geom.Pt(0, 0), geom.Pt(1, 1))
	if p == nil {
		t.Fatal("Find() = nil, want the way round")
	}
	want := []geom.Point{{X: 1, Y: 0}, {X: 1, Y: 1}}
	got := p.Steps()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Steps() = %v, want %v", got, want)
	}
	if math.Abs(p.Cost()-2) > eps {
		t.Errorf("Cost() = %v, want 2", p.Cost())
	}
}

func TestFindIsDeterministic(t *testing.T) {
	m := openMap(12, 12)
	a := Find(m, geom.Pt(1, 2), geom.Pt(10, 7)).Steps()
	for i := 0; i < 5; i++ {
		b := Find(m, geom.Pt(1, 2), geom.Pt(10, 7)).Steps()
		if len(a) != len(b) {
			t.Fatalf("run %d: %d steps, want %d", i, len(b), len(a))
		}
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("run %d differs at step %d: %v vs %v", i, j, b[j], a[j])
			}
		}
	}
}

// TestFindOptimalAndAdmissible compares A* with the distance field on random maps:
// every found route costs at least the heuristic bound and exactly the Dijkstra distance.
func TestFindOptimalAndAdmissible(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		m := openMap(20, 15)
		for i := range m.blocked {
			m.blocked[i] = rng.Intn(4) == 0
		}
		opts := DefaultOptions()
		for pair := 0; pair < 10; pair++ {
			start := geom.Pt(rng.Intn(20), rng.Intn(15))
			end := geom.Pt(rng.Intn(20), rng.Intn(15))
			m.blocked[start.Y*20+start.X] = false
			m.blocked[end.Y*20+end.X] = false

			p := Find(m, start, end)
			field := NewDistanceField(m, end)
			if p == nil {
				if field.Reachable(start.X, start.Y) {
					t.Errorf("trial %d: Find(%v,%v) = nil but the field reaches start", trial, start, end)
				}
				continue
			}
			if p.Cost()+eps < opts.Heuristic(start, end) {
				t.Errorf("trial %d: Cost() = %v below heuristic %v", trial, p.Cost(), opts.Heuristic(start, end))
			}
			if d := field.Distance(start.X, start.Y); math.Abs(d-p.Cost()) > 1e-6 {
				t.Errorf("trial %d: Cost() = %v, field distance %v", trial, p.Cost(), d)
			}
			prev := start
			for _, s := range p.Steps() {
				if !m.Walkable(s.X, s.Y) || geom.Chebyshev(prev, s) != 1 {
					t.Errorf("trial %d: bad step %v -> %v", trial, prev, s)
				}
				prev = s
			}
		}
	}
}
