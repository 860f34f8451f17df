package fov

import (
	"math/rand"
	"strings"
	"testing"

	"mcrogueface/pkg/engine/geom"
)

// asciiMap is a Transparency built from rows of text; '#' is opaque.
type asciiMap struct {
	width, height int
	opaque        []bool
}

func parseMap(rows ...string) *asciiMap {
	m := &asciiMap{width: len(rows[0]), height: len(rows)}
	m.opaque = make([]bool, m.width*m.height)
	for y, row := range rows {
		for x, ch := range row {
			m.opaque[y*m.width+x] = ch == '#'
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

// randomMap returns a map with roughly one cell in five opaque.
func randomMap(seed int64, width, height int) *asciiMap {
	rng := rand.New(rand.NewSource(seed))
	m := openMap(width, height)
	for i := range m.opaque {
		m.opaque[i] = rng.Intn(5) == 0
	}
	return m
}

func (m *asciiMap) Width() int  { return m.width }
func (m *asciiMap) Height() int { return m.height }
func (m *asciiMap) Transparent(x, y int) bool {
	return !m.opaque[y*m.width+x]
}

func allAlgorithms() []Algorithm {
	algs := []Algorithm{Basic, Diamond, Shadow}
	for n := 0; n <= MaxPermissiveness; n++ {
		algs = append(algs, Permissive(n))
	}
	return algs
}

// TestOriginAlwaysVisible verifies the origin is in every result, even when it is opaque.
func TestOriginAlwaysVisible(t *testing.T) {
	m := parseMap(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	for _, alg := range allAlgorithms() {
		for _, radius := range []int{0, 1, 4} {
			s := Compute(m, geom.Pt(2, 2), radius, alg)
			if !s.Contains(2, 2) {
				t.Errorf("Compute(%v, r=%d).Contains(origin) = false, want true", alg, radius)
			}
		}
	}
}

func TestOriginOutOfBoundsIsEmpty(t *testing.T) {
	s := Compute(openMap(5, 5), geom.Pt(-1, 2), 3, Shadow)
	if s.Count() != 0 {
		t.Errorf("Compute(origin out of bounds).Count() = %d, want 0", s.Count())
	}
}

// TestOpenGridRadiusTwo covers the 5x5 open grid seen from its centre with radius 2:
// every cell with dx²+dy² <= 6 is visible, i.e. all 25 cells except the four corners.
func TestOpenGridRadiusTwo(t *testing.T) {
	m := openMap(5, 5)
	corners := map[geom.Point]bool{
		geom.Pt(0, 0): true, geom.Pt(4, 0): true, geom.Pt(0, 4): true, geom.Pt(4, 4): true,
	}
	for _, alg := range allAlgorithms() {
		s := Compute(m, geom.Pt(2, 2), 2, alg)
		if s.Count() != 21 {
			t.Errorf("Compute(%v).Count() = %d, want 21", alg, s.Count())
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				want := !corners[geom.Pt(x, y)]
				if got := s.Contains(x, y); got != want {
					t.Errorf("Compute(%v).Contains(%d,%d) = %v, want %v", alg, x, y, got, want)
				}
			}
		}
	}
}

// TestBlockerHidesCellBehind places one opaque cell between two open cells on a row.
func TestBlockerHidesCellBehind(t *testing.T) {
	m := parseMap(
		".......",
		"..#....",
		".......",
	)
	s := Compute(m, geom.Pt(1, 1), 5, Shadow)
	if s.Contains(3, 1) {
		t.Error("cell (3,1) directly behind the blocker should not be visible")
	}
	if !s.Contains(2, 1) {
		t.Error("the blocker itself should be visible")
	}
	for _, p := range []geom.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 3, Y: 0}, {X: 3, Y: 2}, {X: 0, Y: 0}} {
		if !s.Contains(p.X, p.Y) {
			t.Errorf("unrelated open cell %v should be visible", p)
		}
	}
}

// TestAxisBlockerHidesCellsBehind checks the cells straight behind a single
// blocker on an axis are hidden by every algorithm, permissive ones included.
func TestAxisBlockerHidesCellsBehind(t *testing.T) {
	m := openMap(11, 11)
	m.opaque[3*11+5] = true // (5,3)
	for _, alg := range allAlgorithms() {
		s := Compute(m, geom.Pt(5, 5), 5, alg)
		if !s.Contains(5, 4) || !s.Contains(5, 3) {
			t.Errorf("%v: near side and blocker should be visible", alg)
		}
		for _, y := range []int{2, 1, 0} {
			if s.Contains(5, y) {
				t.Errorf("%v: (5,%d) behind the blocker should be hidden", alg, y)
			}
		}
	}
}

// TestContinuousWallHidesEverythingBehind puts a full width wall between the
// origin and the top rows.
func TestContinuousWallHidesEverythingBehind(t *testing.T) {
	m := parseMap(
		"...........",
		"...........",
		"...........",
		"###########",
		"...........",
		"...........",
		"...........",
	)
	for _, alg := range allAlgorithms() {
		s := Compute(m, geom.Pt(5, 5), 6, alg)
		s.Each(func(p geom.Point) {
			if p.Y < 3 {
				t.Errorf("%v: %v is behind the wall", alg, p)
			}
		})
		if !s.Contains(5, 3) {
			t.Errorf("%v: the wall itself should be visible", alg)
		}
	}
}

// TestPermissiveLevelsNest verifies each permissive level sees everything the
// level below it sees.
func TestPermissiveLevelsNest(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		m := randomMap(seed, 31, 31)
		origin := geom.Pt(15, 15)
		m.opaque[origin.Y*31+origin.X] = false
		prev := Compute(m, origin, 12, Shadow)
		for n := 0; n <= MaxPermissiveness; n++ {
			cur := Compute(m, origin, 12, Permissive(n))
			if !prev.SubsetOf(cur) {
				t.Errorf("seed %d: %v hides cells the level below sees", seed, Permissive(n))
			}
			prev = cur
		}
	}
}

// TestVisibilityMonotonicInRadius verifies growing the radius never hides a cell.
func TestVisibilityMonotonicInRadius(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		m := randomMap(seed, 25, 25)
		origin := geom.Pt(12, 12)
		m.opaque[origin.Y*25+origin.X] = false
		for _, alg := range allAlgorithms() {
			prev := Compute(m, origin, 0, alg)
			for r := 1; r <= 10; r++ {
				cur := Compute(m, origin, r, alg)
				if !prev.SubsetOf(cur) {
					t.Errorf("seed %d %v: radius %d result is not a subset of radius %d", seed, alg, r-1, r)
				}
				prev = cur
			}
		}
	}
}

func TestRadiusBoundsResult(t *testing.T) {
	m := openMap(21, 21)
	for _, alg := range allAlgorithms() {
		s := Compute(m, geom.Pt(10, 10), 4, alg)
		s.Each(func(p geom.Point) {
			if !InRange(p.X-10, p.Y-10, 4) {
				t.Errorf("%v: %v is outside radius 4", alg, p)
			}
		})
		if !s.Contains(14, 10) || !s.Contains(13, 13) {
			t.Errorf("%v: (14,10) and (13,13) are in range on an open map", alg)
		}
		if s.Contains(14, 13) {
			t.Errorf("%v: (14,13) is out of range", alg)
		}
	}
}

// TestMirrorSymmetry mirrors a symmetric layout left to right and expects the same mirror in the result.
func TestMirrorSymmetry(t *testing.T) {
	m := parseMap(
		"...........",
		"...........",
		"..#.....#..",
		"...........",
		"....#.#....",
		"...........",
		"...........",
		"...#...#...",
		"...........",
		"...........",
		"...........",
	)
	for _, alg := range []Algorithm{Diamond, Shadow, Permissive4} {
		s := Compute(m, geom.Pt(5, 5), 5, alg)
		for y := 0; y < 11; y++ {
			for x := 0; x < 11; x++ {
				if s.Contains(x, y) != s.Contains(10-x, y) {
					t.Errorf("%v: (%d,%d) and (%d,%d) differ", alg, x, y, 10-x, y)
				}
			}
		}
	}
}

// TestPermissiveLeaksAroundCorner shows a diagonal blocker hiding (2,3) from shadowcasting
// while the most permissive level sees past its corner.
func TestPermissiveLeaksAroundCorner(t *testing.T) {
	m := openMap(6, 6)
	m.opaque[1*6+1] = true // (1,1)
	origin := geom.Pt(0, 0)

	strict := Compute(m, origin, 5, Shadow)
	if strict.Contains(2, 3) || strict.Contains(3, 2) {
		t.Error("shadow: (2,3) and (3,2) should be hidden behind (1,1)")
	}
	loose := Compute(m, origin, 5, Permissive8)
	if !loose.Contains(2, 3) || !loose.Contains(3, 2) {
		t.Error("permissive8: (2,3) and (3,2) should leak past the corner of (1,1)")
	}
	if !strict.SubsetOf(loose) {
		t.Error("permissive8 should see everything shadow sees here")
	}
}

func TestPermissiveZeroMatchesShadow(t *testing.T) {
	m := randomMap(7, 30, 30)
	origin := geom.Pt(15, 15)
	m.opaque[origin.Y*30+origin.X] = false
	a := Compute(m, origin, 12, Shadow)
	b := Compute(m, origin, 12, Permissive0)
	if !a.SubsetOf(b) || !b.SubsetOf(a) {
		t.Error("Permissive0 and Shadow should produce the same set")
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"basic", Basic, false},
		{"Diamond", Diamond, false},
		{"shadow", Shadow, false},
		{"", Shadow, false},
		{"permissive0", Permissive0, false},
		{"permissive-8", Permissive8, false},
		{"permissive_3", Permissive3, false},
		{"permissive9", Shadow, true},
		{"raycast", Shadow, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseAlgorithm(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("ParseAlgorithm(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			}
			if got != c.want {
				t.Errorf("ParseAlgorithm(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
	for _, alg := range allAlgorithms() {
		if got, err := ParseAlgorithm(alg.String()); err != nil || got != alg {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v", alg.String(), got, err, alg)
		}
	}
}
