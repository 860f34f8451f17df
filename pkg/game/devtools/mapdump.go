// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonelquinteros/gotext"

	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// dynamicGet is used for runtime translation key lookups.
var dynamicGet = gotext.Get

// cellSymbol returns the symbol for a cell's properties.
func cellSymbol(g *world.Grid, x, y int) rune {
	p, _ := g.Properties(x, y)
	switch {
	case p.Walkable && p.Transparent:
		return '.'
	case p.Walkable:
		return '~' // walkable but blocks sight
	case p.Transparent:
		return '"' // see-through but solid
	default:
		return '#'
	}
}

// writeMapGrid writes one character per cell. sym may return 0 to fall back
// to the property symbol; the player, start and exit overlay everything.
func writeMapGrid(b *strings.Builder, g *state.Game, sym func(x, y int) rune) {
	grid := g.Grid()
	player := g.Player.Position()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := geom.Pt(x, y)
			r := sym(x, y)
			switch {
			case p == player:
				r = '@'
			case p == g.Map.Exit:
				r = 'E'
			case p == g.Map.Start:
				r = 'S'
			case r != 0:
			default:
				r = cellSymbol(grid, x, y)
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
}

// distanceSymbol shows whole steps modulo 10, or 'x' for unreachable floor.
func distanceSymbol(d float64) rune {
	if math.IsInf(d, 1) {
		return 'x'
	}
	return rune('0' + int(d)%10)
}

// DumpMap writes a debug dump of the current level: metadata, legend, the
// full layout, the player's knowledge, a distance field from the player,
// layers, rooms and entities. Computing the distance field adds it to the
// grid's cache.
func DumpMap(w io.Writer, g *state.Game) error {
	grid := g.Grid()
	if grid == nil || g.Player == nil {
		return fmt.Errorf("no level to dump")
	}
	player := g.Player.Position()

	var b strings.Builder
	fmt.Fprintln(&b, "=== MAP DUMP ===")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Metadata ---")
	fmt.Fprintf(&b, "level: %d\n", g.Level)
	fmt.Fprintf(&b, "seed: %d\n", g.Seed)
	fmt.Fprintf(&b, "turn: %d\n", g.Turn)
	fmt.Fprintf(&b, "width: %d\n", grid.Width())
	fmt.Fprintf(&b, "height: %d\n", grid.Height())
	fmt.Fprintf(&b, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(&b, "player: %s\n", player)
	fmt.Fprintf(&b, "start: %s\n", g.Map.Start)
	fmt.Fprintf(&b, "exit: %s\n", g.Map.Exit)
	fmt.Fprintf(&b, "fov_algorithm: %s\n", grid.FOVAlgorithm())
	fmt.Fprintf(&b, "fov_radius: %d\n", grid.FOVRadius())
	fmt.Fprintf(&b, "discovered: %d\n", g.Player.DiscoveredCount())
	fmt.Fprintf(&b, "route_remaining: %d\n", g.Route.Remaining())
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Legend ---")
	fmt.Fprintln(&b, `. = floor  # = wall  ~ = walkable, opaque  " = transparent, solid  @ = player  S = start  E = exit`)
	fmt.Fprintln(&b, "knowledge: ? = never seen  * = in view  other = remembered")
	fmt.Fprintln(&b, "distance: steps from player modulo 10  x = unreachable floor")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Map (full layout) ---")
	writeMapGrid(&b, g, func(x, y int) rune { return 0 })
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Map (player knowledge) ---")
	writeMapGrid(&b, g, func(x, y int) rune {
		k := g.Player.At(x, y)
		switch {
		case !k.Discovered:
			return '?'
		case k.Visible && k.Cell.Walkable():
			return '*'
		}
		return 0
	})
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Map (distance from player) ---")
	field := grid.GetDijkstraMap(player.X, player.Y)
	writeMapGrid(&b, g, func(x, y int) rune {
		if !grid.Walkable(x, y) {
			return 0
		}
		return distanceSymbol(field.Distance(x, y))
	})
	far, farDist := field.Farthest()
	fmt.Fprintf(&b, "farthest: %s at %.2f\n", far, farDist)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Layers (draw order) ---")
	for _, l := range grid.DrawOrder() {
		fmt.Fprintf(&b, "  id: %d name: %q kind: %s z: %d visible: %v\n", l.ID(), l.Name(), l.Kind(), l.Z(), l.Visible())
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Rooms ---")
	if len(g.Map.Rooms) == 0 {
		fmt.Fprintln(&b, "  (none)")
	}
	for _, r := range g.Map.Rooms {
		fmt.Fprintf(&b, "  name: %q x: %d y: %d width: %d height: %d\n", r.Name, r.X, r.Y, r.Width, r.Height)
	}
	fmt.Fprintf(&b, "corridor_cells: %d\n", g.Map.Corridors.Size())
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "--- Entities ---")
	grid.EachEntity(func(e *world.Entity) {
		fmt.Fprintf(&b, "  id: %s position: %s sight_radius: %d discovered: %d\n", e.ID(), e.Position(), e.SightRadius(), e.DiscoveredCount())
	})
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== END MAP DUMP ===")

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpMapToFile writes DumpMap output to map.txt in the working directory
// and returns its absolute path.
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(f, g); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}
