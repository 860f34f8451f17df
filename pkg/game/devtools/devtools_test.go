package devtools

import (
	"io"
	"os"
	"strings"
	"testing"

	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/game/gameplay"
	"mcrogueface/pkg/game/generator"
	"mcrogueface/pkg/game/state"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func arenaGame(t *testing.T) *state.Game {
	t.Helper()
	s := gameplay.DefaultSettings()
	s.Generator = generator.Arena
	s.Width, s.Height = 20, 14
	g, err := gameplay.BuildGame(1, s)
	if err != nil {
		t.Fatalf("BuildGame: %v", err)
	}
	return g
}

// section returns the lines between a "--- title ---" header and the next
// blank line.
func section(t *testing.T, dump, title string) []string {
	t.Helper()
	header := "--- " + title + " ---\n"
	i := strings.Index(dump, header)
	if i < 0 {
		t.Fatalf("dump has no %q section", title)
	}
	body := dump[i+len(header):]
	body = body[:strings.Index(body, "\n\n")]
	return strings.Split(body, "\n")
}

func TestDumpMap(t *testing.T) {
	g := arenaGame(t)
	var b strings.Builder
	if err := DumpMap(&b, g); err != nil {
		t.Fatalf("DumpMap: %v", err)
	}
	dump := b.String()

	full := section(t, dump, "Map (full layout)")
	if len(full) != 14 || len(full[0]) != 20 {
		t.Fatalf("full map is %dx%d, want 20x14", len(full[0]), len(full))
	}
	if full[0] != strings.Repeat("#", 20) {
		t.Errorf("top row = %q", full[0])
	}
	if full[1][1] != '@' {
		t.Errorf("player cell = %q, want @", full[1][1])
	}
	if full[3][3] != '#' {
		t.Errorf("pillar cell = %q, want #", full[3][3])
	}

	dist := section(t, dump, "Map (distance from player)")
	if dist[1][2] != '1' || dist[2][2] != '1' {
		t.Errorf("neighbours of the player = %q %q, want 1 1", dist[1][2], dist[2][2])
	}

	known := section(t, dump, "Map (player knowledge)")
	if known[1][2] != '*' {
		t.Errorf("visible floor = %q, want *", known[1][2])
	}
	if known[12][12] != '?' {
		t.Errorf("far corner = %q, want ?", known[12][12])
	}

	for _, want := range []string{"fov_algorithm: shadow", "name: \"tiles\"", "name: \"Pillar Hall\""} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump lacks %q", want)
		}
	}
}

func TestDumpMapNoLevel(t *testing.T) {
	if err := DumpMap(io.Discard, state.NewGame(1)); err == nil {
		t.Error("DumpMap without a level succeeded")
	}
}

func TestWriteScreenshotHTML(t *testing.T) {
	g := arenaGame(t)
	var b strings.Builder
	if err := WriteScreenshotHTML(&b, g, 10, 10); err != nil {
		t.Fatalf("WriteScreenshotHTML: %v", err)
	}
	out := b.String()
	if got := strings.Count(out, `<div class="map-row">`); got != 10 {
		t.Errorf("got %d map rows, want 10", got)
	}
	if !strings.Contains(out, `class="player"`) {
		t.Error("screenshot has no player cell")
	}
	if strings.Contains(out, "GT{") || strings.Contains(out, "ROOM{") {
		t.Error("screenshot still contains markup")
	}
}
