package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/gookit/color"

	"mcrogueface/pkg/engine/input"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/game/gameplay"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func settings() gameplay.Settings {
	s := gameplay.DefaultSettings()
	s.Width, s.Height = 40, 20
	return s
}

// TestRenderShowsPlayerAndHidesUnknown tests the map window and fog
func TestRenderShowsPlayerAndHidesUnknown(t *testing.T) {
	g, err := gameplay.BuildGame(11, settings())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := NewWithWriter(&buf)
	r.Init()
	r.renderSized(g, 20, 40)

	plain := color.ClearCode(buf.String())
	lines := strings.Split(plain, "\r\n")
	if len(lines) < 20 {
		t.Fatalf("got %d lines, want at least 20", len(lines))
	}
	p := g.Player.Position()
	row := []rune(lines[p.Y])
	if string(row[p.X]) != "@" {
		t.Errorf("row %d = %q, want @ at column %d", p.Y, lines[p.Y], p.X)
	}

	unknown := 0
	for y := 0; y < 20; y++ {
		for x, ch := range []rune(lines[y]) {
			if ch == ' ' && g.Player.At(x, y).Discovered {
				t.Errorf("discovered cell (%d,%d) drawn blank", x, y)
			}
			if ch == ' ' {
				unknown++
			}
		}
	}
	if unknown == 0 {
		t.Error("no undiscovered cells left blank")
	}
}

// TestFormatTextMarkup tests the markup expansion
func TestFormatTextMarkup(t *testing.T) {
	r := NewWithWriter(io.Discard)
	r.Init()
	got := color.ClearCode(r.FormatText("ROOM{%s} ACTION{go}", "Dark Crypt"))
	if got != "Dark Crypt go" {
		t.Errorf("FormatText = %q, want %q", got, "Dark Crypt go")
	}
}

// TestRunQuitsOnKey tests the interactive loop against scripted keys
func TestRunQuitsOnKey(t *testing.T) {
	s := settings()
	g, err := gameplay.BuildGame(12, s)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := NewWithWriter(&buf)
	r.Init()
	keys := input.NewKeyReader(strings.NewReader("f.q"))
	if err := r.Run(g, s, keys); err != nil {
		t.Fatal(err)
	}
	if !g.Quit {
		t.Error("Run returned without quitting")
	}
	if g.Turn != 1 {
		t.Errorf("Turn = %d, want 1 after one wait", g.Turn)
	}
}

// TestHelpReplacesMessages tests the key binding overlay
func TestHelpReplacesMessages(t *testing.T) {
	s := settings()
	g, err := gameplay.BuildGame(13, s)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := NewWithWriter(&buf)
	r.Init()
	keys := input.NewKeyReader(strings.NewReader("?q"))
	if err := r.Run(g, s, keys); err != nil {
		t.Fatal(err)
	}
	if !g.ShowHelp {
		t.Fatal("ShowHelp not set after ?")
	}

	buf.Reset()
	r.renderSized(g, 20, 40)
	plain := color.ClearCode(buf.String())
	if !strings.Contains(plain, "Go To Exit") {
		t.Errorf("help overlay missing, got:\n%s", plain)
	}
	for _, m := range g.Messages {
		if m != "" && strings.Contains(plain, m) {
			t.Errorf("message %q shown under help", m)
		}
	}
}
