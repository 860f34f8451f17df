// Package tui renders an exploration session to an ANSI terminal.
package tui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mcrogueface/pkg/engine/input"
	"mcrogueface/pkg/engine/terminal"
	"mcrogueface/pkg/game/gameplay"
	"mcrogueface/pkg/game/menu"
	"mcrogueface/pkg/game/renderer"
	"mcrogueface/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15
	// Lines needed outside the map: status (2), messages (6), prompt (1)
	ViewportTopMargin = 9
)

// autoWalkDelay paces auto-walking so the route is visible.
const autoWalkDelay = 40 * time.Millisecond

// dynamicGet is used for runtime translation key lookups.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorAction      color.Style
	colorActionShort color.Style
	colorRoom        color.Style
	colorSubtle      color.Style
	colorDenied      color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a TUI renderer writing to stdout.
func New() *TUIRenderer {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a TUI renderer writing to w.
func NewWithWriter(w io.Writer) *TUIRenderer {
	return &TUIRenderer{out: w}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorRoom = color.Style{color.FgBlue}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([A-Z_]*){([a-z A-Z0-9_,:.-]+)}`)
}

// FormatText expands ACTION{}, ROOM{} and GT{} markup.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	for _, match := range t.regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function, operand := match[1], match[2]

		var val string
		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ROOM":
			val = t.colorRoom.Sprint(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			val = t.colorDenied.Sprint(operand)
		}
		ret = strings.Replace(ret, match[0], val, 1)
	}
	return ret
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	cols, rows = terminal.Viewport(ViewportTopMargin)
	return max(rows, ViewportMinRows), max(cols, ViewportMinCols)
}

// RenderFrame renders a complete frame sized to the terminal.
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	rows, cols := t.GetViewportSize()
	fmt.Fprint(t.out, terminal.ClearScreen())
	t.renderSized(g, rows, cols)
}

// renderSized draws the map window, status line and messages, or the key
// bindings while help is shown. Lines end in \r\n so output stays aligned
// while the terminal is in raw mode.
func (t *TUIRenderer) renderSized(g *state.Game, rows, cols int) {
	var b strings.Builder
	t.writeMap(&b, g, rows, cols)
	t.writeStatus(&b, g)
	if g.ShowHelp {
		for _, l := range menu.HelpLines() {
			b.WriteString(t.colorSubtle.Sprint(l))
			b.WriteString("\r\n")
		}
		fmt.Fprint(t.out, b.String())
		return
	}
	for _, m := range g.Messages {
		b.WriteString(t.FormatText("%s", m))
		b.WriteString("\r\n")
	}
	fmt.Fprint(t.out, b.String())
}

func (t *TUIRenderer) writeMap(b *strings.Builder, g *state.Game, rows, cols int) {
	grid := g.Grid()
	layers := grid.VisibleLayers()
	x0, y0 := renderer.Viewport(g, rows, cols)

	for y := y0; y < min(y0+rows, grid.Height()); y++ {
		for x := x0; x < min(x0+cols, grid.Width()); x++ {
			b.WriteString(t.renderCell(renderer.Composite(g, layers, x, y)))
		}
		b.WriteString("\r\n")
	}
}

// renderCell colors one composited cell.
func (t *TUIRenderer) renderCell(v renderer.CellView) string {
	if v.Fog == renderer.FogUnknown {
		return renderer.IconVoid
	}
	fg := color.RGB(v.Foreground.R, v.Foreground.G, v.Foreground.B)
	if v.Background.A == 0 {
		return fg.Sprint(v.Icon)
	}
	bg := color.RGB(v.Background.R, v.Background.G, v.Background.B, true)
	return color.NewRGBStyle(fg, bg).Sprint(v.Icon)
}

func (t *TUIRenderer) writeStatus(b *strings.Builder, g *state.Game) {
	grid := g.Grid()
	b.WriteString("\r\n")
	b.WriteString(t.FormatText("GT{LEVEL} ACTION{%d}  GT{TURN} ACTION{%d}  ROOM{%s}  GT{FOV} ACTION{%s}  GT{SEEN} ACTION{%d}",
		g.Level, g.Turn, gameplay.RoomName(g), grid.FOVAlgorithm().String(), g.Player.DiscoveredCount()))
	b.WriteString("\r\n")
	if g.Route != nil {
		b.WriteString(t.colorSubtle.Sprint(dynamicGet("ROUTE_REMAINING", g.Route.Remaining())))
		b.WriteString("\r\n")
	}
}

// Run drives an interactive session until the player quits or input ends.
func (t *TUIRenderer) Run(g *state.Game, s gameplay.Settings, keys *input.KeyReader) error {
	for !g.Quit {
		t.RenderFrame(g)

		if g.Route != nil {
			if _, err := gameplay.StepRoute(g, s); err != nil {
				return err
			}
			time.Sleep(autoWalkDelay)
			continue
		}

		intent, err := keys.ReadIntent()
		if err != nil {
			return err
		}
		if err := gameplay.ProcessIntent(g, s, intent); err != nil {
			return err
		}
	}
	fmt.Fprint(t.out, dynamicGet("GOODBYE")+"\r\n")
	return nil
}
