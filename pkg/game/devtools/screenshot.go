package devtools

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"mcrogueface/pkg/game/gameplay"
	"mcrogueface/pkg/game/renderer"
	"mcrogueface/pkg/game/state"
)

var markupRegex = regexp.MustCompile(`[A-Z][A-Z0-9_]*\{([^}]*)\}`)

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WriteScreenshotHTML writes the player's view of a rows×cols window as a
// standalone HTML page. Cells are composited the same way the renderers do.
func WriteScreenshotHTML(w io.Writer, g *state.Game, rows, cols int) error {
	grid := g.Grid()
	if grid == nil || g.Player == nil {
		return fmt.Errorf("no level to capture")
	}
	rows, cols = min(rows, grid.Height()), min(cols, grid.Width())
	x0, y0 := renderer.Viewport(g, rows, cols)
	layers := grid.VisibleLayers()

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Screenshot</title>
    <style>
        body { background-color: #1a1a2e; color: #eee; font-family: 'Courier New', monospace; padding: 20px; }
        .header { color: #bb86fc; font-size: 18px; margin-bottom: 10px; }
        .room-name { color: #888; margin-bottom: 20px; }
        .map-container { background-color: #0f0f1a; padding: 20px; border-radius: 8px; display: inline-block; }
        .map-row { white-space: pre; line-height: 1.2; font-size: 16px; }
        .player { font-weight: bold; }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&b, `    <div class="header">%s %d  %s %d  %s %s</div>`+"\n",
		dynamicGet("LEVEL"), g.Level, dynamicGet("TURN"), g.Turn, dynamicGet("FOV"), grid.FOVAlgorithm())
	fmt.Fprintf(&b, `    <div class="room-name">%s</div>`+"\n", html.EscapeString(gameplay.RoomName(g)))

	b.WriteString(`    <div class="map-container">` + "\n")
	for y := y0; y < y0+rows; y++ {
		b.WriteString(`        <div class="map-row">`)
		for x := x0; x < x0+cols; x++ {
			v := renderer.Composite(g, layers, x, y)
			class := ""
			if v.Player {
				class = ` class="player"`
			}
			fmt.Fprintf(&b, `<span%s style="color:%s;background:%s">%s</span>`,
				class, cssColor(v.Foreground), cssColor(v.Background), html.EscapeString(v.Icon))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString(`    </div>` + "\n")

	for _, msg := range g.Messages {
		clean := markupRegex.ReplaceAllString(msg, "$1")
		fmt.Fprintf(&b, `    <div class="message">%s</div>`+"\n", html.EscapeString(clean))
	}
	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveScreenshotHTML writes a timestamped screenshot file and returns its
// name.
func SaveScreenshotHTML(g *state.Game, rows, cols int) (string, error) {
	filename := fmt.Sprintf("screenshot-%s.html", time.Now().Format("20060102-150405"))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteScreenshotHTML(f, g, rows, cols); err != nil {
		return filename, err
	}
	return filename, nil
}
