package ebiten

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

// textSegment is a run of text in one color.
type textSegment struct {
	text  string
	color color.Color
}

// parseMarkup splits a message with GT{}, ROOM{} and ACTION{} markup into
// colored segments.
func parseMarkup(msg string, args ...any) []textSegment {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var segments []textSegment
	lastIndex := 0
	for _, match := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		if match[0] > lastIndex {
			segments = append(segments, textSegment{text: msg[lastIndex:match[0]], color: colorText})
		}

		function := msg[match[2]:match[3]]
		content := msg[match[4]:match[5]]

		var segColor color.Color
		switch function {
		case "GT":
			content = dynamicGet(content)
			segColor = colorText
		case "ROOM":
			segColor = colorRoom
		case "ACTION":
			segColor = colorAction
		default:
			segColor = colorDenied
		}
		segments = append(segments, textSegment{text: content, color: segColor})
		lastIndex = match[1]
	}

	if lastIndex < len(msg) {
		segments = append(segments, textSegment{text: msg[lastIndex:], color: colorText})
	}
	return segments
}

// drawSegments draws segments left to right starting at (x, y).
func (e *EbitenRenderer) drawSegments(screen *ebiten.Image, segments []textSegment, x, y float64) {
	face := e.uiFace()
	for _, seg := range segments {
		if seg.text == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(seg.color)
		text.Draw(screen, seg.text, face, op)

		w, _ := text.Measure(seg.text, face, 0)
		x += w
	}
}
