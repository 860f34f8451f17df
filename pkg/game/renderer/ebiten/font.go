package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

func loadMonoFont() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
}

// tileFace returns a cached face sized for the current zoomed tile.
func (e *EbitenRenderer) tileFace(tile float64) *text.GoTextFace {
	size := tile * 0.8
	if e.cachedTileFace == nil || e.cachedTileFace.Size != size {
		e.cachedTileFace = &text.GoTextFace{
			Source: e.fontSource,
			Size:   size,
		}
	}
	return e.cachedTileFace
}

// uiFace returns the face for the status bar.
func (e *EbitenRenderer) uiFace() *text.GoTextFace {
	if e.cachedUIFace == nil {
		e.cachedUIFace = &text.GoTextFace{
			Source: e.fontSource,
			Size:   14,
		}
	}
	return e.cachedUIFace
}
