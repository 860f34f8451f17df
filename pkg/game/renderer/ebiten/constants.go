package ebiten

import "image/color"

const (
	defaultTileSize = 24
	windowCols      = 40
	windowRows      = 25
	statusHeight    = 44

	// ticksPerRouteStep slows auto-walking down to a visible pace at 60 TPS.
	ticksPerRouteStep = 4
)

var (
	colorBackground = color.RGBA{15, 15, 26, 255}
	colorStatusBg   = color.RGBA{30, 30, 50, 230}
	colorText       = color.RGBA{200, 210, 245, 255}
	colorAction     = color.RGBA{180, 150, 250, 255}
	colorRoom       = color.RGBA{160, 160, 180, 255}
	colorDenied     = color.RGBA{255, 100, 100, 255}
	colorRoute      = color.RGBA{180, 150, 250, 90}
)
