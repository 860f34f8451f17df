package world

import "math"

// Camera is the view transform renderers use. It has no effect on cell data,
// FOV or path finding.
type Camera struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// WorldToScreen maps a position in cells to pixels, for a viewport of
// viewW×viewH pixels and tiles of tileSize pixels at zoom 1.
func (c Camera) WorldToScreen(wx, wy float64, tileSize, viewW, viewH int) (sx, sy float64) {
	scale := float64(tileSize) * c.Zoom
	sx = (wx-c.CenterX)*scale + float64(viewW)/2
	sy = (wy-c.CenterY)*scale + float64(viewH)/2
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c Camera) ScreenToWorld(sx, sy float64, tileSize, viewW, viewH int) (wx, wy float64) {
	scale := float64(tileSize) * c.Zoom
	wx = (sx-float64(viewW)/2)/scale + c.CenterX
	wy = (sy-float64(viewH)/2)/scale + c.CenterY
	return wx, wy
}

// CellAt returns the cell coordinates under screen pixel (sx, sy).
func (c Camera) CellAt(sx, sy float64, tileSize, viewW, viewH int) (x, y int) {
	wx, wy := c.ScreenToWorld(sx, sy, tileSize, viewW, viewH)
	return int(math.Floor(wx)), int(math.Floor(wy))
}

// VisibleBounds returns the half-open range of cells that intersect the
// viewport. The result is not clipped to any grid.
func (c Camera) VisibleBounds(tileSize, viewW, viewH int) (x0, y0, x1, y1 int) {
	x0, y0 = c.CellAt(0, 0, tileSize, viewW, viewH)
	wx, wy := c.ScreenToWorld(float64(viewW), float64(viewH), tileSize, viewW, viewH)
	return x0, y0, int(math.Ceil(wx)), int(math.Ceil(wy))
}
