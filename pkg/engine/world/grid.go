// Package world provides the bounded 2D grid at the heart of the engine:
// per-cell walkable/transparent properties, stacked render layers, a camera,
// and the entities that live on the grid and remember what they have seen.
//
// The grid also fronts the field of view and path finding engines: it keeps
// the most recent FOV result and caches distance fields per root.
//
// Nothing in this package locks. A Grid, its layers, entities and caches
// assume a single writer; callers that share a Grid between goroutines must
// synchronise access themselves.
package world

import (
	"errors"
	"fmt"

	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/geom"
	"mcrogueface/pkg/engine/path"
)

// DefaultFOVRadius is the FOV radius used when none is configured.
const DefaultFOVRadius = 8

var (
	// ErrInvalidDimensions is returned when a grid is built with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	// ErrDuplicateLayer is returned when a layer name is already taken.
	ErrDuplicateLayer = errors.New("layer name already in use")
	// ErrInvalidZoom is returned for a camera zoom <= 0.
	ErrInvalidZoom = errors.New("camera zoom must be positive")
)

// Properties are the base per-cell flags every grid carries.
type Properties struct {
	Walkable    bool
	Transparent bool
}

// Floor is walkable and transparent.
var Floor = Properties{Walkable: true, Transparent: true}

// Wall is neither walkable nor transparent.
var Wall = Properties{}

// Grid represents the map: a fixed-size array of cells with layers and entities
type Grid struct {
	width  int
	height int
	base   []Properties

	layers      []*Layer
	nextLayerID LayerID
	layerSeq    uint64

	camera Camera

	slots       []entitySlot
	freeSlots   []uint32
	entityOrder []EntityID

	fovAlgorithm fov.Algorithm
	fovRadius    int
	lastFOV      *fov.Set

	pathOpts []path.Option
	dijkstra map[geom.Point]*path.DistanceField
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithFOVAlgorithm selects the FOV algorithm used by ComputeFOV.
func WithFOVAlgorithm(alg fov.Algorithm) Option {
	return func(g *Grid) {
		g.SetFOVAlgorithm(alg)
	}
}

// WithFOVRadius sets the radius used when callers do not pass one.
func WithFOVRadius(radius int) Option {
	return func(g *Grid) {
		g.SetFOVRadius(radius)
	}
}

// WithPathOptions sets the adjacency and costs used by FindPath and
// GetDijkstraMap.
func WithPathOptions(opts ...path.Option) Option {
	return func(g *Grid) {
		g.pathOpts = append([]path.Option(nil), opts...)
	}
}

// NewGrid creates a new grid with every cell set to Wall.
// Dimensions are fixed for the lifetime of the grid.
func NewGrid(width, height int, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	g := &Grid{
		width:        width,
		height:       height,
		base:         make([]Properties, width*height),
		nextLayerID:  1,
		camera:       Camera{CenterX: float64(width) / 2, CenterY: float64(height) / 2, Zoom: 1},
		fovAlgorithm: fov.DefaultAlgorithm,
		fovRadius:    DefaultFOVRadius,
		dijkstra:     make(map[geom.Point]*path.DistanceField),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustNewGrid is NewGrid that panics on invalid dimensions.
func MustNewGrid(width, height int, opts ...Option) *Grid {
	g, err := NewGrid(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// InBounds checks if a position is within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// At returns a live view of the cell at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &Cell{grid: g, x: x, y: y}
}

// CenterPosition returns the coordinates of the grid center
func (g *Grid) CenterPosition() (int, int) {
	return g.width / 2, g.height / 2
}

// Properties returns the base flags at (x, y); ok is false out of bounds.
func (g *Grid) Properties(x, y int) (p Properties, ok bool) {
	if !g.InBounds(x, y) {
		return Properties{}, false
	}
	return g.base[g.index(x, y)], true
}

// Walkable reports whether (x, y) can be walked on. Out of bounds is not walkable.
func (g *Grid) Walkable(x, y int) bool {
	p, _ := g.Properties(x, y)
	return p.Walkable
}

// Transparent reports whether sight passes through (x, y). Out of bounds is opaque.
func (g *Grid) Transparent(x, y int) bool {
	p, _ := g.Properties(x, y)
	return p.Transparent
}

// SetProperties replaces the base flags at (x, y). Returns false if out of bounds.
//
// Changing walkability does not invalidate cached distance fields; call
// ClearDijkstraMaps afterwards.
func (g *Grid) SetProperties(x, y int, p Properties) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.base[g.index(x, y)] = p
	return true
}

// SetWalkable sets the walkable flag at (x, y). Returns false if out of bounds.
// Cached distance fields are not invalidated; see ClearDijkstraMaps.
func (g *Grid) SetWalkable(x, y int, walkable bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.base[g.index(x, y)].Walkable = walkable
	return true
}

// SetTransparent sets the transparent flag at (x, y). Returns false if out of bounds.
func (g *Grid) SetTransparent(x, y int, transparent bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.base[g.index(x, y)].Transparent = transparent
	return true
}

// FillProperties sets every cell to p.
func (g *Grid) FillProperties(p Properties) {
	for i := range g.base {
		g.base[i] = p
	}
}

// FillPropertiesRect sets the w×h rectangle at (x, y) to p, clipped to the
// grid. A rectangle entirely outside the grid is a no-op.
func (g *Grid) FillPropertiesRect(x, y, w, h int, p Properties) {
	x0, y0, x1, y1, ok := clipRect(x, y, w, h, g.width, g.height)
	if !ok {
		return
	}
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			g.base[g.index(cx, cy)] = p
		}
	}
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(x, y int, cell *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, &Cell{grid: g, x: x, y: y})
		}
	}
}

// Camera returns the current view transform.
func (g *Grid) Camera() Camera {
	return g.camera
}

// SetCameraCenter moves the camera. The camera has no effect on cell data.
func (g *Grid) SetCameraCenter(x, y float64) {
	g.camera.CenterX = x
	g.camera.CenterY = y
}

// SetCameraZoom sets the zoom factor; it must be positive.
func (g *Grid) SetCameraZoom(zoom float64) error {
	if zoom <= 0 {
		return fmt.Errorf("zoom %v: %w", zoom, ErrInvalidZoom)
	}
	g.camera.Zoom = zoom
	return nil
}

// clipRect intersects the w×h rectangle at (x, y) with [0,width)×[0,height)
// and returns the half-open bounds.
func clipRect(x, y, w, h, width, height int) (x0, y0, x1, y1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, width), min(y+h, height)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}
