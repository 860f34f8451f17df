package world

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/logger"
)

// LayerID identifies a layer within its grid. IDs are never reused.
type LayerID uint32

// LayerKind is the type of value a layer stores.
type LayerKind int

const (
	// SpriteLayer stores sprite indices.
	SpriteLayer LayerKind = iota
	// ColorLayer stores RGBA colors.
	ColorLayer
)

func (k LayerKind) String() string {
	switch k {
	case SpriteLayer:
		return "sprite"
	case ColorLayer:
		return "color"
	default:
		return "unknown"
	}
}

// NoSprite is the initial value of every sprite layer cell.
const NoSprite = -1

// Value is a tagged layer value: a sprite index or a color.
type Value struct {
	kind   LayerKind
	sprite int
	color  color.RGBA
}

// SpriteValue wraps a sprite index.
func SpriteValue(index int) Value {
	return Value{kind: SpriteLayer, sprite: index}
}

// ColorValue wraps a color.
func ColorValue(c color.RGBA) Value {
	return Value{kind: ColorLayer, color: c}
}

// Kind returns which variant v holds.
func (v Value) Kind() LayerKind { return v.kind }

// Sprite returns the sprite index; ok is false for color values.
func (v Value) Sprite() (index int, ok bool) {
	return v.sprite, v.kind == SpriteLayer
}

// Color returns the color; ok is false for sprite values.
func (v Value) Color() (c color.RGBA, ok bool) {
	return v.color, v.kind == ColorLayer
}

func (v Value) String() string {
	if v.kind == ColorLayer {
		return fmt.Sprintf("#%02x%02x%02x%02x", v.color.R, v.color.G, v.color.B, v.color.A)
	}
	return fmt.Sprintf("sprite(%d)", v.sprite)
}

// Layer is a dense array of sprite indices or colors covering the grid.
//
// A layer removed from its grid is detached: Grid returns nil and writes only
// touch the layer's own storage.
type Layer struct {
	id      LayerID
	name    string
	kind    LayerKind
	z       int
	seq     uint64
	visible bool

	width   int
	height  int
	sprites []int
	colors  []color.RGBA

	grid *Grid
}

func newLayer(g *Grid, id LayerID, name string, kind LayerKind, z int, seq uint64) *Layer {
	l := &Layer{
		id:      id,
		name:    name,
		kind:    kind,
		z:       z,
		seq:     seq,
		visible: true,
		width:   g.width,
		height:  g.height,
		grid:    g,
	}
	switch kind {
	case SpriteLayer:
		l.sprites = make([]int, g.width*g.height)
		for i := range l.sprites {
			l.sprites[i] = NoSprite
		}
	case ColorLayer:
		l.colors = make([]color.RGBA, g.width*g.height)
	}
	return l
}

func (l *Layer) ID() LayerID { return l.id }
func (l *Layer) Name() string { return l.name }
func (l *Layer) Kind() LayerKind { return l.kind }
func (l *Layer) Z() int { return l.z }
func (l *Layer) Visible() bool { return l.visible }
func (l *Layer) SetVisible(v bool) { l.visible = v }

// Grid returns the owning grid, or nil once the layer has been removed.
func (l *Layer) Grid() *Grid { return l.grid }

// SetZ changes the stacking key. The insertion order used to break ties is
// unchanged.
func (l *Layer) SetZ(z int) { l.z = z }

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// put stores v at index i. Values of the wrong kind are ignored.
func (l *Layer) put(i int, v Value) bool {
	if v.kind != l.kind {
		return false
	}
	if l.kind == SpriteLayer {
		l.sprites[i] = v.sprite
	} else {
		l.colors[i] = v.color
	}
	return true
}

// Get returns the value at (x, y); ok is false out of bounds.
func (l *Layer) Get(x, y int) (v Value, ok bool) {
	if !l.inBounds(x, y) {
		return Value{}, false
	}
	i := y*l.width + x
	if l.kind == SpriteLayer {
		return SpriteValue(l.sprites[i]), true
	}
	return ColorValue(l.colors[i]), true
}

// Set stores v at (x, y). It returns false, and changes nothing, when the
// coordinates are out of bounds or v is of the wrong kind.
func (l *Layer) Set(x, y int, v Value) bool {
	if !l.inBounds(x, y) {
		return false
	}
	return l.put(y*l.width+x, v)
}

// Fill sets every cell of the layer to v.
func (l *Layer) Fill(v Value) {
	if v.kind != l.kind {
		return
	}
	for i := 0; i < l.width*l.height; i++ {
		l.put(i, v)
	}
}

// FillRect sets the w×h rectangle at (x, y) to v, clipped to the layer.
// A rectangle entirely out of range is a no-op.
func (l *Layer) FillRect(x, y, w, h int, v Value) {
	if v.kind != l.kind {
		return
	}
	x0, y0, x1, y1, ok := clipRect(x, y, w, h, l.width, l.height)
	if !ok {
		return
	}
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			l.put(cy*l.width+cx, v)
		}
	}
}

// AddSpriteLayer adds a sprite index layer with every cell set to NoSprite.
func (g *Grid) AddSpriteLayer(name string, z int) (*Layer, error) {
	return g.addLayer(name, SpriteLayer, z)
}

// AddColorLayer adds a color layer with every cell transparent black.
func (g *Grid) AddColorLayer(name string, z int) (*Layer, error) {
	return g.addLayer(name, ColorLayer, z)
}

func (g *Grid) addLayer(name string, kind LayerKind, z int) (*Layer, error) {
	if g.Layer(name) != nil {
		return nil, fmt.Errorf("add %s layer %q: %w", kind, name, ErrDuplicateLayer)
	}
	l := newLayer(g, g.nextLayerID, name, kind, z, g.layerSeq)
	g.nextLayerID++
	g.layerSeq++
	g.layers = append(g.layers, l)

	logger.Log.WithFields(logrus.Fields{
		"layer": name,
		"kind":  kind.String(),
		"z":     z,
	}).Debug("layer added")
	return l, nil
}

// Layer returns the layer called name, or nil.
func (g *Grid) Layer(name string) *Layer {
	for _, l := range g.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

// LayerByID returns the layer with id, or nil if it does not exist or was removed.
func (g *Grid) LayerByID(id LayerID) *Layer {
	for _, l := range g.layers {
		if l.id == id {
			return l
		}
	}
	return nil
}

// RemoveLayer detaches the layer with id. It returns false if no such layer
// exists.
func (g *Grid) RemoveLayer(id LayerID) bool {
	i := slices.IndexFunc(g.layers, func(l *Layer) bool { return l.id == id })
	if i < 0 {
		return false
	}
	l := g.layers[i]
	g.layers = slices.Delete(g.layers, i, i+1)
	l.grid = nil

	logger.Log.WithField("layer", l.name).Debug("layer removed")
	return true
}

// Layers returns the layers in insertion order.
func (g *Grid) Layers() []*Layer {
	return slices.Clone(g.layers)
}

// DrawOrder returns the layers sorted by ascending z; equal z keeps insertion
// order so the first added is drawn underneath.
func (g *Grid) DrawOrder() []*Layer {
	out := slices.Clone(g.layers)
	slices.SortStableFunc(out, func(a, b *Layer) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// VisibleLayers is DrawOrder restricted to visible layers.
func (g *Grid) VisibleLayers() []*Layer {
	return slices.DeleteFunc(g.DrawOrder(), func(l *Layer) bool { return !l.visible })
}
