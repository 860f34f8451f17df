package generator

import (
	"fmt"
	"math/rand"

	"mcrogueface/pkg/engine/world"
)

// BSPGenerator generates maps using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *Room
}

var roomNames = []string{
	"Crypt", "Armory", "Library", "Chapel", "Barracks",
	"Vault", "Kitchen", "Cellar", "Forge", "Gallery",
	"Ossuary", "Throne Room", "Well", "Larder", "Shrine",
}

var roomAdjectives = []string{
	"Abandoned", "Collapsed", "Dark", "Flooded", "Forgotten",
	"Mossy", "Silent", "Sealed", "Crumbling", "Haunted",
}

// Constants for BSP generation
const (
	minNodeSize = 8 // Minimum size of a BSP node
	minRoomSize = 4 // Minimum size of a room
	roomPadding = 2 // Padding between room and node edge
	decorChance = 0.04
)

// Generate creates a map by splitting the grid into a BSP tree, placing one
// room per leaf and joining siblings with L-shaped corridors.
func (g *BSPGenerator) Generate(width, height int, rng *rand.Rand, opts ...world.Option) (*Map, error) {
	// one cell of perimeter wall on each side around the smallest room
	if width < minRoomSize+roomPadding+2 || height < minRoomSize+roomPadding+2 {
		return nil, fmt.Errorf("bsp %dx%d: %w", width, height, ErrTooSmall)
	}
	m, err := newMap(width, height, opts)
	if err != nil {
		return nil, err
	}

	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}
	splitBSP(rng, root, minNodeSize)
	createRooms(rng, root)
	carveRooms(m, root)
	connectRooms(rng, m, root)
	m.scatter(rng, decorChance)

	start := m.Rooms[rng.Intn(len(m.Rooms))]
	m.Start = start.Center()
	m.placeExit()
	return m, nil
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	canW, canH := node.width >= minSize*2, node.height >= minSize*2

	var splitHorizontal bool
	switch {
	case !canW && !canH:
		return
	case node.width > node.height && canW:
		splitHorizontal = false
	case node.height > node.width && canH:
		splitHorizontal = true
	case canW && canH:
		splitHorizontal = rng.Intn(2) == 0
	default:
		splitHorizontal = canH
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	roomWidth := minRoomSize + rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.Intn(node.height-minRoomSize-roomPadding+1)
	roomWidth = min(roomWidth, node.width-roomPadding)
	roomHeight = min(roomHeight, node.height-roomPadding)

	// leave at least one wall column/row on the far side of the node
	roomX := node.x + rng.Intn(node.width-roomWidth)
	roomY := node.y + rng.Intn(node.height-roomHeight)

	name := fmt.Sprintf("%s %s",
		roomAdjectives[rng.Intn(len(roomAdjectives))],
		roomNames[rng.Intn(len(roomNames))])

	node.room = &Room{
		Name:   name,
		X:      roomX,
		Y:      roomY,
		Width:  roomWidth,
		Height: roomHeight,
	}
}

// carveRooms marks room cells as floor in leaf order
func carveRooms(m *Map, node *bspNode) {
	if node.room != nil {
		m.carveRoom(*node.room)
	}
	if node.left != nil {
		carveRooms(m, node.left)
	}
	if node.right != nil {
		carveRooms(m, node.right)
	}
}

// connectRooms joins a room from each subtree with an L-shaped corridor
func connectRooms(rng *rand.Rand, m *Map, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)

	if leftRoom != nil && rightRoom != nil {
		a, b := leftRoom.Center(), rightRoom.Center()
		if rng.Intn(2) == 0 {
			carveCorridorHorizontal(m, a.Y, a.X, b.X)
			carveCorridorVertical(m, b.X, a.Y, b.Y)
		} else {
			carveCorridorVertical(m, a.X, a.Y, b.Y)
			carveCorridorHorizontal(m, b.Y, a.X, b.X)
		}
	}

	connectRooms(rng, m, node.left)
	connectRooms(rng, m, node.right)
}

func carveCorridorHorizontal(m *Map, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		m.carveCorridor(x, y)
	}
}

func carveCorridorVertical(m *Map, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		m.carveCorridor(x, y)
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *Room {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *Room
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}
