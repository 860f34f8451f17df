package geom

// Direction represents one of the eight compass directions
type Direction int

// Direction constants. The four cardinals come first so callers wanting
// 4-way movement can range over Cardinals().
const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// Cardinals returns the four orthogonal directions in N, E, S, W order
func Cardinals() []Direction {
	return []Direction{North, East, South, West}
}

// AllDirections returns all eight directions, cardinals first
func AllDirections() []Direction {
	return []Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case NorthEast:
		return "NorthEast"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight defined directions
func (d Direction) IsValid() bool {
	return d >= North && d <= NorthWest
}

// IsDiagonal returns true for the four intercardinal directions
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= NorthWest
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case NorthEast:
		return SouthWest
	case SouthWest:
		return NorthEast
	case SouthEast:
		return NorthWest
	case NorthWest:
		return SouthEast
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	case NorthEast:
		return 1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// Flanks returns the two orthogonal directions a diagonal step passes between.
// For a cardinal direction both results equal d.
func (d Direction) Flanks() (Direction, Direction) {
	switch d {
	case NorthEast:
		return North, East
	case SouthEast:
		return South, East
	case SouthWest:
		return South, West
	case NorthWest:
		return North, West
	default:
		return d, d
	}
}
