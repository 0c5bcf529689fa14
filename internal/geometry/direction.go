package geometry

// Direction represents a cardinal direction on the board
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return d
	}
}

// Delta returns the x and y offsets of one step in this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	case East:
		return 1, 0
	default:
		return 0, 0
	}
}

// AllDirections returns the four cardinal directions in neighbour order.
// Weighted selection over neighbours depends on this order staying fixed.
func AllDirections() []Direction {
	return []Direction{North, South, West, East}
}
