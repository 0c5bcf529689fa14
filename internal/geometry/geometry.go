// Package geometry provides board coordinates and the vector math used to
// steer road carving.
package geometry

import (
	"fmt"
	"math"
)

// Coordinates identifies a single cell on the board.
// X grows to the right and Y grows downward.
type Coordinates struct {
	X, Y int
}

// C is a shorthand constructor for Coordinates.
func C(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// String returns the coordinates as "(x,y)"
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the coordinates one cell away in the given direction.
// The result may be out of bounds; callers check against the grid.
func (c Coordinates) Step(d Direction) Coordinates {
	dx, dy := d.Delta()
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b Coordinates) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Neighbours reports whether b is orthogonally adjacent to c.
func (c Coordinates) Neighbours(b Coordinates) bool {
	dx, dy := b.X-c.X, b.Y-c.Y
	return dx*dx+dy*dy == 1
}

// VectorTo returns the vector pointing from c to b.
func (c Coordinates) VectorTo(b Coordinates) Vector {
	dx, dy := float64(b.X-c.X), float64(b.Y-c.Y)
	return Vector{
		Length: math.Hypot(dx, dy),
		Angle:  normalizeAngle(math.Atan2(dy, dx)),
	}
}

// Vector is a magnitude and a direction. Angle is in [0, 2π).
type Vector struct {
	Length float64
	Angle  float64
}

// Diff returns a vector whose angle is v's angle minus other's, wrapped
// into [0, 2π). The length is the difference of the two lengths.
func (v Vector) Diff(other Vector) Vector {
	return Vector{
		Length: v.Length - other.Length,
		Angle:  normalizeAngle(v.Angle - other.Angle),
	}
}

// AngleBetween returns how far the heading previous->tile deviates from the
// heading tile->end, folded into [0, π]. Going straight on is 0 and a full
// reversal is π; left and right turns of the same size give the same value.
func AngleBetween(previous, tile, end Coordinates) float64 {
	travelled := previous.VectorTo(tile)
	remaining := tile.VectorTo(end)
	diff := remaining.Diff(travelled).Angle
	if diff <= math.Pi {
		return diff
	}
	return 2*math.Pi - diff
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
