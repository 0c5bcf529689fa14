// Package symmetry maps board coordinates to their mirrored counterpart.
package symmetry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/warboard/internal/geometry"
)

var ErrUnsupported = errors.New("symmetry: mode not supported")

// Mode selects how one half of the board mirrors the other
type Mode int

const (
	Rotational Mode = iota // point symmetry about the board centre
	Horizontal
	Vertical
)

// String returns the string representation of a Mode
func (m Mode) String() string {
	switch m {
	case Rotational:
		return "rotational"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Supported reports whether the mode has a defined transform.
func (m Mode) Supported() bool {
	return m == Rotational
}

// ParseMode parses a mode name, case-insensitive
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rotational":
		return Rotational, nil
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Rotational, fmt.Errorf("unknown symmetry mode: %s", s)
}

// Reciprocal returns the mirror image of c on a width x height board.
// Modes without a transform return ErrUnsupported.
func Reciprocal(c geometry.Coordinates, mode Mode, width, height int) (geometry.Coordinates, error) {
	switch mode {
	case Rotational:
		return geometry.Coordinates{X: width - 1 - c.X, Y: height - 1 - c.Y}, nil
	default:
		return c, fmt.Errorf("%w: %s", ErrUnsupported, mode)
	}
}

// Mirror is a mode bound to fixed board dimensions. It can only be built
// for supported modes, so its methods never fail.
type Mirror struct {
	mode          Mode
	width, height int
}

// NewMirror validates mode and returns a Mirror for a width x height board.
func NewMirror(mode Mode, width, height int) (*Mirror, error) {
	if !mode.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, mode)
	}
	return &Mirror{mode: mode, width: width, height: height}, nil
}

// Mode returns the symmetry mode.
func (m *Mirror) Mode() Mode { return m.mode }

// Reciprocal returns the mirror image of c.
func (m *Mirror) Reciprocal(c geometry.Coordinates) geometry.Coordinates {
	r, err := Reciprocal(c, m.mode, m.width, m.height)
	if err != nil {
		// unreachable: NewMirror only accepts supported modes
		panic(err)
	}
	return r
}

// ReciprocalIndex returns the row-major index of the mirror of index i.
func (m *Mirror) ReciprocalIndex(i int) int {
	c := geometry.Coordinates{X: i % m.width, Y: i / m.width}
	r := m.Reciprocal(c)
	return r.Y*m.width + r.X
}
