// Package builder generates a symmetric two-player board by running
// construction stages over a single grid.
//
// Every stage that places tiles places them in mirrored pairs, so the board
// stays symmetric after each call rather than being repaired afterwards.
// Stages that cannot fully succeed still leave a usable board behind and
// report what went wrong through their error.
package builder

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/warboard/internal/carve"
	"github.com/lawnchairsociety/warboard/internal/grid"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/symmetry"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

var (
	ErrNotImplemented       = errors.New("builder: not implemented")
	ErrInvalidDensity       = errors.New("builder: density must be between 0.0 and 1.0")
	ErrHeadquartersNotFound = errors.New("builder: headquarters not found")
	ErrNoHeadquartersSite   = errors.New("builder: board too small for mirrored headquarters")
)

// Config contains the board dimensions
type Config struct {
	Width  int
	Height int
}

// Option configures a Builder
type Option func(*Builder)

// WithObserver sets the observer notified while roads are carved.
func WithObserver(o carve.Observer) Option {
	return func(b *Builder) {
		if o != nil {
			b.carveOpts = append(b.carveOpts, carve.WithObserver(o))
		}
	}
}

// WithCarveOptions passes options through to every road carve.
func WithCarveOptions(opts ...carve.Option) Option {
	return func(b *Builder) {
		b.carveOpts = append(b.carveOpts, opts...)
	}
}

// Builder owns the grid under construction. It is not safe for concurrent
// use; stages run one after another.
type Builder struct {
	grid      *grid.Grid
	mirror    *symmetry.Mirror
	players   tile.Players
	rng       *rand.Rand
	carveOpts []carve.Option
}

// New creates a builder for an empty board. All randomness is drawn from rng,
// so the same seed and stages always produce the same board.
func New(config Config, rng *rand.Rand, opts ...Option) (*Builder, error) {
	g, err := grid.New(config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	mirror, err := symmetry.NewMirror(symmetry.Rotational, config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		grid:    g,
		mirror:  mirror,
		players: tile.Two,
		rng:     rng,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// SetPlayers sets the player count. Only two players are supported.
func (b *Builder) SetPlayers(players tile.Players) error {
	if !players.Implemented() {
		return fmt.Errorf("%w: %d players", ErrNotImplemented, players)
	}
	b.players = players
	return nil
}

// SetSymmetry sets the symmetry mode. Unsupported modes leave the current
// mode in place and return symmetry.ErrUnsupported.
func (b *Builder) SetSymmetry(mode symmetry.Mode) error {
	mirror, err := symmetry.NewMirror(mode, b.grid.Width(), b.grid.Height())
	if err != nil {
		return err
	}
	b.mirror = mirror
	return nil
}

// Grid gives read access to the board under construction.
func (b *Builder) Grid() *grid.Grid {
	return b.grid
}

// Build returns a copy of the board. The builder stays usable, and later
// stages do not change boards already built.
func (b *Builder) Build() *grid.Grid {
	return b.grid.Clone()
}

// Summary counts the tiles of each kind currently on the board.
func (b *Builder) Summary() map[tile.Kind]int {
	counts := make(map[tile.Kind]int)
	for _, kind := range tile.AllKinds() {
		if n := b.grid.Count(func(t tile.Type) bool { return t.Kind == kind }); n > 0 {
			counts[kind] = n
		}
	}
	return counts
}

func (b *Builder) notImplemented(stage string) error {
	logger.Warning("Stage not yet implemented, skipping", "stage", stage)
	return fmt.Errorf("%w: %s", ErrNotImplemented, stage)
}
