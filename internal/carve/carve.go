// Package carve builds a one-tile-wide road between two board locations.
//
// The road is grown one tile at a time. Each step picks a neighbour of the
// last tile at random, biased toward the destination, and records the
// mirror image of the chosen tile alongside it so the road and its twin are
// always stamped together. Dead ends are escaped by unwinding an increasing
// number of steps and trying again.
package carve

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/lawnchairsociety/warboard/internal/geometry"
	"github.com/lawnchairsociety/warboard/internal/grid"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/symmetry"
	"github.com/lawnchairsociety/warboard/internal/tile"
	"github.com/lawnchairsociety/warboard/internal/weighted"
)

var (
	ErrNoNextTile   = errors.New("carve: no viable next tile")
	ErrInfiniteLoop = errors.New("carve: exceeded maximum steps")
)

const (
	// MaxSteps bounds the number of steps a single carve may take.
	MaxSteps = 10_000
	// MaxBacktracks is the number of dead ends tolerated before giving up.
	MaxBacktracks = 100

	destinationWeight = math.MaxFloat32
)

// Error is returned when carving fails. It carries whatever part of the
// path had been built so the caller can still stamp it.
type Error struct {
	Err         error
	Tiles       []geometry.Coordinates
	Reciprocals []geometry.Coordinates
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (partial path of %d tiles)", e.Err, len(e.Tiles))
}

func (e *Error) Unwrap() error { return e.Err }

// Observer receives a snapshot after every step. It must not modify the grid.
type Observer interface {
	Observe(g *grid.Grid, overlay grid.Collection)
}

// NopObserver ignores every snapshot.
type NopObserver struct{}

func (NopObserver) Observe(*grid.Grid, grid.Collection) {}

// Option configures a Carver
type Option func(*Carver)

// WithObserver sets the observer notified after each step.
func WithObserver(o Observer) Option {
	return func(c *Carver) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithMaxSteps overrides MaxSteps.
func WithMaxSteps(n int) Option {
	return func(c *Carver) { c.maxSteps = n }
}

// WithMaxBacktracks overrides MaxBacktracks.
func WithMaxBacktracks(n int) Option {
	return func(c *Carver) { c.maxBacktracks = n }
}

// Carver carves roads across a grid. It only reads the grid.
type Carver struct {
	grid          *grid.Grid
	mirror        *symmetry.Mirror
	rng           *rand.Rand
	observer      Observer
	maxSteps      int
	maxBacktracks int
}

// New creates a Carver for g. The mirror must be built for g's dimensions.
func New(g *grid.Grid, mirror *symmetry.Mirror, rng *rand.Rand, opts ...Option) *Carver {
	c := &Carver{
		grid:          g,
		mirror:        mirror,
		rng:           rng,
		observer:      NopObserver{},
		maxSteps:      MaxSteps,
		maxBacktracks: MaxBacktracks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path is a carved road. Tiles excludes both endpoints; Reciprocals[i] is
// always the mirror of Tiles[i].
type Path struct {
	From, To    geometry.Coordinates
	Tiles       []geometry.Coordinates
	Reciprocals []geometry.Coordinates
}

// Collection maps every path tile and its mirror to t, forward path first.
func (p *Path) Collection(g *grid.Grid, t tile.Type) grid.Collection {
	c := make(grid.Collection, 0, len(p.Tiles)+len(p.Reciprocals))
	for _, pos := range p.Tiles {
		c.Add(g.IndexOf(pos), t)
	}
	for _, pos := range p.Reciprocals {
		c.Add(g.IndexOf(pos), t)
	}
	return c
}

// Generate carves a road from from to to. On failure the returned error is
// an *Error wrapping ErrNoNextTile or ErrInfiniteLoop.
func (c *Carver) Generate(from, to geometry.Coordinates, t tile.Type) (*Path, error) {
	run := &carving{
		Carver: c,
		path:   &Path{From: from, To: to},
		tile:   t,
	}

	logger.Debug("Carving path", "from", from.String(), "to", to.String())

	failures := 0
	for steps := 0; !run.isComplete(); steps++ {
		if steps >= c.maxSteps {
			logger.Warning("Path carving hit the step limit", "steps", steps)
			return nil, run.fail(ErrInfiniteLoop)
		}

		err := run.nextStep()
		if err == nil {
			continue
		}

		failures++
		if failures > c.maxBacktracks {
			return nil, err
		}
		logger.Debug("Dead end, backtracking", "failures", failures, "length", len(run.path.Tiles))
		run.deleteLast(failures)
	}

	return run.path, nil
}

// carving is the state of a single Generate call.
type carving struct {
	*Carver
	path *Path
	tile tile.Type
}

func (r *carving) last() geometry.Coordinates {
	if n := len(r.path.Tiles); n > 0 {
		return r.path.Tiles[n-1]
	}
	return r.path.From
}

// nextStep extends the path by one tile. A dead end is only an error when
// the path has not already met its mirror.
func (r *carving) nextStep() error {
	last := r.last()
	candidates := r.grid.NeighboursOf(last)
	weights := make([]float64, len(candidates))
	for i, candidate := range candidates {
		weights[i] = r.weight(candidate)
	}

	next, ok := weighted.Choose(r.rng, candidates, weights)
	if !ok {
		if r.meetsMirror() {
			return nil
		}
		return r.fail(ErrNoNextTile)
	}

	r.path.Tiles = append(r.path.Tiles, next)
	r.path.Reciprocals = append(r.path.Reciprocals, r.mirror.Reciprocal(next))

	r.observer.Observe(r.grid, r.path.Collection(r.grid, r.tile))
	return nil
}

// isComplete reports whether the path touches the destination or its own mirror.
func (r *carving) isComplete() bool {
	return r.last().Neighbours(r.path.To) || r.meetsMirror()
}

func (r *carving) meetsMirror() bool {
	for _, a := range r.path.Tiles {
		for _, b := range r.path.Reciprocals {
			if a.Neighbours(b) {
				return true
			}
		}
	}
	return false
}

// weight scores a candidate next tile. The destination always wins; tiles
// that are occupied, already used, or would widen the road score 0;
// otherwise the score ranges from 0.2 (heading straight away from the
// destination) to 1.0 (heading straight at it).
func (r *carving) weight(candidate geometry.Coordinates) float64 {
	if candidate == r.path.To {
		return destinationWeight
	}

	if !r.grid.AtCoordinates(candidate).IsEmpty() ||
		candidate == r.path.From ||
		slices.Contains(r.path.Tiles, candidate) {
		return 0
	}

	touching := 0
	for _, n := range r.grid.NeighboursOf(candidate) {
		if n == r.path.From || n == r.path.To || slices.Contains(r.path.Tiles, n) {
			touching++
		}
	}
	if touching > 1 {
		return 0
	}

	diff := geometry.AngleBetween(r.last(), candidate, r.path.To)
	return 0.4*math.Cos(diff) + 0.6
}

// deleteLast unwinds up to n steps.
func (r *carving) deleteLast(n int) {
	keep := max(len(r.path.Tiles)-n, 0)
	r.path.Tiles = r.path.Tiles[:keep]
	r.path.Reciprocals = r.path.Reciprocals[:keep]
}

func (r *carving) fail(err error) *Error {
	return &Error{
		Err:         err,
		Tiles:       slices.Clone(r.path.Tiles),
		Reciprocals: slices.Clone(r.path.Reciprocals),
	}
}
