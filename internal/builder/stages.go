package builder

import (
	"errors"
	"fmt"
	"math"

	"github.com/lawnchairsociety/warboard/internal/carve"
	"github.com/lawnchairsociety/warboard/internal/geometry"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

// Fill sets every remaining Empty tile to t.
func (b *Builder) Fill(t tile.Type) error {
	return b.Scatter(t, 1.0)
}

// AddForests scatters forest over empty tiles.
func (b *Builder) AddForests(density float64) error {
	return b.Scatter(tile.ForestTile, density)
}

// AddMountains scatters mountains over empty tiles.
func (b *Builder) AddMountains(density float64) error {
	return b.Scatter(tile.MountainTile, density)
}

// Scatter visits every tile in row-major order. Each visit where both the
// tile and its mirror are still Empty makes one draw, and a hit sets both
// to t, so the pair is never split. A pair that misses on its first visit
// is drawn again when the loop reaches the mirror. density must be within
// [0, 1].
func (b *Builder) Scatter(t tile.Type, density float64) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		logger.Warning("Density must be between 0.0 and 1.0, skipping", "tile", t.String(), "density", density)
		return fmt.Errorf("%w: got %v", ErrInvalidDensity, density)
	}

	placed := 0
	for i := 0; i < b.grid.Len(); i++ {
		r := b.mirror.ReciprocalIndex(i)
		if !b.grid.At(i).IsEmpty() || !b.grid.At(r).IsEmpty() {
			continue
		}
		if b.rng.Float64() < density {
			b.grid.Set(i, t)
			b.grid.Set(r, t)
			placed++
		}
	}

	logger.Debug("Scattered tiles", "tile", t.String(), "density", density, "pairs", placed)
	return nil
}

// PlaceHeadquarters puts PlayerOne's headquarters on a random tile and
// PlayerTwo's on its mirror. Sites whose mirror shares a row or a column
// with them are rejected.
func (b *Builder) PlaceHeadquarters() error {
	if !b.players.Implemented() {
		return b.notImplemented(fmt.Sprintf("headquarters for %d players", b.players))
	}

	width, height := b.grid.Width(), b.grid.Height()
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: %dx%d", ErrNoHeadquartersSite, width, height)
	}

	var site, mirrored geometry.Coordinates
	for {
		site = geometry.C(b.rng.Intn(width), b.rng.Intn(height))
		mirrored = b.mirror.Reciprocal(site)
		if mirrored.X != site.X && mirrored.Y != site.Y {
			break
		}
	}

	b.grid.SetCoordinates(site, tile.NewHeadquarters(tile.PlayerOne))
	b.grid.SetCoordinates(mirrored, tile.NewHeadquarters(tile.PlayerTwo))

	logger.Info("Placed headquarters", "player_one", site.String(), "player_two", mirrored.String())
	return nil
}

// ConnectHeadquarters carves a road of type t from the first headquarters in
// row-major order to the headquarters on its mirror tile.
// If carving fails, whatever part of the road was built is stamped as plain
// road so the bases are never left without any connection, and the carve
// error is returned.
func (b *Builder) ConnectHeadquarters(t tile.Type) error {
	hqs := b.grid.FindAll(tile.Type.IsHeadquarters)
	if len(hqs) == 0 {
		logger.Warning("Couldn't find headquarters, skipping road")
		return fmt.Errorf("%w: found none", ErrHeadquartersNotFound)
	}

	from := hqs[0]
	to := b.mirror.Reciprocal(from)
	if from == to || !b.grid.AtCoordinates(to).IsHeadquarters() {
		logger.Warning("Couldn't find mirrored headquarters, skipping road", "from", from.String(), "to", to.String())
		return fmt.Errorf("%w: no headquarters at %s", ErrHeadquartersNotFound, to)
	}

	carver := carve.New(b.grid, b.mirror, b.rng, b.carveOpts...)
	path, err := carver.Generate(from, to, t)
	if err != nil {
		var carveErr *carve.Error
		if errors.As(err, &carveErr) {
			for i := range carveErr.Tiles {
				b.grid.SetCoordinates(carveErr.Tiles[i], tile.RoadTile)
				b.grid.SetCoordinates(carveErr.Reciprocals[i], tile.RoadTile)
			}
			logger.Warning("Path carving failed, stamped partial road", "error", err, "tiles", len(carveErr.Tiles))
		}
		return fmt.Errorf("connect headquarters: %w", err)
	}

	b.grid.Apply(path.Collection(b.grid, t))
	logger.Info("Connected headquarters", "from", from.String(), "to", to.String(), "tiles", len(path.Tiles))
	return nil
}

// CreateTeamCities is not implemented yet.
func (b *Builder) CreateTeamCities() error {
	return b.notImplemented("team cities")
}

// CreateNeutralCities is not implemented yet.
func (b *Builder) CreateNeutralCities() error {
	return b.notImplemented("neutral cities")
}

// CreateTeamFactories is not implemented yet.
func (b *Builder) CreateTeamFactories() error {
	return b.notImplemented("team factories")
}

// CreateNeutralFactories is not implemented yet.
func (b *Builder) CreateNeutralFactories() error {
	return b.notImplemented("neutral factories")
}

// CreateRoads is not implemented yet.
func (b *Builder) CreateRoads() error {
	return b.notImplemented("roads")
}

// AddSeas is not implemented yet.
func (b *Builder) AddSeas() error {
	return b.notImplemented("seas")
}
