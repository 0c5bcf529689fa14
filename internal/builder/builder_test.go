package builder

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/warboard/internal/carve"
	"github.com/lawnchairsociety/warboard/internal/geometry"
	"github.com/lawnchairsociety/warboard/internal/grid"
	"github.com/lawnchairsociety/warboard/internal/symmetry"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

func newBuilder(t *testing.T, w, h int, seed int64, opts ...Option) *Builder {
	t.Helper()
	b, err := New(Config{Width: w, Height: h}, rand.New(rand.NewSource(seed)), opts...)
	require.NoError(t, err)
	return b
}

// assertSymmetric checks that every tile has the same kind as its mirror.
func assertSymmetric(t *testing.T, b *Builder) {
	t.Helper()
	for i := 0; i < b.grid.Len(); i++ {
		r := b.mirror.ReciprocalIndex(i)
		assert.Equal(t, b.grid.At(i).Kind, b.grid.At(r).Kind,
			"%s and %s differ", b.grid.CoordinatesOf(i), b.grid.CoordinatesOf(r))
	}
}

func emptyCount(g *grid.Grid) int {
	return g.Count(tile.Type.IsEmpty)
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(Config{Width: 0, Height: 5}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, grid.ErrInvalidSize)
}

func TestSetPlayers(t *testing.T) {
	b := newBuilder(t, 10, 10, 1)

	assert.NoError(t, b.SetPlayers(tile.Two))
	for _, p := range []tile.Players{tile.Three, tile.Four} {
		assert.ErrorIs(t, b.SetPlayers(p), ErrNotImplemented)
	}
	assert.Equal(t, tile.Two, b.players)
}

func TestSetSymmetryUnsupported(t *testing.T) {
	b := newBuilder(t, 10, 10, 1)

	assert.NoError(t, b.SetSymmetry(symmetry.Rotational))
	assert.ErrorIs(t, b.SetSymmetry(symmetry.Horizontal), symmetry.ErrUnsupported)
	assert.ErrorIs(t, b.SetSymmetry(symmetry.Vertical), symmetry.ErrUnsupported)
	assert.Equal(t, symmetry.Rotational, b.mirror.Mode())
}

func TestPlaceHeadquarters(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		b := newBuilder(t, 20, 20, seed)
		require.NoError(t, b.PlaceHeadquarters())

		hqs := b.grid.FindAll(tile.Type.IsHeadquarters)
		require.Len(t, hqs, 2, "seed %d", seed)

		a, c := hqs[0], hqs[1]
		assert.Equal(t, c, b.mirror.Reciprocal(a), "seed %d", seed)
		assert.NotEqual(t, a.X, c.X, "seed %d", seed)
		assert.NotEqual(t, a.Y, c.Y, "seed %d", seed)

		owners := map[tile.Player]bool{
			b.grid.AtCoordinates(a).Owner: true,
			b.grid.AtCoordinates(c).Owner: true,
		}
		assert.Equal(t, map[tile.Player]bool{tile.PlayerOne: true, tile.PlayerTwo: true}, owners)
	}
}

func TestPlaceHeadquartersNoSite(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {1, 8}, {8, 1}} {
		b := newBuilder(t, size[0], size[1], 3)

		assert.ErrorIs(t, b.PlaceHeadquarters(), ErrNoHeadquartersSite)
		assert.Equal(t, b.grid.Len(), emptyCount(b.grid))
	}
}

func TestPlaceHeadquartersSmallestBoard(t *testing.T) {
	b := newBuilder(t, 2, 2, 3)
	require.NoError(t, b.PlaceHeadquarters())
	assert.Len(t, b.grid.FindAll(tile.Type.IsHeadquarters), 2)
}

func TestScatterSymmetric(t *testing.T) {
	for _, size := range [][2]int{{10, 10}, {9, 7}, {1, 5}} {
		b := newBuilder(t, size[0], size[1], 11)

		require.NoError(t, b.Scatter(tile.ForestTile, 0.5))
		assertSymmetric(t, b)
	}
}

func TestScatterSkipsHalfOccupiedPairs(t *testing.T) {
	b := newBuilder(t, 6, 6, 1)
	b.grid.SetCoordinates(geometry.C(0, 0), tile.MountainTile)

	require.NoError(t, b.Scatter(tile.ForestTile, 1.0))

	assert.Equal(t, tile.MountainTile, b.grid.AtCoordinates(geometry.C(0, 0)))
	assert.Equal(t, tile.EmptyTile, b.grid.AtCoordinates(geometry.C(5, 5)))
	assert.Equal(t, 1, emptyCount(b.grid))
}

func TestScatterZeroDensity(t *testing.T) {
	b := newBuilder(t, 8, 8, 1)

	require.NoError(t, b.Scatter(tile.ForestTile, 0))
	assert.Equal(t, b.grid.Len(), emptyCount(b.grid))
}

func TestScatterDensity(t *testing.T) {
	b := newBuilder(t, 100, 100, 8)

	require.NoError(t, b.AddForests(0.3))
	forests := b.grid.Count(func(t tile.Type) bool { return t.Kind == tile.Forest })

	// A pair that misses on its first visit is drawn again at its mirror.
	expected := 1 - (1-0.3)*(1-0.3)
	assert.InDelta(t, expected, float64(forests)/float64(b.grid.Len()), 0.03)
}

func TestScatterInvalidDensity(t *testing.T) {
	for _, density := range []float64{-0.1, 1.5, math.NaN(), math.Inf(1)} {
		b := newBuilder(t, 8, 8, 1)

		assert.ErrorIs(t, b.Scatter(tile.ForestTile, density), ErrInvalidDensity)
		assert.ErrorIs(t, b.AddMountains(density), ErrInvalidDensity)
		assert.Equal(t, b.grid.Len(), emptyCount(b.grid), "density %v changed the board", density)
	}
}

func TestFill(t *testing.T) {
	b := newBuilder(t, 9, 9, 2)
	require.NoError(t, b.PlaceHeadquarters())

	require.NoError(t, b.Fill(tile.PlainsTile))

	assert.Zero(t, emptyCount(b.grid))
	assert.Len(t, b.grid.FindAll(tile.Type.IsHeadquarters), 2)
	assertSymmetric(t, b)
}

func TestUnimplementedStages(t *testing.T) {
	b := newBuilder(t, 8, 8, 1)

	stages := map[string]func() error{
		"team cities":       b.CreateTeamCities,
		"neutral cities":    b.CreateNeutralCities,
		"team factories":    b.CreateTeamFactories,
		"neutral factories": b.CreateNeutralFactories,
		"roads":             b.CreateRoads,
		"seas":              b.AddSeas,
	}
	for name, stage := range stages {
		t.Run(name, func(t *testing.T) {
			err := stage()
			assert.ErrorIs(t, err, ErrNotImplemented)
			assert.Contains(t, err.Error(), name)
			assert.Equal(t, b.grid.Len(), emptyCount(b.grid))
		})
	}
}

func TestConnectHeadquartersWithoutHeadquarters(t *testing.T) {
	b := newBuilder(t, 8, 8, 1)

	assert.ErrorIs(t, b.ConnectHeadquarters(tile.RoadTile), ErrHeadquartersNotFound)
	assert.Equal(t, b.grid.Len(), emptyCount(b.grid))
}

func TestConnectHeadquarters(t *testing.T) {
	successes := 0

	for seed := int64(1); seed <= 20; seed++ {
		b := newBuilder(t, 20, 20, seed)
		require.NoError(t, b.PlaceHeadquarters())

		err := b.ConnectHeadquarters(tile.RoadTile)
		if err == nil {
			successes++
			assert.Positive(t, b.grid.Count(func(t tile.Type) bool { return t.Kind == tile.Road }), "seed %d", seed)
		} else {
			var carveErr *carve.Error
			assert.ErrorAs(t, err, &carveErr, "seed %d", seed)
		}

		// Whole or partial, roads are always mirrored.
		assertSymmetric(t, b)
		assert.Len(t, b.grid.FindAll(tile.Type.IsHeadquarters), 2)
	}

	assert.Positive(t, successes)
}

func TestConnectHeadquartersStampsPartialRoad(t *testing.T) {
	b := newBuilder(t, 20, 20, 4, WithCarveOptions(carve.WithMaxSteps(3)))
	b.grid.SetCoordinates(geometry.C(0, 0), tile.NewHeadquarters(tile.PlayerOne))
	b.grid.SetCoordinates(geometry.C(19, 19), tile.NewHeadquarters(tile.PlayerTwo))

	err := b.ConnectHeadquarters(tile.RoadTile)

	require.ErrorIs(t, err, carve.ErrInfiniteLoop)
	var carveErr *carve.Error
	require.ErrorAs(t, err, &carveErr)

	roads := b.grid.FindAll(func(t tile.Type) bool { return t == tile.RoadTile })
	assert.Len(t, roads, 2*len(carveErr.Tiles))
	for _, pos := range carveErr.Tiles {
		assert.Equal(t, tile.RoadTile, b.grid.AtCoordinates(pos))
	}
	assertSymmetric(t, b)
}

func TestConnectHeadquartersNeedsMirroredPair(t *testing.T) {
	b := newBuilder(t, 20, 20, 1)
	b.grid.SetCoordinates(geometry.C(0, 0), tile.NewHeadquarters(tile.PlayerOne))
	b.grid.SetCoordinates(geometry.C(3, 0), tile.NewHeadquarters(tile.PlayerTwo))

	assert.ErrorIs(t, b.ConnectHeadquarters(tile.RoadTile), ErrHeadquartersNotFound)
	assert.Zero(t, b.grid.Count(func(t tile.Type) bool { return t.Kind == tile.Road }))
}

func TestConnectHeadquartersWithExtraPair(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b := newBuilder(t, 20, 20, seed)
		require.NoError(t, b.PlaceHeadquarters())
		require.NoError(t, b.PlaceHeadquarters())

		err := b.ConnectHeadquarters(tile.RoadTile)
		assert.NotErrorIs(t, err, ErrHeadquartersNotFound, "seed %d", seed)

		assertSymmetric(t, b)
		hqs := b.grid.FindAll(tile.Type.IsHeadquarters)
		for _, hq := range hqs {
			assert.True(t, b.grid.AtCoordinates(b.mirror.Reciprocal(hq)).IsHeadquarters(), "seed %d", seed)
		}
	}
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) Observe(*grid.Grid, grid.Collection) {
	o.calls++
}

func TestObserverSeesCarving(t *testing.T) {
	obs := &countingObserver{}
	b := newBuilder(t, 20, 20, 6, WithObserver(obs))
	require.NoError(t, b.PlaceHeadquarters())

	_ = b.ConnectHeadquarters(tile.RoadTile)

	assert.Positive(t, obs.calls)
}

func TestRunContinuesPastErrors(t *testing.T) {
	b := newBuilder(t, 8, 8, 1)

	err := b.Run(
		Stage{Name: "seas", Run: (*Builder).AddSeas},
		Stage{Name: "bad forests", Run: func(b *Builder) error { return b.AddForests(2) }},
		Stage{Name: "fill", Run: func(b *Builder) error { return b.Fill(tile.PlainsTile) }},
	)

	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.ErrorIs(t, err, ErrInvalidDensity)
	assert.Contains(t, err.Error(), "bad forests")
	assert.Zero(t, emptyCount(b.grid))
}

func TestRunNoErrors(t *testing.T) {
	b := newBuilder(t, 8, 8, 1)
	assert.NoError(t, b.Run(Stage{Name: "fill", Run: func(b *Builder) error { return b.Fill(tile.PlainsTile) }}))
}

func TestDefaultStages(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b := newBuilder(t, 20, 20, seed)

		err := b.Run(DefaultStages(DefaultPlan())...)
		if err != nil {
			// only the road can fail, and the board is still complete
			var carveErr *carve.Error
			require.ErrorAs(t, err, &carveErr, "seed %d", seed)
		}

		assert.Zero(t, emptyCount(b.grid), "seed %d", seed)
		assert.Len(t, b.grid.FindAll(tile.Type.IsHeadquarters), 2, "seed %d", seed)
		assertSymmetric(t, b)

		total := 0
		for _, n := range b.Summary() {
			total += n
		}
		assert.Equal(t, b.grid.Len(), total)
	}
}

func TestDefaultStagesUnsupportedSettings(t *testing.T) {
	plan := DefaultPlan()
	plan.Players = tile.Four
	plan.Symmetry = symmetry.Vertical

	b := newBuilder(t, 12, 12, 1)
	err := b.Run(DefaultStages(plan)...)

	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.ErrorIs(t, err, symmetry.ErrUnsupported)
	// the stored two-player rotational settings still produce a board
	assert.Zero(t, emptyCount(b.grid))
	assert.Len(t, b.grid.FindAll(tile.Type.IsHeadquarters), 2)
}

func TestDeterministic(t *testing.T) {
	a := newBuilder(t, 16, 12, 77)
	b := newBuilder(t, 16, 12, 77)

	_ = a.Run(DefaultStages(DefaultPlan())...)
	_ = b.Run(DefaultStages(DefaultPlan())...)

	assert.Equal(t, a.Build().Rows(), b.Build().Rows())
}

func TestSummary(t *testing.T) {
	b := newBuilder(t, 4, 4, 1)
	b.grid.SetCoordinates(geometry.C(0, 0), tile.ForestTile)
	b.grid.SetCoordinates(geometry.C(3, 3), tile.ForestTile)

	assert.Equal(t, map[tile.Kind]int{tile.Empty: 14, tile.Forest: 2}, b.Summary())
}

func TestBuild(t *testing.T) {
	b := newBuilder(t, 4, 4, 1)

	built := b.Build()
	assert.NotSame(t, b.Grid(), built)
	assert.Equal(t, b.Grid().Rows(), built.Rows())

	// the builder keeps working and no longer affects the built board
	require.NoError(t, b.Fill(tile.PlainsTile))
	assert.Equal(t, map[tile.Kind]int{tile.Plains: 16}, b.Summary())
	assert.Equal(t, built.Len(), emptyCount(built))
}
