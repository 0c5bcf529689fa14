package builder

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/symmetry"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

// Stage is one named step of board generation.
type Stage struct {
	Name string
	Run  func(*Builder) error
}

// Plan holds the settings the default stages are built from.
type Plan struct {
	Players         tile.Players
	Symmetry        symmetry.Mode
	Road            tile.Type
	Fill            tile.Type
	ForestDensity   float64
	MountainDensity float64
}

// DefaultPlan returns the settings used when nothing is configured.
func DefaultPlan() Plan {
	return Plan{
		Players:         tile.Two,
		Symmetry:        symmetry.Rotational,
		Road:            tile.RoadTile,
		Fill:            tile.PlainsTile,
		ForestDensity:   0.1,
		MountainDensity: 0.05,
	}
}

// DefaultStages returns the standard generation sequence. Roads are carved
// before any terrain so they only have to route around the headquarters,
// and plains are filled last.
func DefaultStages(p Plan) []Stage {
	return []Stage{
		{Name: "players", Run: func(b *Builder) error { return b.SetPlayers(p.Players) }},
		{Name: "symmetry", Run: func(b *Builder) error { return b.SetSymmetry(p.Symmetry) }},
		{Name: "headquarters", Run: (*Builder).PlaceHeadquarters},
		{Name: "connect headquarters", Run: func(b *Builder) error { return b.ConnectHeadquarters(p.Road) }},
		{Name: "forests", Run: func(b *Builder) error { return b.AddForests(p.ForestDensity) }},
		{Name: "mountains", Run: func(b *Builder) error { return b.AddMountains(p.MountainDensity) }},
		{Name: "fill", Run: func(b *Builder) error { return b.Fill(p.Fill) }},
	}
}

// Run executes stages in order. A failing stage is logged and skipped; the
// remaining stages still run. The returned error joins every stage failure.
func (b *Builder) Run(stages ...Stage) error {
	var errs []error
	for _, stage := range stages {
		if err := stage.Run(b); err != nil {
			logger.Warning("Stage did not complete", "stage", stage.Name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", stage.Name, err))
			continue
		}
		logger.Info("Stage complete", "stage", stage.Name)
	}
	return errors.Join(errs...)
}
