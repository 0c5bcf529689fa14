package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/warboard/internal/builder"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/symmetry"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all board generation settings.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Terrain TerrainConfig `yaml:"terrain"`
	Render  RenderConfig  `yaml:"render"`
	Logging logger.Config `yaml:"logging"`
}

// BoardConfig holds the board shape and generation seed.
type BoardConfig struct {
	Width  int `yaml:"width" env:"BOARDGEN_WIDTH"`
	Height int `yaml:"height" env:"BOARDGEN_HEIGHT"`

	// Seed for the random generator. 0 picks a seed from the clock.
	Seed int64 `yaml:"seed" env:"BOARDGEN_SEED"`

	// Symmetry is one of rotational, horizontal or vertical.
	Symmetry string `yaml:"symmetry" env:"BOARDGEN_SYMMETRY"`

	Players int `yaml:"players" env:"BOARDGEN_PLAYERS"`
}

// TerrainConfig holds the tiles and densities used by the terrain stages.
type TerrainConfig struct {
	// Densities are the chance, per mirrored pair of empty tiles, of placing the terrain.
	ForestDensity   float64 `yaml:"forest_density" env:"BOARDGEN_FOREST_DENSITY"`
	MountainDensity float64 `yaml:"mountain_density" env:"BOARDGEN_MOUNTAIN_DENSITY"`

	// Fill is the tile every remaining empty tile becomes.
	Fill string `yaml:"fill" env:"BOARDGEN_FILL"`

	// Road is the tile carved between headquarters.
	Road string `yaml:"road" env:"BOARDGEN_ROAD"`
}

// RenderConfig holds terminal output settings.
type RenderConfig struct {
	Color   bool `yaml:"color" env:"BOARDGEN_COLOR"`
	Animate bool `yaml:"animate" env:"BOARDGEN_ANIMATE"`
}

// DefaultConfig returns a Config for a 20x20 two-player rotational board.
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Width:    20,
			Height:   20,
			Seed:     0,
			Symmetry: symmetry.Rotational.String(),
			Players:  int(tile.Two),
		},
		Terrain: TerrainConfig{
			ForestDensity:   0.1,
			MountainDensity: 0.05,
			Fill:            tile.Plains.String(),
			Road:            tile.Road.String(),
		},
		Render: RenderConfig{
			Color:   true,
			Animate: false,
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file and then applies
// environment overrides. A missing file is not an error; the defaults are
// used instead.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logger.Debug("Config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from BOARDGEN_* and LOG_* environment
// variables. Unset variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every setting. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: board size %dx%d", ErrInvalid, c.Board.Width, c.Board.Height))
	}
	if c.Board.Players < int(tile.Two) || c.Board.Players > int(tile.Four) {
		errs = append(errs, fmt.Errorf("%w: players must be 2 to 4, got %d", ErrInvalid, c.Board.Players))
	}
	if !validDensity(c.Terrain.ForestDensity) {
		errs = append(errs, fmt.Errorf("%w: forest density %v", ErrInvalid, c.Terrain.ForestDensity))
	}
	if !validDensity(c.Terrain.MountainDensity) {
		errs = append(errs, fmt.Errorf("%w: mountain density %v", ErrInvalid, c.Terrain.MountainDensity))
	}
	if _, err := symmetry.ParseMode(c.Board.Symmetry); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if _, err := terrain(c.Terrain.Fill); err != nil {
		errs = append(errs, fmt.Errorf("%w: fill: %v", ErrInvalid, err))
	}
	if _, err := terrain(c.Terrain.Road); err != nil {
		errs = append(errs, fmt.Errorf("%w: road: %v", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// Builder returns the board dimensions for builder.New.
func (c *Config) Builder() builder.Config {
	return builder.Config{Width: c.Board.Width, Height: c.Board.Height}
}

// Plan converts the settings into a generation plan. The config must be valid.
func (c *Config) Plan() (builder.Plan, error) {
	if err := c.Validate(); err != nil {
		return builder.Plan{}, err
	}

	mode, _ := symmetry.ParseMode(c.Board.Symmetry)
	fill, _ := terrain(c.Terrain.Fill)
	road, _ := terrain(c.Terrain.Road)
	return builder.Plan{
		Players:         tile.Players(c.Board.Players),
		Symmetry:        mode,
		Road:            road,
		Fill:            fill,
		ForestDensity:   c.Terrain.ForestDensity,
		MountainDensity: c.Terrain.MountainDensity,
	}, nil
}

func validDensity(d float64) bool {
	return !math.IsNaN(d) && d >= 0 && d <= 1
}

// terrain parses a tile name that can be placed without an owner.
func terrain(name string) (tile.Type, error) {
	kind, err := tile.ParseKind(name)
	if err != nil {
		return tile.EmptyTile, err
	}
	if kind == tile.Empty || kind == tile.Headquarters {
		return tile.EmptyTile, fmt.Errorf("%s cannot be placed as terrain", kind)
	}
	return tile.Type{Kind: kind}, nil
}
