package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/lawnchairsociety/warboard/internal/builder"
	"github.com/lawnchairsociety/warboard/internal/config"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/render"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

func main() {
	configFile := flag.String("config", "data/boardgen.yaml", "Path to config YAML file")
	tilesFile := flag.String("tiles", "", "Path to tile metadata YAML file (empty for built-in)")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	width := flag.Int("width", 0, "Board width (overrides config)")
	height := flag.Int("height", 0, "Board height (overrides config)")
	animate := flag.Bool("animate", false, "Draw each road carving step")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	noColor := flag.Bool("no-color", false, "Disable coloured output")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Board.Seed = *seed
		case "width":
			cfg.Board.Width = *width
		case "height":
			cfg.Board.Height = *height
		case "animate":
			cfg.Render.Animate = *animate
		case "no-color":
			cfg.Render.Color = !*noColor
		}
	})

	// Initialize logger first (before any logging)
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	plan, err := cfg.Plan()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	boardSeed := cfg.Board.Seed
	if boardSeed == 0 {
		boardSeed = time.Now().UnixNano()
		logger.Info("Board seed selected", "seed", boardSeed, "random", true)
	} else {
		logger.Info("Board seed selected", "seed", boardSeed, "random", false)
	}

	meta, err := loadMetadata(*tilesFile)
	if err != nil {
		logger.Error("Failed to load tile metadata", "path", *tilesFile, "error", err)
		os.Exit(1)
	}

	toStdout := *outputFile == ""
	var opts []render.Option
	if !cfg.Render.Color || !toStdout || color.NoColor {
		opts = append(opts, render.NoColor())
	}

	var builderOpts []builder.Option
	if cfg.Render.Animate && toStdout {
		frames, err := render.New(os.Stdout, meta, append(opts, render.Animate(50*time.Millisecond))...)
		if err != nil {
			logger.Error("Failed to create renderer", "error", err)
			os.Exit(1)
		}
		builderOpts = append(builderOpts, builder.WithObserver(frames))
	}

	b, err := builder.New(cfg.Builder(), rand.New(rand.NewSource(boardSeed)), builderOpts...)
	if err != nil {
		logger.Error("Failed to create builder", "error", err)
		os.Exit(1)
	}

	logger.Info("Generating board",
		"width", cfg.Board.Width,
		"height", cfg.Board.Height,
		"symmetry", plan.Symmetry.String(),
		"players", int(plan.Players))

	if err := b.Run(builder.DefaultStages(plan)...); err != nil {
		logger.Warning("Board generated with problems", "error", err)
	}
	summary := b.Summary()
	board := b.Build()

	var output bytes.Buffer
	term, err := render.New(&output, meta, opts...)
	if err != nil {
		logger.Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}
	if err := term.Render(board); err != nil {
		logger.Error("Failed to render board", "error", err)
		os.Exit(1)
	}
	output.WriteString("\n")
	if err := term.Summary(summary); err != nil {
		logger.Error("Failed to render summary", "error", err)
		os.Exit(1)
	}

	if !toStdout {
		if err := os.WriteFile(*outputFile, output.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Board written to %s (seed %d)\n", *outputFile, boardSeed)
	} else {
		fmt.Print(output.String())
		fmt.Printf("seed: %d\n", boardSeed)
	}
}

func loadMetadata(path string) (tile.Metadata, error) {
	if path == "" {
		return tile.LoadMetadata()
	}
	return tile.LoadMetadataFromYAML(path)
}
