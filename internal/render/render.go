// Package render draws boards to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/lawnchairsociety/warboard/internal/grid"
	"github.com/lawnchairsociety/warboard/internal/logger"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

const (
	terrainGlyph   = "■"
	structureGlyph = "★"
	unknownGlyph   = "?"

	clearScreen = "\x1b[2J\x1b[1;1H"
)

// Option configures a Terminal
type Option func(*Terminal)

// NoColor disables colour escapes, e.g. when writing to a file.
func NoColor() Option {
	return func(t *Terminal) { t.noColor = true }
}

// Animate clears the screen before every frame and pauses for delay after
// each frame drawn as a carve observer.
func Animate(delay time.Duration) Option {
	return func(t *Terminal) {
		t.clear = true
		t.delay = delay
	}
}

// Terminal writes one coloured glyph per tile, one line per row.
type Terminal struct {
	out     io.Writer
	noColor bool
	clear   bool
	delay   time.Duration

	palette map[tile.Kind]*color.Color
	players map[tile.Player]*color.Color
	unknown *color.Color
}

// New creates a Terminal writing to out. Terrain colours come from meta;
// owned tiles use their player's colour.
func New(out io.Writer, meta tile.Metadata, opts ...Option) (*Terminal, error) {
	t := &Terminal{
		out:     out,
		palette: make(map[tile.Kind]*color.Color, len(meta)),
	}
	for _, opt := range opts {
		opt(t)
	}

	for id, def := range meta {
		kind, err := tile.FromID(id, tile.PlayerOne)
		if err != nil {
			return nil, err
		}
		r, g, b, err := def.RGB()
		if err != nil {
			return nil, err
		}
		t.palette[kind.Kind] = t.colour(color.RGB(r, g, b))
	}

	t.players = map[tile.Player]*color.Color{
		tile.PlayerOne: t.colour(color.RGB(255, 200, 0)),
		tile.PlayerTwo: t.colour(color.RGB(0, 200, 255)),
	}
	t.unknown = t.colour(color.New(color.FgHiMagenta, color.Bold))
	return t, nil
}

func (t *Terminal) colour(c *color.Color) *color.Color {
	if t.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// Glyph returns the coloured glyph for a single tile.
func (t *Terminal) Glyph(tt tile.Type) string {
	c, glyph := t.style(tt)
	return c.Sprint(glyph)
}

func (t *Terminal) style(tt tile.Type) (*color.Color, string) {
	glyph := terrainGlyph
	switch tt.Kind {
	case tile.Empty:
		return t.unknown, unknownGlyph
	case tile.Factory, tile.Headquarters:
		glyph = structureGlyph
	}

	if tt.Owner != tile.NoPlayer {
		if c, ok := t.players[tt.Owner]; ok {
			return c, glyph
		}
		return t.unknown, unknownGlyph
	}
	if c, ok := t.palette[tt.Kind]; ok {
		return c, glyph
	}
	return t.unknown, unknownGlyph
}

// Render draws the whole grid.
func (t *Terminal) Render(g *grid.Grid) error {
	var sb strings.Builder
	if t.clear {
		sb.WriteString(clearScreen)
	}
	for _, row := range g.Rows() {
		for _, tt := range row {
			sb.WriteString(t.Glyph(tt))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(t.out, sb.String())
	return err
}

// RenderOverlay draws g with c applied, leaving g untouched.
func (t *Terminal) RenderOverlay(g *grid.Grid, c grid.Collection) error {
	return t.Render(c.Overlay(g))
}

// Observe draws each carve step as a frame.
func (t *Terminal) Observe(g *grid.Grid, overlay grid.Collection) {
	if err := t.RenderOverlay(g, overlay); err != nil {
		logger.Warning("Failed to draw frame", "error", err)
		return
	}
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
}

// Summary writes one line per tile kind present in counts, in kind order.
func (t *Terminal) Summary(counts map[tile.Kind]int) error {
	var sb strings.Builder
	for _, kind := range tile.AllKinds() {
		n, ok := counts[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-14s %d\n", kind.String()+":", n)
	}
	_, err := io.WriteString(t.out, sb.String())
	return err
}
