// Package grid holds the board: its dimensions and a flat, row-major tile array.
package grid

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/warboard/internal/geometry"
	"github.com/lawnchairsociety/warboard/internal/tile"
)

var ErrInvalidSize = errors.New("grid: width and height must be greater than zero")

// Grid is a width x height board stored row-major: index = y*width + x.
type Grid struct {
	width, height int
	tiles         []tile.Type
}

// New creates a grid of the given size with every tile Empty.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]tile.Type, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of tiles, always Width()*Height().
func (g *Grid) Len() int { return len(g.tiles) }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c geometry.Coordinates) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IndexOf maps coordinates to a tile index. Out-of-bounds coordinates are a
// programming error and panic.
func (g *Grid) IndexOf(c geometry.Coordinates) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: coordinates %s out of bounds for %dx%d grid", c, g.width, g.height))
	}
	return c.Y*g.width + c.X
}

// CoordinatesOf maps a tile index back to coordinates.
func (g *Grid) CoordinatesOf(i int) geometry.Coordinates {
	if i < 0 || i >= len(g.tiles) {
		panic(fmt.Sprintf("grid: index %d out of bounds for %dx%d grid", i, g.width, g.height))
	}
	return geometry.Coordinates{X: i % g.width, Y: i / g.width}
}

// NeighboursOf returns the in-bounds orthogonal neighbours of c in
// geometry.AllDirections order.
func (g *Grid) NeighboursOf(c geometry.Coordinates) []geometry.Coordinates {
	neighbours := make([]geometry.Coordinates, 0, 4)
	for _, dir := range geometry.AllDirections() {
		n := c.Step(dir)
		if g.InBounds(n) {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

// At returns the tile at index i.
func (g *Grid) At(i int) tile.Type {
	return g.tiles[i]
}

// AtCoordinates returns the tile at c.
func (g *Grid) AtCoordinates(c geometry.Coordinates) tile.Type {
	return g.tiles[g.IndexOf(c)]
}

// Set replaces the tile at index i.
func (g *Grid) Set(i int, t tile.Type) {
	g.tiles[i] = t
}

// SetCoordinates replaces the tile at c.
func (g *Grid) SetCoordinates(c geometry.Coordinates, t tile.Type) {
	g.tiles[g.IndexOf(c)] = t
}

// Apply writes every patch of the collection in order.
func (g *Grid) Apply(c Collection) {
	for _, p := range c {
		g.Set(p.Index, p.Tile)
	}
}

// FindAll returns the coordinates of every tile matching match, in row-major order.
func (g *Grid) FindAll(match func(tile.Type) bool) []geometry.Coordinates {
	var found []geometry.Coordinates
	for i, t := range g.tiles {
		if match(t) {
			found = append(found, g.CoordinatesOf(i))
		}
	}
	return found
}

// Count returns the number of tiles matching match.
func (g *Grid) Count(match func(tile.Type) bool) int {
	n := 0
	for _, t := range g.tiles {
		if match(t) {
			n++
		}
	}
	return n
}

// Rows returns the tiles split into rows, top to bottom. The rows share
// storage with the grid and must not be modified.
func (g *Grid) Rows() [][]tile.Type {
	rows := make([][]tile.Type, g.height)
	for y := range rows {
		rows[y] = g.tiles[y*g.width : (y+1)*g.width : (y+1)*g.width]
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]tile.Type, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{width: g.width, height: g.height, tiles: tiles}
}
