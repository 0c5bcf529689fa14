package grid

import "github.com/lawnchairsociety/warboard/internal/tile"

// Patch sets a single tile index to a tile type.
type Patch struct {
	Index int
	Tile  tile.Type
}

// Collection is an ordered overlay of patches. It stages changes, such as a
// carved road, without touching the grid until applied. When two patches
// target the same index the later one wins.
type Collection []Patch

// Add appends a patch.
func (c *Collection) Add(index int, t tile.Type) {
	*c = append(*c, Patch{Index: index, Tile: t})
}

// Overlay returns a copy of g with the collection applied. g is unchanged.
func (c Collection) Overlay(g *Grid) *Grid {
	preview := g.Clone()
	preview.Apply(c)
	return preview
}
