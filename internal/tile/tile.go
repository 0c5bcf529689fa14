// Package tile defines the terrain and ownership variants a board cell can hold.
package tile

import (
	"errors"
	"fmt"
)

var ErrUnknownID = errors.New("tile: unknown tile id")

// Kind is the terrain or structure held by a tile
type Kind int

const (
	Empty        Kind = iota // Unassigned
	Plains                   // Open ground
	Sea                      // Water
	Mountain                 // Impassable high ground
	Forest                   // Cover
	Road                     // Connective tile carved between headquarters
	City                     // Capturable city, optionally owned
	Factory                  // Unit production, optionally owned
	Headquarters             // Player base, always owned
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Plains:
		return "plains"
	case Sea:
		return "sea"
	case Mountain:
		return "mountain"
	case Forest:
		return "forest"
	case Road:
		return "road"
	case City:
		return "city"
	case Factory:
		return "factory"
	case Headquarters:
		return "headquarters"
	default:
		return "unknown"
	}
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{Empty, Plains, Sea, Mountain, Forest, Road, City, Factory, Headquarters}
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return Empty, fmt.Errorf("unknown tile kind: %q", s)
}

// Player identifies the owner of a tile
type Player int

const (
	NoPlayer Player = iota
	PlayerOne
	PlayerTwo
	PlayerThree // declared, not yet playable
	PlayerFour  // declared, not yet playable
)

// String returns the string representation of a Player
func (p Player) String() string {
	switch p {
	case NoPlayer:
		return "neutral"
	case PlayerOne:
		return "player_one"
	case PlayerTwo:
		return "player_two"
	case PlayerThree:
		return "player_three"
	case PlayerFour:
		return "player_four"
	default:
		return "unknown"
	}
}

// Players is the number of players a board is generated for.
type Players int

const (
	Two   Players = 2
	Three Players = 3
	Four  Players = 4
)

// Implemented reports whether boards can be generated for this player count.
func (p Players) Implemented() bool {
	return p == Two
}

// Type is the full content of a single tile. It is comparable, so two
// tiles hold the same variant exactly when they are ==.
type Type struct {
	Kind  Kind
	Owner Player
}

// Terrain tiles, provided for readability at call sites.
var (
	EmptyTile    = Type{Kind: Empty}
	PlainsTile   = Type{Kind: Plains}
	SeaTile      = Type{Kind: Sea}
	MountainTile = Type{Kind: Mountain}
	ForestTile   = Type{Kind: Forest}
	RoadTile     = Type{Kind: Road}
)

// NewCity returns a city tile. Pass NoPlayer for a neutral city.
func NewCity(owner Player) Type {
	return Type{Kind: City, Owner: owner}
}

// NewFactory returns a factory tile. Pass NoPlayer for a neutral factory.
func NewFactory(owner Player) Type {
	return Type{Kind: Factory, Owner: owner}
}

// NewHeadquarters returns a headquarters tile. Headquarters are never neutral.
func NewHeadquarters(owner Player) Type {
	if owner == NoPlayer {
		panic("tile: headquarters must have an owner")
	}
	return Type{Kind: Headquarters, Owner: owner}
}

// IsEmpty reports whether the tile is unassigned.
func (t Type) IsEmpty() bool {
	return t.Kind == Empty
}

// IsHeadquarters reports whether the tile is a player base.
func (t Type) IsHeadquarters() bool {
	return t.Kind == Headquarters
}

// String returns the kind, plus the owner for owned tiles.
func (t Type) String() string {
	if t.Owner == NoPlayer {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Owner.String() + ")"
}

// ID is the stable numeric identifier of a tile kind, shared with the
// tile metadata file.
type ID int

// ID returns the metadata id of the tile. Empty tiles have no id.
func (t Type) ID() (ID, error) {
	switch t.Kind {
	case Plains:
		return 1, nil
	case Sea:
		return 2, nil
	case Forest:
		return 3, nil
	case Mountain:
		return 4, nil
	case Road:
		return 5, nil
	case City:
		return 6, nil
	case Factory:
		return 7, nil
	case Headquarters:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: no id for %s", ErrUnknownID, t)
	}
}

// FromID converts a metadata id back into a tile. owner is ignored for
// terrain, optional for cities and factories, and required for headquarters.
func FromID(id ID, owner Player) (Type, error) {
	switch id {
	case 1:
		return PlainsTile, nil
	case 2:
		return SeaTile, nil
	case 3:
		return ForestTile, nil
	case 4:
		return MountainTile, nil
	case 5:
		return RoadTile, nil
	case 6:
		return NewCity(owner), nil
	case 7:
		return NewFactory(owner), nil
	case 8:
		if owner == NoPlayer {
			return EmptyTile, fmt.Errorf("%w: headquarters id %d requires an owner", ErrUnknownID, id)
		}
		return NewHeadquarters(owner), nil
	default:
		return EmptyTile, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
}
