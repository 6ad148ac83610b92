// Package world provides the tile map and its collision queries.
package world

// TileKind classifies a single map cell.
type TileKind int

const (
	// TileFloor is a passable tile.
	TileFloor TileKind = iota
	// TileWall blocks movement.
	TileWall
	// TileEncounter is passable and can trigger a random encounter.
	TileEncounter
)

// Source runes recognised by the map parser. Anything else is floor.
const (
	wallRune      = '#'
	encounterRune = '~'
)

// KindOf derives the kind of a tile from its source rune.
func KindOf(r rune) TileKind {
	switch r {
	case wallRune:
		return TileWall
	case encounterRune:
		return TileEncounter
	default:
		return TileFloor
	}
}

// String returns a human-readable kind name.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileEncounter:
		return "encounter"
	default:
		return "unknown"
	}
}

// Tile is one cell of the grid. Kind and Rune never change after load.
type Tile struct {
	Col, Row int
	Kind     TileKind
	Rune     rune // Source character, kept for display
	X, Y     float64
}
