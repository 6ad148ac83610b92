package world

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilewalker/internal/telemetry"
)

// DefaultTileSize is the world-space side length of one tile.
const DefaultTileSize = 0.1

// Grid is the static tile map. It is immutable once built.
type Grid struct {
	tiles    []Tile
	byKind   map[TileKind][]int // Indices into tiles
	width    int
	height   int
	tileSize float64
}

// ParseMap builds a grid from rows of source characters. Column index maps
// to X and row index to inverted Y, both scaled by tileSize.
func ParseMap(rows []string, tileSize float64) *Grid {
	g := &Grid{
		byKind:   make(map[TileKind][]int),
		height:   len(rows),
		tileSize: tileSize,
	}

	for row, line := range rows {
		col := 0
		for _, r := range line {
			kind := KindOf(r)
			g.byKind[kind] = append(g.byKind[kind], len(g.tiles))
			g.tiles = append(g.tiles, Tile{
				Col:  col,
				Row:  row,
				Kind: kind,
				Rune: r,
				X:    float64(col) * tileSize,
				Y:    -float64(row) * tileSize,
			})
			col++
		}
		if col > g.width {
			g.width = col
		}
	}

	return g
}

// ReadMap parses map rows from r.
func ReadMap(r io.Reader, tileSize float64) (*Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read map rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("map has no rows")
	}
	return ParseMap(rows, tileSize), nil
}

// LoadMap reads the map file at path. There is no usable fallback map, so
// callers should treat an error as fatal.
func LoadMap(ctx context.Context, path string, tileSize float64) (*Grid, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.load")
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no map file found at %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadMap(f, tileSize)
	if err != nil {
		return nil, fmt.Errorf("invalid map file %s: %w", path, err)
	}

	span.SetAttributes(
		attribute.String("map.path", path),
		attribute.Int("map.width", g.width),
		attribute.Int("map.height", g.height),
		attribute.Int("map.walls", len(g.byKind[TileWall])),
		attribute.Int("map.encounter_tiles", len(g.byKind[TileEncounter])),
	)
	return g, nil
}

// Width returns the length of the longest row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileSize returns the world-space side length of one tile.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Tiles returns every tile in row-major order.
func (g *Grid) Tiles() []Tile {
	return g.tiles
}

// TilesOf returns the tiles of the given kind.
func (g *Grid) TilesOf(kind TileKind) []Tile {
	idx := g.byKind[kind]
	out := make([]Tile, len(idx))
	for i, j := range idx {
		out[i] = g.tiles[j]
	}
	return out
}

// At returns the tile at the given grid coordinate.
func (g *Grid) At(col, row int) (Tile, bool) {
	for _, t := range g.tiles {
		if t.Col == col && t.Row == row {
			return t, true
		}
	}
	return Tile{}, false
}

// WorldPos converts a grid coordinate to its world-space center.
func (g *Grid) WorldPos(col, row int) (float64, float64) {
	return float64(col) * g.tileSize, -float64(row) * g.tileSize
}

// TileBox returns the collision box of a tile.
func (g *Grid) TileBox(t Tile) Box {
	return SquareBox(t.X, t.Y, g.tileSize)
}

// BoxAt returns a square box centered on (x, y) whose side is scale tiles.
func (g *Grid) BoxAt(x, y, scale float64) Box {
	return SquareBox(x, y, g.tileSize*scale)
}

// Collides returns true if box overlaps any tile of the given kind.
func (g *Grid) Collides(box Box, kind TileKind) bool {
	for _, i := range g.byKind[kind] {
		if Overlaps(box, g.TileBox(g.tiles[i])) {
			return true
		}
	}
	return false
}
