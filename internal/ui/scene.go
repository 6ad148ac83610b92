package ui

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/game"
)

// ClearColor is the background behind everything.
var ClearColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}

// Cell is one character cell of a scene.
type Cell struct {
	Rune rune
	FG   color.RGBA
	BG   color.RGBA
}

// Scene is a backend-neutral grid of cells centered on the camera, plus a
// status line.
type Scene struct {
	Cols, Rows int
	Cells      []Cell
	Status     string
}

// At returns the cell at col, row.
func (s *Scene) At(col, row int) Cell {
	return s.Cells[row*s.Cols+col]
}

// BuildScene projects every visible record onto a cols x rows grid, one
// tile per cell, and dims it by the fade overlay.
func BuildScene(g *game.Game, cols, rows int) *Scene {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s := &Scene{
		Cols:   cols,
		Rows:   rows,
		Cells:  make([]Cell, cols*rows),
		Status: statusLine(g),
	}
	for i := range s.Cells {
		s.Cells[i] = Cell{Rune: ' ', FG: ClearColor, BG: ClearColor}
	}

	reg := g.Registry()
	cam := g.Camera()
	tileSize := g.Grid().TileSize()

	type drawable struct {
		pos entity.Position
		vis entity.Visual
	}
	var items []drawable
	reg.Each(func(rec *entity.Record) {
		switch rec.Kind {
		case entity.KindMap, entity.KindCamera, entity.KindOverlay:
			return
		}
		if !rec.Visible {
			return
		}
		items = append(items, drawable{pos: reg.WorldPosition(rec.Handle), vis: rec.Visual})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].pos.Z < items[j].pos.Z })

	for _, it := range items {
		col := int(math.Round((it.pos.X-cam.X)/tileSize)) + cols/2
		row := int(math.Round(-(it.pos.Y-cam.Y)/tileSize)) + rows/2
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		cell := &s.Cells[row*cols+col]
		if it.vis.Glyph == ' ' {
			// Blank glyphs paint the cell background.
			cell.BG = it.vis.Color
			continue
		}
		cell.Rune = it.vis.Glyph
		cell.FG = it.vis.Color
	}

	if alpha := g.FadeAlpha(); alpha > 0 {
		for i := range s.Cells {
			s.Cells[i].FG = Blend(s.Cells[i].FG, game.FadeColor, alpha)
			s.Cells[i].BG = Blend(s.Cells[i].BG, game.FadeColor, alpha)
		}
	}

	return s
}

// Blend mixes from toward to by alpha in [0, 1].
func Blend(from, to color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-alpha) + float64(b)*alpha))
	}
	return color.RGBA{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: 0xff,
	}
}

func statusLine(g *game.Game) string {
	var line string
	switch g.Mode() {
	case game.ModeCombat:
		line = "Combat | Enter attack, Space flee"
		if e := g.Enemy(); e != nil {
			if stats, ok := g.Registry().Stats(e.Handle); ok {
				line = fmt.Sprintf("%s HP %d/%d | Enter attack, Space flee", e.Name(), stats.Health, stats.MaxHealth)
			}
		}
	default:
		line = "Overworld | WASD/arrows move, Shift sprint, q quit"
		if stats, ok := g.Registry().Stats(g.Player().Handle); ok {
			line = fmt.Sprintf("HP %d/%d | WASD/arrows move, Shift sprint, q quit", stats.Health, stats.MaxHealth)
		}
	}
	if msg := g.LastMessage(); msg != "" {
		line += " | " + msg
	}
	return line
}
