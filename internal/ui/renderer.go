package ui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilewalker/internal/game"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the visible world above a one-line status bar.
func (r *Renderer) Render(g *game.Game) {
	r.screen.Clear()

	width, height := r.screen.Size()
	scene := BuildScene(g, width, height-1)

	for row := 0; row < scene.Rows; row++ {
		for col := 0; col < scene.Cols; col++ {
			cell := scene.At(col, row)
			style := tcell.StyleDefault.
				Foreground(rgb(cell.FG)).
				Background(rgb(cell.BG))
			r.screen.SetContent(col, row, cell.Rune, style)
		}
	}

	if height > 0 {
		r.RenderMessage(scene.Status, height-1)
	}

	r.screen.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
