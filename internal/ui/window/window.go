// Package window runs the game in a desktop window using ebiten.
package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/game"
	"github.com/samdwyer/tilewalker/internal/ui"
)

// Cell size in pixels. The debug font is roughly 6x13.
const (
	cellWidth  = 12
	cellHeight = 16
)

// Options configures the window.
type Options struct {
	Width    int
	Height   int
	TickRate int
	Title    string
}

// Window adapts a game to ebiten.Game.
type Window struct {
	ctx  context.Context
	game *game.Game
	keys Keyboard
	dt   float64
	log  *zap.Logger
}

// New wraps g. Update ticks g by a fixed step of one tick.
func New(ctx context.Context, g *game.Game, tickRate int, log *zap.Logger) *Window {
	if tickRate < 1 {
		tickRate = ebiten.DefaultTPS
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Window{
		ctx:  ctx,
		game: g,
		dt:   1 / float64(tickRate),
		log:  log,
	}
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	w.game.Tick(w.ctx, w.dt, w.keys)
	if !w.game.Running() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ClearColor)

	bounds := screen.Bounds()
	cols := bounds.Dx() / cellWidth
	rows := bounds.Dy()/cellHeight - 1
	scene := ui.BuildScene(w.game, cols, rows)

	for row := 0; row < scene.Rows; row++ {
		for col := 0; col < scene.Cols; col++ {
			cell := scene.At(col, row)
			x, y := col*cellWidth, row*cellHeight
			vector.FillRect(screen, float32(x), float32(y), cellWidth, cellHeight, cell.BG, false)
			if cell.Rune == ' ' {
				continue
			}
			// The debug font only draws white, so the glyph color becomes an underline.
			vector.FillRect(screen, float32(x), float32(y+cellHeight-2), cellWidth, 2, cell.FG, false)
			ebitenutil.DebugPrintAt(screen, string(cell.Rune), x+3, y)
		}
	}

	if rows >= 0 {
		ebitenutil.DebugPrintAt(screen, scene.Status, 2, rows*cellHeight)
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the game stops, the window closes or
// ctx is cancelled.
func Run(ctx context.Context, g *game.Game, opts Options, log *zap.Logger) error {
	if opts.Title == "" {
		opts.Title = "tilewalker"
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	w := New(ctx, g, opts.TickRate, log)
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	w.log.Info("window loop finished", zap.Uint64("frames", g.Frames()))
	if err != nil {
		return err
	}
	return ctx.Err()
}
