package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/game"
	"github.com/samdwyer/tilewalker/internal/input"
)

// Terminal drives a game at a fixed tick rate on a tcell screen.
type Terminal struct {
	screen   *Screen
	renderer *Renderer
	keys     *input.State
	tickRate int
	log      *zap.Logger
}

// NewTerminal opens the terminal screen.
func NewTerminal(tickRate int, log *zap.Logger) (*Terminal, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, tickRate, log), nil
}

func newTerminal(screen *Screen, tickRate int, log *zap.Logger) *Terminal {
	if tickRate < 1 {
		tickRate = 60
	}
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(screen),
		keys:     input.NewState(holdWindow),
		tickRate: tickRate,
		log:      log,
	}
}

// Run executes the main loop until the game stops or ctx is cancelled.
// Events are pumped on their own goroutine; only this goroutine touches the game.
func (t *Terminal) Run(ctx context.Context, g *game.Game) error {
	quit := make(chan struct{})
	defer close(quit)
	events := t.screen.Pump(quit)

	ticker := time.NewTicker(time.Second / time.Duration(t.tickRate))
	defer ticker.Stop()

	t.renderer.Render(g)
	last := time.Now()

	for g.Running() {
		select {
		case <-ctx.Done():
			g.Stop()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handleEvent(ev)

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.Tick(ctx, dt, t.keys)
			t.keys.EndFrame(dt)
			t.renderer.Render(g)
		}
	}

	t.log.Info("terminal loop finished", zap.Uint64("frames", g.Frames()))
	return nil
}

// handleEvent processes a single terminal event.
func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if b, ok := Bind(ev); ok {
			Apply(t.keys, b)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	if t.screen != nil {
		t.screen.Close()
	}
}
