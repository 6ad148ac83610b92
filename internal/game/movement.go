package game

import (
	"context"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/input"
	"github.com/samdwyer/tilewalker/internal/world"
)

// MovementStage moves the player with per-axis wall collision.
type MovementStage struct {
	reg        *entity.Registry
	grid       *world.Grid
	player     *entity.Player
	playerSize float64 // Side of the player box, in tiles
	sprint     float64
}

// NewMovementStage creates the movement controller.
func NewMovementStage(reg *entity.Registry, grid *world.Grid, player *entity.Player, playerSize, sprint float64) *MovementStage {
	return &MovementStage{
		reg:        reg,
		grid:       grid,
		player:     player,
		playerSize: playerSize,
		sprint:     sprint,
	}
}

// Run applies one frame of movement. X is resolved before Y so a blocked
// axis does not stop the other one.
func (m *MovementStage) Run(_ context.Context, f Frame) {
	m.player.JustMoved = false

	dx, dy := m.delta(f)
	pos := m.player.Position(m.reg)

	if dx != 0 {
		nx := pos.X + dx
		if !m.grid.Collides(m.grid.BoxAt(nx, pos.Y, m.playerSize), world.TileWall) {
			pos.X = nx
			m.player.JustMoved = true
		}
	}
	if dy != 0 {
		ny := pos.Y + dy
		if !m.grid.Collides(m.grid.BoxAt(pos.X, ny, m.playerSize), world.TileWall) {
			pos.Y = ny
			m.player.JustMoved = true
		}
	}

	m.player.MoveTo(m.reg, pos.X, pos.Y)
}

func (m *MovementStage) delta(f Frame) (dx, dy float64) {
	step := m.player.Speed * m.grid.TileSize() * f.DT
	if f.Input.Held(input.KeySprint) {
		step *= m.sprint
	}
	if f.Input.Held(input.KeyUp) {
		dy += step
	}
	if f.Input.Held(input.KeyDown) {
		dy -= step
	}
	if f.Input.Held(input.KeyRight) {
		dx += step
	}
	if f.Input.Held(input.KeyLeft) {
		dx -= step
	}
	return dx, dy
}
