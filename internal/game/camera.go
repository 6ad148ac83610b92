package game

import (
	"context"

	"github.com/samdwyer/tilewalker/internal/entity"
)

// Camera tracks what the renderer centers on.
type Camera struct {
	Handle entity.Handle
	reg    *entity.Registry
	player *entity.Player
}

// NewCamera spawns the camera record on the player.
func NewCamera(reg *entity.Registry, player *entity.Player) *Camera {
	pos := player.Position(reg)
	h := reg.Spawn(entity.KindCamera, entity.Visual{}, entity.Position{X: pos.X, Y: pos.Y})
	reg.SetName(h, "camera")
	return &Camera{Handle: h, reg: reg, player: player}
}

// Position returns the camera's world position.
func (c *Camera) Position() entity.Position {
	return c.reg.Must(c.Handle).Position
}

// Follow moves the camera onto the player.
func (c *Camera) Follow(context.Context, Frame) {
	pos := c.player.Position(c.reg)
	rec := c.reg.Must(c.Handle)
	rec.Position.X = pos.X
	rec.Position.Y = pos.Y
}

// Center moves the camera to the world origin, where the enemy stands.
func (c *Camera) Center(context.Context, Frame) {
	rec := c.reg.Must(c.Handle)
	rec.Position.X = 0
	rec.Position.Y = 0
}
