package entity

import (
	"github.com/samdwyer/tilewalker/internal/gamedata"
)

// Draw layers.
const (
	LayerTile    = 100.0
	LayerEnemy   = 100.0
	LayerPlayer  = 900.0
	LayerOverlay = 999.0
)

// Player is the overworld avatar. Its record carries position, visibility and stats.
type Player struct {
	Handle    Handle
	Speed     float64 // Tiles per second
	JustMoved bool    // Set only when a move committed this frame
}

// SpawnPlayer creates the player record, its stats and its background child.
func SpawnPlayer(reg *Registry, def *gamedata.PlayerDef, x, y float64) *Player {
	h := reg.Spawn(KindPlayer, Visual{
		Glyph: def.GlyphRune(),
		Color: gamedata.MustParseHexColor(def.Color),
	}, Position{X: x, Y: y, Z: LayerPlayer})
	reg.SetName(h, def.Name)
	reg.AttachStats(h, NewCombatStats(def.HP, def.Attack, def.Defense))

	// Drawn one layer below the player glyph, relative to it.
	bg := reg.Spawn(KindDecoration, Visual{
		Glyph: ' ',
		Color: gamedata.MustParseHexColor(def.BackgroundColor),
	}, Position{Z: -1})
	reg.SetName(bg, def.Name+" background")
	reg.AddChild(h, bg)

	return &Player{
		Handle: h,
		Speed:  def.Speed,
	}
}

// Position returns the player's current world position.
func (p *Player) Position(reg *Registry) Position {
	return reg.Must(p.Handle).Position
}

// MoveTo sets the player's position, keeping its layer.
func (p *Player) MoveTo(reg *Registry, x, y float64) {
	rec := reg.Must(p.Handle)
	rec.Position.X = x
	rec.Position.Y = y
}
