package entity

import (
	"github.com/samdwyer/tilewalker/internal/gamedata"
)

// Enemy is the single hostile creature of an encounter.
type Enemy struct {
	Handle    Handle
	Archetype *gamedata.Archetype
}

// SpawnEnemy instantiates an archetype with full health at the given position.
// Stats are attached here, at spawn time, so every enemy can be fought.
func SpawnEnemy(reg *Registry, a *gamedata.Archetype, x, y float64) *Enemy {
	h := reg.Spawn(KindEnemy, Visual{
		Glyph: a.GlyphRune(),
		Color: a.RGBA(),
	}, Position{X: x, Y: y, Z: LayerEnemy})
	reg.SetName(h, a.Name)
	reg.AttachStats(h, NewCombatStats(a.HP, a.Attack, a.Defense))

	return &Enemy{
		Handle:    h,
		Archetype: a,
	}
}

// Name returns the enemy's display name.
func (e *Enemy) Name() string {
	return e.Archetype.Name
}
