package game

import (
	"github.com/samdwyer/tilewalker/internal/combat"
	"github.com/samdwyer/tilewalker/internal/world"
)

// Config holds game tuning options.
type Config struct {
	TileSize         float64 // World units per tile
	PlayerSize       float64 // Player box side as a fraction of a tile
	SprintMultiplier float64
	MinProtect       float64 // Encounter protection window bounds, seconds
	MaxProtect       float64
	FadeDuration     float64
	CombatCooldown   float64
	AllowFlee        bool

	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed int64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TileSize:         world.DefaultTileSize,
		PlayerSize:       0.9,
		SprintMultiplier: 2,
		MinProtect:       DefaultMinProtect,
		MaxProtect:       DefaultMaxProtect,
		FadeDuration:     DefaultFadeDuration,
		CombatCooldown:   combat.DefaultCooldown,
		AllowFlee:        true,
	}
}
