package entity

// CombatStats are the fighting numbers of a player or enemy.
// Invariant: 0 <= Health <= MaxHealth.
type CombatStats struct {
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// NewCombatStats returns stats at full health.
func NewCombatStats(maxHealth, attack, defense int) CombatStats {
	if maxHealth < 0 {
		maxHealth = 0
	}
	return CombatStats{
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Attack:    attack,
		Defense:   defense,
	}
}

// IsAlive returns true if health remains.
func (s *CombatStats) IsAlive() bool { return s.Health > 0 }

// TakeDamage reduces health, floored at zero, and returns the health actually lost.
// Non-positive amounts never heal.
func (s *CombatStats) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > s.Health {
		actual = s.Health
	}
	s.Health -= actual
	return actual
}
