package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/telemetry"
	"github.com/samdwyer/tilewalker/internal/world"
)

// Protection window bounds in seconds.
const (
	DefaultMinProtect = 1.0
	DefaultMaxProtect = 7.0
)

// Rand is the randomness the game draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// RollCooldown returns a protection time uniform in [lo, hi].
func RollCooldown(src Rand, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.Float64()*(hi-lo)
}

type triggerState int

const (
	triggerWaiting triggerState = iota // Protection window running
	triggerArmed                       // Window elapsed, next qualifying move fires
	triggerSpent                       // Fired; waits for the next overworld entry
)

// EncounterTrigger starts a fight when the player moves over an encounter
// zone after the protection window has run out. It fires once per window.
type EncounterTrigger struct {
	reg        *entity.Registry
	grid       *world.Grid
	player     *entity.Player
	requests   Requester
	rng        Rand
	log        *zap.Logger
	playerSize float64
	minProtect float64
	maxProtect float64

	cooldown float64
	state    triggerState
}

// NewEncounterTrigger creates a trigger. Call Reset before the first frame.
func NewEncounterTrigger(reg *entity.Registry, grid *world.Grid, player *entity.Player, requests Requester, rng Rand, log *zap.Logger, cfg Config) *EncounterTrigger {
	return &EncounterTrigger{
		reg:        reg,
		grid:       grid,
		player:     player,
		requests:   requests,
		rng:        rng,
		log:        log,
		playerSize: cfg.PlayerSize,
		minProtect: cfg.MinProtect,
		maxProtect: cfg.MaxProtect,
	}
}

// Reset rolls a fresh protection window. It runs on every overworld entry.
func (e *EncounterTrigger) Reset(context.Context) {
	e.cooldown = RollCooldown(e.rng, e.minProtect, e.maxProtect)
	e.state = triggerWaiting
	e.log.Debug("protection window rolled", zap.Float64("seconds", e.cooldown))
}

// Remaining returns the protection time left.
func (e *EncounterTrigger) Remaining() float64 { return e.cooldown }

// Armed returns true when the next qualifying move fires.
func (e *EncounterTrigger) Armed() bool { return e.state == triggerArmed }

// Run advances the window and fires if the player just moved onto a zone.
func (e *EncounterTrigger) Run(ctx context.Context, f Frame) {
	e.cooldown -= f.DT
	if e.cooldown < tickEpsilon {
		e.cooldown = 0
	}
	if e.state == triggerWaiting && e.cooldown == 0 {
		e.state = triggerArmed
	}

	if e.state != triggerArmed || !e.player.JustMoved {
		return
	}
	pos := e.player.Position(e.reg)
	if !e.grid.Collides(e.grid.BoxAt(pos.X, pos.Y, e.playerSize), world.TileEncounter) {
		return
	}

	e.state = triggerSpent

	_, span := telemetry.Tracer("encounter").Start(ctx, "encounter.trigger")
	span.SetAttributes(
		attribute.Float64("player.x", pos.X),
		attribute.Float64("player.y", pos.Y),
	)
	span.End()

	e.log.Info("encounter triggered",
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	e.requests.Request(ModeCombat)
}
