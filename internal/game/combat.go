package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/combat"
	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/gamedata"
	"github.com/samdwyer/tilewalker/internal/input"
	"github.com/samdwyer/tilewalker/internal/telemetry"
)

// Where the enemy stands during a fight.
const (
	enemyX = 0.0
	enemyY = 0.2
)

// CombatStages owns the enemy of the current fight and the attack loop.
type CombatStages struct {
	reg       *entity.Registry
	player    *entity.Player
	roster    *gamedata.Roster
	rng       Rand
	requests  Requester
	log       *zap.Logger
	say       func(string)
	allowFlee bool

	queue    *combat.EventQueue
	resolver *combat.Resolver
	cooldown *combat.Cooldown
	enemy    *entity.Enemy
	hits     int
}

// NewCombatStages creates the combat stages. say receives player-facing messages.
func NewCombatStages(reg *entity.Registry, player *entity.Player, roster *gamedata.Roster, rng Rand, requests Requester, log *zap.Logger, say func(string), cfg Config) *CombatStages {
	queue := &combat.EventQueue{}
	return &CombatStages{
		reg:       reg,
		player:    player,
		roster:    roster,
		rng:       rng,
		requests:  requests,
		log:       log,
		say:       say,
		allowFlee: cfg.AllowFlee,
		queue:     queue,
		resolver:  combat.NewResolver(reg, queue),
		cooldown:  combat.NewCooldown(cfg.CombatCooldown),
	}
}

// Enemy returns the current enemy, or nil outside a fight.
func (c *CombatStages) Enemy() *entity.Enemy { return c.enemy }

// Cooldown returns the attack cooldown.
func (c *CombatStages) Cooldown() *combat.Cooldown { return c.cooldown }

// Queue returns the pending fight events.
func (c *CombatStages) Queue() *combat.EventQueue { return c.queue }

// Enter spawns a random enemy from the roster.
func (c *CombatStages) Enter(ctx context.Context) {
	archetype := c.roster.Pick(c.rng)
	c.enemy = entity.SpawnEnemy(c.reg, archetype, enemyX, enemyY)
	c.hits = 0

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy", archetype.ID),
		attribute.Int("enemy.health", archetype.HP),
		attribute.Int("enemy.defense", archetype.Defense),
	)
	span.End()

	msg := "A wild " + c.enemy.Name() + " appears!"
	c.log.Info(msg, zap.String("enemy", archetype.ID))
	c.say(msg)
}

// Exit despawns the enemy and everything attached to it.
func (c *CombatStages) Exit(ctx context.Context) {
	if c.enemy == nil {
		return
	}

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("enemy", c.enemy.Archetype.ID),
		attribute.Int("hits", c.hits),
	)
	span.End()

	c.reg.Despawn(c.enemy.Handle)
	c.enemy = nil
}

// Input turns a confirm press into a fight event once the cooldown allows it.
func (c *CombatStages) Input(_ context.Context, f Frame) {
	c.cooldown.Tick(f.DT)

	if c.allowFlee && f.Input.JustPressed(input.KeyFlee) {
		c.log.Info("player fled")
		c.say("You got away safely.")
		c.requests.Request(ModeOverworld)
		return
	}

	if !f.Input.JustPressed(input.KeyConfirm) || !c.cooldown.Ready() || !c.enemyAlive() {
		return
	}

	stats, ok := c.reg.Stats(c.player.Handle)
	if !ok {
		panic("game: player has no combat stats")
	}
	c.queue.Push(combat.FightEvent{Target: c.enemy.Handle, Damage: stats.Attack})
	c.cooldown.Reset()
}

// Resolve applies queued hits and requests the way back once the enemy falls.
func (c *CombatStages) Resolve(ctx context.Context, _ Frame) {
	for _, res := range c.resolver.Resolve(ctx) {
		if res.Ignored {
			continue
		}
		c.hits++
		c.log.Info(res.Message,
			zap.String("target", res.Name),
			zap.Int("dealt", res.Dealt),
			zap.Int("health_left", res.HealthLeft),
		)
		c.say(res.Message)
		if res.Defeated {
			c.requests.Request(ModeOverworld)
		}
	}
}

func (c *CombatStages) enemyAlive() bool {
	if c.enemy == nil {
		return false
	}
	stats, ok := c.reg.Stats(c.enemy.Handle)
	return ok && stats.IsAlive()
}
