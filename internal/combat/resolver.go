// Package combat resolves real-time attacks between the player and an enemy.
package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/telemetry"
)

// FightEvent is a request to deal Damage to Target. Each event is consumed exactly once.
type FightEvent struct {
	Target entity.Handle
	Damage int
}

// EventQueue holds fight events in arrival order until the resolver drains them.
type EventQueue struct {
	events []FightEvent
}

// Push appends an event.
func (q *EventQueue) Push(ev FightEvent) {
	q.events = append(q.events, ev)
}

// Drain removes and returns every queued event, oldest first.
func (q *EventQueue) Drain() []FightEvent {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Mitigate returns the damage left after defense: max(0, damage - defense).
// A defense above the attack leaves the target unharmed.
func Mitigate(damage, defense int) int {
	if d := damage - defense; d > 0 {
		return d
	}
	return 0
}

// HitResult describes one resolved fight event.
type HitResult struct {
	Target     entity.Handle
	Name       string
	Dealt      int  // Health actually removed
	HealthLeft int  // Health after the hit
	Defeated   bool // This hit took health from above zero to zero
	Ignored    bool // Target was already defeated
	Message    string
}

// Resolver applies queued fight events to stats stored in the registry.
type Resolver struct {
	reg   *entity.Registry
	queue *EventQueue
}

// NewResolver creates a resolver draining queue against reg.
func NewResolver(reg *entity.Registry, queue *EventQueue) *Resolver {
	return &Resolver{reg: reg, queue: queue}
}

// Resolve drains the queue in FIFO order and applies each hit.
// A target without combat stats is an invariant violation and panics.
func (r *Resolver) Resolve(ctx context.Context) []HitResult {
	events := r.queue.Drain()
	if len(events) == 0 {
		return nil
	}

	results := make([]HitResult, 0, len(events))
	for _, ev := range events {
		results = append(results, r.apply(ctx, ev))
	}
	return results
}

func (r *Resolver) apply(ctx context.Context, ev FightEvent) HitResult {
	stats, ok := r.reg.Stats(ev.Target)
	if !ok {
		panic(fmt.Sprintf("combat: fight target %s has no combat stats", ev.Target))
	}
	name := r.reg.Must(ev.Target).Name

	if !stats.IsAlive() {
		return HitResult{
			Target:  ev.Target,
			Name:    name,
			Ignored: true,
			Message: name + " is already defeated.",
		}
	}

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.hit")
	defer span.End()

	dealt := stats.TakeDamage(Mitigate(ev.Damage, stats.Defense))
	res := HitResult{
		Target:     ev.Target,
		Name:       name,
		Dealt:      dealt,
		HealthLeft: stats.Health,
		Defeated:   !stats.IsAlive(),
	}
	if res.Defeated {
		res.Message = fmt.Sprintf("%s has died!", name)
	} else {
		res.Message = fmt.Sprintf("%s has %d health left.", name, stats.Health)
	}

	span.SetAttributes(
		attribute.String("target", name),
		attribute.Int("damage", ev.Damage),
		attribute.Int("dealt", dealt),
		attribute.Int("health_left", stats.Health),
		attribute.Bool("defeated", res.Defeated),
	)
	return res
}
