// Package game wires the overworld and combat stages into a frame pipeline.
package game

import "context"

// Mode is the top-level game mode.
type Mode int

const (
	// ModeOverworld is free movement on the tile map.
	ModeOverworld Mode = iota
	// ModeCombat is the real-time fight against one enemy.
	ModeCombat
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeOverworld:
		return "overworld"
	case ModeCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// ModeReader is the read-only view of the current mode.
type ModeReader interface {
	Mode() Mode
}

// Hook runs when a mode is entered or exited.
type Hook func(ctx context.Context)

// ModeRegister holds the current mode. Its only writer is the fader's
// commit step; everything else sees it through ModeReader.
type ModeRegister struct {
	mode    Mode
	onEnter map[Mode][]Hook
	onExit  map[Mode][]Hook
}

// NewModeRegister starts in the given mode. Enter hooks for it run on start.
func NewModeRegister(initial Mode) *ModeRegister {
	return &ModeRegister{
		mode:    initial,
		onEnter: make(map[Mode][]Hook),
		onExit:  make(map[Mode][]Hook),
	}
}

// Mode returns the current mode.
func (r *ModeRegister) Mode() Mode { return r.mode }

// OnEnter registers a hook run each time mode is entered.
func (r *ModeRegister) OnEnter(mode Mode, h Hook) {
	r.onEnter[mode] = append(r.onEnter[mode], h)
}

// OnExit registers a hook run each time mode is left.
func (r *ModeRegister) OnExit(mode Mode, h Hook) {
	r.onExit[mode] = append(r.onExit[mode], h)
}

// start runs the enter hooks of the initial mode.
func (r *ModeRegister) start(ctx context.Context) {
	for _, h := range r.onEnter[r.mode] {
		h(ctx)
	}
}

// commit switches to next, running exit hooks of the old mode then enter
// hooks of the new one.
func (r *ModeRegister) commit(ctx context.Context, next Mode) {
	prev := r.mode
	for _, h := range r.onExit[prev] {
		h(ctx)
	}
	r.mode = next
	for _, h := range r.onEnter[next] {
		h(ctx)
	}
}
