package game

import (
	"context"
	"image/color"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/telemetry"
)

// DefaultFadeDuration is the full fade-out/fade-in time in seconds.
const DefaultFadeDuration = 1.0

// tickEpsilon absorbs the drift of summing many fractional frame steps, so
// 30 steps of 1/60s reach the same point as one step of 0.5s.
const tickEpsilon = 1e-9

// FadeColor is the overlay tint at full opacity.
var FadeColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x26, A: 0xff}

// Requester accepts mode transition requests.
type Requester interface {
	Request(mode Mode)
}

// Fade is one in-flight transition.
type Fade struct {
	Progress  float64 // 0..1 over the whole fade
	Alpha     float64 // Overlay opacity, peaks at 1 halfway through
	Committed bool
	Pending   Mode
	Overlay   entity.Handle
}

// Fader runs transitions. Requests queue in FIFO order and start one at a
// time; the pending mode is committed exactly once, on the first frame the
// fade is at least halfway.
type Fader struct {
	duration float64
	reg      *entity.Registry
	modes    *ModeRegister
	log      *zap.Logger

	queue  []Mode
	active *Fade
}

// NewFader creates a fader. A non-positive duration completes a fade in one frame.
func NewFader(duration float64, reg *entity.Registry, modes *ModeRegister, log *zap.Logger) *Fader {
	return &Fader{
		duration: duration,
		reg:      reg,
		modes:    modes,
		log:      log,
	}
}

// Request queues a transition to mode. A request for the mode already
// targeted by the newest queued or active fade is dropped.
func (f *Fader) Request(mode Mode) {
	if last, ok := f.lastTarget(); ok && last == mode {
		return
	}
	f.queue = append(f.queue, mode)
}

func (f *Fader) lastTarget() (Mode, bool) {
	if n := len(f.queue); n > 0 {
		return f.queue[n-1], true
	}
	if f.active != nil {
		return f.active.Pending, true
	}
	return 0, false
}

// Active returns a copy of the in-flight fade.
func (f *Fader) Active() (Fade, bool) {
	if f.active == nil {
		return Fade{}, false
	}
	return *f.active, true
}

// Busy returns true while a fade runs or requests wait.
func (f *Fader) Busy() bool {
	return f.active != nil || len(f.queue) > 0
}

// Alpha returns the overlay opacity, zero when idle.
func (f *Fader) Alpha() float64 {
	if f.active == nil {
		return 0
	}
	return f.active.Alpha
}

// Tick advances the active fade, then starts the next queued one if idle.
func (f *Fader) Tick(ctx context.Context, dt float64) {
	if dt < 0 {
		dt = 0
	}

	if fade := f.active; fade != nil {
		if f.duration <= 0 {
			fade.Progress = 1
		} else {
			fade.Progress += dt / f.duration
		}
		if fade.Progress > 1-tickEpsilon {
			fade.Progress = 1
		}
		fade.Alpha = fadeAlpha(fade.Progress)

		if fade.Progress >= 0.5-tickEpsilon && !fade.Committed {
			fade.Committed = true
			f.commit(ctx, fade.Pending)
		}

		if fade.Progress >= 1 {
			f.reg.Despawn(fade.Overlay)
			f.active = nil
		}
	}

	if f.active == nil && len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		f.begin(ctx, next)
	}
}

func (f *Fader) begin(ctx context.Context, target Mode) {
	_, span := telemetry.Tracer("transition").Start(ctx, "transition.start")
	span.SetAttributes(
		attribute.String("from", f.modes.Mode().String()),
		attribute.String("to", target.String()),
	)
	span.End()

	overlay := f.reg.Spawn(entity.KindOverlay, entity.Visual{
		Glyph: ' ',
		Color: FadeColor,
	}, entity.Position{Z: entity.LayerOverlay})
	f.reg.SetName(overlay, "fade")

	f.active = &Fade{Pending: target, Overlay: overlay}
	f.log.Debug("transition started",
		zap.Stringer("from", f.modes.Mode()),
		zap.Stringer("to", target),
	)
}

func (f *Fader) commit(ctx context.Context, target Mode) {
	ctx, span := telemetry.Tracer("transition").Start(ctx, "transition.commit")
	defer span.End()
	span.SetAttributes(
		attribute.String("from", f.modes.Mode().String()),
		attribute.String("to", target.String()),
	)

	f.log.Info("mode committed",
		zap.Stringer("from", f.modes.Mode()),
		zap.Stringer("to", target),
	)
	f.modes.commit(ctx, target)
}

// fadeAlpha is a triangle: 0 at both ends, 1 at the midpoint.
func fadeAlpha(p float64) float64 {
	if p < 0.5 {
		return 2 * p
	}
	return 2 * (1 - p)
}
