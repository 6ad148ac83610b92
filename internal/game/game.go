package game

import (
	"context"
	"errors"
	"image/color"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/entity"
	"github.com/samdwyer/tilewalker/internal/gamedata"
	"github.com/samdwyer/tilewalker/internal/input"
	"github.com/samdwyer/tilewalker/internal/telemetry"
	"github.com/samdwyer/tilewalker/internal/world"
)

// TileColor is the tint of every map glyph.
var TileColor = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}

// Deps are the collaborators a game is built from.
type Deps struct {
	Grid   *world.Grid
	Roster *gamedata.Roster
	Player *gamedata.PlayerDef
	Rand   Rand
	Logger *zap.Logger
}

// Game holds the entire game state.
type Game struct {
	cfg Config
	log *zap.Logger

	reg       *entity.Registry
	grid      *world.Grid
	mapRoot   entity.Handle
	player    *entity.Player
	camera    *Camera
	modes     *ModeRegister
	fader     *Fader
	encounter *EncounterTrigger
	combat    *CombatStages
	pipeline  *Pipeline

	lastMessage string
	running     bool
	frames      uint64
}

// New builds the world, spawns the player and enters the overworld.
func New(ctx context.Context, cfg Config, deps Deps) (*Game, error) {
	if deps.Grid == nil {
		return nil, errors.New("game: no map")
	}
	if deps.Roster == nil || deps.Roster.Count() == 0 {
		return nil, errors.New("game: empty enemy roster")
	}
	if deps.Player == nil {
		return nil, errors.New("game: no player definition")
	}
	if deps.Rand == nil {
		return nil, errors.New("game: no random source")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	g := &Game{
		cfg:     cfg,
		log:     log,
		reg:     entity.NewRegistry(),
		grid:    deps.Grid,
		running: true,
	}

	g.spawnMap()

	sx, sy := g.grid.WorldPos(deps.Player.StartCol, deps.Player.StartRow)
	g.player = entity.SpawnPlayer(g.reg, deps.Player, sx, sy)
	g.camera = NewCamera(g.reg, g.player)

	g.modes = NewModeRegister(ModeOverworld)
	g.fader = NewFader(cfg.FadeDuration, g.reg, g.modes, log)
	g.encounter = NewEncounterTrigger(g.reg, g.grid, g.player, g.fader, deps.Rand, log, cfg)
	g.combat = NewCombatStages(g.reg, g.player, deps.Roster, deps.Rand, g.fader, log, g.say, cfg)

	g.modes.OnEnter(ModeOverworld, g.showWorld)
	g.modes.OnEnter(ModeOverworld, g.encounter.Reset)
	g.modes.OnEnter(ModeCombat, g.hideWorld)
	g.modes.OnEnter(ModeCombat, g.combat.Enter)
	g.modes.OnExit(ModeCombat, g.combat.Exit)

	movement := NewMovementStage(g.reg, g.grid, g.player, cfg.PlayerSize, cfg.SprintMultiplier)

	g.pipeline = NewPipeline(g.modes)
	g.pipeline.Add("movement", movement.Run, ModeOverworld)
	g.pipeline.Add("camera.follow", g.camera.Follow, ModeOverworld)
	g.pipeline.Add("encounter", g.encounter.Run, ModeOverworld)
	g.pipeline.Add("combat.input", g.combat.Input, ModeCombat)
	g.pipeline.Add("combat.resolve", g.combat.Resolve, ModeCombat)
	g.pipeline.Add("camera.center", g.camera.Center, ModeCombat)
	g.pipeline.Add("fade", func(ctx context.Context, f Frame) { g.fader.Tick(ctx, f.DT) })

	g.modes.start(ctx)

	// Exactly one player and one camera; Single panics otherwise.
	g.reg.Single(entity.KindPlayer)
	g.reg.Single(entity.KindCamera)

	span.SetAttributes(
		attribute.Int("map.width", g.grid.Width()),
		attribute.Int("map.height", g.grid.Height()),
		attribute.Int("roster.size", deps.Roster.Count()),
		attribute.Float64("player.start_x", sx),
		attribute.Float64("player.start_y", sy),
	)
	log.Info("game initialized",
		zap.Int("map_width", g.grid.Width()),
		zap.Int("map_height", g.grid.Height()),
		zap.Int("records", g.reg.Len()),
	)

	return g, nil
}

// spawnMap creates the map root with one child record per tile.
func (g *Game) spawnMap() {
	g.mapRoot = g.reg.Spawn(entity.KindMap, entity.Visual{}, entity.Position{})
	g.reg.SetName(g.mapRoot, "Map")
	for _, t := range g.grid.Tiles() {
		h := g.reg.Spawn(entity.KindTile, entity.Visual{
			Glyph: t.Rune,
			Color: TileColor,
		}, entity.Position{X: t.X, Y: t.Y, Z: entity.LayerTile})
		g.reg.AddChild(g.mapRoot, h)
	}
}

func (g *Game) showWorld(context.Context) {
	g.reg.SetVisible(g.player.Handle, true)
	g.reg.SetVisible(g.mapRoot, true)
}

func (g *Game) hideWorld(context.Context) {
	g.reg.SetVisible(g.player.Handle, false)
	g.reg.SetVisible(g.mapRoot, false)
}

func (g *Game) say(msg string) {
	g.lastMessage = msg
}

// Tick advances the game by dt seconds. A negative dt counts as zero.
func (g *Game) Tick(ctx context.Context, dt float64, in input.Source) {
	if !g.running {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if in == nil {
		in = input.None{}
	}
	if in.JustPressed(input.KeyQuit) {
		g.log.Info("quit requested", zap.Uint64("frames", g.frames))
		g.Stop()
		return
	}

	g.pipeline.Run(ctx, Frame{DT: dt, Input: in})
	g.frames++
}

// Running returns false once the player has quit.
func (g *Game) Running() bool { return g.running }

// Stop ends the game loop.
func (g *Game) Stop() { g.running = false }

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.modes.Mode() }

// Registry returns the entity registry for rendering.
func (g *Game) Registry() *entity.Registry { return g.reg }

// Grid returns the tile map.
func (g *Game) Grid() *world.Grid { return g.grid }

// Player returns the player.
func (g *Game) Player() *entity.Player { return g.player }

// Camera returns the camera position.
func (g *Game) Camera() entity.Position { return g.camera.Position() }

// Enemy returns the current enemy, or nil outside a fight.
func (g *Game) Enemy() *entity.Enemy { return g.combat.Enemy() }

// Fade returns the in-flight transition, if any.
func (g *Game) Fade() (Fade, bool) { return g.fader.Active() }

// FadeAlpha returns the overlay opacity.
func (g *Game) FadeAlpha() float64 { return g.fader.Alpha() }

// Encounter returns the encounter trigger.
func (g *Game) Encounter() *EncounterTrigger { return g.encounter }

// Combat returns the combat stages.
func (g *Game) Combat() *CombatStages { return g.combat }

// Stages returns the pipeline stage names in run order.
func (g *Game) Stages() []string { return g.pipeline.Names() }

// LastMessage returns the most recent player-facing message.
func (g *Game) LastMessage() string { return g.lastMessage }

// Frames returns the number of ticks run.
func (g *Game) Frames() uint64 { return g.frames }
