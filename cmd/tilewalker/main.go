// Package main is the entry point for tilewalker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/tilewalker/internal/config"
	"github.com/samdwyer/tilewalker/internal/game"
	"github.com/samdwyer/tilewalker/internal/gamedata"
	"github.com/samdwyer/tilewalker/internal/observability"
	"github.com/samdwyer/tilewalker/internal/telemetry"
	"github.com/samdwyer/tilewalker/internal/ui"
	"github.com/samdwyer/tilewalker/internal/ui/window"
	"github.com/samdwyer/tilewalker/internal/world"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code. Deferred cleanup, including the
// telemetry flush, runs before main exits.
func realMain() int {
	configPath := flag.String("config", "configs/tilewalker.yaml", "path to YAML config file")
	backend := flag.String("backend", "", "display backend override: terminal or window")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.UI.Backend = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid backend: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{SampleRatio: cfg.Telemetry.SampleRatio})
		if err != nil {
			logger.Warn("telemetry setup failed, running without observability", zap.Error(err))
			telemetry.Disable()
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("shutting down telemetry", zap.Error(err))
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	return exitCode(run(ctx, cfg, logger), logger)
}

// exitCode logs err and maps it to a process exit code. Cancellation by a
// signal is a clean exit.
func exitCode(err error, logger *zap.Logger) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	logger.Error("game error", zap.Error(err))
	return 1
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	grid, err := world.LoadMap(ctx, cfg.Map.Path, cfg.Game.TileSize)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}

	roster, err := loadRoster(cfg.Roster.Path)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	player, err := gamedata.LoadPlayer()
	if err != nil {
		return fmt.Errorf("loading player: %w", err)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting",
		zap.String("map", cfg.Map.Path),
		zap.Int("tiles", len(grid.Tiles())),
		zap.Int("archetypes", roster.Count()),
		zap.Int64("seed", seed),
		zap.String("backend", cfg.UI.Backend),
	)

	g, err := game.New(ctx, gameConfig(cfg), game.Deps{
		Grid:   grid,
		Roster: roster,
		Player: player,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	switch cfg.UI.Backend {
	case "window":
		return window.Run(ctx, g, window.Options{
			Width:    cfg.UI.WindowWidth,
			Height:   cfg.UI.WindowHeight,
			TickRate: cfg.Game.TickRate,
		}, logger)
	default:
		term, err := ui.NewTerminal(cfg.Game.TickRate, logger)
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer term.Close()
		return term.Run(ctx, g)
	}
}

func loadRoster(path string) (*gamedata.Roster, error) {
	if path == "" {
		return gamedata.LoadRoster()
	}
	return gamedata.LoadRosterFile(path)
}

func gameConfig(cfg config.Config) game.Config {
	return game.Config{
		TileSize:         cfg.Game.TileSize,
		PlayerSize:       cfg.Game.PlayerSize,
		SprintMultiplier: cfg.Game.SprintMultiplier,
		MinProtect:       cfg.Game.MinProtect,
		MaxProtect:       cfg.Game.MaxProtect,
		FadeDuration:     cfg.Game.FadeDuration,
		CombatCooldown:   cfg.Game.CombatCooldown,
		AllowFlee:        cfg.Combat.AllowFlee,
		Seed:             cfg.Game.Seed,
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the header
	// is built here from the raw key.
	apiKey := os.Getenv("HONEYCOMB_TILEWALKER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TILEWALKER_DATASET")
	if dataset == "" {
		dataset = "tilewalker"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
