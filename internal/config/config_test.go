package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.1, cfg.Game.TileSize)
	assert.Equal(t, 0.9, cfg.Game.PlayerSize)
	assert.Equal(t, 1.0, cfg.Game.MinProtect)
	assert.Equal(t, 7.0, cfg.Game.MaxProtect)
	assert.Equal(t, 1.0, cfg.Game.FadeDuration)
	assert.Equal(t, 0.5, cfg.Game.CombatCooldown)
	assert.Equal(t, 60, cfg.Game.TickRate)
	assert.True(t, cfg.Combat.AllowFlee)
	assert.Equal(t, "assets/map.txt", cfg.Map.Path)
	assert.Empty(t, cfg.Roster.Path)
	assert.Equal(t, "terminal", cfg.UI.Backend)
	assert.Equal(t, "tilewalker.log", cfg.Logging.File)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
game:
  min_protect: 2
  max_protect: 3
  seed: 42
combat:
  allow_flee: false
map:
  path: maps/cave.txt
logging:
  level: debug
  format: json
ui:
  backend: window
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Game.MinProtect)
	assert.Equal(t, 3.0, cfg.Game.MaxProtect)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.False(t, cfg.Combat.AllowFlee)
	assert.Equal(t, "maps/cave.txt", cfg.Map.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "window", cfg.UI.Backend)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.1, cfg.Game.TileSize)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: trace\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TILEWALKER_GAME_SEED", "7")
	t.Setenv("TILEWALKER_UI_BACKEND", "window")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, "window", cfg.UI.Backend)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Game.TileSize = 0
	cfg.Map.Path = ""
	cfg.UI.Backend = "browser"
	cfg.Telemetry.SampleRatio = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.tile_size")
	assert.Contains(t, err.Error(), "map.path")
	assert.Contains(t, err.Error(), "telemetry.sample_ratio")
	assert.Contains(t, err.Error(), "ui.backend")
}

func TestValidateGame(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"player size zero", func(g *GameConfig) { g.PlayerSize = 0 }},
		{"player size above tile", func(g *GameConfig) { g.PlayerSize = 1.5 }},
		{"sprint below one", func(g *GameConfig) { g.SprintMultiplier = 0.5 }},
		{"negative min protect", func(g *GameConfig) { g.MinProtect = -1 }},
		{"inverted protect window", func(g *GameConfig) { g.MinProtect, g.MaxProtect = 5, 1 }},
		{"negative fade", func(g *GameConfig) { g.FadeDuration = -1 }},
		{"negative cooldown", func(g *GameConfig) { g.CombatCooldown = -0.1 }},
		{"zero tick rate", func(g *GameConfig) { g.TickRate = 0 }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(&cfg.Game)
		assert.Error(t, cfg.Validate(), tt.name)
	}
}

func TestValidateProtectWindowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Default()
		cfg.Game.MinProtect = rapid.Float64Range(0, 100).Draw(t, "min")
		cfg.Game.MaxProtect = rapid.Float64Range(0, 100).Draw(t, "max")

		err := cfg.Validate()
		if cfg.Game.MaxProtect >= cfg.Game.MinProtect && err != nil {
			t.Fatalf("valid window [%v, %v] rejected: %v", cfg.Game.MinProtect, cfg.Game.MaxProtect, err)
		}
		if cfg.Game.MaxProtect < cfg.Game.MinProtect && err == nil {
			t.Fatalf("inverted window [%v, %v] accepted", cfg.Game.MinProtect, cfg.Game.MaxProtect)
		}
	})
}
