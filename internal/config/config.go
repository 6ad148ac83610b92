// Package config provides Viper-based configuration loading for tilewalker.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig holds gameplay tuning.
type GameConfig struct {
	// TileSize is the world-space side of one tile.
	TileSize float64 `mapstructure:"tile_size"`
	// PlayerSize is the player box side as a fraction of a tile.
	PlayerSize       float64 `mapstructure:"player_size"`
	SprintMultiplier float64 `mapstructure:"sprint_multiplier"`
	// MinProtect and MaxProtect bound the encounter protection window, in seconds.
	MinProtect     float64 `mapstructure:"min_protect"`
	MaxProtect     float64 `mapstructure:"max_protect"`
	FadeDuration   float64 `mapstructure:"fade_duration"`
	CombatCooldown float64 `mapstructure:"combat_cooldown"`
	// TickRate is the number of frames per second the driver runs.
	TickRate int `mapstructure:"tick_rate"`
	// Seed for the random source. 0 picks a time-based seed.
	Seed int64 `mapstructure:"seed"`
}

// CombatConfig holds combat options.
type CombatConfig struct {
	AllowFlee bool `mapstructure:"allow_flee"`
}

// MapConfig locates the tile map.
type MapConfig struct {
	Path string `mapstructure:"path"`
}

// RosterConfig locates an enemy roster override. Empty uses the embedded roster.
type RosterConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File receives log output. Empty means stderr, which the terminal UI would overwrite.
	File string `mapstructure:"file"`
}

// TelemetryConfig toggles OpenTelemetry export.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// SampleRatio is the fraction of traces kept, in [0, 1].
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// UIConfig selects and sizes the display backend.
type UIConfig struct {
	// Backend is "terminal" or "window".
	Backend      string `mapstructure:"backend"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
}

// Config is the top-level application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Map       MapConfig       `mapstructure:"map"`
	Roster    RosterConfig    `mapstructure:"roster"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	UI        UIConfig        `mapstructure:"ui"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Map.Path == "" {
		errs = append(errs, "map.path must not be empty")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Sprintf("telemetry.sample_ratio must be in [0, 1], got %v", c.Telemetry.SampleRatio))
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.TileSize <= 0 {
		errs = append(errs, fmt.Sprintf("game.tile_size must be > 0, got %v", g.TileSize))
	}
	if g.PlayerSize <= 0 || g.PlayerSize > 1 {
		errs = append(errs, fmt.Sprintf("game.player_size must be in (0, 1], got %v", g.PlayerSize))
	}
	if g.SprintMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("game.sprint_multiplier must be >= 1, got %v", g.SprintMultiplier))
	}
	if g.MinProtect < 0 {
		errs = append(errs, fmt.Sprintf("game.min_protect must be >= 0, got %v", g.MinProtect))
	}
	if g.MaxProtect < g.MinProtect {
		errs = append(errs, "game.max_protect must not be below game.min_protect")
	}
	if g.FadeDuration < 0 {
		errs = append(errs, fmt.Sprintf("game.fade_duration must be >= 0, got %v", g.FadeDuration))
	}
	if g.CombatCooldown < 0 {
		errs = append(errs, fmt.Sprintf("game.combat_cooldown must be >= 0, got %v", g.CombatCooldown))
	}
	if g.TickRate < 1 || g.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("game.tick_rate must be 1-1000, got %d", g.TickRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateUI(u UIConfig) error {
	var errs []string
	validBackends := map[string]bool{"terminal": true, "window": true}
	if !validBackends[u.Backend] {
		errs = append(errs, fmt.Sprintf("ui.backend must be one of [terminal, window], got %q", u.Backend))
	}
	if u.WindowWidth < 1 || u.WindowHeight < 1 {
		errs = append(errs, fmt.Sprintf("ui.window size must be positive, got %dx%d", u.WindowWidth, u.WindowHeight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides and validates the result. An empty path or a missing
// file leaves the defaults in place.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TILEWALKER_ prefix
	v.SetEnvPrefix("TILEWALKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with every key at its default.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.tile_size", 0.1)
	v.SetDefault("game.player_size", 0.9)
	v.SetDefault("game.sprint_multiplier", 2.0)
	v.SetDefault("game.min_protect", 1.0)
	v.SetDefault("game.max_protect", 7.0)
	v.SetDefault("game.fade_duration", 1.0)
	v.SetDefault("game.combat_cooldown", 0.5)
	v.SetDefault("game.tick_rate", 60)
	v.SetDefault("game.seed", 0)

	v.SetDefault("combat.allow_flee", true)

	v.SetDefault("map.path", "assets/map.txt")
	v.SetDefault("roster.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "tilewalker.log")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)

	v.SetDefault("ui.backend", "terminal")
	v.SetDefault("ui.window_width", 1280)
	v.SetDefault("ui.window_height", 720)
}
