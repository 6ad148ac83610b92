package gamedata

import "fmt"

// PlayerDef defines the starting player loaded from YAML.
type PlayerDef struct {
	Name            string  `yaml:"name"`
	Glyph           string  `yaml:"glyph"`
	Color           string  `yaml:"color"`
	BackgroundColor string  `yaml:"background_color"`
	Speed           float64 `yaml:"speed"` // Tiles per second
	HP              int     `yaml:"hp"`
	Attack          int     `yaml:"attack"`
	Defense         int     `yaml:"defense"`
	StartCol        int     `yaml:"start_col"`
	StartRow        int     `yaml:"start_row"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune {
	if len(p.Glyph) == 0 {
		return '@'
	}
	return []rune(p.Glyph)[0]
}

// Validate checks the definition can be spawned.
func (p *PlayerDef) Validate() error {
	if p.Speed <= 0 {
		return fmt.Errorf("player: speed must be > 0, got %v", p.Speed)
	}
	if p.HP < 1 {
		return fmt.Errorf("player: hp must be >= 1, got %d", p.HP)
	}
	if _, err := ParseHexColor(p.Color); err != nil {
		return fmt.Errorf("player color: %w", err)
	}
	if _, err := ParseHexColor(p.BackgroundColor); err != nil {
		return fmt.Errorf("player background color: %w", err)
	}
	return nil
}

// PlayerFile represents the structure of player.yaml.
type PlayerFile struct {
	Player PlayerDef `yaml:"player"`
}

// LoadPlayer loads the player definition from the embedded player.yaml.
func LoadPlayer() (*PlayerDef, error) {
	file, err := Load[PlayerFile]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := file.Player.Validate(); err != nil {
		return nil, err
	}
	return &file.Player, nil
}

// MustLoadPlayer loads the player definition, panicking on error.
func MustLoadPlayer() *PlayerDef {
	def, err := LoadPlayer()
	if err != nil {
		panic(err)
	}
	return def
}
