package gamedata

import (
	"errors"
	"fmt"
	"image/color"
)

// Source is the randomness a roster draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Archetype is a named enemy template with fixed starting stats.
type Archetype struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Glyph   string `yaml:"glyph"`
	Color   string `yaml:"color"` // Hex color code (e.g., "#00FF00")
	HP      int    `yaml:"hp"`
	Attack  int    `yaml:"attack"`
	Defense int    `yaml:"defense"`
}

// Validate checks that the archetype can be spawned.
func (a *Archetype) Validate() error {
	if a.ID == "" {
		return errors.New("archetype: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype %q: name must not be empty", a.ID)
	}
	if a.HP < 1 {
		return fmt.Errorf("archetype %q: hp must be >= 1, got %d", a.ID, a.HP)
	}
	if a.Defense < 0 {
		return fmt.Errorf("archetype %q: defense must be >= 0, got %d", a.ID, a.Defense)
	}
	if _, err := ParseHexColor(a.Color); err != nil {
		return fmt.Errorf("archetype %q: %w", a.ID, err)
	}
	return nil
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *Archetype) GlyphRune() rune {
	if len(a.Glyph) == 0 {
		return '?'
	}
	return []rune(a.Glyph)[0]
}

// RGBA returns the archetype color, white if it does not parse.
func (a *Archetype) RGBA() color.RGBA {
	c, err := ParseHexColor(a.Color)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// EnemiesFile represents the structure of enemies.yaml.
type EnemiesFile struct {
	Enemies []Archetype `yaml:"enemies"`
}

// Roster is the fixed set of archetypes encounters draw from.
type Roster struct {
	archetypes []Archetype
}

// NewRoster validates the archetypes and builds a roster.
func NewRoster(archetypes []Archetype) (*Roster, error) {
	if len(archetypes) == 0 {
		return nil, errors.New("roster has no archetypes")
	}
	seen := make(map[string]bool, len(archetypes))
	for i := range archetypes {
		if err := archetypes[i].Validate(); err != nil {
			return nil, err
		}
		if seen[archetypes[i].ID] {
			return nil, fmt.Errorf("duplicate archetype id %q", archetypes[i].ID)
		}
		seen[archetypes[i].ID] = true
	}
	return &Roster{archetypes: archetypes}, nil
}

// LoadRoster builds a roster from the embedded enemies.yaml.
func LoadRoster() (*Roster, error) {
	file, err := Load[EnemiesFile]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return NewRoster(file.Enemies)
}

// LoadRosterFile builds a roster from a YAML file on disk.
func LoadRosterFile(path string) (*Roster, error) {
	file, err := LoadFile[EnemiesFile](path)
	if err != nil {
		return nil, err
	}
	roster, err := NewRoster(file.Enemies)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return roster, nil
}

// MustLoadRoster loads the embedded roster, panicking on error.
func MustLoadRoster() *Roster {
	roster, err := LoadRoster()
	if err != nil {
		panic(err)
	}
	return roster
}

// Pick selects one archetype uniformly at random. It cannot fail: the
// roster is non-empty by construction.
func (r *Roster) Pick(src Source) *Archetype {
	return &r.archetypes[src.Intn(len(r.archetypes))]
}

// GetByID returns the archetype with the given ID, or nil if not found.
func (r *Roster) GetByID(id string) *Archetype {
	for i := range r.archetypes {
		if r.archetypes[i].ID == id {
			return &r.archetypes[i]
		}
	}
	return nil
}

// All returns all archetypes.
func (r *Roster) All() []Archetype {
	return r.archetypes
}

// Count returns the number of archetypes in the roster.
func (r *Roster) Count() int {
	return len(r.archetypes)
}
