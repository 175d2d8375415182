package gamedata

import (
	"github.com/samdwyer/critterquest/internal/errors"
)

// MonsterDef defines a monster species loaded from JSON.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "sinister_shade")
	Name        string `json:"name"`        // Display name (e.g., "Sinister Shade")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#AF5FFF")
	Sprite      string `json:"sprite"`      // Sprite reference, opaque to the engines
	HP          int    `json:"hp"`          // Max hit points
	Energy      int    `json:"energy"`      // Max energy
	Attack      int    `json:"attack"`      // Attack power
	Defense     int    `json:"defense"`     // Defense value
	Speed       int    `json:"speed"`       // Decides who acts first
	Level       int    `json:"level"`       // Starting level
	SpecialUses int    `json:"specialUses"` // Special moves per battle
	SpawnWeight int    `json:"spawnWeight"` // Relative encounter frequency (wild only)
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// Validate checks that the stats describe a monster that can fight.
func (m *MonsterDef) Validate() error {
	vb := errors.NewValidationBuilder()
	if m.ID == "" {
		vb.RequiredField("id")
	}
	if m.HP <= 0 {
		vb.Fieldf(m.ID+".hp", "must be positive, got %d", m.HP)
	}
	if m.Energy < 0 || m.SpecialUses < 0 || m.SpawnWeight < 0 {
		vb.Field(m.ID, "energy, specialUses and spawnWeight must not be negative")
	}
	return vb.Build()
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Starter MonsterDef   `json:"starter"`
	Wild    []MonsterDef `json:"wild"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() (*MonstersFile, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}

	if err := file.Starter.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid starter")
	}
	for i := range file.Wild {
		if err := file.Wild[i].Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid wild monster")
		}
	}
	return &file, nil
}
