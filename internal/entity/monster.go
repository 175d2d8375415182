// Package entity provides game entities like monsters and the map avatar.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/critterquest/internal/gamedata"
)

// Monster is a combatant: the player's monster, a wild monster, or a
// member of the captured team.
type Monster struct {
	ID      string // Unique per instance; captured copies get a fresh one
	Species string // MonsterDef ID (e.g., "sinister_shade")
	Name    string // Display name
	Glyph   rune   // Display symbol
	Color   string // Hex color for rendering
	Sprite  string // Opaque sprite reference

	// Combat stats
	HP, MaxHP                   int
	Energy, MaxEnergy           int
	Attack                      int
	Defense                     int
	Speed                       int
	Level                       int
	Experience                  int
	SpecialUses, MaxSpecialUses int
	Defending                   bool
}

// NewMonsterFromDef creates a full-health monster from a data-driven definition.
func NewMonsterFromDef(def *gamedata.MonsterDef, id string) Monster {
	return Monster{
		ID:             id,
		Species:        def.ID,
		Name:           def.Name,
		Glyph:          def.GlyphRune(),
		Color:          def.Color,
		Sprite:         def.Sprite,
		HP:             def.HP,
		MaxHP:          def.HP,
		Energy:         def.Energy,
		MaxEnergy:      def.Energy,
		Attack:         def.Attack,
		Defense:        def.Defense,
		Speed:          def.Speed,
		Level:          def.Level,
		SpecialUses:    def.SpecialUses,
		MaxSpecialUses: def.SpecialUses,
	}
}

// IsAlive returns true if the monster has HP remaining.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// TakeDamage reduces HP and returns actual damage taken.
func (m *Monster) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.HP)
	m.HP -= actual
	return actual
}

// SpendEnergy reduces energy and returns false if insufficient.
func (m *Monster) SpendEnergy(amount int) bool {
	if m.Energy < amount {
		return false
	}
	m.Energy -= amount
	return true
}

// RestoreEnergy restores energy and returns actual amount restored.
func (m *Monster) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.MaxEnergy-m.Energy)
	m.Energy += actual
	return actual
}

// UseSpecial consumes one special use and returns false if none are left.
func (m *Monster) UseSpecial() bool {
	if m.SpecialUses <= 0 {
		return false
	}
	m.SpecialUses--
	return true
}

// HPPercent returns current HP as a percentage of max HP.
func (m *Monster) HPPercent() float64 {
	if m.MaxHP <= 0 {
		return 0
	}
	return float64(m.HP) / float64(m.MaxHP) * 100
}

// EnergyPercent returns current energy as a percentage of max energy.
func (m *Monster) EnergyPercent() float64 {
	if m.MaxEnergy <= 0 {
		return 0
	}
	return float64(m.Energy) / float64(m.MaxEnergy) * 100
}

// Rested returns a copy at full HP and energy, no longer defending, under a
// new ID. Special uses and experience are kept.
func (m Monster) Rested(id string) Monster {
	m.ID = id
	m.HP = m.MaxHP
	m.Energy = m.MaxEnergy
	m.Defending = false
	return m
}

// TCellColor returns the tcell color for this monster.
func (m *Monster) TCellColor() tcell.Color {
	color, err := gamedata.ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}
