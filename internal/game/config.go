package game

import (
	"log/slog"
	"time"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/pkg/idgen"
)

// Default pacing of scheduled session tasks
const (
	DefaultSettleDelay    = 300 * time.Millisecond
	DefaultEnemyTurnDelay = 1500 * time.Millisecond
	DefaultReturnDelay    = 3000 * time.Millisecond
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible encounters.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// RollOnBlockedMove rolls for an encounter even when a move is rejected.
	RollOnBlockedMove bool

	SettleDelay    time.Duration // after a move, before the encounter roll
	EnemyTurnDelay time.Duration // before the enemy acts
	ReturnDelay    time.Duration // after game over, before returning to the map

	Logger    *slog.Logger
	Scheduler Scheduler

	// Optional overrides; nil fields get defaults.
	Source      battle.Source
	Registry    *gamedata.MonsterRegistry
	IDGenerator idgen.Generator
	EnemyPicker battle.EnemyPicker
}

// DefaultConfig returns a config with the standard delays. The scheduler is
// left nil, which NewSession treats as an ImmediateScheduler.
func DefaultConfig() *Config {
	return &Config{
		SettleDelay:    DefaultSettleDelay,
		EnemyTurnDelay: DefaultEnemyTurnDelay,
		ReturnDelay:    DefaultReturnDelay,
	}
}

// Validate checks delay values.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SettleDelay < 0 {
		vb.Fieldf("SettleDelay", "must not be negative, got %s", c.SettleDelay)
	}
	if c.EnemyTurnDelay < 0 {
		vb.Fieldf("EnemyTurnDelay", "must not be negative, got %s", c.EnemyTurnDelay)
	}
	if c.ReturnDelay < 0 {
		vb.Fieldf("ReturnDelay", "must not be negative, got %s", c.ReturnDelay)
	}

	return vb.Build()
}

// resolvedSeed returns the configured seed, or a time-based one for 0.
func (c *Config) resolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
