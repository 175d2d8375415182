package battle

import (
	"fmt"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/pkg/idgen"
)

const (
	// VictoryExperience is awarded to the player for knocking out the enemy.
	VictoryExperience = 50

	playerID = "player"
	enemyID  = "enemy"

	msgBattleStarted = "The battle has begun!"
	msgDefeat        = "You were defeated!"
	msgVictory       = "Victory! You defeated the enemy!"
	msgReward        = "You earned a capture ball!"
)

// EnemyPicker chooses the wild monster for a new encounter.
type EnemyPicker func(src Source) *gamedata.MonsterDef

// Config holds the dependencies for the battle engine
type Config struct {
	Source      Source
	IDGenerator idgen.Generator
	Registry    *gamedata.MonsterRegistry
	// EnemyPicker defaults to the registry's weighted spawn.
	EnemyPicker EnemyPicker
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	} else if c.Registry.Count() == 0 {
		vb.Field("Registry", "must hold at least one wild monster")
	}

	return vb.Build()
}

// Engine resolves battle actions. It holds no battle state of its own:
// every operation takes a State and returns a new one.
type Engine struct {
	src         Source
	idGen       idgen.Generator
	registry    *gamedata.MonsterRegistry
	enemyPicker EnemyPicker
}

// NewEngine creates a battle engine with the provided dependencies
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid battle config")
	}

	picker := cfg.EnemyPicker
	if picker == nil {
		registry := cfg.Registry
		picker = func(src Source) *gamedata.MonsterDef {
			return registry.SpawnRandom(src)
		}
	}

	return &Engine{
		src:         cfg.Source,
		idGen:       cfg.IDGenerator,
		registry:    cfg.Registry,
		enemyPicker: picker,
	}, nil
}

// New returns the first battle of a game, with an empty team and the
// starting capture items.
func (e *Engine) New() State {
	return e.Reset(State{CaptureItems: StartingCaptureItems})
}

// Reset starts a fresh encounter. The team and capture items carry over
// from prev; everything else is new. The faster monster acts first and ties
// go to the player.
func (e *Engine) Reset(prev State) State {
	player := entity.NewMonsterFromDef(e.registry.Starter(), playerID)

	enemyDef := e.enemyPicker(e.src)
	if enemyDef == nil {
		enemyDef = &e.registry.Wild()[0]
	}
	enemy := entity.NewMonsterFromDef(enemyDef, enemyID)

	turn := SidePlayer
	if enemy.Speed > player.Speed {
		turn = SideEnemy
	}

	return State{
		Player:       player,
		Enemy:        enemy,
		Turn:         turn,
		Log:          []string{msgBattleStarted},
		Team:         append([]entity.Monster(nil), prev.Team...),
		CaptureItems: prev.CaptureItems,
	}
}

// Apply resolves action for whoever owns the current turn and returns the
// next state. s itself is not modified. Applying an action to a finished
// battle is a caller error; the state comes back unchanged.
func (e *Engine) Apply(s State, action Action) (State, Result) {
	if s.GameOver {
		return s, Result{Action: action, Actor: s.Turn}
	}

	next := s.Clone()
	actor, defender := next.combatants()

	var result Result
	var preface []string

	switch action {
	case ActionAttack:
		result = resolveAttack(e.src, actor, defender)
	case ActionSpecial:
		result = resolveSpecial(e.src, actor, defender)
	case ActionDefend:
		result = resolveDefend(actor)
	case ActionCapture:
		result, preface = e.resolveCapture(&next, actor, defender)
	case ActionFlee:
		result = resolveFlee(e.src, actor)
		if result.Success {
			next.GameOver = true
			next.Winner = WinnerNone
		}
	default:
		result = Result{Message: fmt.Sprintf("%s hesitates.", actor.Name)}
	}
	result.Action = action
	result.Actor = next.Turn

	next.Log = append(next.Log, preface...)
	next.Log = append(next.Log, result.Message)

	e.checkKnockout(&next)

	// A successful capture already ended the battle, so only unfinished
	// battles hand the turn over.
	if !next.GameOver {
		actor.Defending = false
		next.Turn = next.Turn.Other()
	}

	return next, result
}

// resolveCapture throws a capture item at the defender. The item is spent
// whatever the outcome. On success the returned lines say where the monster
// went and are logged ahead of the result message.
func (e *Engine) resolveCapture(s *State, actor, defender *entity.Monster) (Result, []string) {
	if s.CaptureItems <= 0 {
		return Result{Message: fmt.Sprintf("%s has no capture balls!", actor.Name)}, nil
	}

	rate := captureRate(defender)
	roll := e.src.Float64() * 100
	s.CaptureItems--

	if roll > rate {
		return Result{Message: fmt.Sprintf("%s broke free of the capture ball!", defender.Name)}, nil
	}

	var placed string
	if len(s.Team) < TeamCapacity {
		s.Team = append(s.Team, defender.Rested(e.idGen.Generate()))
		placed = fmt.Sprintf("%s was added to your team!", defender.Name)
	} else {
		placed = fmt.Sprintf("Your team is full! %s was sent to storage.", defender.Name)
	}

	s.GameOver = true
	s.Winner = WinnerCaptured

	return Result{
		Success: true,
		Message: fmt.Sprintf("%s was captured successfully!", defender.Name),
	}, []string{placed}
}

// checkKnockout ends the battle when either side is out of HP. The player
// is checked first; a single action never damages both sides.
func (e *Engine) checkKnockout(s *State) {
	switch {
	case s.Player.HP <= 0:
		s.GameOver = true
		s.Winner = WinnerEnemy
		s.Log = append(s.Log, msgDefeat)
	case s.Enemy.HP <= 0:
		s.GameOver = true
		s.Winner = WinnerPlayer
		s.Log = append(s.Log, msgVictory)
		s.Player.Experience += VictoryExperience
		s.CaptureItems++
		s.Log = append(s.Log, msgReward)
	}
}
