package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/critterquest/internal/battle"
	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/pkg/idgen"
	"github.com/samdwyer/critterquest/internal/telemetry"
	"github.com/samdwyer/critterquest/internal/world"
)

// EncounterSummary records how one finished encounter went.
type EncounterSummary struct {
	ID     string
	Enemy  string
	Winner battle.Winner
	Turns  int
	// Abandoned is set when the player left or restarted before the end.
	Abandoned bool
}

// Session owns one explorer and one battle and sequences them: moves lead to
// encounter rolls, player actions lead to enemy turns, and finished battles
// lead back to the map. Delayed steps go through the Scheduler and are tied
// to the encounter that scheduled them.
//
// A Session is not safe for concurrent use. The terminal front end calls it
// only from its event loop.
type Session struct {
	cfg       *Config
	logger    *slog.Logger
	scheduler Scheduler
	src       battle.Source
	engine    *battle.Engine
	tracer    trace.Tracer

	explorer world.Explorer
	battle   battle.State

	encounterIDs idgen.Generator
	encounterID  string
	turns        int
	summaries    []EncounterSummary

	cancelSettle func()
	settleGen    int
	pending      []func()
}

// NewSession generates the overworld and prepares the battle engine.
func NewSession(ctx context.Context, cfg *Config) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid game config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scheduler := cfg.Scheduler
	if scheduler == nil {
		scheduler = NewImmediateScheduler()
	}

	src := cfg.Source
	if src == nil {
		src = rand.New(rand.NewSource(cfg.resolvedSeed()))
	}

	registry := cfg.Registry
	if registry == nil {
		var err error
		registry, err = gamedata.LoadMonsterRegistry()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load monsters")
		}
	}

	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = idgen.NewUUID("critter")
	}

	engine, err := battle.NewEngine(&battle.Config{
		Source:      src,
		IDGenerator: idGen,
		Registry:    registry,
		EnemyPicker: cfg.EnemyPicker,
	})
	if err != nil {
		return nil, err
	}

	overworld := world.NewOverworld(world.DefaultWidth, world.DefaultHeight)
	overworld.Generate(ctx)

	s := &Session{
		cfg:          cfg,
		logger:       logger,
		scheduler:    scheduler,
		src:          src,
		engine:       engine,
		tracer:       telemetry.Tracer("game"),
		explorer:     world.NewExplorer(overworld),
		battle:       engine.New(),
		encounterIDs: idgen.NewSequential("encounter"),
	}

	x, y := overworld.Start()
	logger.Info("Session started",
		"start_x", x,
		"start_y", y,
		"wild_species", registry.Count(),
	)

	return s, nil
}

// Battle returns the current (or most recent) battle state.
func (s *Session) Battle() battle.State {
	return s.battle
}

// Explorer returns the explorer state.
func (s *Session) Explorer() world.Explorer {
	return s.explorer
}

// Mode returns whether the player is exploring or battling.
func (s *Session) Mode() world.Mode {
	return s.explorer.Mode
}

// EncounterID returns the current encounter's ID, or "" while exploring.
func (s *Session) EncounterID() string {
	return s.encounterID
}

// Summaries returns the finished and abandoned encounters so far, oldest
// first.
func (s *Session) Summaries() []EncounterSummary {
	return append([]EncounterSummary(nil), s.summaries...)
}

// Move steps the avatar. A successful move, or any move when
// RollOnBlockedMove is set, schedules an encounter roll after the settle
// delay. A newer move replaces a roll still waiting. Moves during a battle
// are ignored.
func (s *Session) Move(ctx context.Context, dir entity.Direction) bool {
	if s.explorer.Mode != world.ModeExplore {
		return false
	}

	var moved bool
	s.explorer, moved = world.Move(s.explorer, dir)

	if moved || s.cfg.RollOnBlockedMove {
		s.dropSettle()
		gen := s.settleGen
		s.cancelSettle = s.scheduler.Schedule(s.cfg.SettleDelay, func() {
			s.settle(ctx, gen)
		})
	}

	return moved
}

// settle rolls for an encounter on the tile the avatar stopped on. A roll
// scheduled before the latest move does nothing, even if its timer already
// fired.
func (s *Session) settle(ctx context.Context, gen int) {
	if gen != s.settleGen {
		s.logger.Debug("Dropped stale settle roll", "generation", gen, "current", s.settleGen)
		return
	}
	if s.explorer.Mode != world.ModeExplore {
		return
	}

	explorer, hit := world.RollEncounter(s.explorer, s.src)
	if !hit {
		return
	}
	s.explorer = explorer

	tile := s.explorer.CurrentTile()
	s.logger.Debug("Wild encounter triggered",
		"x", s.explorer.Avatar.X,
		"y", s.explorer.Avatar.Y,
		"terrain", tile.Terrain,
	)
	s.StartEncounter(ctx)
}

// StartEncounter enters battle against a fresh wild monster. The team and
// capture items carry over. If the enemy is faster its turn is scheduled.
func (s *Session) StartEncounter(ctx context.Context) {
	s.dropSettle()
	s.explorer = world.EnterBattle(s.explorer)
	s.begin(ctx)
}

// PlayerAction applies the player's chosen action. It refuses when there is
// no battle, the battle is over, or the enemy is to act.
func (s *Session) PlayerAction(ctx context.Context, action battle.Action) (battle.Result, error) {
	if !action.Valid() {
		return battle.Result{}, errors.InvalidArgument("unknown action: " + string(action))
	}
	if s.explorer.Mode != world.ModeBattle {
		return battle.Result{}, errors.FailedPrecondition("not in battle")
	}
	if s.battle.GameOver {
		return battle.Result{}, errors.FailedPrecondition("battle is over")
	}
	if !s.battle.IsPlayerTurn() {
		return battle.Result{}, errors.FailedPrecondition("not the player's turn")
	}

	return s.apply(ctx, action), nil
}

// LeaveBattle drops any pending battle tasks and returns to the map at once.
func (s *Session) LeaveBattle(ctx context.Context) error {
	if s.explorer.Mode != world.ModeBattle {
		return errors.FailedPrecondition("not in battle")
	}

	if !s.battle.GameOver {
		s.abandon()
	}
	s.logger.Info("Left battle", "encounter_id", s.encounterID)
	s.exit()
	return nil
}

// RestartBattle replaces the current battle with a fresh one against a new
// wild monster. Pending tasks from the old battle are dropped.
func (s *Session) RestartBattle(ctx context.Context) error {
	if s.explorer.Mode != world.ModeBattle {
		return errors.FailedPrecondition("not in battle")
	}

	if !s.battle.GameOver {
		s.abandon()
	}
	s.begin(ctx)
	return nil
}

// begin resets the battle under a new encounter ID.
func (s *Session) begin(ctx context.Context) {
	s.cancelPending()

	s.battle = s.engine.Reset(s.battle)
	s.encounterID = s.encounterIDs.Generate()
	s.turns = 0

	_, span := s.tracer.Start(ctx, "encounter.start")
	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.String("enemy.species", s.battle.Enemy.Species),
		attribute.Int("enemy.level", s.battle.Enemy.Level),
		attribute.String("encounter.first_turn", string(s.battle.Turn)),
		attribute.Int("team.size", len(s.battle.Team)),
		attribute.Int("capture_items", s.battle.CaptureItems),
	)
	span.End()

	s.logger.Info("Encounter started",
		"encounter_id", s.encounterID,
		"enemy", s.battle.Enemy.Name,
		"first_turn", s.battle.Turn,
	)

	if !s.battle.IsPlayerTurn() {
		s.scheduleEnemyTurn(ctx)
	}
}

// apply runs one action for whoever holds the turn and schedules what
// follows.
func (s *Session) apply(ctx context.Context, action battle.Action) battle.Result {
	_, span := s.tracer.Start(ctx, "battle.action")
	defer span.End()

	var result battle.Result
	s.battle, result = s.engine.Apply(s.battle, action)
	s.turns++

	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.String("battle.actor", string(result.Actor)),
		attribute.String("battle.action", string(result.Action)),
		attribute.Bool("battle.success", result.Success),
		attribute.Int("battle.damage", result.Damage),
	)

	s.logger.Debug("Battle action",
		"encounter_id", s.encounterID,
		"actor", result.Actor,
		"action", result.Action,
		"success", result.Success,
		"damage", result.Damage,
	)

	switch {
	case s.battle.GameOver:
		s.finish(ctx)
	case !s.battle.IsPlayerTurn():
		s.scheduleEnemyTurn(ctx)
	}

	return result
}

func (s *Session) scheduleEnemyTurn(ctx context.Context) {
	s.scheduleForEncounter(s.cfg.EnemyTurnDelay, func() {
		s.enemyTurn(ctx)
	})
}

// enemyTurn lets the enemy policy pick and apply an action.
func (s *Session) enemyTurn(ctx context.Context) {
	if s.explorer.Mode != world.ModeBattle || s.battle.GameOver || s.battle.IsPlayerTurn() {
		return
	}
	s.apply(ctx, s.engine.ChooseEnemyAction(s.battle))
}

// finish records the outcome and schedules the return to the map.
func (s *Session) finish(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "encounter.end")
	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.String("encounter.winner", s.battle.Winner.String()),
		attribute.Int("encounter.turns", s.turns),
		attribute.Int("team.size", len(s.battle.Team)),
	)
	span.End()

	s.record(false)

	s.logger.Info("Encounter ended",
		"encounter_id", s.encounterID,
		"winner", s.battle.Winner.String(),
		"turns", s.turns,
		"team_size", len(s.battle.Team),
		"capture_items", s.battle.CaptureItems,
	)

	s.scheduleForEncounter(s.cfg.ReturnDelay, s.exit)
}

// abandon records an unfinished encounter the player walked away from.
func (s *Session) abandon() {
	s.record(true)
}

func (s *Session) record(abandoned bool) {
	s.summaries = append(s.summaries, EncounterSummary{
		ID:        s.encounterID,
		Enemy:     s.battle.Enemy.Species,
		Winner:    s.battle.Winner,
		Turns:     s.turns,
		Abandoned: abandoned,
	})
}

// exit returns to the map and retires the encounter.
func (s *Session) exit() {
	s.cancelPending()
	s.explorer = world.ExitBattle(s.explorer)
	s.encounterID = ""
}

// scheduleForEncounter schedules task for the current encounter. If the
// encounter has been replaced or left by the time it fires, it does nothing.
func (s *Session) scheduleForEncounter(delay time.Duration, task func()) {
	id := s.encounterID
	cancel := s.scheduler.Schedule(delay, func() {
		if s.encounterID != id {
			s.logger.Debug("Dropped stale task", "encounter_id", id, "current", s.encounterID)
			return
		}
		task()
	})
	s.pending = append(s.pending, cancel)
}

// dropSettle retires any settle roll still waiting.
func (s *Session) dropSettle() {
	s.settleGen++
	if s.cancelSettle != nil {
		s.cancelSettle()
		s.cancelSettle = nil
	}
}

func (s *Session) cancelPending() {
	for _, cancel := range s.pending {
		cancel()
	}
	s.pending = nil
}
