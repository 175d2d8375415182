package battle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/errors"
	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/pkg/idgen"
)

func TestNewEngineValidatesConfig(t *testing.T) {
	_, err := NewEngine(&Config{})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Source")
	assert.Contains(t, err.Error(), "Registry")
}

func TestNewEngineRejectsEmptyWildList(t *testing.T) {
	_, err := NewEngine(&Config{
		Source:      newFixedSource(),
		IDGenerator: idgen.NewSequential("captured"),
		Registry:    gamedata.NewMonsterRegistry(heroDef, nil),
	})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "wild monster")
}

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name      string
		base      float64
		defense   int
		defending bool
		factor    float64
		expected  int
	}{
		{"documented example", 25, 15, false, 1.0, 17},
		{"defending absorbs more", 25, 15, true, 1.0, 13},
		{"low roll", 25, 15, false, 0.8, 14},
		{"high roll", 25, 15, false, 1.2, 21},
		{"special base", 45, 12, false, 1.0, 39},
		{"never below one", 5, 100, false, 0.8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateDamage(tt.base, tt.defense, tt.defending, tt.factor))
		})
	}
}

func TestNewStartsBattle(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(), shadeDef)

	s := engine.New()

	assert.Equal(t, "Mystic Hero", s.Player.Name)
	assert.Equal(t, "Sinister Shade", s.Enemy.Name)
	assert.Equal(t, SidePlayer, s.Turn, "faster player acts first")
	assert.Equal(t, []string{"The battle has begun!"}, s.Log)
	assert.False(t, s.GameOver)
	assert.Equal(t, WinnerNone, s.Winner)
	assert.Empty(t, s.Team)
	assert.Equal(t, StartingCaptureItems, s.CaptureItems)
}

func TestResetTurnOrder(t *testing.T) {
	fast := newTestEngine(t, newFixedSource(), pupDef)
	assert.Equal(t, SideEnemy, fast.New().Turn, "faster enemy acts first")

	tied := shadeDef
	tied.Speed = heroDef.Speed
	tie := newTestEngine(t, newFixedSource(), tied)
	assert.Equal(t, SidePlayer, tie.New().Turn, "ties go to the player")
}

func TestResetCarriesTeamAndItems(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(), shadeDef)

	prev := engine.New()
	prev.Team = []entity.Monster{{ID: "captured-9", Name: "Old Friend"}}
	prev.CaptureItems = 2
	prev.GameOver = true
	prev.Winner = WinnerPlayer
	prev.Player.HP = 3
	prev.Log = append(prev.Log, "old line")

	s := engine.Reset(prev)

	assert.Equal(t, prev.Team, s.Team)
	assert.Equal(t, 2, s.CaptureItems)
	assert.False(t, s.GameOver)
	assert.Equal(t, WinnerNone, s.Winner)
	assert.Equal(t, 100, s.Player.HP)
	assert.Equal(t, []string{"The battle has begun!"}, s.Log)

	s.Team[0].Name = "changed"
	assert.Equal(t, "Old Friend", prev.Team[0].Name, "team is copied, not shared")
}

func TestResetUsesRegistrySpawn(t *testing.T) {
	engine := newTestEngineWithRegistrySpawn(t, newFixedSource(0.99))
	assert.Equal(t, "ember_pup", engine.New().Enemy.Species)

	engine = newTestEngineWithRegistrySpawn(t, newFixedSource(0.0))
	assert.Equal(t, "sinister_shade", engine.New().Enemy.Species)
}

func TestAttack(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()

	next, result := engine.Apply(s, ActionAttack)

	require.True(t, result.Success)
	// floor((25 - 12*0.5) * 1.0) = 19
	assert.Equal(t, 19, result.Damage)
	assert.Equal(t, AttackEnergyCost, result.EnergyCost)
	assert.Equal(t, SidePlayer, result.Actor)
	assert.Equal(t, 61, next.Enemy.HP)
	assert.Equal(t, 40, next.Player.Energy)
	assert.Equal(t, SideEnemy, next.Turn)
	assert.Equal(t, "Mystic Hero attacked and dealt 19 damage!", next.LastMessage())
	assert.Len(t, next.Log, 2)
}

func TestAttackWithoutEnergy(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()
	s.Player.Energy = 9

	next, result := engine.Apply(s, ActionAttack)

	assert.False(t, result.Success)
	assert.Equal(t, "Mystic Hero doesn't have enough energy!", result.Message)
	assert.Equal(t, 80, next.Enemy.HP)
	assert.Equal(t, 9, next.Player.Energy)
	assert.Equal(t, SideEnemy, next.Turn, "a failed attack still ends the turn")
}

func TestAttackIntoDefendingEnemy(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()
	s.Enemy.Defending = true

	next, result := engine.Apply(s, ActionAttack)

	// floor((25 - 18*0.5) * 1.0) = 16
	assert.Equal(t, 16, result.Damage)
	assert.Equal(t, 64, next.Enemy.HP)
	assert.True(t, next.Enemy.Defending, "only the actor's guard drops at turn end")
}

func TestSpecial(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()

	next, result := engine.Apply(s, ActionSpecial)

	require.True(t, result.Success)
	// floor((25*1.8 - 12*0.5) * 1.0) = 39
	assert.Equal(t, 39, result.Damage)
	assert.Equal(t, 41, next.Enemy.HP)
	assert.Equal(t, 35, next.Player.Energy)
	assert.Equal(t, 2, next.Player.SpecialUses)
	assert.Equal(t, "Mystic Hero used a Special Attack and dealt 39 damage!", result.Message)
}

func TestSpecialFailures(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)

	noUses := engine.New()
	noUses.Player.SpecialUses = 0
	next, result := engine.Apply(noUses, ActionSpecial)
	assert.False(t, result.Success)
	assert.Equal(t, "Mystic Hero can't use special attacks anymore!", result.Message)
	assert.Equal(t, 50, next.Player.Energy)

	noEnergy := engine.New()
	noEnergy.Player.Energy = 14
	next, result = engine.Apply(noEnergy, ActionSpecial)
	assert.False(t, result.Success)
	assert.Equal(t, "Mystic Hero doesn't have enough energy!", result.Message)
	assert.Equal(t, 3, next.Player.SpecialUses)
	assert.Equal(t, 80, next.Enemy.HP)
}

func TestDefend(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()
	s.Player.Energy = 47

	next, result := engine.Apply(s, ActionDefend)

	assert.True(t, result.Success)
	assert.Equal(t, "Mystic Hero took a defensive stance!", result.Message)
	assert.Equal(t, 50, next.Player.Energy, "energy gain is capped at max")
	assert.False(t, next.Player.Defending, "the actor's guard ends with its turn")
	assert.Equal(t, SideEnemy, next.Turn)
}

func TestCaptureSuccess(t *testing.T) {
	// Full HP enemy: rate 20, roll 0.1*100 = 10 succeeds.
	engine := newTestEngine(t, newFixedSource(0.1), shadeDef)
	s := engine.New()
	s.Enemy.Energy = 3
	s.Enemy.Defending = true

	next, result := engine.Apply(s, ActionCapture)

	require.True(t, result.Success)
	assert.Equal(t, 4, next.CaptureItems)
	assert.True(t, next.GameOver)
	assert.Equal(t, WinnerCaptured, next.Winner)
	assert.Equal(t, SidePlayer, next.Turn, "successful capture never passes the turn")
	require.Len(t, next.Team, 1)

	captured := next.Team[0]
	assert.Equal(t, "captured-1", captured.ID)
	assert.Equal(t, "Sinister Shade", captured.Name)
	assert.Equal(t, captured.MaxHP, captured.HP)
	assert.Equal(t, captured.MaxEnergy, captured.Energy)
	assert.False(t, captured.Defending)

	assert.Equal(t, []string{
		"The battle has begun!",
		"Sinister Shade was added to your team!",
		"Sinister Shade was captured successfully!",
	}, next.Log)
}

func TestCaptureFailure(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()

	next, result := engine.Apply(s, ActionCapture)

	assert.False(t, result.Success)
	assert.Equal(t, "Sinister Shade broke free of the capture ball!", result.Message)
	assert.Equal(t, 4, next.CaptureItems, "the item is spent either way")
	assert.Empty(t, next.Team)
	assert.False(t, next.GameOver)
	assert.Equal(t, SideEnemy, next.Turn)
}

func TestCaptureWithoutItems(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.0), shadeDef)
	s := engine.New()
	s.CaptureItems = 0

	next, result := engine.Apply(s, ActionCapture)

	assert.False(t, result.Success)
	assert.Equal(t, "Mystic Hero has no capture balls!", result.Message)
	assert.Equal(t, 0, next.CaptureItems)
	assert.Equal(t, SideEnemy, next.Turn)
}

func TestCaptureWithFullTeam(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.0), shadeDef)
	s := engine.New()
	for i := 0; i < TeamCapacity; i++ {
		s.Team = append(s.Team, entity.Monster{ID: "member", Name: "Member"})
	}

	next, result := engine.Apply(s, ActionCapture)

	assert.True(t, result.Success)
	assert.Len(t, next.Team, TeamCapacity)
	assert.Equal(t, WinnerCaptured, next.Winner)
	assert.Equal(t, []string{
		"Your team is full! Sinister Shade was sent to storage.",
		"Sinister Shade was captured successfully!",
	}, next.Log[len(next.Log)-2:])
}

func TestCaptureRate(t *testing.T) {
	m := entity.NewMonsterFromDef(&shadeDef, "enemy")
	assert.Equal(t, 20, CaptureRate(&m))

	m.HP = 40 // 50% -> 70
	assert.Equal(t, 70, CaptureRate(&m))

	m.HP = 8 // 10% -> 110, capped
	assert.Equal(t, 90, CaptureRate(&m))

	m.HP = 0
	assert.Equal(t, 90, CaptureRate(&m))
}

func TestFlee(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.31), shadeDef)
	next, result := engine.Apply(engine.New(), ActionFlee)

	assert.True(t, result.Success)
	assert.Equal(t, "Mystic Hero fled the battle!", result.Message)
	assert.True(t, next.GameOver)
	assert.Equal(t, WinnerNone, next.Winner)
	assert.Equal(t, SidePlayer, next.Turn)

	engine = newTestEngine(t, newFixedSource(0.3), shadeDef)
	next, result = engine.Apply(engine.New(), ActionFlee)

	assert.False(t, result.Success)
	assert.Equal(t, "Mystic Hero couldn't get away!", result.Message)
	assert.False(t, next.GameOver)
	assert.Equal(t, SideEnemy, next.Turn)
}

func TestVictory(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()
	s.Enemy.HP = 5

	next, _ := engine.Apply(s, ActionAttack)

	assert.Equal(t, 0, next.Enemy.HP)
	assert.True(t, next.GameOver)
	assert.Equal(t, WinnerPlayer, next.Winner)
	assert.Equal(t, VictoryExperience, next.Player.Experience)
	assert.Equal(t, StartingCaptureItems+1, next.CaptureItems)
	assert.Equal(t, SidePlayer, next.Turn)
	assert.Equal(t, []string{
		"The battle has begun!",
		"Mystic Hero attacked and dealt 19 damage!",
		"Victory! You defeated the enemy!",
		"You earned a capture ball!",
	}, next.Log)
}

func TestDefeat(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.5), shadeDef)
	s := engine.New()
	s.Turn = SideEnemy
	s.Player.HP = 2

	next, result := engine.Apply(s, ActionAttack)

	assert.Equal(t, SideEnemy, result.Actor)
	assert.Equal(t, 0, next.Player.HP)
	assert.True(t, next.GameOver)
	assert.Equal(t, WinnerEnemy, next.Winner)
	assert.Equal(t, "You were defeated!", next.LastMessage())
	assert.Equal(t, StartingCaptureItems, next.CaptureItems)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.0), shadeDef)
	s := engine.New()

	next, _ := engine.Apply(s, ActionCapture)

	assert.Len(t, s.Log, 1)
	assert.Empty(t, s.Team)
	assert.Equal(t, StartingCaptureItems, s.CaptureItems)
	assert.False(t, s.GameOver)
	assert.NotEqual(t, s.Log, next.Log)
}

func TestApplyAfterGameOverIsNoop(t *testing.T) {
	engine := newTestEngine(t, newFixedSource(0.0), shadeDef)
	s := engine.New()
	s.GameOver = true
	s.Winner = WinnerPlayer

	next, result := engine.Apply(s, ActionAttack)

	assert.False(t, result.Success)
	assert.Equal(t, s, next)
}

// TestInvariantsUnderRandomPlay drives many seeded battles to completion and
// checks the bounds and turn rules after every action.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	actions := []Action{ActionAttack, ActionDefend, ActionSpecial, ActionCapture, ActionFlee}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		engine := newTestEngine(t, rng, shadeDef)
		s := engine.New()
		s.CaptureItems = 3

		for games := 0; games < 10; games++ {
			for step := 0; step < 200 && !s.GameOver; step++ {
				var action Action
				if s.IsPlayerTurn() {
					action = actions[rng.Intn(len(actions))]
				} else {
					action = engine.ChooseEnemyAction(s)
				}

				next, result := engine.Apply(s, action)

				assertBounds(t, next.Player)
				assertBounds(t, next.Enemy)
				assert.LessOrEqual(t, len(next.Team), TeamCapacity)

				if result.Success && (action == ActionAttack || action == ActionSpecial) {
					assert.GreaterOrEqual(t, result.Damage, 1)
				}
				if action == ActionCapture && s.CaptureItems > 0 {
					assert.Equal(t, s.CaptureItems-1, next.CaptureItems)
				}
				if next.GameOver {
					assert.Equal(t, s.Turn, next.Turn, "finished battles keep the turn")
				} else {
					assert.Equal(t, s.Turn.Other(), next.Turn, "turn flips exactly once")
				}

				s = next
			}
			s = engine.Reset(s)
		}
	}
}

func assertBounds(t *testing.T, m entity.Monster) {
	t.Helper()
	assert.GreaterOrEqual(t, m.HP, 0)
	assert.LessOrEqual(t, m.HP, m.MaxHP)
	assert.GreaterOrEqual(t, m.Energy, 0)
	assert.LessOrEqual(t, m.Energy, m.MaxEnergy)
	assert.GreaterOrEqual(t, m.SpecialUses, 0)
	assert.LessOrEqual(t, m.SpecialUses, m.MaxSpecialUses)
}

func newTestEngineWithRegistrySpawn(t *testing.T, src Source) *Engine {
	t.Helper()
	engine, err := NewEngine(&Config{
		Source:      src,
		IDGenerator: idgen.NewSequential("captured"),
		Registry:    testRegistry(),
	})
	require.NoError(t, err)
	return engine
}
