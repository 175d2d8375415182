package battle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/critterquest/internal/gamedata"
	"github.com/samdwyer/critterquest/internal/pkg/idgen"
)

// fixedSource replays a fixed list of draws, repeating the last one.
type fixedSource struct {
	draws []float64
	next  int
}

func newFixedSource(draws ...float64) *fixedSource {
	if len(draws) == 0 {
		draws = []float64{0.5}
	}
	return &fixedSource{draws: draws}
}

func (s *fixedSource) Float64() float64 {
	d := s.draws[min(s.next, len(s.draws)-1)]
	s.next++
	return d
}

func (s *fixedSource) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

var (
	heroDef = gamedata.MonsterDef{
		ID: "mystic_hero", Name: "Mystic Hero", Glyph: "H",
		HP: 100, Energy: 50, Attack: 25, Defense: 15, Speed: 18, Level: 1, SpecialUses: 3,
	}
	shadeDef = gamedata.MonsterDef{
		ID: "sinister_shade", Name: "Sinister Shade", Glyph: "S",
		HP: 80, Energy: 40, Attack: 20, Defense: 12, Speed: 15, Level: 1, SpecialUses: 2, SpawnWeight: 60,
	}
	pupDef = gamedata.MonsterDef{
		ID: "ember_pup", Name: "Ember Pup", Glyph: "e",
		HP: 60, Energy: 45, Attack: 22, Defense: 8, Speed: 20, Level: 1, SpecialUses: 2, SpawnWeight: 40,
	}
)

func testRegistry() *gamedata.MonsterRegistry {
	return gamedata.NewMonsterRegistry(heroDef, []gamedata.MonsterDef{shadeDef, pupDef})
}

// newTestEngine builds an engine that always meets enemy and draws from src.
func newTestEngine(t *testing.T, src Source, enemy gamedata.MonsterDef) *Engine {
	t.Helper()

	engine, err := NewEngine(&Config{
		Source:      src,
		IDGenerator: idgen.NewSequential("captured"),
		Registry:    testRegistry(),
		EnemyPicker: func(Source) *gamedata.MonsterDef { return &enemy },
	})
	require.NoError(t, err)
	return engine
}
