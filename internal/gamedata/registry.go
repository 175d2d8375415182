package gamedata

import (
	"github.com/samdwyer/critterquest/internal/errors"
)

// Roller is the slice of *rand.Rand the registry needs.
type Roller interface {
	Intn(n int) int
}

// MonsterRegistry holds loaded monster definitions and provides spawning utilities.
type MonsterRegistry struct {
	starter     MonsterDef
	wild        []MonsterDef
	totalWeight int
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(starter MonsterDef, wild []MonsterDef) *MonsterRegistry {
	totalWeight := 0
	for _, m := range wild {
		totalWeight += m.SpawnWeight
	}
	return &MonsterRegistry{
		starter:     starter,
		wild:        wild,
		totalWeight: totalWeight,
	}
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	file, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(file.Wild) == 0 {
		return nil, errors.Internal("no wild monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(file.Starter, file.Wild), nil
}

// Starter returns the player's starting monster.
func (r *MonsterRegistry) Starter() *MonsterDef {
	return &r.starter
}

// SpawnRandom selects a wild monster using weighted probability.
// Monsters with higher spawnWeight are more likely to be selected.
func (r *MonsterRegistry) SpawnRandom(rng Roller) *MonsterDef {
	if r.totalWeight <= 0 || len(r.wild) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.wild {
		cumulative += r.wild[i].SpawnWeight
		if roll < cumulative {
			return &r.wild[i]
		}
	}

	return &r.wild[0]
}

// GetByID returns the wild monster with the given ID.
func (r *MonsterRegistry) GetByID(id string) (*MonsterDef, error) {
	for i := range r.wild {
		if r.wild[i].ID == id {
			return &r.wild[i], nil
		}
	}
	return nil, errors.NotFoundf("monster %q not found", id)
}

// Wild returns all wild monster definitions.
func (r *MonsterRegistry) Wild() []MonsterDef {
	return r.wild
}

// Count returns the number of wild species in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.wild)
}
