package world

import (
	"github.com/samdwyer/critterquest/internal/entity"
)

// Roller is the source of encounter draws. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Explorer is the avatar's situation on the overworld. Functions that
// change it return a new value; the map itself is shared and read-only.
type Explorer struct {
	Map    *Overworld
	Avatar entity.Avatar
	Mode   Mode
}

// NewExplorer places a fresh avatar on the map's start tile.
func NewExplorer(m *Overworld) Explorer {
	x, y := m.Start()
	return Explorer{
		Map:    m,
		Avatar: entity.NewAvatar(x, y),
		Mode:   ModeExplore,
	}
}

// CurrentTile returns the tile under the avatar.
func (e Explorer) CurrentTile() Tile {
	return e.Map.GetTile(e.Avatar.X, e.Avatar.Y)
}

// Move steps the avatar one tile in dir, clamped to the map edges. Facing
// always changes to dir; the position only changes when the target is
// walkable. The bool reports whether the avatar actually moved.
func Move(e Explorer, dir entity.Direction) (Explorer, bool) {
	e.Avatar.Facing = dir

	dx, dy := dir.Delta()
	x := clamp(e.Avatar.X+dx, 0, e.Map.Width-1)
	y := clamp(e.Avatar.Y+dy, 0, e.Map.Height-1)

	if x == e.Avatar.X && y == e.Avatar.Y {
		return e, false
	}
	if !e.Map.IsWalkable(x, y) {
		return e, false
	}

	e.Avatar.X, e.Avatar.Y = x, y
	return e, true
}

// RollEncounter draws once against the current tile's encounter rate. On an
// encounter the explorer switches to battle mode.
func RollEncounter(e Explorer, src Roller) (Explorer, bool) {
	if src.Float64() < e.CurrentTile().EncounterRate {
		return EnterBattle(e), true
	}
	return e, false
}

// EnterBattle switches the explorer to battle mode.
func EnterBattle(e Explorer) Explorer {
	e.Mode = ModeBattle
	return e
}

// ExitBattle returns the explorer to free movement.
func ExitBattle(e Explorer) Explorer {
	e.Mode = ModeExplore
	return e
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
