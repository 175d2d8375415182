package battle

import (
	"github.com/samdwyer/critterquest/internal/entity"
)

const (
	// TeamCapacity is the most captured monsters the player can carry.
	TeamCapacity = 6
	// StartingCaptureItems is the capture item count of a brand new game.
	StartingCaptureItems = 5
)

// State is everything about one encounter plus the player's carried team
// and capture items, which survive Reset.
type State struct {
	Player       entity.Monster
	Enemy        entity.Monster
	Turn         Side
	Log          []string
	GameOver     bool
	Winner       Winner
	Team         []entity.Monster
	CaptureItems int
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Log = append([]string(nil), s.Log...)
	s.Team = append([]entity.Monster(nil), s.Team...)
	return s
}

// combatants returns the acting and defending monsters for the current turn.
func (s *State) combatants() (actor, defender *entity.Monster) {
	if s.Turn == SidePlayer {
		return &s.Player, &s.Enemy
	}
	return &s.Enemy, &s.Player
}

// IsPlayerTurn reports whether the player is to act.
func (s State) IsPlayerTurn() bool {
	return s.Turn == SidePlayer
}

// LastMessage returns the newest log line, or "" for an empty log.
func (s State) LastMessage() string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}
