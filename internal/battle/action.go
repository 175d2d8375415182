// Package battle provides the turn-based battle engine for CritterQuest.
package battle

// Action is a move a combatant can choose on its turn.
type Action string

const (
	ActionAttack  Action = "attack"
	ActionDefend  Action = "defend"
	ActionSpecial Action = "special"
	ActionCapture Action = "capture"
	ActionFlee    Action = "flee"
)

// Valid reports whether a is one of the five known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionAttack, ActionDefend, ActionSpecial, ActionCapture, ActionFlee:
		return true
	default:
		return false
	}
}

// Side identifies whose turn it is.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Winner records how a battle ended. WinnerNone on a finished battle means
// the actor fled.
type Winner string

const (
	WinnerNone     Winner = ""
	WinnerPlayer   Winner = "player"
	WinnerEnemy    Winner = "enemy"
	WinnerCaptured Winner = "captured"
)

// String returns a human-readable outcome name.
func (w Winner) String() string {
	if w == WinnerNone {
		return "none"
	}
	return string(w)
}

// Result contains the outcome of resolving one action.
type Result struct {
	Action     Action
	Actor      Side
	Success    bool
	Damage     int    // HP removed from the defender
	EnergyCost int    // Energy spent by the actor
	Message    string // Human-readable description, also appended to the log
}
