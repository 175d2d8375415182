package world

// Mode is what the explorer is currently doing.
type Mode int

const (
	// ModeExplore is free movement on the overworld.
	ModeExplore Mode = iota
	// ModeBattle is an active wild encounter; movement is paused.
	ModeBattle
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "explore"
	case ModeBattle:
		return "battle"
	default:
		return "unknown"
	}
}
