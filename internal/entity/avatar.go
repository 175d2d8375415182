package entity

// Direction is a facing/movement direction on the map.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the x, y step for one move in this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Symbol returns the avatar glyph for this facing.
func (d Direction) Symbol() rune {
	switch d {
	case DirUp:
		return '^'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	case DirRight:
		return '>'
	default:
		return '@'
	}
}

// Avatar is the trainer walking the overworld.
type Avatar struct {
	X, Y   int       // Current grid position
	Facing Direction // Last requested direction, even if the move was blocked
}

// NewAvatar creates an avatar at the given position, facing up.
func NewAvatar(x, y int) Avatar {
	return Avatar{X: x, Y: y, Facing: DirUp}
}

// Position returns the current x, y coordinates.
func (a Avatar) Position() (int, int) {
	return a.X, a.Y
}
