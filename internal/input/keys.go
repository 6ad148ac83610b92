// Package input defines the logical keys the game reads and the edge/level
// tracking shared by the terminal and window backends.
package input

// Key is a logical game key. Backends map physical keys onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeySprint
	KeyConfirm // Attack in combat
	KeyFlee
	KeyQuit

	keyCount
)

// String returns a human-readable key name.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeySprint:
		return "sprint"
	case KeyConfirm:
		return "confirm"
	case KeyFlee:
		return "flee"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Keys returns every logical key.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Source is read by the game once per tick.
type Source interface {
	// Held reports whether the key is down this frame.
	Held(k Key) bool
	// JustPressed reports whether the key went down this frame.
	JustPressed(k Key) bool
}

// None is a Source with nothing pressed.
type None struct{}

func (None) Held(Key) bool        { return false }
func (None) JustPressed(Key) bool { return false }
