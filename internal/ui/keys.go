package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilewalker/internal/input"
)

// holdWindow is how long a terminal key counts as held after its last event.
// Terminals never report releases, so autorepeat has to keep it alive. It
// covers the usual 250-500ms delay before autorepeat starts, at the cost of
// the player coasting up to half a second after letting go.
const holdWindow = 0.5

// Binding is the logical effect of one terminal key event.
type Binding struct {
	Keys   []input.Key
	Sticky bool // Held until the hold window lapses rather than for one frame
}

// Bind translates a key event. ok is false for unbound keys.
func Bind(ev *tcell.EventKey) (b Binding, ok bool) {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Binding{Keys: []input.Key{input.KeyQuit}}, true
	case tcell.KeyEnter:
		return Binding{Keys: []input.Key{input.KeyConfirm}}, true
	case tcell.KeyUp:
		return move(input.KeyUp, shift), true
	case tcell.KeyDown:
		return move(input.KeyDown, shift), true
	case tcell.KeyLeft:
		return move(input.KeyLeft, shift), true
	case tcell.KeyRight:
		return move(input.KeyRight, shift), true

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Binding{Keys: []input.Key{input.KeyQuit}}, true
		case ' ':
			return Binding{Keys: []input.Key{input.KeyFlee}}, true
		case 'w':
			return move(input.KeyUp, false), true
		case 's':
			return move(input.KeyDown, false), true
		case 'a':
			return move(input.KeyLeft, false), true
		case 'd':
			return move(input.KeyRight, false), true
		// Upper case is the shifted key.
		case 'W':
			return move(input.KeyUp, true), true
		case 'S':
			return move(input.KeyDown, true), true
		case 'A':
			return move(input.KeyLeft, true), true
		case 'D':
			return move(input.KeyRight, true), true
		}
	}
	return Binding{}, false
}

func move(k input.Key, sprint bool) Binding {
	b := Binding{Keys: []input.Key{k}, Sticky: true}
	if sprint {
		b.Keys = append(b.Keys, input.KeySprint)
	}
	return b
}

// Apply feeds a binding into a key state. Sticky keys stay held for the hold
// window; the rest are pressed for exactly one frame.
func Apply(state *input.State, b Binding) {
	for _, k := range b.Keys {
		if b.Sticky {
			state.Touch(k)
			continue
		}
		state.Press(k)
		state.Release(k)
	}
}
