package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/samdwyer/tilewalker/internal/input"
)

// bindings maps each logical key to the physical keys that drive it.
var bindings = map[input.Key][]ebiten.Key{
	input.KeyUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
	input.KeyDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
	input.KeyLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	input.KeyRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	input.KeySprint:  {ebiten.KeyShift},
	input.KeyConfirm: {ebiten.KeyEnter},
	input.KeyFlee:    {ebiten.KeySpace},
	input.KeyQuit:    {ebiten.KeyEscape, ebiten.KeyQ},
}

// Keyboard reads the ebiten keyboard state. Unlike a terminal, a window
// reports releases, so held keys need no hold window.
type Keyboard struct{}

// Held reports whether any key bound to k is down.
func (Keyboard) Held(k input.Key) bool {
	for _, key := range bindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// JustPressed reports whether any key bound to k went down this tick.
func (Keyboard) JustPressed(k input.Key) bool {
	for _, key := range bindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
