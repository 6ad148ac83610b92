package input

// State tracks key levels and press edges from discrete key events.
//
// Terminals report presses and autorepeats but never releases, so a key
// fed through Touch counts as held until HoldWindow seconds pass without
// another event for it. Backends with real release events call Press and
// Release directly and leave HoldWindow at zero.
type State struct {
	HoldWindow float64

	held    [keyCount]bool
	pressed [keyCount]bool // Edge seen since the last EndFrame
	since   [keyCount]float64
	touched [keyCount]bool
}

// NewState returns a tracker with the given hold window in seconds.
func NewState(holdWindow float64) *State {
	return &State{HoldWindow: holdWindow}
}

// Press marks k down. A press of a key that was up is an edge.
func (s *State) Press(k Key) {
	if !valid(k) {
		return
	}
	if !s.held[k] {
		s.pressed[k] = true
	}
	s.held[k] = true
	s.touched[k] = false
}

// Release marks k up.
func (s *State) Release(k Key) {
	if !valid(k) {
		return
	}
	s.held[k] = false
	s.touched[k] = false
}

// Touch records a key event from a backend without release events.
// It presses k and restarts its hold window.
func (s *State) Touch(k Key) {
	if !valid(k) {
		return
	}
	s.Press(k)
	s.touched[k] = true
	s.since[k] = 0
}

// Held implements Source.
func (s *State) Held(k Key) bool {
	return valid(k) && s.held[k]
}

// JustPressed implements Source.
func (s *State) JustPressed(k Key) bool {
	return valid(k) && s.pressed[k]
}

// EndFrame clears press edges and expires touched keys whose hold window
// has elapsed. Call it after the game has read the frame's input.
func (s *State) EndFrame(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for k := range s.pressed {
		s.pressed[k] = false
		if !s.touched[k] {
			continue
		}
		s.since[k] += dt
		if s.since[k] >= s.HoldWindow {
			s.held[k] = false
			s.touched[k] = false
		}
	}
}

func valid(k Key) bool {
	return k >= 0 && k < keyCount
}
