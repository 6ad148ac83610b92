package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeyUp, "up"},
		{KeyDown, "down"},
		{KeyLeft, "left"},
		{KeyRight, "right"},
		{KeySprint, "sprint"},
		{KeyConfirm, "confirm"},
		{KeyFlee, "flee"},
		{KeyQuit, "quit"},
		{Key(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expected {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestKeysListsEveryKey(t *testing.T) {
	assert.Len(t, Keys(), int(keyCount))
	assert.Equal(t, KeyUp, Keys()[0])
}

func TestPressReleaseEdges(t *testing.T) {
	s := NewState(0)

	s.Press(KeyConfirm)
	assert.True(t, s.Held(KeyConfirm))
	assert.True(t, s.JustPressed(KeyConfirm))

	s.EndFrame(0.016)
	assert.True(t, s.Held(KeyConfirm), "held survives the frame")
	assert.False(t, s.JustPressed(KeyConfirm), "edge lasts one frame")

	// Repeated press while held is not a new edge.
	s.Press(KeyConfirm)
	assert.False(t, s.JustPressed(KeyConfirm))

	s.Release(KeyConfirm)
	assert.False(t, s.Held(KeyConfirm))
	s.Press(KeyConfirm)
	assert.True(t, s.JustPressed(KeyConfirm))
}

func TestTouchExpiresAfterHoldWindow(t *testing.T) {
	s := NewState(0.1)

	s.Touch(KeyLeft)
	assert.True(t, s.JustPressed(KeyLeft))

	s.EndFrame(0.05)
	assert.True(t, s.Held(KeyLeft))

	// Autorepeat keeps it alive without a new edge.
	s.Touch(KeyLeft)
	assert.False(t, s.JustPressed(KeyLeft))
	s.EndFrame(0.05)
	s.EndFrame(0.04)
	assert.True(t, s.Held(KeyLeft))

	s.EndFrame(0.02)
	assert.False(t, s.Held(KeyLeft))

	s.Touch(KeyLeft)
	assert.True(t, s.JustPressed(KeyLeft), "press after expiry is a new edge")
}

func TestPressedKeysIgnoreHoldWindow(t *testing.T) {
	s := NewState(0.1)
	s.Press(KeyUp)
	for i := 0; i < 10; i++ {
		s.EndFrame(0.1)
	}
	assert.True(t, s.Held(KeyUp))
}

func TestInvalidKeysAreIgnored(t *testing.T) {
	s := NewState(0)
	s.Press(Key(-1))
	s.Touch(Key(99))
	assert.False(t, s.Held(Key(-1)))
	assert.False(t, s.JustPressed(Key(99)))
}

func TestNoneSource(t *testing.T) {
	var src Source = None{}
	for _, k := range Keys() {
		assert.False(t, src.Held(k))
		assert.False(t, src.JustPressed(k))
	}
}
