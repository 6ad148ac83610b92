package entity

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samdwyer/tilewalker/internal/gamedata"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindMap, "map"},
		{KindTile, "tile"},
		{KindPlayer, "player"},
		{KindDecoration, "decoration"},
		{KindEnemy, "enemy"},
		{KindCamera, "camera"},
		{KindOverlay, "overlay"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestSpawnAndGet(t *testing.T) {
	reg := NewRegistry()
	v := Visual{Glyph: '#', Color: color.RGBA{R: 1, A: 0xff}}

	h := reg.Spawn(KindTile, v, Position{X: 1, Y: 2, Z: 100})
	require.False(t, h.IsNil())

	rec, ok := reg.Get(h)
	require.True(t, ok)
	assert.Equal(t, KindTile, rec.Kind)
	assert.Equal(t, v, rec.Visual)
	assert.True(t, rec.Visible)
	assert.Equal(t, 1, reg.Len())

	_, ok = reg.Get(NilHandle)
	assert.False(t, ok)
}

func TestSpawnHandlesAreUnique(t *testing.T) {
	reg := NewRegistry()
	seen := make(map[Handle]bool)
	for i := 0; i < 100; i++ {
		h := reg.Spawn(KindTile, Visual{}, Position{})
		assert.False(t, seen[h], "duplicate handle %s", h)
		seen[h] = true
	}
}

func TestDespawnIsRecursive(t *testing.T) {
	reg := NewRegistry()
	parent := reg.Spawn(KindMap, Visual{}, Position{})
	child := reg.Spawn(KindTile, Visual{}, Position{})
	grandchild := reg.Spawn(KindDecoration, Visual{}, Position{})
	other := reg.Spawn(KindCamera, Visual{}, Position{})
	reg.AddChild(parent, child)
	reg.AddChild(child, grandchild)
	reg.AttachStats(child, NewCombatStats(3, 1, 1))

	reg.Despawn(parent)

	assert.False(t, reg.Exists(parent))
	assert.False(t, reg.Exists(child))
	assert.False(t, reg.Exists(grandchild))
	assert.True(t, reg.Exists(other))
	assert.Equal(t, 1, reg.Len())
	assert.Empty(t, reg.Query(KindTile))

	_, ok := reg.Stats(child)
	assert.False(t, ok, "stats must go with their owner")

	// Unknown handles are ignored.
	reg.Despawn(parent)
}

func TestDespawnChildDetachesFromParent(t *testing.T) {
	reg := NewRegistry()
	parent := reg.Spawn(KindMap, Visual{}, Position{})
	a := reg.Spawn(KindTile, Visual{}, Position{})
	b := reg.Spawn(KindTile, Visual{}, Position{})
	reg.AddChild(parent, a)
	reg.AddChild(parent, b)

	reg.Despawn(a)

	assert.Equal(t, []Handle{b}, reg.Must(parent).Children)
}

func TestSetVisibleIsRecursive(t *testing.T) {
	reg := NewRegistry()
	parent := reg.Spawn(KindPlayer, Visual{}, Position{})
	child := reg.Spawn(KindDecoration, Visual{}, Position{})
	reg.AddChild(parent, child)

	reg.SetVisible(parent, false)
	assert.False(t, reg.Must(parent).Visible)
	assert.False(t, reg.Must(child).Visible)

	reg.SetVisible(parent, true)
	assert.True(t, reg.Must(parent).Visible)
	assert.True(t, reg.Must(child).Visible)
}

func TestWorldPosition(t *testing.T) {
	reg := NewRegistry()
	parent := reg.Spawn(KindPlayer, Visual{}, Position{X: 0.2, Y: -0.2, Z: 900})
	child := reg.Spawn(KindDecoration, Visual{}, Position{Z: -1})
	reg.AddChild(parent, child)

	assert.Equal(t, Position{X: 0.2, Y: -0.2, Z: 899}, reg.WorldPosition(child))
}

func TestSingle(t *testing.T) {
	reg := NewRegistry()

	assert.Panics(t, func() { reg.Single(KindPlayer) }, "absent singleton")

	h := reg.Spawn(KindPlayer, Visual{}, Position{})
	assert.Equal(t, h, reg.Single(KindPlayer))

	reg.Spawn(KindPlayer, Visual{}, Position{})
	assert.Panics(t, func() { reg.Single(KindPlayer) }, "duplicated singleton")
}

func TestMustPanicsOnMissing(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() { reg.Must(NilHandle) })
}

func TestQueryKeepsSpawnOrder(t *testing.T) {
	reg := NewRegistry()
	var want []Handle
	for i := 0; i < 5; i++ {
		want = append(want, reg.Spawn(KindTile, Visual{}, Position{X: float64(i)}))
		reg.Spawn(KindDecoration, Visual{}, Position{})
	}
	assert.Equal(t, want, reg.Query(KindTile))
}

func TestRegistryLenTracksSpawnsAndDespawns(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry()
		var live []Handle
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(live) > 0 && rapid.Bool().Draw(t, "despawn") {
				idx := rapid.IntRange(0, len(live)-1).Draw(t, "idx")
				reg.Despawn(live[idx])
				live = append(live[:idx], live[idx+1:]...)
			} else {
				live = append(live, reg.Spawn(KindTile, Visual{}, Position{}))
			}
			if reg.Len() != len(live) || len(reg.Query(KindTile)) != len(live) {
				t.Fatalf("registry has %d records, want %d", reg.Len(), len(live))
			}
		}
	})
}

func TestSpawnPlayer(t *testing.T) {
	reg := NewRegistry()
	def := gamedata.MustLoadPlayer()

	p := SpawnPlayer(reg, def, 0.2, -0.2)

	assert.Equal(t, 2.5, p.Speed)
	assert.False(t, p.JustMoved)
	assert.Equal(t, p.Handle, reg.Single(KindPlayer))
	assert.Equal(t, Position{X: 0.2, Y: -0.2, Z: LayerPlayer}, p.Position(reg))

	stats, ok := reg.Stats(p.Handle)
	require.True(t, ok)
	assert.Equal(t, CombatStats{Health: 10, MaxHealth: 10, Attack: 2, Defense: 1}, *stats)

	require.Len(t, reg.Must(p.Handle).Children, 1)
	bg := reg.Must(p.Handle).Children[0]
	assert.Equal(t, LayerPlayer-1, reg.WorldPosition(bg).Z)

	p.MoveTo(reg, 0.5, 0.6)
	assert.Equal(t, Position{X: 0.5, Y: 0.6, Z: LayerPlayer}, p.Position(reg))
}

func TestSpawnEnemy(t *testing.T) {
	reg := NewRegistry()
	rehu := gamedata.MustLoadRoster().GetByID("rehu")
	require.NotNil(t, rehu)

	e := SpawnEnemy(reg, rehu, 0, 0.2)

	assert.Equal(t, "Rehu", e.Name())
	assert.Equal(t, "Rehu", reg.Must(e.Handle).Name)
	stats, ok := reg.Stats(e.Handle)
	require.True(t, ok)
	assert.Equal(t, CombatStats{Health: 3, MaxHealth: 3, Attack: 2, Defense: 1}, *stats)
}
