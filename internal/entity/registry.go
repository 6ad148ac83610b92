// Package entity provides the handle registry and the game entities built on it.
package entity

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
)

// Handle is a stable identifier for a spawned record.
type Handle uuid.UUID

// NilHandle refers to no record.
var NilHandle = Handle(uuid.Nil)

// String returns the canonical uuid form.
func (h Handle) String() string { return uuid.UUID(h).String() }

// IsNil returns true for the zero handle.
func (h Handle) IsNil() bool { return h == NilHandle }

// Kind tags what a record represents.
type Kind int

const (
	KindMap Kind = iota
	KindTile
	KindPlayer
	KindDecoration // Child sprites such as the player's background
	KindEnemy
	KindCamera
	KindOverlay
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindTile:
		return "tile"
	case KindPlayer:
		return "player"
	case KindDecoration:
		return "decoration"
	case KindEnemy:
		return "enemy"
	case KindCamera:
		return "camera"
	case KindOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Position is a world-space coordinate. Z is the draw layer; higher is on top.
type Position struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Visual is everything a renderer needs to draw a record.
type Visual struct {
	Glyph rune
	Color color.RGBA
}

// Record is the state owned by one handle.
type Record struct {
	Handle   Handle
	Kind     Kind
	Name     string
	Parent   Handle
	Children []Handle
	Visual   Visual
	Position Position // Relative to Parent when Parent is set
	Visible  bool
	Stats    *CombatStats
}

// Registry owns every spawned record. It is not safe for concurrent use;
// the game loop is its only caller.
type Registry struct {
	records map[Handle]*Record
	order   []Handle // Spawn order, used for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[Handle]*Record),
	}
}

// Spawn creates a visible record and returns its handle.
func (r *Registry) Spawn(kind Kind, v Visual, pos Position) Handle {
	h := Handle(uuid.New())
	r.records[h] = &Record{
		Handle:   h,
		Kind:     kind,
		Visual:   v,
		Position: pos,
		Visible:  true,
	}
	r.order = append(r.order, h)
	return h
}

// Get returns the record for h.
func (r *Registry) Get(h Handle) (*Record, bool) {
	rec, ok := r.records[h]
	return rec, ok
}

// Must returns the record for h, panicking if it does not exist.
// A dangling handle means an entity outlived its owner.
func (r *Registry) Must(h Handle) *Record {
	rec, ok := r.records[h]
	if !ok {
		panic(fmt.Sprintf("entity: no record for handle %s", h))
	}
	return rec
}

// Exists returns true if h refers to a live record.
func (r *Registry) Exists(h Handle) bool {
	_, ok := r.records[h]
	return ok
}

// SetName attaches a display name.
func (r *Registry) SetName(h Handle, name string) {
	r.Must(h).Name = name
}

// AttachStats gives a record combat stats.
func (r *Registry) AttachStats(h Handle, stats CombatStats) {
	s := stats
	r.Must(h).Stats = &s
}

// Stats returns the combat stats of h, if it has any.
func (r *Registry) Stats(h Handle) (*CombatStats, bool) {
	rec, ok := r.records[h]
	if !ok || rec.Stats == nil {
		return nil, false
	}
	return rec.Stats, true
}

// AddChild parents child under parent. The child's position becomes relative.
func (r *Registry) AddChild(parent, child Handle) {
	p := r.Must(parent)
	c := r.Must(child)
	if !c.Parent.IsNil() {
		r.detach(c)
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// WorldPosition resolves a record's position through its parent chain.
func (r *Registry) WorldPosition(h Handle) Position {
	rec := r.Must(h)
	pos := rec.Position
	for parent := rec.Parent; !parent.IsNil(); {
		p := r.Must(parent)
		pos = pos.Add(p.Position)
		parent = p.Parent
	}
	return pos
}

// SetVisible toggles visibility of h and all its descendants.
func (r *Registry) SetVisible(h Handle, visible bool) {
	rec := r.Must(h)
	rec.Visible = visible
	for _, child := range rec.Children {
		r.SetVisible(child, visible)
	}
}

// Despawn removes h, its descendants and everything attached to them.
// Despawning an unknown handle is a no-op.
func (r *Registry) Despawn(h Handle) {
	rec, ok := r.records[h]
	if !ok {
		return
	}
	if !rec.Parent.IsNil() {
		r.detach(rec)
	}
	r.despawnTree(rec)

	live := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.records[id]; ok {
			live = append(live, id)
		}
	}
	r.order = live
}

func (r *Registry) despawnTree(rec *Record) {
	for _, child := range rec.Children {
		if c, ok := r.records[child]; ok {
			r.despawnTree(c)
		}
	}
	delete(r.records, rec.Handle)
}

func (r *Registry) detach(rec *Record) {
	if p, ok := r.records[rec.Parent]; ok {
		for i, child := range p.Children {
			if child == rec.Handle {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	rec.Parent = NilHandle
}

// Query returns the handles of every record of the given kind, in spawn order.
func (r *Registry) Query(kind Kind) []Handle {
	var out []Handle
	for _, h := range r.order {
		if r.records[h].Kind == kind {
			out = append(out, h)
		}
	}
	return out
}

// Single returns the only record of the given kind. Zero or several matches
// is a lifecycle bug and panics.
func (r *Registry) Single(kind Kind) Handle {
	matches := r.Query(kind)
	if len(matches) != 1 {
		panic(fmt.Sprintf("entity: expected exactly one %s, found %d", kind, len(matches)))
	}
	return matches[0]
}

// Each calls fn for every record in spawn order.
func (r *Registry) Each(fn func(*Record)) {
	for _, h := range r.order {
		fn(r.records[h])
	}
}

// Len returns the number of live records.
func (r *Registry) Len() int {
	return len(r.records)
}
