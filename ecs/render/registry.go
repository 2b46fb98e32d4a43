package render

import (
	"slices"

	"github.com/milk9111/bouncer/ecs"
)

type entry struct {
	handle Handle
	state  HandleState
}

// Registry is the identity-keyed handle table. It is the only writer of
// handle properties.
type Registry struct {
	surface Surface
	entries map[ecs.Entity]*entry
}

// NewRegistry creates an empty table whose handles live on surface.
func NewRegistry(surface Surface) *Registry {
	return &Registry{surface: surface, entries: make(map[ecs.Entity]*entry)}
}

// States snapshots the table for Reconcile.
func (r *Registry) States() map[ecs.Entity]HandleState {
	if r == nil {
		return nil
	}
	out := make(map[ecs.Entity]HandleState, len(r.entries))
	for id, e := range r.entries {
		out[id] = e.state
	}
	return out
}

// Handle returns the live handle for id.
func (r *Registry) Handle(id ecs.Entity) (Handle, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.handle, true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Sync reconciles sprites against the table and applies the result.
func (r *Registry) Sync(sprites []ecs.Sprite, opts SyncOptions) []Effect {
	if r == nil {
		return nil
	}
	effects := Reconcile(sprites, r.States(), opts)
	r.Apply(effects)
	return effects
}

// Apply writes effects to the handles. Creating an existing handle, or
// updating or destroying a missing one, is a no-op.
func (r *Registry) Apply(effects []Effect) {
	if r == nil {
		return
	}
	for _, eff := range effects {
		switch eff.Kind {
		case EffectCreate:
			if _, ok := r.entries[eff.Entity]; ok || r.surface == nil {
				continue
			}
			h := r.surface.Create(eff.Entity)
			if h == nil {
				continue
			}
			h.SetSize(eff.Width, eff.Height)
			h.SetPosition(eff.Left, eff.Top)
			h.SetZIndex(eff.ZIndex)
			r.entries[eff.Entity] = &entry{handle: h}
		case EffectUpdate:
			e, ok := r.entries[eff.Entity]
			if !ok {
				continue
			}
			e.handle.SetPosition(eff.Left, eff.Top)
			if eff.SetRotation {
				e.handle.SetRotation(eff.Rotation, eff.Transition)
				e.state = HandleState{Rotation: eff.Rotation, Rotated: true}
			}
			e.handle.SetVerticalFlip(eff.VerticalFlip)
		case EffectDestroy:
			e, ok := r.entries[eff.Entity]
			if !ok {
				continue
			}
			e.handle.Destroy()
			delete(r.entries, eff.Entity)
		}
	}
}

// Reset destroys every handle, in ascending identity order.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	ids := make([]ecs.Entity, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	effects := make([]Effect, 0, len(ids))
	for _, id := range ids {
		effects = append(effects, Effect{Kind: EffectDestroy, Entity: id})
	}
	r.Apply(effects)
}
