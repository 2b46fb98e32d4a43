package render

import (
	"slices"
	"time"

	"github.com/milk9111/bouncer/common"
	"github.com/milk9111/bouncer/ecs"
)

// SyncOptions tunes the effects Reconcile emits.
type SyncOptions struct {
	// Transition accompanies every rotation change. Zero means DefaultTransition.
	Transition time.Duration
}

// Reconcile diffs sprites against the handles that already exist.
//
// Sprites without a handle get a create effect followed by an update in the
// same pass. Every sprite with a handle gets an update: position always,
// rotation only when the rounded heading differs from the last one written.
// The vertical flip (heading < 180) is recomputed on every update regardless
// of whether the rotation changed. Handles with no backing sprite get a
// destroy effect, in ascending identity order.
func Reconcile(sprites []ecs.Sprite, existing map[ecs.Entity]HandleState, opts SyncOptions) []Effect {
	transition := opts.Transition
	if transition <= 0 {
		transition = DefaultTransition
	}

	effects := make([]Effect, 0, len(sprites)+len(existing))
	for i := range sprites {
		s := &sprites[i]
		state, ok := existing[s.ID]
		if !ok {
			effects = append(effects, Effect{
				Kind:   EffectCreate,
				Entity: s.ID,
				Width:  s.Size.Width,
				Height: s.Size.Height,
				ZIndex: s.Layer.Index,
				Left:   s.Position.X,
				Top:    s.Position.Y,
			})
		}

		rot := common.RoundDegrees(s.Heading)
		upd := Effect{
			Kind:         EffectUpdate,
			Entity:       s.ID,
			Left:         s.Position.X,
			Top:          s.Position.Y,
			VerticalFlip: s.Heading < 180,
		}
		if !state.Rotated || state.Rotation != rot {
			upd.SetRotation = true
			upd.Rotation = rot
			upd.Transition = transition
		}
		effects = append(effects, upd)
	}

	var stale []ecs.Entity
	for id := range existing {
		if id < 0 || int(id) >= len(sprites) || sprites[id].ID != id {
			stale = append(stale, id)
		}
	}
	slices.Sort(stale)
	for _, id := range stale {
		effects = append(effects, Effect{Kind: EffectDestroy, Entity: id})
	}
	return effects
}
