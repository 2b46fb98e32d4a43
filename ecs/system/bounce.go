package system

import "github.com/milk9111/bouncer/ecs"

// BounceListener forwards bounce events queued during the tick to a callback.
// It must run after PhysicsSystem.
type BounceListener struct {
	onBounce func(ecs.BounceEvent)
}

func NewBounceListener(onBounce func(ecs.BounceEvent)) *BounceListener {
	return &BounceListener{onBounce: onBounce}
}

func (s *BounceListener) Update(w *ecs.World) {
	if s == nil || w == nil || s.onBounce == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventBounce {
			continue
		}
		if b, ok := evt.Data.(ecs.BounceEvent); ok {
			s.onBounce(b)
		}
	}
}
