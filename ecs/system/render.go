package system

import (
	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/render"
)

// RenderSyncSystem pushes sprite state to the handle registry once per tick.
type RenderSyncSystem struct {
	registry *render.Registry
	opts     render.SyncOptions
	last     []render.Effect
}

func NewRenderSyncSystem(registry *render.Registry, opts render.SyncOptions) *RenderSyncSystem {
	return &RenderSyncSystem{registry: registry, opts: opts}
}

func (s *RenderSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}
	s.last = s.registry.Sync(w.Store().Sprites(), s.opts)
}

// SetOptions replaces the sync options used from the next update on.
func (s *RenderSyncSystem) SetOptions(opts render.SyncOptions) {
	if s == nil {
		return
	}
	s.opts = opts
}

// LastEffects returns the effects applied by the most recent update.
func (s *RenderSyncSystem) LastEffects() []render.Effect {
	if s == nil {
		return nil
	}
	return s.last
}
