// Package visual hosts the sprite simulation inside a widget: it owns the
// store, the tick scheduler and the handle table, and serializes host
// callbacks against ticks.
package visual

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/milk9111/bouncer/ecs"
	"github.com/milk9111/bouncer/ecs/component"
	"github.com/milk9111/bouncer/ecs/render"
	"github.com/milk9111/bouncer/ecs/system"
	"github.com/milk9111/bouncer/prefabs"
)

var ErrClosed = errors.New("visual: closed")

type Option func(*Visual)

// WithSampler fixes the random source, for deterministic spawns.
func WithSampler(s *ecs.Sampler) Option {
	return func(v *Visual) { v.sampler = s }
}

// WithTicker replaces the wall-clock ticker.
func WithTicker(f ecs.TickerFunc) Option {
	return func(v *Visual) { v.newTicker = f }
}

// WithBounceHandler is called on the tick goroutine for every edge reflection.
func WithBounceHandler(f func(ecs.BounceEvent)) Option {
	return func(v *Visual) { v.onBounce = f }
}

// Setting is one entry of the property pane enumeration.
type Setting struct {
	Name  string
	Value any
}

type Visual struct {
	// life orders scheduler restarts against Close. It is taken before mu
	// and never by the tick goroutine.
	life      sync.Mutex
	mu        sync.Mutex
	spec      prefabs.VisualSpec
	world     *ecs.World
	registry  *render.Registry
	sync      *system.RenderSyncSystem
	scheduler *ecs.TickScheduler
	closed    bool

	sampler   *ecs.Sampler
	newTicker ecs.TickerFunc
	onBounce  func(ecs.BounceEvent)
}

// New spawns spec.Count sprites on surface inside viewport, draws them once
// and starts ticking.
func New(surface render.Surface, viewport ecs.Viewport, spec prefabs.VisualSpec, opts ...Option) (*Visual, error) {
	if surface == nil {
		return nil, fmt.Errorf("visual: nil surface")
	}
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("visual: %w", err)
	}

	v := &Visual{spec: spec, registry: render.NewRegistry(surface)}
	for _, opt := range opts {
		opt(v)
	}

	params, err := spawnParams(spec)
	if err != nil {
		return nil, fmt.Errorf("visual: %w", err)
	}

	store := ecs.NewStore(v.sampler)
	store.Initialize(spec.Count, viewport, params)

	v.world = ecs.NewWorld(store)
	v.world.AddSystem(system.NewPhysicsSystem())
	if v.onBounce != nil {
		v.world.AddSystem(system.NewBounceListener(v.onBounce))
	}
	v.sync = system.NewRenderSyncSystem(v.registry, v.syncOptions())
	v.world.AddSystem(v.sync)

	v.registry.Sync(store.Sprites(), v.syncOptions())

	v.scheduler = ecs.NewTickScheduler(v.newTicker)
	v.scheduler.Start(v.Step, spec.TickPeriod())
	log.Printf("visual: %s started with %d sprites in %.0fx%.0f", spec.Name, spec.Count, viewport.Width, viewport.Height)
	return v, nil
}

// Step runs one tick: physics over every sprite, then render sync.
func (v *Visual) Step() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.world.Update()
}

// Update applies a new desired sprite count. Negative counts are treated as zero.
func (v *Visual) Update(count int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if count < 0 {
		count = 0
	}
	v.spec.Count = count
	added, removed := v.world.Resize(count)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	v.registry.Sync(v.world.Store().Sprites(), v.syncOptions())
	log.Printf("visual: count now %d (+%d -%d)", count, len(added), len(removed))
	return nil
}

// SetViewport re-spawns every sprite when the viewport dimensions change.
func (v *Visual) SetViewport(width, height float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	store := v.world.Store()
	if !store.SetViewport(ecs.Viewport{Width: width, Height: height}) {
		return nil
	}
	v.registry.Sync(store.Sprites(), v.syncOptions())
	log.Printf("visual: viewport %.0fx%.0f, respawned %d sprites", width, height, store.Len())
	return nil
}

// ApplySpec reconciles a reloaded configuration. Count changes resize;
// speed or sprite changes re-spawn and recreate handles; a tick change
// restarts the scheduler.
func (v *Visual) ApplySpec(spec prefabs.VisualSpec) error {
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("visual: %w", err)
	}

	v.life.Lock()
	defer v.life.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	old := v.spec
	store := v.world.Store()

	switch {
	case spec.MaxSpeed != old.MaxSpeed || spec.Sprite != old.Sprite:
		params, err := spawnParams(spec)
		if err != nil {
			v.mu.Unlock()
			return fmt.Errorf("visual: %w", err)
		}
		store.Initialize(spec.Count, store.Viewport(), params)
		v.spec = spec
		v.registry.Reset()
		v.registry.Sync(store.Sprites(), v.syncOptions())
		log.Printf("visual: respawned %d sprites", spec.Count)
	case spec.Count != old.Count:
		v.world.Resize(spec.Count)
		v.spec = spec
		v.registry.Sync(store.Sprites(), v.syncOptions())
		log.Printf("visual: count now %d", spec.Count)
	default:
		v.spec = spec
	}
	v.sync.SetOptions(v.syncOptions())
	restart := spec.TickMS != old.TickMS
	v.mu.Unlock()

	if restart {
		v.scheduler.Start(v.Step, spec.TickPeriod())
		log.Printf("visual: tick period %v", spec.TickPeriod())
	}
	return nil
}

// KeepCount returns next with its count replaced by current when the file
// count did not change since prev was loaded. Counts set at runtime or on
// the command line then survive edits to other settings.
func KeepCount(next, prev prefabs.VisualSpec, current int) prefabs.VisualSpec {
	if next.Count == prev.Count {
		next.Count = current
	}
	return next
}

// Settings enumerates the current configuration for a property pane.
func (v *Visual) Settings() []Setting {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.spec
	return []Setting{
		{Name: "count", Value: s.Count},
		{Name: "max_speed", Value: s.MaxSpeed},
		{Name: "tick_ms", Value: s.TickMS},
		{Name: "transition_ms", Value: s.TransitionMS},
		{Name: "sprite.width", Value: s.Sprite.Width},
		{Name: "sprite.height", Value: s.Sprite.Height},
		{Name: "sprite.image", Value: s.Sprite.Image},
		{Name: "sprite.size_multiplier", Value: s.Sprite.SizeMultiplier},
		{Name: "sprite.size_script", Value: s.Sprite.SizeScript},
	}
}

// Spec returns the configuration currently applied.
func (v *Visual) Spec() prefabs.VisualSpec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.spec
}

// Sprites copies the current sprite state.
func (v *Visual) Sprites() []ecs.Sprite {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ecs.Sprite(nil), v.world.Store().Sprites()...)
}

// Handles is the number of live renderable handles.
func (v *Visual) Handles() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.registry.Len()
}

// Ticks counts completed ticks.
func (v *Visual) Ticks() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.world.Ticks()
}

func (v *Visual) Running() bool {
	return v.scheduler.Running()
}

// Close stops ticking and destroys every handle. Later calls are no-ops.
func (v *Visual) Close() {
	v.life.Lock()
	defer v.life.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	name := v.spec.Name
	v.mu.Unlock()

	v.scheduler.Stop()

	v.mu.Lock()
	v.registry.Reset()
	v.mu.Unlock()
	log.Printf("visual: %s closed", name)
}

func (v *Visual) syncOptions() render.SyncOptions {
	return render.SyncOptions{Transition: v.spec.Transition()}
}

func spawnParams(spec prefabs.VisualSpec) (ecs.SpawnParams, error) {
	params := ecs.SpawnParams{
		MaxSpeed: spec.MaxSpeed,
		Size:     component.Size{Width: spec.Sprite.Width, Height: spec.Sprite.Height},
	}
	mult := spec.Sprite.SizeMultiplier
	if spec.Sprite.SizeScript == "" {
		params.SizeMultiplier = func(ecs.Entity, int) float64 { return mult }
		return params, nil
	}
	script, err := prefabs.CompileSizeScript(spec.Sprite.SizeScript, mult)
	if err != nil {
		return ecs.SpawnParams{}, err
	}
	params.SizeMultiplier = func(id ecs.Entity, count int) float64 {
		return script.Multiplier(int(id), count)
	}
	return params, nil
}
