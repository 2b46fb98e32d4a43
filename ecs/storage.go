package ecs

import (
	"github.com/milk9111/bouncer/common"
	"github.com/milk9111/bouncer/ecs/component"
)

// SpawnParams configures the state sampled for new sprites.
type SpawnParams struct {
	MaxSpeed float64
	Size     component.Size
	// SizeMultiplier scales Size and sets the render order of each spawned
	// sprite. count is the size of the last full spawn, so sprites appended
	// by Resize are sized on the same basis as the survivors. nil means
	// component.DefaultSizeMultiplier.
	SizeMultiplier func(id Entity, count int) float64
}

// Store owns the sprites. Identities are always 0..Len()-1.
type Store struct {
	sprites  []Sprite
	viewport Viewport
	params   SpawnParams
	sampler  *Sampler
	// count passed to SizeMultiplier
	sizedFor int
}

// NewStore creates an empty store. A nil sampler seeds from the wall clock.
func NewStore(sampler *Sampler) *Store {
	if sampler == nil {
		sampler = newTimeSampler()
	}
	return &Store{sampler: sampler}
}

// Initialize discards any existing sprites and spawns count fresh ones.
func (s *Store) Initialize(count int, viewport Viewport, params SpawnParams) []Sprite {
	if s == nil {
		return nil
	}
	if count < 0 {
		count = 0
	}
	s.viewport = viewport
	s.params = params
	s.sizedFor = count
	s.sprites = make([]Sprite, 0, count)
	for i := 0; i < count; i++ {
		s.sprites = append(s.sprites, s.spawn(Entity(i)))
	}
	return s.sprites
}

// Resize truncates or extends the tail so that Len() == newCount. Appended
// sprites are sampled against the current viewport.
func (s *Store) Resize(newCount int) (added, removed []Entity) {
	if s == nil {
		return nil, nil
	}
	if newCount < 0 {
		newCount = 0
	}
	cur := len(s.sprites)
	switch {
	case newCount < cur:
		for i := newCount; i < cur; i++ {
			removed = append(removed, Entity(i))
		}
		clear(s.sprites[newCount:])
		s.sprites = s.sprites[:newCount]
	case newCount > cur:
		if s.sizedFor == 0 {
			s.sizedFor = newCount
		}
		for i := cur; i < newCount; i++ {
			s.sprites = append(s.sprites, s.spawn(Entity(i)))
			added = append(added, Entity(i))
		}
	}
	return added, removed
}

// SetViewport re-spawns every sprite when the viewport changes, keeping the count.
func (s *Store) SetViewport(v Viewport) bool {
	if s == nil || v == s.viewport {
		return false
	}
	s.Initialize(len(s.sprites), v, s.params)
	return true
}

// Sprites returns the live sprite slice. Callers may mutate elements in place.
func (s *Store) Sprites() []Sprite {
	if s == nil {
		return nil
	}
	return s.sprites
}

// At returns the sprite with identity id.
func (s *Store) At(id Entity) (*Sprite, bool) {
	if s == nil || id < 0 || int(id) >= len(s.sprites) {
		return nil, false
	}
	return &s.sprites[id], true
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sprites)
}

func (s *Store) Viewport() Viewport {
	if s == nil {
		return Viewport{}
	}
	return s.viewport
}

func (s *Store) spawn(id Entity) Sprite {
	mult := component.DefaultSizeMultiplier
	if s.params.SizeMultiplier != nil {
		if m := s.params.SizeMultiplier(id, s.sizedFor); m > 0 && common.IsFinite(m) {
			mult = m
		}
	}
	vx, vy := s.sampler.Velocity(s.params.MaxSpeed)
	return Sprite{
		ID: id,
		Position: component.Vec2{
			X: s.sampler.Range(0, s.viewport.Width),
			Y: s.sampler.Range(0, s.viewport.Height),
		},
		Velocity: component.Vec2{X: vx, Y: vy},
		Size:     s.params.Size.Scale(mult),
		Heading:  s.sampler.Range(0, 360),
		Layer:    component.LayerForMultiplier(mult),
	}
}
