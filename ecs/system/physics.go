package system

import (
	"math"

	"github.com/milk9111/bouncer/common"
	"github.com/milk9111/bouncer/ecs"
)

// PhysicsSystem advances every sprite by one tick inside the store's viewport.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	store := w.Store()
	vp := store.Viewport()
	sprites := store.Sprites()
	for i := range sprites {
		if axis := Advance(&sprites[i], vp.Width, vp.Height); axis != 0 {
			w.Events().Push(ecs.Event{
				Type: ecs.EventBounce,
				Data: ecs.BounceEvent{Entity: sprites[i].ID, Axis: axis},
			})
		}
	}
}

// Advance moves s by its velocity, reflects it off any edge it crossed and
// recomputes its heading from the displacement. A viewport smaller than the
// sprite gives negative bounds, which are applied as-is.
//
// Zero displacement gives heading 0, the atan2(0, 0) case.
func Advance(s *ecs.Sprite, viewportWidth, viewportHeight float64) ecs.BounceAxis {
	if s == nil {
		return 0
	}
	maxX, maxY := ecs.Viewport{Width: viewportWidth, Height: viewportHeight}.Bounds(s.Size)
	prev := s.Position

	s.Position = s.Position.Add(s.Velocity)

	var axis ecs.BounceAxis
	if s.Position.X > maxX {
		s.Velocity.X = -s.Velocity.X
		s.Position.X = maxX
		axis |= ecs.BounceX
	}
	if s.Position.X < 0 {
		s.Velocity.X = -s.Velocity.X
		s.Position.X = 0
		axis |= ecs.BounceX
	}
	if s.Position.Y > maxY {
		s.Velocity.Y = -s.Velocity.Y
		s.Position.Y = maxY
		axis |= ecs.BounceY
	}
	if s.Position.Y < 0 {
		s.Velocity.Y = -s.Velocity.Y
		s.Position.Y = 0
		axis |= ecs.BounceY
	}

	d := s.Position.Sub(prev)
	s.Heading = common.NormalizeDegrees(common.Degrees(math.Atan2(d.Y, d.X)))
	return axis
}
