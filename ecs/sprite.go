package ecs

import "github.com/milk9111/bouncer/ecs/component"

// Sprite is the kinematic state of one simulated entity.
type Sprite struct {
	ID       Entity
	Position component.Vec2
	Velocity component.Vec2
	Size     component.Size
	// Heading is in degrees, [0, 360), derived from the last displacement.
	Heading float64
	Layer   component.RenderLayer
}

// Viewport is the rectangle sprites bounce inside.
type Viewport struct {
	Width  float64
	Height float64
}

// Bounds returns the largest top-left coordinate a sprite of size s may occupy.
// Either value is negative when the viewport is smaller than the sprite.
func (v Viewport) Bounds(s component.Size) (maxX, maxY float64) {
	return v.Width - s.Width, v.Height - s.Height
}
