package render

import (
	"time"

	"github.com/milk9111/bouncer/ecs"
)

// DefaultTransition is the rotation easing hint written with every rotation change.
const DefaultTransition = 500 * time.Millisecond

// Handle is one entity's on-screen visual. Implementations decide how the
// properties are painted.
type Handle interface {
	SetSize(width, height float64)
	SetPosition(left, top float64)
	SetZIndex(z int)
	SetRotation(degrees int, transition time.Duration)
	SetVerticalFlip(flip bool)
	Destroy()
}

// Surface is the parent container handles are created in.
type Surface interface {
	Create(id ecs.Entity) Handle
}

// Props is the full property set last written to a handle.
type Props struct {
	Width        float64
	Height       float64
	Left         float64
	Top          float64
	ZIndex       int
	Rotation     int
	VerticalFlip bool
	Transition   time.Duration
}

func (p *Props) SetSize(width, height float64) {
	p.Width, p.Height = width, height
}

func (p *Props) SetPosition(left, top float64) {
	p.Left, p.Top = left, top
}

func (p *Props) SetZIndex(z int) {
	p.ZIndex = z
}

func (p *Props) SetVerticalFlip(flip bool) {
	p.VerticalFlip = flip
}
