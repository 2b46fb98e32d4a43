package render

import (
	"time"

	"github.com/milk9111/bouncer/ecs"
)

type EffectKind uint8

const (
	EffectCreate EffectKind = iota + 1
	EffectUpdate
	EffectDestroy
)

func (k EffectKind) String() string {
	switch k {
	case EffectCreate:
		return "create"
	case EffectUpdate:
		return "update"
	case EffectDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Effect is one change to apply to the handle table.
type Effect struct {
	Kind   EffectKind
	Entity ecs.Entity

	// create
	Width  float64
	Height float64
	ZIndex int

	// create, update
	Left float64
	Top  float64

	// update
	SetRotation  bool
	Rotation     int
	Transition   time.Duration
	VerticalFlip bool
}

// HandleState is what the table remembers about a live handle.
type HandleState struct {
	Rotation int
	// Rotated is false until a rotation has been written.
	Rotated bool
}

// Count tallies effects by kind.
func Count(effects []Effect) (creates, updates, destroys int) {
	for _, e := range effects {
		switch e.Kind {
		case EffectCreate:
			creates++
		case EffectUpdate:
			updates++
		case EffectDestroy:
			destroys++
		}
	}
	return creates, updates, destroys
}
