package prefabs

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/bouncer/common"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every Validate failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	defaultTickMS       = 50
	defaultTransitionMS = 500
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SpriteSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Image          string  `yaml:"image"`
	SizeMultiplier float64 `yaml:"size_multiplier"`
	// SizeScript is a .tengo path or inline tengo source setting `multiplier`.
	SizeScript string `yaml:"size_script"`
}

// VisualSpec is the host configuration of one sprite viewport.
type VisualSpec struct {
	Name         string     `yaml:"name"`
	Count        int        `yaml:"count"`
	MaxSpeed     float64    `yaml:"max_speed"`
	TickMS       int        `yaml:"tick_ms"`
	TransitionMS int        `yaml:"transition_ms"`
	Sprite       SpriteSpec `yaml:"sprite"`
}

// DefaultVisualSpec mirrors the embedded visual.yaml.
func DefaultVisualSpec() VisualSpec {
	return VisualSpec{
		Name:         "unicorns",
		Count:        15,
		MaxSpeed:     10,
		TickMS:       defaultTickMS,
		TransitionMS: defaultTransitionMS,
		Sprite: SpriteSpec{
			Width:          180,
			Height:         180,
			Image:          "sprite.png",
			SizeMultiplier: 1,
		},
	}
}

func LoadVisualSpec(name string) (*VisualSpec, error) {
	if name == "" {
		name = DefaultVisual
	}
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseVisualSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// ParseVisualSpec decodes data over the defaults, normalizes and validates it.
func ParseVisualSpec(data []byte) (*VisualSpec, error) {
	spec := DefaultVisualSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Normalize clamps a negative count to zero and fills unset periods and multiplier.
func (s *VisualSpec) Normalize() {
	if s == nil {
		return
	}
	if s.Count < 0 {
		s.Count = 0
	}
	if s.TickMS == 0 {
		s.TickMS = defaultTickMS
	}
	if s.TransitionMS == 0 {
		s.TransitionMS = defaultTransitionMS
	}
	if s.Sprite.SizeMultiplier == 0 {
		s.Sprite.SizeMultiplier = 1
	}
}

func (s *VisualSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidSpec)
	}
	switch {
	case s.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidSpec, s.Count)
	case !common.IsFinite(s.MaxSpeed) || s.MaxSpeed < 0:
		return fmt.Errorf("%w: max_speed %v must be a non-negative number", ErrInvalidSpec, s.MaxSpeed)
	case s.TickMS <= 0:
		return fmt.Errorf("%w: tick_ms %d must be positive", ErrInvalidSpec, s.TickMS)
	case s.TransitionMS < 0:
		return fmt.Errorf("%w: transition_ms %d is negative", ErrInvalidSpec, s.TransitionMS)
	case !common.IsFinite(s.Sprite.Width) || s.Sprite.Width <= 0,
		!common.IsFinite(s.Sprite.Height) || s.Sprite.Height <= 0:
		return fmt.Errorf("%w: sprite size %vx%v must be positive", ErrInvalidSpec, s.Sprite.Width, s.Sprite.Height)
	case !common.IsFinite(s.Sprite.SizeMultiplier) || s.Sprite.SizeMultiplier <= 0:
		return fmt.Errorf("%w: size_multiplier %v must be positive", ErrInvalidSpec, s.Sprite.SizeMultiplier)
	}
	return nil
}

func (s VisualSpec) TickPeriod() time.Duration {
	return time.Duration(s.TickMS) * time.Millisecond
}

func (s VisualSpec) Transition() time.Duration {
	return time.Duration(s.TransitionMS) * time.Millisecond
}
