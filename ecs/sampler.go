package ecs

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/bouncer/common"
)

// Sampler draws the random spawn state for sprites.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler seeded with seed. Equal seeds give equal sequences.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func newTimeSampler() *Sampler {
	return NewSampler(uint64(time.Now().UnixNano()))
}

// Range returns a uniform value in [min, max).
func (s *Sampler) Range(min, max float64) float64 {
	return common.Lerp(min, max, s.rng.Float64())
}

// Velocity samples both axes in [-maxSpeed, maxSpeed], redrawing until neither is zero.
// A maxSpeed of zero (or less) yields a stationary sprite.
func (s *Sampler) Velocity(maxSpeed float64) (float64, float64) {
	if maxSpeed <= 0 {
		return 0, 0
	}
	var x, y float64
	for x == 0 || y == 0 {
		x = s.Range(-maxSpeed, maxSpeed)
		y = s.Range(-maxSpeed, maxSpeed)
	}
	return x, y
}
