package component

import "math"

// DefaultSizeMultiplier yields a render order of 100.
const DefaultSizeMultiplier = 1.0

// RenderLayer is the stacking priority handed to the render layer.
type RenderLayer struct {
	Index int
}

// LayerForMultiplier derives the stacking priority from a size multiplier.
func LayerForMultiplier(multiplier float64) RenderLayer {
	return RenderLayer{Index: int(math.Round(multiplier * 100))}
}
