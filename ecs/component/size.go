package component

// Size is the fixed extent of a sprite, used for both collision bounds and render size.
type Size struct {
	Width  float64
	Height float64
}

// Scale multiplies both dimensions by m.
func (s Size) Scale(m float64) Size {
	return Size{Width: s.Width * m, Height: s.Height * m}
}
