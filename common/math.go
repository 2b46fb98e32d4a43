package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad / math.Pi * 180
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// RoundDegrees rounds half away from zero into [0, 360), so 359.6 and 0 are
// the same rotation.
func RoundDegrees(deg float64) int {
	r := int(math.Round(deg)) % 360
	if r < 0 {
		r += 360
	}
	return r
}

// LerpDegrees interpolates along the shortest arc between a and b.
func LerpDegrees(a, b, t float64) float64 {
	delta := math.Mod(b-a, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return NormalizeDegrees(a + delta*t)
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
