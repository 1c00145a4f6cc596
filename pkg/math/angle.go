package math

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle maps a into the half-open interval (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a > math.Pi {
		a -= TwoPi
	} else if a <= -math.Pi {
		a += TwoPi
	}
	return a
}

// WrapAngle maps a into [0, 2*Pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
