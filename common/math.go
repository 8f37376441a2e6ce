package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	if !Finite(a) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
