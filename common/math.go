package common

import "math"

// Lerp returns a at t=0 and exactly b at t=1.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// ToScreenY converts a y-up world coordinate to a y-down screen coordinate.
func ToScreenY(y float64) float64 {
	return BaseHeight - y
}

// ToWorldY converts a y-down screen coordinate to a y-up world coordinate.
func ToWorldY(y float64) float64 {
	return BaseHeight - y
}

// Rotate returns (x, y) rotated by angle radians counter-clockwise.
func Rotate(x, y, angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return x*c - y*s, x*s + y*c
}
