package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math.Pi / 180)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sin is the float32 sine of rad, computed in float64.
func Sin(rad float32) float32 { return float32(math.Sin(float64(rad))) }

// Cos is the float32 cosine.
func Cos(rad float32) float32 { return float32(math.Cos(float64(rad))) }
