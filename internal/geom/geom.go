// Package geom holds the scalar and vector helpers shared by the simulation core.
package geom

import "math"

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Hypot returns the length of (x, y)
func Hypot(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return Hypot(x2-x1, y2-y1)
}

// DistanceSq returns the squared distance between two points
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Overlaps reports whether two circles overlap. Touching circles do not.
func Overlaps(x1, y1, r1, x2, y2, r2 float64) bool {
	radSum := r1 + r2
	return DistanceSq(x1, y1, x2, y2) < radSum*radSum
}

// NormalizeMin divides (x, y) by max(|(x, y)|, floor).
// Vectors shorter than floor come back scaled down rather than stretched to unit length.
func NormalizeMin(x, y, floor float64) (float64, float64) {
	l := math.Max(Hypot(x, y), floor)
	return x / l, y / l
}

// ClampLength scales (x, y) down to length max when it is longer
func ClampLength(x, y, max float64) (float64, float64) {
	l := Hypot(x, y)
	if l > max {
		return x / l * max, y / l * max
	}
	return x, y
}
