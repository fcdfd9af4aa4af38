package record

import "math"

const (
	// BodyStride is x, y, radius
	BodyStride = 3
	// HitboxStride is x, y, radius, zombie
	HitboxStride = 4
	// PointStride is x, y
	PointStride = 2
)

// Point is a bare position, the grid's view of an entity
type Point struct {
	X, Y float64
}

// Body is a position and radius: ship, module, powerup or star
type Body struct {
	X, Y   float64
	Radius float64
}

// Hitbox is the collision engine's view of an enemy
type Hitbox struct {
	X, Y   float64
	Radius float64
	Zombie bool
}

// DecodePoints decodes x, y pairs
func DecodePoints(data []float64) []Point {
	n := checkStride("position", data, PointStride)
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{X: data[i*2], Y: data[i*2+1]}
	}
	return out
}

// DecodeBodies decodes x, y, radius triples
func DecodeBodies(kind string, data []float64) []Body {
	n := checkStride(kind, data, BodyStride)
	out := make([]Body, n)
	for i := range out {
		o := i * BodyStride
		out[i] = Body{X: data[o], Y: data[o+1], Radius: data[o+2]}
	}
	return out
}

// EncodeBodies flattens bodies in order
func EncodeBodies(bodies []Body) []float64 {
	out := make([]float64, 0, len(bodies)*BodyStride)
	for _, b := range bodies {
		out = append(out, b.X, b.Y, b.Radius)
	}
	return out
}

// DecodeHitboxes decodes x, y, radius, zombie records
func DecodeHitboxes(data []float64) []Hitbox {
	n := checkStride("hitbox", data, HitboxStride)
	out := make([]Hitbox, n)
	for i := range out {
		o := i * HitboxStride
		out[i] = Hitbox{X: data[o], Y: data[o+1], Radius: data[o+2], Zombie: flag(data[o+3])}
	}
	return out
}

// EncodeHitboxes flattens hitboxes in order
func EncodeHitboxes(boxes []Hitbox) []float64 {
	out := make([]float64, 0, len(boxes)*HitboxStride)
	for _, h := range boxes {
		out = append(out, h.X, h.Y, h.Radius, unflag(h.Zombie))
	}
	return out
}

func hypot(x, y float64) float64 { return math.Sqrt(x*x + y*y) }
