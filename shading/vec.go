package shading

import "gonum.org/v1/gonum/spatial/r2"

// Vec2s is a sequence of points in normalized canvas space. It is uploaded to
// the shader as a flat x,y pair array.
type Vec2s []r2.Vec

// Flatten appends the points as interleaved float32 pairs to dst.
func (v Vec2s) Flatten(dst []float32) []float32 {
	for _, p := range v {
		dst = append(dst, float32(p.X), float32(p.Y))
	}
	return dst
}

// dist returns the Euclidean distance between two points.
func dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
