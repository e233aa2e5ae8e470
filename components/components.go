// Package components defines ECS components for the scene.
package components

// Position is a point in normalized canvas space, origin bottom-left.
type Position struct {
	X, Y float64
}

// Velocity is in the integrator's own units; see systems.Integrate for the
// mapping onto normalized position.
type Velocity struct {
	X, Y float64
}

// Blob holds the mutable mass of a sugar cloud. Size is a pixel radius and
// stays within [min_size, MaxSize].
type Blob struct {
	Size    float64
	MaxSize float64
}

// Mass is the squared size; wind and pointer gravity scale with it.
func (b Blob) Mass() float64 {
	return b.Size * b.Size
}

// Star anchors a twinkling star to the point it was spawned at.
type Star struct {
	HomeX, HomeY float64
}
