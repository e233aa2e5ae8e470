package shading

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shader uniform names. The fragment shader source is generated with these.
const (
	UniformCanvasDimensions = "canvas_dimensions"
	UniformBlobsPos         = "blobs_pos"
	UniformBlobsSize        = "blobs_size"
	UniformStarsPos         = "stars_pos"
	UniformMousePos         = "mouse_pos"
	UniformHeldTime         = "held_time"
	UniformTimeWave         = "time_wave"
	UniformUnderwaterWave   = "underwater_wave"
)

// Uniforms is the per-frame snapshot the shading pipeline reads.
type Uniforms struct {
	Canvas   r2.Vec // pixel dimensions
	BlobPos  Vec2s
	BlobSize []float64 // pixels
	StarPos  Vec2s
	Pointer  r2.Vec
	// HeldTime is the eased value, already squared by the integrator.
	HeldTime       float64
	TimeWave       float64
	UnderwaterWave float64
	Palette        Palette
}

// Packed is the GPU-side layout of Uniforms: flat float32 arrays matching the
// shader declarations.
type Packed struct {
	CanvasDimensions [2]float32
	BlobsPos         []float32 // BlobsAmount x,y pairs
	BlobsSize        []float32
	StarsPos         []float32 // StarsAmount x,y pairs
	MousePos         [2]float32
	HeldTime         float32
	TimeWave         float32
	UnderwaterWave   float32
	Colors           [NumColors][3]float32
}

// Pack converts the snapshot into its uniform layout. This is the only place
// the CPU entity layout is mapped onto shader arrays; short inputs are padded
// with zeros and long ones truncated to the fixed shader array sizes.
func (u *Uniforms) Pack() Packed {
	p := Packed{
		CanvasDimensions: [2]float32{float32(u.Canvas.X), float32(u.Canvas.Y)},
		BlobsPos:         make([]float32, 0, BlobsAmount*2),
		BlobsSize:        make([]float32, BlobsAmount),
		StarsPos:         make([]float32, 0, StarsAmount*2),
		MousePos:         [2]float32{float32(u.Pointer.X), float32(u.Pointer.Y)},
		HeldTime:         float32(u.HeldTime),
		TimeWave:         float32(u.TimeWave),
		UnderwaterWave:   float32(u.UnderwaterWave),
	}

	p.BlobsPos = fixedPairs(u.BlobPos, BlobsAmount).Flatten(p.BlobsPos)
	p.StarsPos = fixedPairs(u.StarPos, StarsAmount).Flatten(p.StarsPos)
	for i := 0; i < BlobsAmount && i < len(u.BlobSize); i++ {
		p.BlobsSize[i] = float32(u.BlobSize[i])
	}

	for i, c := range u.Palette {
		p.Colors[i] = [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	}
	return p
}

func fixedPairs(v Vec2s, n int) Vec2s {
	if len(v) >= n {
		return v[:n]
	}
	out := make(Vec2s, n)
	copy(out, v)
	return out
}

// Phase maps total elapsed seconds onto a looping 2*pi phase. The result takes
// the sign of period, so a negative period runs the phase backwards.
func Phase(total, period float64) float64 {
	if period == 0 {
		return 0
	}
	return math.Mod(total, period) / period * 2 * math.Pi
}
