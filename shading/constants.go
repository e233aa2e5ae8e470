// Package shading implements the per-pixel procedural scene: sky, stars,
// clouds, the animated water surface and its caustics.
//
// Every function here is pure over its inputs and a Uniforms snapshot, so the
// same code backs the CPU rasterizer and the tests, and its constants are
// templated into the GPU fragment shader.
package shading

// Scene layout shared by the integrator, the uniform marshaling and the shader.
const (
	BlobsAmount = 32
	StarsAmount = 16

	// Jittered point grid for the caustic Voronoi field.
	NoiseGridX = 7
	NoiseGridY = 3
)

// Layer tuning.
const (
	StarIntensity = 0.0390625 // L1 falloff numerator per star

	CloudEdgeStart = 0.8 // accumulated density where cloud color begins
	CloudOvermix   = 0.2 // highlight share for overlapping clouds
	StarOvermix    = 1.0

	WaveLevel     = 0.2   // water baseline in normalized height
	WaveAmplitude = 0.005 // multi-octave sine scale
	BumpHeight    = 0.3   // pointer bump scale after squaring
	BumpFalloff   = 0.5
	BumpBelowDamp = 8.0 // bump damping per unit the pointer sits below the baseline

	WaveWidth    = 0.002 // half-height of the wave top band
	WaveTopMix   = 0.8
	ReflectDepth = 0.08 // reflection fades out at this depth
	ReflectGain  = 0.75

	NoiseStartBias = 0.1 // caustic vertical stretch at the surface
	NoiseFull      = 0.75
	NoisePower     = 4.0
	NoiseMix       = 0.25
	WobbleScale    = 0.01 // sampling distortion by the wave field

	WaterDepthGain = 1.5
	WaterDepthBias = 0.13

	JitterAmount = 0.8
)
