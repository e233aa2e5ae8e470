package shading

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// SkyAt shades everything above the water: gradient, stars and clouds.
// The reflection pass samples it again at mirrored heights.
func SkyAt(p r2.Vec, u *Uniforms) colorful.Color {
	var cloudDensity float64
	for i, blob := range u.BlobPos {
		if i >= len(u.BlobSize) {
			break
		}
		if u.BlobSize[i] <= 0 {
			continue
		}
		d := dist(p, blob) * u.Canvas.X
		cloudDensity += math.Max(math.Log(math.Min(u.BlobSize[i]/d, 1))+1, 0)
	}

	c := Mix(u.Palette[SkyBottom], u.Palette[SkyTop], p.Y)

	if len(u.StarPos) > 0 {
		var starTotal float64
		for _, star := range u.StarPos {
			d := math.Abs(p.X-star.X) + math.Abs(p.Y-star.Y)
			starTotal += math.Max(StarIntensity/d, 0)
		}
		starPre := starTotal / float64(len(u.StarPos))
		c = Overmix(c, u.Palette[Star], white, starPre*starPre, StarOvermix)
	}

	c = Overmix(c, u.Palette[Cloud], white, cloudAmount(cloudDensity), CloudOvermix)
	return c
}

// cloudAmount applies the soft threshold: zero below the edge, then a steep
// linear ramp reaching 1 at density 1.
func cloudAmount(density float64) float64 {
	if density < CloudEdgeStart {
		return 0
	}
	return (density - CloudEdgeStart) / (1 - CloudEdgeStart)
}

// Shade returns the final color of the pixel at normalized position p
// (origin bottom-left).
func Shade(p r2.Vec, u *Uniforms) colorful.Color {
	c := SkyAt(p, u)

	height := HeightAt(p.X, u)

	switch {
	case math.Abs(p.Y-height) < WaveWidth:
		c = Mix(c, u.Palette[WaveTop], WaveTopMix)

	case p.Y < height:
		depth := height - p.Y

		if depth < ReflectDepth {
			k := math.Max((ReflectDepth-depth)/ReflectDepth*ReflectGain, 0)
			mirrored := SkyAt(r2.Vec{X: p.X, Y: height + depth}, u)
			c = Mix(c, mirrored, k*k)
		}

		c = Mix(
			Mix(c, u.Palette[Water], math.Min(depth*WaterDepthGain+WaterDepthBias, 1)),
			u.Palette[WaterRefraction],
			causticAt(p, depth, u)*NoiseMix,
		)
	}

	return c
}

// causticAt evaluates the Voronoi caustic strength under the surface. The
// sampling point is wobbled by the wave field and stretched vertically near
// the surface; strength fades in with distance from the surface.
func causticAt(p r2.Vec, depth float64, u *Uniforms) float64 {
	noiseStart := depth + NoiseStartBias

	wavy := r2.Add(p, r2.Scale(WobbleScale, r2.Vec{
		X: WaveSine(p.Y, u.TimeWave),
		Y: WaveSine(p.X, u.TimeWave),
	}))

	scaled := r2.Vec{X: wavy.X * NoiseGridX, Y: wavy.Y * NoiseGridY / noiseStart}
	v := VoronoiAt(scaled, u.UnderwaterWave)

	fade := math.Min(math.Max(noiseStart-p.Y, 0)/noiseStart/NoiseFull, 1)
	return fade * math.Pow(v, NoisePower)
}
