package shading

import "math"

// WaveSine is the four-octave sine field shared by the surface height and the
// underwater sampling distortion.
func WaveSine(x, timeWave float64) float64 {
	return math.Sin(x*4+timeWave)*0.6 +
		math.Sin(x*7+timeWave)*0.95 +
		math.Sin(x*14+timeWave)*0.9 +
		math.Sin(x*23+timeWave*2)*0.8
}

// HeightAt returns the water surface height at normalized x. Holding the
// pointer raises a bump under it that falls off with distance and is damped
// when the pointer sits below the baseline.
func HeightAt(x float64, u *Uniforms) float64 {
	xDiff := x - u.Pointer.X
	yDiff := u.Pointer.Y - WaveLevel

	d := math.Sqrt(xDiff*xDiff + yDiff*yDiff)

	bump := math.Max(1-d, 0) * u.HeldTime * BumpFalloff
	if yDiff < 0 {
		bump *= math.Max(1+yDiff*BumpBelowDamp, 0)
	}

	return WaveLevel + WaveSine(x, u.TimeWave)*WaveAmplitude + bump*bump*BumpHeight
}
