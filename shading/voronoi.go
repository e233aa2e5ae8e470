package shading

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NoiseAt returns the jittered feature point of grid cell (x, y). The jitter
// stays inside [0, JitterAmount] of the cell and animates with the phase.
func NoiseAt(x, y int, underwaterWave float64) r2.Vec {
	fx, fy := float64(x), float64(y)
	waveX := fx*2.3 + fy*1.23
	waveY := fy*1.77 + fx*1.11

	return r2.Vec{
		X: fx + math.Abs(math.Sin(underwaterWave+waveX))*JitterAmount,
		Y: fy + math.Abs(math.Sin(underwaterWave+waveY))*JitterAmount,
	}
}

// VoronoiDistances returns the nearest and second-nearest feature point
// distances from pos over the 3x3 cell neighborhood. Cells outside the grid
// are skipped. Both distances start at 1, so they never exceed it.
func VoronoiDistances(pos r2.Vec, underwaterWave float64) (nearest, second float64) {
	xCell := int(pos.X)
	yCell := int(pos.Y)

	nearest, second = 1, 1
	for y := -1; y < 2; y++ {
		for x := -1; x < 2; x++ {
			cx := xCell + x
			cy := yCell + y
			if cx < 0 || cx > NoiseGridX-1 || cy < 0 || cy > NoiseGridY-1 {
				continue
			}

			d := dist(NoiseAt(cx, cy, underwaterWave), pos)
			if d < nearest {
				second = nearest
				nearest = d
			} else if d < second {
				second = d
			}
		}
	}
	return nearest, second
}

// VoronoiAt is the inverted gap between the two nearest feature points, in
// [0, 1]. It peaks along cell borders, which draws the caustic lines.
func VoronoiAt(pos r2.Vec, underwaterWave float64) float64 {
	nearest, second := VoronoiDistances(pos, underwaterWave)
	return 1 - math.Min(second-nearest, 1)
}
