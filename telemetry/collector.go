// Package telemetry collects windowed scene statistics and frame timings and
// writes them out as CSV.
package telemetry

import "gonum.org/v1/gonum/floats"

// Collector accumulates per-frame records within time windows and produces
// WindowStats. Windows are measured in simulated seconds, so variable frame
// times in graphics mode still give comparable windows.
type Collector struct {
	windowSec float64

	// Current window tracking
	windowStartFrame int64
	elapsed          float64
	sugarAtStart     float64
	heldSec          float64
	dissolveFrames   int
}

// NewCollector creates a new stats collector with windows of windowSec
// simulated seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// Record adds one frame of dt seconds.
func (c *Collector) Record(dt, dissolved float64, held bool) {
	c.elapsed += dt
	if held {
		c.heldSec += dt
	}
	if dissolved > 0 {
		c.dissolveFrames++
	}
}

// ShouldFlush returns true once the window has covered windowSec.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed >= c.windowSec
}

// Sample is the scene state read at window end.
type Sample struct {
	Frame     int64
	SimTime   float64
	Sugar     float64
	BlobSizes []float64
	MinSize   float64
	StarDrift []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(s Sample) WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   s.Frame,
		SimTimeSec:       s.SimTime,
		WindowSec:        c.elapsed,
		Sugar:            s.Sugar,
		SugarGained:      s.Sugar - c.sugarAtStart,
		DissolveFrames:   c.dissolveFrames,
	}
	if c.elapsed > 0 {
		stats.SugarRate = stats.SugarGained / c.elapsed
		stats.HeldFraction = c.heldSec / c.elapsed
	}

	stats.BlobSizeMean, stats.BlobSizeStd, stats.BlobSizeP10, stats.BlobSizeP50, stats.BlobSizeP90 = ComputeDistribution(s.BlobSizes)
	for _, size := range s.BlobSizes {
		if size <= s.MinSize {
			stats.BlobsAtMin++
		}
	}

	if len(s.StarDrift) > 0 {
		stats.StarDriftMean = floats.Sum(s.StarDrift) / float64(len(s.StarDrift))
		stats.StarDriftMax = floats.Max(s.StarDrift)
	}

	c.windowStartFrame = s.Frame
	c.elapsed = 0
	c.sugarAtStart = s.Sugar
	c.heldSec = 0
	c.dissolveFrames = 0

	return stats
}
