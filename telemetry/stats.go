package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`
	WindowSec        float64 `csv:"window_sec"`

	// Sugar
	Sugar          float64 `csv:"sugar"`
	SugarGained    float64 `csv:"sugar_gained"`
	SugarRate      float64 `csv:"sugar_rate"` // grams per second over the window
	DissolveFrames int     `csv:"dissolve_frames"`

	// Pointer
	HeldFraction float64 `csv:"held_fraction"`

	// Blob sizes (sampled at window end)
	BlobSizeMean float64 `csv:"blob_size_mean"`
	BlobSizeStd  float64 `csv:"blob_size_std"`
	BlobSizeP10  float64 `csv:"blob_size_p10"`
	BlobSizeP50  float64 `csv:"blob_size_p50"`
	BlobSizeP90  float64 `csv:"blob_size_p90"`
	BlobsAtMin   int     `csv:"blobs_at_min"`

	// Star drift from home in pixels (sampled at window end)
	StarDriftMean float64 `csv:"star_drift_mean"`
	StarDriftMax  float64 `csv:"star_drift_max"`
}

// ComputeDistribution returns the population mean, standard deviation and
// the 10th, 50th and 90th percentiles of values.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("sugar", s.Sugar),
		slog.Float64("sugar_gained", s.SugarGained),
		slog.Float64("sugar_rate", s.SugarRate),
		slog.Int("dissolve_frames", s.DissolveFrames),
		slog.Float64("held_fraction", s.HeldFraction),
		slog.Float64("blob_size_mean", s.BlobSizeMean),
		slog.Float64("blob_size_std", s.BlobSizeStd),
		slog.Float64("blob_size_p10", s.BlobSizeP10),
		slog.Float64("blob_size_p50", s.BlobSizeP50),
		slog.Float64("blob_size_p90", s.BlobSizeP90),
		slog.Int("blobs_at_min", s.BlobsAtMin),
		slog.Float64("star_drift_mean", s.StarDriftMean),
		slog.Float64("star_drift_max", s.StarDriftMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"sugar", s.Sugar,
		"sugar_rate", s.SugarRate,
		"dissolve_frames", s.DissolveFrames,
		"held_fraction", s.HeldFraction,
		"blob_size_mean", s.BlobSizeMean,
		"blob_size_p50", s.BlobSizeP50,
		"blobs_at_min", s.BlobsAtMin,
		"star_drift_mean", s.StarDriftMean,
	)
}
