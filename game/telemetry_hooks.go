package game

import (
	"log/slog"

	"github.com/pthm-cable/sugarclouds/telemetry"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(telemetry.Sample{
		Frame:     g.frame,
		SimTime:   g.scene.TotalTime(),
		Sugar:     g.scene.Sugar(),
		BlobSizes: g.scene.BlobSizes(),
		MinSize:   g.cfg.Physics.MinSize,
		StarDrift: g.scene.StarDrift(),
	})
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
