package game

import (
	"log/slog"
)

// flushTelemetry emits a stats window once enough time has been
// simulated. speeds may be nil when the state lives on the GPU.
func (g *Game) flushTelemetry(speeds []float64) {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.frame, g.stepper.Len(), speeds)
	perfStats := g.perfCollector.Stats()

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
