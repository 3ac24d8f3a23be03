package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/sim"
	"github.com/pthm-cable/particles/telemetry"
)

// NewHeadlessGame creates a viewer without a window. The simulation runs
// on the CPU reference kernel with a fixed dt, and the attractor, when
// enabled, sits in front of the starting camera for the whole run.
func NewHeadlessGame(ctx context.Context, cfg *config.Config, opts Options) (*Game, error) {
	g, err := newGame(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	state, err := g.newState(sim.SideForCount(cfg.Telemetry.HeadlessParticles))
	if err != nil {
		return nil, err
	}
	g.ref = sim.NewReference(simParams(cfg), state, 0)
	g.stepper = g.ref
	g.dt = cfg.Derived.DT32

	g.attractorActive = g.controls.AttractorEnabled
	g.attractorPos = attractorPosition(g.cam, g.controls.AttractorDistance)

	slog.Info("headless state ready",
		"particles", g.stepper.Len(),
		"dt", g.dt,
		"attractor", g.attractorActive,
	)
	return g, nil
}

// UpdateHeadless advances one fixed-dt frame on the CPU.
func (g *Game) UpdateHeadless() error {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	if err := g.step(); err != nil {
		return err
	}
	g.perfCollector.EndFrame()

	g.collector.RecordFrame(g.dt, g.attractorActive, 0)
	g.frame++

	if g.collector.ShouldFlush() {
		g.flushTelemetry(g.ref.State().Speeds())
	}
	return nil
}

// RunHeadless steps until the frame limit (MaxFrames, or
// telemetry.headless_frames when unset) or until ctx is cancelled.
func (g *Game) RunHeadless() error {
	limit := g.opts.MaxFrames
	if limit <= 0 {
		limit = int64(g.cfg.Telemetry.HeadlessFrames)
	}
	for g.frame < limit {
		if err := g.ctx.Err(); err != nil {
			return err
		}
		if err := g.UpdateHeadless(); err != nil {
			return err
		}
	}
	// Flush the partial last window.
	stats := g.collector.Flush(g.frame, g.stepper.Len(), g.ref.State().Speeds())
	if g.logStats {
		stats.LogStats()
	}
	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	slog.Info("headless run finished", "frames", g.frame, "sim_time", g.collector.SimTime())
	return nil
}
