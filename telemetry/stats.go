package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	Frames          int     `csv:"frames"`
	MeanDT          float64 `csv:"mean_dt"`
	AttractorFrames int     `csv:"attractor_frames"`
	GLErrors        int     `csv:"gl_errors"`

	// Speed distribution sampled at window end; zero when no readback.
	Particles int     `csv:"particles"`
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedMax  float64 `csv:"speed_max"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarizes a speed sample.
type SpeedStats struct {
	Mean, Std, Max float64
	P10, P50, P90  float64
}

// ComputeSpeedStats returns the population mean and standard deviation,
// the maximum and linear-interpolated percentiles of values.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return SpeedStats{
		Mean: mean,
		Std:  std,
		Max:  floats.Max(sorted),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("mean_dt", s.MeanDT),
		slog.Int("attractor_frames", s.AttractorFrames),
		slog.Int("gl_errors", s.GLErrors),
		slog.Int("particles", s.Particles),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("speed_p50", s.SpeedP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"mean_dt", s.MeanDT,
		"attractor_frames", s.AttractorFrames,
		"gl_errors", s.GLErrors,
		"particles", s.Particles,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_max", s.SpeedMax,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
	)
}
