package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	s := ComputeSpeedStats(values)

	assert.InDelta(t, 0.55, s.Mean, 1e-9)
	// Population standard deviation of 0.1..1.0.
	assert.InDelta(t, math.Sqrt(0.0825), s.Std, 1e-9)
	assert.InDelta(t, 1.0, s.Max, 1e-12)
	assert.InDelta(t, 0.19, s.P10, 1e-9)
	assert.InDelta(t, 0.55, s.P50, 1e-9)
	assert.InDelta(t, 0.91, s.P90, 1e-9)

	// Input is left untouched.
	assert.Equal(t, 1.0, values[0])
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	assert.Equal(t, SpeedStats{}, ComputeSpeedStats(nil))
}

func TestCollectorWindow(t *testing.T) {
	// Binary fractions keep the float32 dt sums exact.
	c := NewCollector(0.3125)

	for i := 0; i < 4; i++ {
		c.RecordFrame(0.0625, i%2 == 0, 0)
	}
	assert.False(t, c.ShouldFlush())
	c.RecordFrame(0.0625, false, 2)
	assert.True(t, c.ShouldFlush())

	stats := c.Flush(5, 3, []float64{1, 2, 3})
	assert.Equal(t, int64(0), stats.WindowStartFrame)
	assert.Equal(t, int64(5), stats.WindowEndFrame)
	assert.Equal(t, 5, stats.Frames)
	assert.Equal(t, 2, stats.AttractorFrames)
	assert.Equal(t, 2, stats.GLErrors)
	assert.Equal(t, 0.0625, stats.MeanDT)
	assert.Equal(t, 0.3125, stats.SimTimeSec)
	assert.Equal(t, 3, stats.Particles)
	assert.InDelta(t, 2.0, stats.SpeedMean, 1e-9)
	assert.InDelta(t, 3.0, stats.SpeedMax, 1e-9)

	assert.False(t, c.ShouldFlush())
	c.RecordFrame(0.125, false, 0)
	next := c.Flush(6, 3, nil)
	assert.Equal(t, int64(5), next.WindowStartFrame)
	assert.Equal(t, 1, next.Frames)
	assert.Zero(t, next.SpeedMean)
	assert.Equal(t, 0.4375, c.SimTime())
}
