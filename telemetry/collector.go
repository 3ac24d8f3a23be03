package telemetry

// Collector accumulates per-frame events within time windows and
// produces WindowStats.
type Collector struct {
	windowSec float64

	windowStartFrame int64
	simTime          float64

	frames          int
	dtSum           float64
	attractorFrames int
	glErrors        int
}

// NewCollector creates a collector that flushes every windowSec seconds
// of simulated time.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// RecordFrame records one simulated frame.
func (c *Collector) RecordFrame(dt float32, attractorActive bool, glErrors int) {
	c.frames++
	c.dtSum += float64(dt)
	c.simTime += float64(dt)
	if attractorActive {
		c.attractorFrames++
	}
	c.glErrors += glErrors
}

// ShouldFlush reports whether the current window has covered windowSec.
func (c *Collector) ShouldFlush() bool {
	return c.dtSum >= c.windowSec
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds may be nil when particle state is not read back.
func (c *Collector) Flush(frame int64, particles int, speeds []float64) WindowStats {
	sp := ComputeSpeedStats(speeds)
	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		SimTimeSec:       c.simTime,
		Frames:           c.frames,
		AttractorFrames:  c.attractorFrames,
		GLErrors:         c.glErrors,
		Particles:        particles,
		SpeedMean:        sp.Mean,
		SpeedStd:         sp.Std,
		SpeedMax:         sp.Max,
		SpeedP10:         sp.P10,
		SpeedP50:         sp.P50,
		SpeedP90:         sp.P90,
	}
	if c.frames > 0 {
		stats.MeanDT = c.dtSum / float64(c.frames)
	}

	c.windowStartFrame = frame
	c.frames = 0
	c.dtSum = 0
	c.attractorFrames = 0
	c.glErrors = 0
	return stats
}

// SimTime returns the total simulated time recorded.
func (c *Collector) SimTime() float64 { return c.simTime }
