package game

// Options holds runtime options that come from the command line rather
// than the config file.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	MaxFrames      int64 // 0 = unlimited
}
