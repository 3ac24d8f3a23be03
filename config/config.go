// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/particles/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Simulation SimulationConfig `yaml:"simulation"`
	Attractor  AttractorConfig  `yaml:"attractor"`
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Input      InputConfig      `yaml:"input"`
	GPU        GPUConfig        `yaml:"gpu"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	VSync      bool   `yaml:"vsync"`
	ClearColor string `yaml:"clear_color"`
}

// ParticlesConfig controls the initial particle state.
type ParticlesConfig struct {
	Count          int     `yaml:"count"`
	Spacing        float64 `yaml:"spacing"`
	VelocitySpread float64 `yaml:"velocity_spread"`
	Seed           int64   `yaml:"seed"`
}

// SimulationConfig holds the kernel tuning constants. They are compiled
// into the kernel and fixed for the run.
type SimulationConfig struct {
	Damping      float64 `yaml:"damping"`
	AttractorK   float64 `yaml:"attractor_k"`
	EpsilonFloor float64 `yaml:"epsilon_floor"`
	LocalSize    int     `yaml:"local_size"`
	MaxDT        float64 `yaml:"max_dt"` // frame dt clamp
}

// AttractorConfig places the attractor in front of the camera while the
// left mouse button is held.
type AttractorConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Distance float64 `yaml:"distance"`
}

// RenderConfig holds particle pipeline settings.
type RenderConfig struct {
	UseGeometry      bool    `yaml:"use_geometry"`
	SpriteSize       float64 `yaml:"sprite_size"`
	PointSize        float64 `yaml:"point_size"`
	LowColor         string  `yaml:"low_color"`
	HighColor        string  `yaml:"high_color"`
	SpeedLow         float64 `yaml:"speed_low"`
	SpeedHigh        float64 `yaml:"speed_high"`
	FOV              float64 `yaml:"fov"`
	Near             float64 `yaml:"near"`
	Far              float64 `yaml:"far"`
	Texture          string  `yaml:"texture"`
	SpriteResolution int     `yaml:"sprite_resolution"`
}

// CameraConfig holds the starting camera and its movement tuning.
type CameraConfig struct {
	Position    []float64 `yaml:"position"`
	Sensitivity float64   `yaml:"sensitivity"`
	Speed       float64   `yaml:"speed"` // units per second
}

// InputConfig maps key names to (strafe, forward) directions.
type InputConfig struct {
	Bindings map[string][]float64 `yaml:"bindings"`
}

// GPUConfig holds GPU diagnostics settings.
type GPUConfig struct {
	ErrorPoll         bool `yaml:"error_poll"`
	MaxErrorsPerFrame int  `yaml:"max_errors_per_frame"`
}

// TelemetryConfig holds telemetry and headless-run parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	HeadlessFrames      int     `yaml:"headless_frames"`
	HeadlessDT          float64 `yaml:"headless_dt"`
	HeadlessParticles   int     `yaml:"headless_particles"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	LatticeSide   int     // smallest cube side holding Particles.Count
	ParticleCount int     // LatticeSide³
	DT32          float32 // Telemetry.HeadlessDT as float32
	MaxDT32       float32 // Simulation.MaxDT as float32
	Aspect        float32 // Screen.Width / Screen.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks value ranges. Errors wrap ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Screen.TargetFPS >= 0, "screen.target_fps %d", c.Screen.TargetFPS)
	check(c.Particles.Count >= 1, "particles.count %d", c.Particles.Count)
	check(c.Particles.Spacing > 0, "particles.spacing %g", c.Particles.Spacing)
	check(c.Particles.VelocitySpread >= 0, "particles.velocity_spread %g", c.Particles.VelocitySpread)
	check(c.Simulation.Damping >= 0, "simulation.damping %g", c.Simulation.Damping)
	check(c.Simulation.EpsilonFloor > 0, "simulation.epsilon_floor %g", c.Simulation.EpsilonFloor)
	check(c.Simulation.LocalSize > 0 && c.Simulation.LocalSize&(c.Simulation.LocalSize-1) == 0,
		"simulation.local_size %d is not a power of two", c.Simulation.LocalSize)
	check(c.Simulation.MaxDT > 0, "simulation.max_dt %g", c.Simulation.MaxDT)
	check(c.Attractor.Distance > 0, "attractor.distance %g", c.Attractor.Distance)
	check(c.Render.Near > 0 && c.Render.Far > c.Render.Near, "render near/far %g/%g", c.Render.Near, c.Render.Far)
	check(c.Render.FOV > 0 && c.Render.FOV < 180, "render.fov %g", c.Render.FOV)
	check(c.Render.SpeedHigh > c.Render.SpeedLow, "render speed range %g..%g", c.Render.SpeedLow, c.Render.SpeedHigh)
	check(c.Render.SpriteResolution > 0, "render.sprite_resolution %d", c.Render.SpriteResolution)
	check(len(c.Camera.Position) == 3, "camera.position needs 3 components, got %d", len(c.Camera.Position))
	check(c.Camera.Speed >= 0, "camera.speed %g", c.Camera.Speed)
	for name, dir := range c.Input.Bindings {
		check(len(dir) == 2, "input.bindings.%s needs 2 components, got %d", name, len(dir))
	}
	check(c.GPU.MaxErrorsPerFrame > 0, "gpu.max_errors_per_frame %d", c.GPU.MaxErrorsPerFrame)
	check(c.Telemetry.HeadlessDT > 0, "telemetry.headless_dt %g", c.Telemetry.HeadlessDT)
	check(c.Telemetry.HeadlessParticles >= 1, "telemetry.headless_particles %d", c.Telemetry.HeadlessParticles)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	side := sim.SideForCount(c.Particles.Count)
	c.Derived.LatticeSide = side
	c.Derived.ParticleCount = side * side * side
	c.Derived.DT32 = float32(c.Telemetry.HeadlessDT)
	c.Derived.MaxDT32 = float32(c.Simulation.MaxDT)
	c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
