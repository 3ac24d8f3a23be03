// Package game wires the particle simulation, camera and renderer into a
// frame loop, plus a headless mode that steps the CPU reference kernel.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/gpu"
	"github.com/pthm-cable/particles/renderer"
	"github.com/pthm-cable/particles/sim"
	"github.com/pthm-cable/particles/telemetry"
	"github.com/pthm-cable/particles/ui"
	"github.com/pthm-cable/particles/vmath"
)

// Game holds the complete viewer state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand
	ctx  context.Context

	// Simulation
	stepper sim.Stepper
	kernel  *gpu.Kernel    // nil when headless
	ref     *sim.Reference // nil when on the GPU
	buffers *gpu.ParticleBuffers

	// Camera
	cam        *camera.Camera
	controller *camera.Controller

	// Rendering
	particleRenderer *renderer.ParticleRenderer
	texture          *gpu.Texture
	clearColor       rl.Color
	gpuInfo          gpu.Info

	// UI
	hud           *ui.HUD
	controlsPanel *ui.ControlsPanel
	perfPanel     *ui.Renderer
	overlays      *ui.OverlayRegistry
	controls      ui.ControlsState
	mouseCaptured bool

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	frame           int64
	dt              float32
	attractorActive bool
	attractorPos    vmath.Vec3f
	glErrors        int

	screenWidth, screenHeight int
}

// newGame sets up everything shared by both modes.
func newGame(ctx context.Context, cfg *config.Config, opts Options) (*Game, error) {
	ctrlCfg, err := controllerConfig(cfg)
	if err != nil {
		return nil, err
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:           cfg,
		opts:          opts,
		ctx:           ctx,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		cam:           camera.New(),
		overlays:      ui.NewOverlayRegistry(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(statsWindow),
		logStats:      opts.LogStats,
		screenWidth:   cfg.Screen.Width,
		screenHeight:  cfg.Screen.Height,
		controls: ui.ControlsState{
			AttractorEnabled:  cfg.Attractor.Enabled,
			AttractorDistance: float32(cfg.Attractor.Distance),
			MoveSpeed:         float32(cfg.Camera.Speed),
		},
	}
	g.controls.Clamp()

	g.cam.SetSensitivity(float32(cfg.Camera.Sensitivity))
	g.cam.SetPosition(cameraPosition(cfg))
	g.cam.RefreshView()
	g.controller = camera.NewController(ctrlCfg, g.cam)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	return g, nil
}

// NewGame creates the windowed viewer. The raylib window, and with it the
// GL context, must already exist.
func NewGame(ctx context.Context, cfg *config.Config, opts Options) (*Game, error) {
	g, err := newGame(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := g.initGPU(); err != nil {
		g.Unload()
		return nil, err
	}

	g.hud = ui.NewHUD()
	g.controlsPanel = ui.NewControlsPanel(10, 130, 260)
	g.perfPanel = ui.NewRenderer()
	g.captureMouse(true)
	return g, nil
}

// initGPU loads GL, uploads the particle state and builds both programs.
func (g *Game) initGPU() error {
	if err := gpu.Init(nil); err != nil {
		return err
	}
	g.gpuInfo = gpu.QueryInfo()
	slog.Info("gl context",
		"vendor", g.gpuInfo.Vendor,
		"renderer", g.gpuInfo.Renderer,
		"version", g.gpuInfo.Version,
		"glsl", g.gpuInfo.GLSL,
	)
	if err := g.gpuInfo.RequireCompute(); err != nil {
		return err
	}

	var err error
	if g.clearColor, err = clearColor(g.cfg); err != nil {
		return err
	}
	ropts, err := renderOptions(g.cfg)
	if err != nil {
		return err
	}

	state, err := g.newState(g.cfg.Derived.LatticeSide)
	if err != nil {
		return err
	}
	if g.buffers, err = gpu.NewParticleBuffers(state); err != nil {
		return err
	}
	if g.kernel, err = gpu.NewKernel(simParams(g.cfg), g.buffers); err != nil {
		return err
	}
	g.stepper = g.kernel

	img := renderer.SoftSprite(g.cfg.Render.SpriteResolution)
	if path := g.cfg.Render.Texture; path != "" {
		if img, err = renderer.LoadImage(path); err != nil {
			return err
		}
	}
	if g.texture, err = img.Upload(); err != nil {
		return fmt.Errorf("uploading sprite texture: %w", err)
	}

	g.particleRenderer, err = renderer.NewParticleRenderer(ropts, g.buffers, g.texture, g.screenWidth, g.screenHeight)
	if err != nil {
		return err
	}

	slog.Info("particles uploaded",
		"count", g.stepper.Len(),
		"groups", g.kernel.Groups(),
		"geometry_stage", ropts.UseGeometry,
	)
	return nil
}

// Update advances one frame: input, camera, simulation.
func (g *Game) Update() error {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.dt = frameDT(rl.GetFrameTime(), g.cfg.Derived.MaxDT32)
	g.handleInput()

	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	g.updateCamera()

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	if err := g.step(); err != nil {
		return err
	}
	return nil
}

// step dispatches the kernel unless paused.
func (g *Game) step() error {
	if g.controls.Paused {
		return nil
	}
	u := sim.Uniforms{
		DT:                g.dt,
		AttractorActive:   g.attractorActive,
		AttractorPosition: g.attractorPos,
	}
	if err := g.stepper.Step(g.ctx, u); err != nil {
		return fmt.Errorf("frame %d: %w", g.frame, err)
	}
	return nil
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.particleRenderer != nil {
		g.particleRenderer.Delete()
	}
	if g.texture != nil {
		g.texture.Delete()
	}
	if g.kernel != nil {
		g.kernel.Delete()
	}
	if g.buffers != nil {
		g.buffers.Delete()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Camera returns the viewer camera.
func (g *Game) Camera() *camera.Camera {
	return g.cam
}

// Done reports whether the frame limit has been reached.
func (g *Game) Done() bool {
	return g.opts.MaxFrames > 0 && g.frame >= g.opts.MaxFrames
}
