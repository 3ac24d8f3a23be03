// Shader check tool - compiles every embedded program against the local
// driver and optionally renders one frame of a small lattice to a PNG.
//
// Usage: go run -tags opengl43 ./cmd/shadercheck -config my.yaml -out frame.png
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/gpu"
	"github.com/pthm-cable/particles/renderer"
	"github.com/pthm-cable/particles/sim"
	"github.com/pthm-cable/particles/vmath"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "", "Render one frame to this PNG (empty = compile only)")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	side := flag.Int("side", 16, "Lattice side for the test frame")
	steps := flag.Int("steps", 10, "Kernel steps before rendering")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("loading config: %v", err)
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Check")
	defer rl.CloseWindow()

	if err := gpu.Init(nil); err != nil {
		fail("%v", err)
	}
	info := gpu.QueryInfo()
	fmt.Printf("GL %s (%s, GLSL %s)\n", info.Version, info.Renderer, info.GLSL)
	if err := info.RequireCompute(); err != nil {
		fail("%v", err)
	}

	params := sim.Params{
		Damping:      float32(cfg.Simulation.Damping),
		AttractorK:   float32(cfg.Simulation.AttractorK),
		EpsilonFloor: float32(cfg.Simulation.EpsilonFloor),
		LocalSize:    cfg.Simulation.LocalSize,
	}
	lo, _ := renderer.ParseHexColor(cfg.Render.LowColor)
	hi, _ := renderer.ParseHexColor(cfg.Render.HighColor)
	opts := renderer.DefaultOptions()
	opts.LowColor, opts.HighColor = lo, hi
	opts.SpriteSize = float32(cfg.Render.SpriteSize)
	opts.PointSize = float32(cfg.Render.PointSize)

	failed := 0
	check := func(name string, stages ...gpu.Stage) {
		prog, err := gpu.BuildProgram(stages...)
		if err != nil {
			fmt.Printf("FAIL %s\n%v\n", name, err)
			failed++
			return
		}
		prog.Delete()
		fmt.Printf("ok   %s\n", name)
	}

	check("simulate.comp", gpu.Stage{Kind: gpu.ComputeStage, Name: "simulate.comp", Source: gpu.KernelSource(params)})
	opts.UseGeometry = true
	check("particle (geometry)", opts.Stages()...)
	opts.UseGeometry = false
	check("particle (points)", opts.Stages()...)

	if failed > 0 {
		os.Exit(1)
	}
	if *outPath == "" {
		return
	}

	opts.UseGeometry = cfg.Render.UseGeometry
	if err := renderFrame(params, opts, *side, *steps, *width, *height, *outPath); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Frame rendered to: %s (%dx%d)\n", *outPath, *width, *height)
}

// renderFrame steps a small lattice toward an attractor and draws it
// into an offscreen target.
func renderFrame(params sim.Params, opts renderer.Options, side, steps, width, height int, outPath string) error {
	positions := sim.Lattice(side, 0.5)
	state, err := sim.NewState(positions, make([]vmath.Vec4f, len(positions)))
	if err != nil {
		return err
	}
	buffers, err := gpu.NewParticleBuffers(state)
	if err != nil {
		return err
	}
	defer buffers.Delete()

	kernel, err := gpu.NewKernel(params, buffers)
	if err != nil {
		return err
	}
	defer kernel.Delete()

	u := sim.Uniforms{DT: 0.016, AttractorActive: true, AttractorPosition: vmath.NewVec3[float32](0, 0, 0)}
	for i := 0; i < steps; i++ {
		if err := kernel.Step(context.Background(), u); err != nil {
			return err
		}
	}

	tex, err := renderer.SoftSprite(64).Upload()
	if err != nil {
		return err
	}
	defer tex.Delete()

	pr, err := renderer.NewParticleRenderer(opts, buffers, tex, width, height)
	if err != nil {
		return err
	}
	defer pr.Delete()

	cam := camera.New()
	cam.SetPosition(vmath.NewVec3(0, 0, float32(side)))
	cam.RefreshView()

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	rl.DrawRenderBatchActive()
	pr.Draw(cam.View())
	rl.EndTextureMode()

	if n := gpu.PollErrors(0); len(n) > 0 {
		return fmt.Errorf("gl reported %d errors, first %s", len(n), gpu.ErrorName(n[0]))
	}

	// OpenGL stores rows bottom-up.
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	ok := rl.ExportImage(*img, outPath)
	rl.UnloadImage(img)
	if !ok {
		return fmt.Errorf("exporting %s failed", outPath)
	}
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
