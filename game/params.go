package game

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/renderer"
	"github.com/pthm-cable/particles/sim"
	"github.com/pthm-cable/particles/vmath"
)

// simParams maps the simulation section onto kernel constants.
func simParams(cfg *config.Config) sim.Params {
	return sim.Params{
		Damping:      float32(cfg.Simulation.Damping),
		AttractorK:   float32(cfg.Simulation.AttractorK),
		EpsilonFloor: float32(cfg.Simulation.EpsilonFloor),
		LocalSize:    cfg.Simulation.LocalSize,
	}
}

// renderOptions maps the render section onto pipeline options.
func renderOptions(cfg *config.Config) (renderer.Options, error) {
	r := cfg.Render
	lo, err := renderer.ParseHexColor(r.LowColor)
	if err != nil {
		return renderer.Options{}, fmt.Errorf("render.low_color: %w", err)
	}
	hi, err := renderer.ParseHexColor(r.HighColor)
	if err != nil {
		return renderer.Options{}, fmt.Errorf("render.high_color: %w", err)
	}
	return renderer.Options{
		UseGeometry: r.UseGeometry,
		SpriteSize:  float32(r.SpriteSize),
		PointSize:   float32(r.PointSize),
		LowColor:    lo,
		HighColor:   hi,
		SpeedLow:    float32(r.SpeedLow),
		SpeedHigh:   float32(r.SpeedHigh),
		FOV:         float32(r.FOV),
		Near:        float32(r.Near),
		Far:         float32(r.Far),
	}, nil
}

// controllerConfig builds key bindings from the input section. Speed is
// per second; the loop rescales it by dt every frame.
func controllerConfig(cfg *config.Config) (camera.ControllerConfig, error) {
	bindings := make(map[camera.Key]vmath.Vec2f, len(cfg.Input.Bindings))
	for name, dir := range cfg.Input.Bindings {
		key, err := camera.ParseKey(name)
		if err != nil {
			return camera.ControllerConfig{}, fmt.Errorf("input.bindings: %w", err)
		}
		bindings[key] = vmath.NewVec2(float32(dir[0]), float32(dir[1]))
	}
	return camera.ControllerConfig{
		Bindings: bindings,
		Speed:    float32(cfg.Camera.Speed),
	}, nil
}

// cameraPosition returns the configured starting position.
func cameraPosition(cfg *config.Config) vmath.Vec3f {
	p := cfg.Camera.Position
	return vmath.NewVec3(float32(p[0]), float32(p[1]), float32(p[2]))
}

// clearColor parses screen.clear_color into a raylib color.
func clearColor(cfg *config.Config) (rl.Color, error) {
	c, err := renderer.ParseHexColor(strings.TrimSpace(cfg.Screen.ClearColor))
	if err != nil {
		return rl.Color{}, fmt.Errorf("screen.clear_color: %w", err)
	}
	return rl.Color{
		R: uint8(c.X()*255 + 0.5),
		G: uint8(c.Y()*255 + 0.5),
		B: uint8(c.Z()*255 + 0.5),
		A: 255,
	}, nil
}

// newState builds the initial lattice with optional random velocities.
func (g *Game) newState(side int) (*sim.State, error) {
	positions := sim.Lattice(side, float32(g.cfg.Particles.Spacing))
	velocities := sim.RandomVelocities(len(positions), float32(g.cfg.Particles.VelocitySpread), g.rng)
	return sim.NewState(positions, velocities)
}

// frameDT clamps a measured frame time to [0, maxDT].
func frameDT(raw, maxDT float32) float32 {
	if raw < 0 {
		return 0
	}
	return min(raw, maxDT)
}

// attractorPosition places the attractor distance units in front of the
// camera. The view's third row points backwards.
func attractorPosition(cam *camera.Camera, distance float32) vmath.Vec3f {
	return cam.Position().Sub(cam.DirectionVector().Scale(distance))
}
