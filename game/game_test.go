package game

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/vmath"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestSimParams(t *testing.T) {
	p := simParams(loadDefaults(t))
	assert.Equal(t, float32(0.9), p.Damping)
	assert.Equal(t, float32(2000), p.AttractorK)
	assert.Equal(t, float32(1), p.EpsilonFloor)
	assert.Equal(t, 64, p.LocalSize)
	assert.NoError(t, p.Validate())
}

func TestRenderOptions(t *testing.T) {
	cfg := loadDefaults(t)
	opts, err := renderOptions(cfg)
	require.NoError(t, err)
	assert.True(t, opts.UseGeometry)
	assert.InDelta(t, 1.0, opts.HighColor.X(), 1e-6)
	assert.InDelta(t, 0.4, opts.HighColor.Z(), 1e-6)
	assert.Equal(t, float32(60), opts.FOV)

	cfg.Render.LowColor = "blue"
	_, err = renderOptions(cfg)
	assert.ErrorContains(t, err, "render.low_color")
}

func TestControllerConfig(t *testing.T) {
	cfg := loadDefaults(t)
	cc, err := controllerConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, cc.Bindings, 4)
	assert.Equal(t, vmath.NewVec2[float32](0, -1), cc.Bindings[camera.KeyW])
	assert.Equal(t, vmath.NewVec2[float32](1, 0), cc.Bindings[camera.KeyD])
	assert.Equal(t, float32(20), cc.Speed)

	cfg.Input.Bindings["NOPE"] = []float64{1, 0}
	_, err = controllerConfig(cfg)
	assert.Error(t, err)
}

func TestClearColor(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Screen.ClearColor = "#ff8000"
	c, err := clearColor(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestFrameDT(t *testing.T) {
	tests := []struct {
		raw, max, want float32
	}{
		{0.016, 0.05, 0.016},
		{0.2, 0.05, 0.05},
		{-1, 0.05, 0},
		{0, 0.05, 0},
	}
	for _, tt := range tests {
		if got := frameDT(tt.raw, tt.max); got != tt.want {
			t.Errorf("frameDT(%v, %v) = %v, want %v", tt.raw, tt.max, got, tt.want)
		}
	}
}

func TestAttractorPosition(t *testing.T) {
	cam := camera.New()
	cam.SetPosition(vmath.NewVec3[float32](0, 0, 60))
	cam.RefreshView()

	p := attractorPosition(cam, 20)
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, 40, p.Z(), 1e-5)
}

func TestHeadlessRun(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Telemetry.HeadlessParticles = 64
	cfg.Telemetry.StatsWindow = 0.08

	out := filepath.Join(t.TempDir(), "out")
	g, err := NewHeadlessGame(context.Background(), cfg, Options{Seed: 7, OutputDir: out, MaxFrames: 12})
	require.NoError(t, err)

	require.NoError(t, g.RunHeadless())
	g.Unload()

	assert.Equal(t, int64(12), g.Frame())
	assert.True(t, g.Done())
	assert.Equal(t, 64, g.stepper.Len())

	// The lattice started at rest; the attractor must have moved it.
	var moving int
	for _, v := range g.ref.State().Velocities {
		if v.Length() > 0 {
			moving++
		}
	}
	assert.Equal(t, 64, moving)

	data, err := os.ReadFile(filepath.Join(out, "frames.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.GreaterOrEqual(t, len(lines), 3, "header, at least one full window and the tail")

	_, err = os.Stat(filepath.Join(out, "config.yaml"))
	assert.NoError(t, err)
}

func TestHeadlessCancelled(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Telemetry.HeadlessParticles = 8

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := NewHeadlessGame(ctx, cfg, Options{MaxFrames: 5})
	require.NoError(t, err)
	assert.ErrorIs(t, g.RunHeadless(), context.Canceled)
	assert.Equal(t, int64(0), g.Frame())
}
