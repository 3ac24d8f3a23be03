package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/gpu"
	"github.com/pthm-cable/particles/telemetry"
	"github.com/pthm-cable/particles/ui"
)

const controlsHelp = "[WASD] move  [Mouse] look  [LMB] attract  [Space] pause  [Tab] cursor  [F1-F3] panels  [Home] reset"

// Draw renders the particles and overlays, then finishes the frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(g.clearColor)

	// Flush raylib's batch before issuing raw GL.
	rl.DrawRenderBatchActive()
	g.particleRenderer.Draw(g.cam.View())

	g.perfCollector.StartPhase(telemetry.PhaseOverlay)
	g.drawOverlays()

	g.perfCollector.StartPhase(telemetry.PhasePresent)
	rl.EndDrawing()

	g.glErrors = 0
	if g.cfg.GPU.ErrorPoll {
		g.glErrors = gpu.LogErrors(slog.Default(), g.frame, g.cfg.GPU.MaxErrorsPerFrame)
	}
	g.perfCollector.EndFrame()

	g.collector.RecordFrame(g.simulatedDT(), g.attractorActive, g.glErrors)
	g.frame++
	g.flushTelemetry(nil)
}

// simulatedDT is the dt the kernel actually advanced this frame.
func (g *Game) simulatedDT() float32 {
	if g.controls.Paused {
		return 0
	}
	return g.dt
}

func (g *Game) drawOverlays() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(g.hudData())
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controlsPanel.Draw(&g.controls, g.overlays)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.drawPerfPanel(int32(g.screenWidth) - 250)
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.hud.DrawControls(int32(g.screenHeight), controlsHelp)
	}
}

func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Title:          g.cfg.Screen.Title,
		FPS:            rl.GetFPS(),
		FrameTime:      time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)),
		ParticleCount:  g.stepper.Len(),
		Backend:        g.gpuInfo.Renderer,
		CameraPosition: g.cam.Position(),
		AttractorOn:    g.attractorActive,
		AttractorPos:   g.attractorPos,
		GLErrors:       g.glErrors,
		Paused:         g.controls.Paused,
	}
}

// drawPerfPanel shows the rolling phase breakdown.
func (g *Game) drawPerfPanel(x int32) {
	r := g.perfPanel
	stats := g.perfCollector.Stats()
	width := int32(240)
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(len(telemetry.Phases)+3)
	r.DrawPanel(x, 10, width, height)

	px := x + r.Theme.Padding
	y := r.DrawSectionHeader(px, 10+r.Theme.Padding, "Frame Timing")
	y = r.DrawLabelValue(px, y, "avg", fmt.Sprintf("%.2f ms", float64(stats.AvgFrame.Microseconds())/1000))
	for _, phase := range telemetry.Phases {
		y = r.DrawBar(px, y, phase, float32(stats.PhasePct[phase]), 100, width-r.Theme.Padding*2)
	}
}
