package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/vmath"
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Title          string
	FPS            int32
	FrameTime      time.Duration
	ParticleCount  int
	Backend        string
	CameraPosition vmath.Vec3f
	AttractorOn    bool
	AttractorPos   vmath.Vec3f
	GLErrors       int
	Paused         bool
}

// Lines formats the HUD body, one entry per row.
func (d HUDData) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %d | Frame: %s", d.FPS, d.FrameTime.Round(10*time.Microsecond)),
		fmt.Sprintf("Particles: %d (%s)", d.ParticleCount, d.Backend),
		fmt.Sprintf("Camera: (%.1f, %.1f, %.1f)", d.CameraPosition.X(), d.CameraPosition.Y(), d.CameraPosition.Z()),
	}
	if d.AttractorOn {
		p := d.AttractorPos
		lines = append(lines, fmt.Sprintf("Attractor: (%.1f, %.1f, %.1f)", p.X(), p.Y(), p.Z()))
	} else {
		lines = append(lines, "Attractor: off")
	}
	return lines
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(35)
	for _, line := range data.Lines() {
		rl.DrawText(line, 10, y, th.FontSize, th.LabelColor)
		y += th.LineHeight
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y, th.FontSize, rl.Yellow)
		y += th.LineHeight
	}
	if data.GLErrors > 0 {
		rl.DrawText(fmt.Sprintf("GL errors this frame: %d", data.GLErrors), 10, y, th.FontSize, th.WarnColor)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
