package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/ui"
	"github.com/pthm-cable/particles/vmath"
)

// handleInput processes window and toggle keys.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.controls.Paused = !g.controls.Paused
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
		g.cam.SetPosition(cameraPosition(g.cfg))
		g.cam.RefreshView()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok && id == ui.OverlayControls {
			// The panel needs a free cursor.
			g.captureMouse(!on)
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.captureMouse(!g.mouseCaptured)
	}
}

// captureMouse switches between mouse-look and a free cursor. The pointer
// origin is reset so the switch does not turn the camera.
func (g *Game) captureMouse(on bool) {
	g.mouseCaptured = on
	if on {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
	g.controller.SetPointerOrigin(mousePosition())
}

// updateCamera feeds polled input to the controller and places the
// attractor.
func (g *Game) updateCamera() {
	g.controller.SetTranslationSpeed(g.controls.MoveSpeed * g.dt)
	g.controller.ProcessKeys(pollKeys(g.controller.BoundKeys()))

	pointer := mousePosition()
	if g.mouseCaptured {
		g.controller.ProcessPointer(pointer)
	} else {
		g.controller.SetPointerOrigin(pointer)
	}
	g.controller.UpdateAll()

	g.attractorActive = g.controls.AttractorEnabled && g.mouseCaptured && rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if g.attractorActive {
		g.attractorPos = attractorPosition(g.cam, g.controls.AttractorDistance)
	}
}

// pollKeys reads the pressed state of every bound key.
func pollKeys(keys []camera.Key) map[camera.Key]bool {
	states := make(map[camera.Key]bool, len(keys))
	for _, k := range keys {
		states[k] = rl.IsKeyDown(int32(k))
	}
	return states
}

func mousePosition() vmath.Vec2f {
	p := rl.GetMousePosition()
	return vmath.NewVec2(p.X, p.Y)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = w, h
	if g.particleRenderer != nil {
		g.particleRenderer.Resize(w, h)
	}
}
