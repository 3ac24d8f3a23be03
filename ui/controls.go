package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the user-tunable state exposed by the controls panel.
type ControlsState struct {
	Paused            bool
	AttractorEnabled  bool
	AttractorDistance float32
	MoveSpeed         float32
}

// Slider ranges for the controls panel.
const (
	MinAttractorDistance float32 = 1
	MaxAttractorDistance float32 = 200
	MinMoveSpeed         float32 = 0.5
	MaxMoveSpeed         float32 = 200
)

// Clamp keeps the slider-backed values in range.
func (s *ControlsState) Clamp() {
	s.AttractorDistance = max(MinAttractorDistance, min(s.AttractorDistance, MaxAttractorDistance))
	s.MoveSpeed = max(MinMoveSpeed, min(s.MoveSpeed, MaxMoveSpeed))
}

// ControlsPanel renders the left-side panel with simulation controls
// and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and applies widget edits to state.
// Returns true if any value changed.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) bool {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	rows := int32(len(overlays.All()) + len(overlays.Categories()))
	panelHeight := padding*3 + lineHeight*7 + rows*lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := c.x + padding
	y := r.DrawSectionHeader(x, c.y+padding, "Simulation")
	before := *state

	state.Paused = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}, "Paused", state.Paused)
	y += lineHeight
	state.AttractorEnabled = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}, "Attractor", state.AttractorEnabled)
	y += lineHeight + 4

	sliderX := float32(x + r.Theme.LabelWidth)
	sliderW := float32(c.width - r.Theme.LabelWidth - padding*2 - 40)

	rl.DrawText("Distance", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	state.AttractorDistance = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 12},
		"", fmt.Sprintf("%.0f", state.AttractorDistance),
		state.AttractorDistance, MinAttractorDistance, MaxAttractorDistance,
	)
	y += lineHeight

	rl.DrawText("Speed", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	state.MoveSpeed = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 12},
		"", fmt.Sprintf("%.1f", state.MoveSpeed),
		state.MoveSpeed, MinMoveSpeed, MaxMoveSpeed,
	)
	y += lineHeight + 4
	state.Clamp()

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	return *state != before
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
