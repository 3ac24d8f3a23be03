package camera

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pthm-cable/particles/vmath"
)

// Key identifies a keyboard key. Values follow the GLFW key codes, which
// are also the codes raylib reports.
type Key int32

const (
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyD         Key = 68
	KeyE         Key = 69
	KeyQ         Key = 81
	KeyS         Key = 83
	KeyW         Key = 87
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyLeftShift Key = 340
)

var namedKeys = map[string]Key{
	"SPACE":      KeySpace,
	"RIGHT":      KeyRight,
	"LEFT":       KeyLeft,
	"DOWN":       KeyDown,
	"UP":         KeyUp,
	"LEFT_SHIFT": KeyLeftShift,
}

// ParseKey resolves a key name: a single letter or digit, or one of
// SPACE, UP, DOWN, LEFT, RIGHT, LEFT_SHIFT. Case is ignored.
func ParseKey(name string) (Key, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 && (n[0] >= 'A' && n[0] <= 'Z' || n[0] >= '0' && n[0] <= '9') {
		return Key(n[0]), nil
	}
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// ControllerConfig maps keys to camera-local directions. X is strafe
// (positive right), Y is along the backward axis (negative moves forward).
type ControllerConfig struct {
	Bindings map[Key]vmath.Vec2f
	Speed    float32
}

// DefaultControllerConfig binds WASD.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Bindings: map[Key]vmath.Vec2f{
			KeyW: vmath.NewVec2[float32](0, -1),
			KeyS: vmath.NewVec2[float32](0, 1),
			KeyA: vmath.NewVec2[float32](-1, 0),
			KeyD: vmath.NewVec2[float32](1, 0),
		},
		Speed: 1,
	}
}

// Controller feeds the same key and pointer input to every attached
// camera. It does not own the cameras.
type Controller struct {
	cameras  []*Camera
	bindings map[Key]vmath.Vec2f
	keys     []Key
	speed    float32

	// Previous pointer position. Starts at the origin, so the first
	// delta is measured from (0, 0) unless SetPointerOrigin is called.
	lastPointer vmath.Vec2f
}

// NewController creates a controller driving cams with the given bindings.
func NewController(cfg ControllerConfig, cams ...*Camera) *Controller {
	bindings := maps.Clone(cfg.Bindings)
	if bindings == nil {
		bindings = map[Key]vmath.Vec2f{}
	}
	return &Controller{
		cameras:  cams,
		bindings: bindings,
		keys:     slices.Sorted(maps.Keys(bindings)),
		speed:    cfg.Speed,
	}
}

// Attach adds a camera to the driven set.
func (c *Controller) Attach(cam *Camera) { c.cameras = append(c.cameras, cam) }

func (c *Controller) Cameras() []*Camera { return c.cameras }

func (c *Controller) SetTranslationSpeed(s float32) { c.speed = s }

func (c *Controller) TranslationSpeed() float32 { return c.speed }

// SetPointerOrigin sets the position the next pointer delta is measured from.
func (c *Controller) SetPointerOrigin(pos vmath.Vec2f) { c.lastPointer = pos }

// ProcessKeys translates every camera by the binding of each pressed key,
// scaled by the translation speed. Unbound keys are ignored.
func (c *Controller) ProcessKeys(states map[Key]bool) {
	for _, k := range c.keys {
		if !states[k] {
			continue
		}
		dir := c.bindings[k].Scale(c.speed)
		for _, cam := range c.cameras {
			cam.Translate(dir.X(), dir.Y())
		}
	}
}

// ProcessPointer turns every camera by the pointer motion since the
// previous call.
func (c *Controller) ProcessPointer(pos vmath.Vec2f) {
	delta := pos.Sub(c.lastPointer)
	c.lastPointer = pos
	for _, cam := range c.cameras {
		cam.ApplyPointerDelta(delta)
	}
}

// UpdateAll refreshes every camera's view. Call it after both input
// channels and before any view matrix is consumed.
func (c *Controller) UpdateAll() {
	for _, cam := range c.cameras {
		cam.RefreshView()
	}
}

// BoundKeys returns the bound keys in ascending order.
func (c *Controller) BoundKeys() []Key { return c.keys }
