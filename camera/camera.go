// Package camera provides a first-person 3D camera and the controller
// that drives one or more cameras from key and pointer input.
package camera

import "github.com/pthm-cable/particles/vmath"

// DefaultSensitivity converts pointer pixels into degrees of rotation.
const DefaultSensitivity = 0.02

// Camera holds an orientation and a world position and derives a view
// matrix from them.
//
// The view matrix is cached: mutations do not update it. Call RefreshView
// once per frame after all input has been applied and before the matrix
// (or DirectionVector, or Translate) is read.
type Camera struct {
	orientation vmath.Quat
	position    vmath.Vec3f
	view        vmath.Mat4f

	sensitivity float32
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset returns the camera to the origin with identity orientation.
func (c *Camera) Reset() {
	c.orientation = vmath.IdentityQuat()
	c.position = vmath.Vec3f{}
	c.view = vmath.Identity[float32]()
	if c.sensitivity == 0 {
		c.sensitivity = DefaultSensitivity
	}
}

// SetSensitivity sets the pointer scale in degrees per pixel.
func (c *Camera) SetSensitivity(s float32) { c.sensitivity = s }

// SetPosition moves the camera. The view is stale until RefreshView.
func (c *Camera) SetPosition(p vmath.Vec3f) { c.position = p }

func (c *Camera) Position() vmath.Vec3f { return c.position }

func (c *Camera) Orientation() vmath.Quat { return c.orientation }

// View returns the view matrix as of the last RefreshView.
func (c *Camera) View() vmath.Mat4f { return c.view }

// RefreshView recomputes view = rotation(orientation) · translate(-position).
func (c *Camera) RefreshView() {
	c.view = c.orientation.Mat4().Mul(vmath.Translate(c.position.Neg()))
}

// DirectionVector returns the normalized third row of the view matrix.
// This is the camera's backward axis; the camera looks along its negation.
func (c *Camera) DirectionVector() vmath.Vec3f {
	return vmath.XYZ(c.view.Row(2)).Normalized()
}

// ApplyPointerDelta turns the camera by a pointer offset in pixels.
//
// The offset's axes are swapped so horizontal motion yaws about Y and
// vertical motion pitches about X. The increment is pre-multiplied, which
// applies it in world space and keeps roll from accumulating.
func (c *Camera) ApplyPointerDelta(offset vmath.Vec2f) {
	angles := vmath.Swizzle2(offset, vmath.Y, vmath.X).Scale(c.sensitivity)
	inc := vmath.QuatFromEuler(vmath.Extend3(angles, 0))
	c.orientation = inc.Mul(c.orientation).Normalized()
}

// Translate moves the camera along the view's strafe (row 0) and
// backward (row 2) axes. It reads the cached view, so motion issued
// before RefreshView follows the previous frame's orientation.
func (c *Camera) Translate(strafe, forward float32) {
	right := vmath.XYZ(c.view.Row(0)).Scale(strafe)
	back := vmath.XYZ(c.view.Row(2)).Scale(forward)
	c.position = c.position.Add(right).Add(back)
}
