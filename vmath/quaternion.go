package vmath

import "math"

// Quat is a rotation quaternion (x, y, z, w). It is meant to stay unit
// length but the type does not enforce it; callers renormalize after
// accumulating products.
type Quat struct {
	v Vec4f
}

// IdentityQuat is the rotation that does nothing.
func IdentityQuat() Quat { return Quat{v: NewVec4[float32](0, 0, 0, 1)} }

// NewQuat builds a quaternion from raw components.
func NewQuat(x, y, z, w float32) Quat { return Quat{v: NewVec4(x, y, z, w)} }

// QuatFromAxisAngle builds a rotation of angle degrees about axis.
// The axis is used as given.
func QuatFromAxisAngle(axis Vec3f, angle float32) Quat {
	half := float64(Radians(angle)) / 2
	s := float32(math.Sin(half))
	return Quat{v: Extend4(axis.Scale(s), float32(math.Cos(half)))}
}

// QuatFromEuler builds a rotation from Euler angles in degrees, applied
// about X first, then Y, then Z.
func QuatFromEuler(angles Vec3f) Quat {
	var c, s [3]float64
	for i := 0; i < 3; i++ {
		r := float64(Radians(angles.c[i])) / 2
		c[i], s[i] = math.Cos(r), math.Sin(r)
	}
	return NewQuat(
		float32(s[0]*c[1]*c[2]-c[0]*s[1]*s[2]),
		float32(c[0]*s[1]*c[2]+s[0]*c[1]*s[2]),
		float32(c[0]*c[1]*s[2]-s[0]*s[1]*c[2]),
		float32(c[0]*c[1]*c[2]+s[0]*s[1]*s[2]),
	)
}

func (q Quat) X() float32 { return q.v.c[0] }
func (q Quat) Y() float32 { return q.v.c[1] }
func (q Quat) Z() float32 { return q.v.c[2] }
func (q Quat) W() float32 { return q.v.c[3] }

// Vec4 returns the components as (x, y, z, w).
func (q Quat) Vec4() Vec4f { return q.v }

// Mul returns the Hamilton product q·o. Under Mat4 the product applies
// o's rotation first and q's second.
func (q Quat) Mul(o Quat) Quat {
	qx, qy, qz, qw := q.v.c[0], q.v.c[1], q.v.c[2], q.v.c[3]
	ox, oy, oz, ow := o.v.c[0], o.v.c[1], o.v.c[2], o.v.c[3]
	return NewQuat(
		qw*ox+qx*ow+qy*oz-qz*oy,
		qw*oy-qx*oz+qy*ow+qz*ox,
		qw*oz+qx*oy-qy*ox+qz*ow,
		qw*ow-qx*ox-qy*oy-qz*oz,
	)
}

func (q Quat) Dot(o Quat) float32 { return q.v.Dot(o.v) }

func (q Quat) LengthSquared() float32 { return float32(q.v.LengthSquared()) }

func (q Quat) Length() float32 { return float32(q.v.Length()) }

func (q Quat) Normalized() Quat { return Quat{v: q.v.Normalized()} }

func (q Quat) Conjugate() Quat {
	return NewQuat(-q.v.c[0], -q.v.c[1], -q.v.c[2], q.v.c[3])
}

// Inverse is the conjugate divided by the squared length.
func (q Quat) Inverse() Quat {
	return Quat{v: q.Conjugate().v.DivScalar(q.LengthSquared())}
}

// Axis returns the rotation axis of a unit quaternion, or the zero vector
// for the identity rotation.
func (q Quat) Axis() Vec3f {
	w := float64(q.v.c[3])
	sqrSine := 1 - w*w
	if sqrSine <= 0 {
		return Vec3f{}
	}
	return XYZ(q.v).DivScalar(float32(math.Sqrt(sqrSine)))
}

// Angle returns the rotation angle in degrees.
func (q Quat) Angle() float32 {
	w := Clamp(float64(q.v.c[3]), -1, 1)
	return float32(Degrees(math.Acos(w)) * 2)
}

// Mat4 returns the equivalent rotation-only matrix.
func (q Quat) Mat4() Mat4f {
	x, y, z, w := q.v.c[0], q.v.c[1], q.v.c[2], q.v.c[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Identity[float32]().
		SetRow(0, NewVec4(1-2*(yy+zz), 2*(xy-wz), 2*(xz+wy), 0)).
		SetRow(1, NewVec4(2*(xy+wz), 1-2*(xx+zz), 2*(yz-wx), 0)).
		SetRow(2, NewVec4(2*(xz-wy), 2*(yz+wx), 1-2*(xx+yy), 0))
}

// Equals compares the components with Equal.
func (q Quat) Equals(o Quat) bool { return q.v.Equals(o.v) }

func (q Quat) String() string { return q.v.String() }
