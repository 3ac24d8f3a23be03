package vmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func randQuat(r *rand.Rand) Quat {
	axis := NewVec3(r.Float32()*2-1, r.Float32()*2-1, r.Float32()*2-1).Normalized()
	return QuatFromAxisAngle(axis, r.Float32()*360-180)
}

func TestQuatMat4MatchesMathGL(t *testing.T) {
	axis := NewVec3[float32](0.3, -1, 0.6).Normalized()
	got := QuatFromAxisAngle(axis, 72).Mat4()
	want := mgl32.QuatRotate(mgl32.DegToRad(72), mglVec3(axis)).Mat4()
	assertMatClose(t, want, got, 1e-5)

	// The rotation factory and the quaternion agree.
	assertMatClose(t, mgl32.Mat4(Rotate(72, axis).Data()), got, 1e-5)
}

func TestQuatCompositionOrder(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		p, q := randQuat(r), randQuat(r)
		lhs := p.Mul(q).Mat4()
		rhs := p.Mat4().Mul(q.Mat4())
		if !lhs.ApproxEquals(rhs, 1e-5) {
			t.Fatalf("Mat4(p*q) != Mat4(p)*Mat4(q)\np=%v q=%v\n%v\n%v", p, q, lhs, rhs)
		}
	}
}

func TestQuatMulAppliesRightOperandFirst(t *testing.T) {
	yaw := QuatFromAxisAngle(NewVec3[float32](0, 1, 0), 90)
	pitch := QuatFromAxisAngle(NewVec3[float32](1, 0, 0), 90)

	// Pitch +Y up to +Z, then yaw +Z round to +X.
	got := yaw.Mul(pitch).Mat4().TransformPoint(NewVec3[float32](0, 1, 0))
	assert.True(t, got.ApproxEquals(NewVec3[float32](1, 0, 0), 1e-6), "got %v", got)
}

func TestQuatFromEuler(t *testing.T) {
	xAxis := NewVec3[float32](1, 0, 0)
	yAxis := NewVec3[float32](0, 1, 0)
	zAxis := NewVec3[float32](0, 0, 1)

	tests := []struct {
		name  string
		euler Vec3f
		want  Quat
	}{
		{"roll only", NewVec3[float32](40, 0, 0), QuatFromAxisAngle(xAxis, 40)},
		{"pitch only", NewVec3[float32](0, -25, 0), QuatFromAxisAngle(yAxis, -25)},
		{"yaw only", NewVec3[float32](0, 0, 60), QuatFromAxisAngle(zAxis, 60)},
		{
			"x then y then z",
			NewVec3[float32](10, 20, 30),
			QuatFromAxisAngle(zAxis, 30).Mul(QuatFromAxisAngle(yAxis, 20)).Mul(QuatFromAxisAngle(xAxis, 10)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromEuler(tt.euler)
			assert.True(t, got.Vec4().ApproxEquals(tt.want.Vec4(), 1e-6), "got %v, want %v", got, tt.want)
		})
	}
}

func TestQuatFromEulerHonorsDegrees(t *testing.T) {
	q := QuatFromEuler(NewVec3[float32](0, 90, 0))
	want := QuatFromAxisAngle(NewVec3[float32](0, 1, 0), 90)

	assert.True(t, q.Vec4().ApproxEquals(want.Vec4(), 1e-6), "got %v, want %v", q, want)
	assert.InDelta(t, 90, q.Angle(), 1e-3)

	// A quarter turn about Y maps +Z onto +X.
	v := q.Mat4().MulVec(NewVec4[float32](0, 0, 1, 0))
	assert.True(t, v.ApproxEquals(NewVec4[float32](1, 0, 0, 0), 1e-5), "got %v", v)
}

func TestQuatAxisAngleRoundTrip(t *testing.T) {
	tests := []struct {
		axis  Vec3f
		angle float32
	}{
		{NewVec3[float32](0, 1, 0), 90},
		{NewVec3[float32](1, 0, 0), 10},
		{NewVec3[float32](1, 1, 1).Normalized(), 120},
		{NewVec3[float32](-0.2, 0.5, 0.8).Normalized(), 300},
		{NewVec3[float32](0, 0, 1), 179},
	}
	for _, tt := range tests {
		q := QuatFromAxisAngle(tt.axis, tt.angle)
		axis, angle := q.Axis(), q.Angle()

		rebuilt := QuatFromAxisAngle(axis, angle)
		// q and -q are the same rotation.
		same := rebuilt.Vec4().ApproxEquals(q.Vec4(), 1e-4) ||
			rebuilt.Vec4().ApproxEquals(q.Vec4().Neg(), 1e-4)
		assert.True(t, same, "axis %v angle %v rebuilt as %v", tt.axis, tt.angle, rebuilt)

		if axis.ApproxEquals(tt.axis, 1e-4) {
			assert.InDelta(t, tt.angle, angle, 1e-2)
		} else {
			assert.True(t, axis.ApproxEquals(tt.axis.Neg(), 1e-4), "axis %v, got %v", tt.axis, axis)
			assert.InDelta(t, 360-tt.angle, angle, 1e-2)
		}
	}
}

func TestQuatIdentityAxisIsZero(t *testing.T) {
	q := IdentityQuat()
	assert.True(t, q.Axis().Equals(Vec3f{}))
	assert.Zero(t, q.Angle())
	assert.True(t, q.Mat4().Equals(Identity[float32]()))
}

func TestQuatInverse(t *testing.T) {
	q := NewQuat(1, 2, 3, 4)
	assert.InDelta(t, 30, q.LengthSquared(), 1e-6)
	assert.InDelta(t, math.Sqrt(30), q.Length(), 1e-6)

	id := q.Mul(q.Inverse())
	assert.True(t, id.Vec4().ApproxEquals(IdentityQuat().Vec4(), 1e-6), "q*q^-1 = %v", id)

	c := q.Conjugate()
	assert.Equal(t, [4]float32{-1, -2, -3, 4}, c.Vec4().Array())

	n := q.Normalized()
	assert.InDelta(t, 1, n.Length(), 1e-6)
	assert.InDelta(t, 1, n.Dot(n), 1e-6)
	assert.True(t, n.Inverse().Vec4().ApproxEquals(n.Conjugate().Vec4(), 1e-6))
}

func TestQuatAccessors(t *testing.T) {
	q := NewQuat(0.1, 0.2, 0.3, 0.9)
	assert.Equal(t, float32(0.1), q.X())
	assert.Equal(t, float32(0.2), q.Y())
	assert.Equal(t, float32(0.3), q.Z())
	assert.Equal(t, float32(0.9), q.W())
	assert.True(t, q.Equals(NewQuat(0.1, 0.2, 0.3, 0.9)))
	assert.Equal(t, "{0.1, 0.2, 0.3, 0.9}", q.String())
}
