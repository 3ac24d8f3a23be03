package camera

import (
	"testing"

	"github.com/pthm-cable/particles/vmath"
)

func TestNew(t *testing.T) {
	cam := New()

	if !cam.Position().Equals(vmath.Vec3f{}) {
		t.Errorf("expected camera at origin, got %v", cam.Position())
	}
	if !cam.View().Equals(vmath.Identity[float32]()) {
		t.Errorf("expected identity view, got %v", cam.View())
	}
	if !cam.Orientation().Equals(vmath.IdentityQuat()) {
		t.Errorf("expected identity orientation, got %v", cam.Orientation())
	}
}

func TestTranslateFromIdentity(t *testing.T) {
	cam := New()
	cam.Translate(2, 3)
	cam.RefreshView()

	want := vmath.NewVec3[float32](2, 0, 3)
	if !cam.Position().Equals(want) {
		t.Fatalf("expected position %v, got %v", want, cam.Position())
	}
	if !cam.View().Equals(vmath.Translate(want.Neg())) {
		t.Errorf("expected view to translate by %v, got\n%v", want.Neg(), cam.View())
	}
}

func TestViewIsCachedUntilRefresh(t *testing.T) {
	cam := New()
	cam.ApplyPointerDelta(vmath.NewVec2[float32](500, 0))

	if !cam.View().Equals(vmath.Identity[float32]()) {
		t.Fatal("view changed before RefreshView")
	}
	cam.RefreshView()
	if cam.View().Equals(vmath.Identity[float32]()) {
		t.Fatal("view did not change after RefreshView")
	}
}

func TestApplyPointerDeltaYaw(t *testing.T) {
	cam := New()
	// 4500px * 0.02 = 90 degrees about Y.
	cam.ApplyPointerDelta(vmath.NewVec2[float32](4500, 0))
	cam.RefreshView()

	want := vmath.QuatFromAxisAngle(vmath.NewVec3[float32](0, 1, 0), 90)
	if !cam.Orientation().Vec4().ApproxEquals(want.Vec4(), 1e-6) {
		t.Errorf("expected orientation %v, got %v", want, cam.Orientation())
	}

	dir := cam.DirectionVector()
	if !dir.ApproxEquals(vmath.NewVec3[float32](-1, 0, 0), 1e-6) {
		t.Errorf("expected direction (-1, 0, 0), got %v", dir)
	}
}

func TestApplyPointerDeltaPitch(t *testing.T) {
	cam := New()
	cam.ApplyPointerDelta(vmath.NewVec2[float32](0, 1500))
	cam.RefreshView()

	want := vmath.QuatFromAxisAngle(vmath.NewVec3[float32](1, 0, 0), 30)
	if !cam.Orientation().Vec4().ApproxEquals(want.Vec4(), 1e-6) {
		t.Errorf("expected orientation %v, got %v", want, cam.Orientation())
	}
}

func TestApplyPointerDeltaPremultiplies(t *testing.T) {
	cam := New()
	first := vmath.NewVec2[float32](0, 1000)
	second := vmath.NewVec2[float32](2000, 0)
	cam.ApplyPointerDelta(first)
	cam.ApplyPointerDelta(second)

	q1 := vmath.QuatFromEuler(vmath.NewVec3[float32](20, 0, 0))
	q2 := vmath.QuatFromEuler(vmath.NewVec3[float32](0, 40, 0))
	want := q2.Mul(q1)
	if !cam.Orientation().Vec4().ApproxEquals(want.Vec4(), 1e-6) {
		t.Errorf("expected orientation %v, got %v", want, cam.Orientation())
	}
	if l := cam.Orientation().Length(); l < 0.99999 || l > 1.00001 {
		t.Errorf("expected unit orientation, got length %f", l)
	}
}

func TestTranslateUsesStaleView(t *testing.T) {
	cam := New()
	cam.ApplyPointerDelta(vmath.NewVec2[float32](4500, 0))

	// No refresh yet: strafe still follows the identity view.
	cam.Translate(1, 0)
	if !cam.Position().Equals(vmath.NewVec3[float32](1, 0, 0)) {
		t.Fatalf("expected (1, 0, 0), got %v", cam.Position())
	}

	// Facing +X after the refresh, so strafing right moves along +Z.
	cam.RefreshView()
	cam.Translate(1, 0)
	want := vmath.NewVec3[float32](1, 0, 1)
	if !cam.Position().ApproxEquals(want, 1e-6) {
		t.Errorf("expected %v, got %v", want, cam.Position())
	}
}

func TestReset(t *testing.T) {
	cam := New()
	cam.SetSensitivity(0.5)
	cam.SetPosition(vmath.NewVec3[float32](1, 2, 3))
	cam.ApplyPointerDelta(vmath.NewVec2[float32](10, 10))
	cam.RefreshView()

	cam.Reset()
	if !cam.Position().Equals(vmath.Vec3f{}) || !cam.Orientation().Equals(vmath.IdentityQuat()) {
		t.Errorf("expected reset camera, got position %v orientation %v", cam.Position(), cam.Orientation())
	}
	if cam.sensitivity != 0.5 {
		t.Errorf("expected sensitivity to survive reset, got %f", cam.sensitivity)
	}
}
