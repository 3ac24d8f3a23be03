package vmath

import "fmt"

// axis returns the component named by a. Requesting a component the
// vector does not have is a programming error and panics immediately.
func (v Vec[A, T]) axis(a Axis) T {
	if a < X || int(a) >= len(v.c) {
		panic(fmt.Sprintf("vmath: swizzle of axis %d on a %d-component vector", a, len(v.c)))
	}
	return v.c[a]
}

// Swizzle2 extracts two named components, e.g. Swizzle2(v, Y, X).
func Swizzle2[A Array[T], T Scalar](v Vec[A, T], a, b Axis) Vec2[T] {
	return NewVec2(v.axis(a), v.axis(b))
}

// Swizzle3 extracts three named components, e.g. Swizzle3(row, X, Y, Z).
func Swizzle3[A Array[T], T Scalar](v Vec[A, T], a, b, c Axis) Vec3[T] {
	return NewVec3(v.axis(a), v.axis(b), v.axis(c))
}

// Swizzle4 extracts four named components.
func Swizzle4[A Array[T], T Scalar](v Vec[A, T], a, b, c, d Axis) Vec4[T] {
	return NewVec4(v.axis(a), v.axis(b), v.axis(c), v.axis(d))
}

// XYZ drops the w component of a 4-vector.
func XYZ[T Scalar](v Vec4[T]) Vec3[T] {
	return NewVec3(v.c[0], v.c[1], v.c[2])
}

// XY drops the z component of a 3-vector.
func XY[T Scalar](v Vec3[T]) Vec2[T] {
	return NewVec2(v.c[0], v.c[1])
}
