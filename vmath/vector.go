package vmath

import (
	"fmt"
	"math"
	"strings"
)

// Array is the backing storage of a vector: two, three or four components.
type Array[T Scalar] interface {
	[2]T | [3]T | [4]T
}

// Vec is a fixed-size vector. The dimension is carried by the backing
// array type, so operands of different sizes or component types do not
// type-check against each other.
type Vec[A Array[T], T Scalar] struct {
	c A
}

// Arity aliases.
type (
	Vec2[T Scalar] = Vec[[2]T, T]
	Vec3[T Scalar] = Vec[[3]T, T]
	Vec4[T Scalar] = Vec[[4]T, T]
)

// Common instantiations.
type (
	Vec2f = Vec2[float32]
	Vec3f = Vec3[float32]
	Vec4f = Vec4[float32]
	Vec2d = Vec2[float64]
	Vec3d = Vec3[float64]
	Vec4d = Vec4[float64]
	Vec2i = Vec2[int32]
	Vec3i = Vec3[int32]
	Vec4i = Vec4[int32]
)

// Axis names a vector component for swizzling.
type Axis int

const (
	X Axis = iota
	Y
	Z
	W
)

// NewVec2 builds a 2-component vector.
func NewVec2[T Scalar](x, y T) Vec2[T] { return Vec2[T]{c: [2]T{x, y}} }

// NewVec3 builds a 3-component vector.
func NewVec3[T Scalar](x, y, z T) Vec3[T] { return Vec3[T]{c: [3]T{x, y, z}} }

// NewVec4 builds a 4-component vector.
func NewVec4[T Scalar](x, y, z, w T) Vec4[T] { return Vec4[T]{c: [4]T{x, y, z, w}} }

// FromArray wraps an array as a vector. T cannot be inferred from the
// argument, so both type arguments are given: FromArray[[3]float32, float32](a).
func FromArray[A Array[T], T Scalar](a A) Vec[A, T] { return Vec[A, T]{c: a} }

// Splat returns a vector with every component set to s.
func Splat[A Array[T], T Scalar](s T) Vec[A, T] {
	var v Vec[A, T]
	for i := 0; i < len(v.c); i++ {
		v.c[i] = s
	}
	return v
}

// Extend3 appends z to a 2-vector.
func Extend3[T Scalar](v Vec2[T], z T) Vec3[T] { return NewVec3(v.c[0], v.c[1], z) }

// Extend4 appends w to a 3-vector.
func Extend4[T Scalar](v Vec3[T], w T) Vec4[T] { return NewVec4(v.c[0], v.c[1], v.c[2], w) }

// Up, Down, Right and Left are the unit directions of the 2D plane.
// Down and Left wrap around for unsigned component types.
func Up[T Scalar]() Vec2[T]    { return NewVec2[T](0, 1) }
func Right[T Scalar]() Vec2[T] { return NewVec2[T](1, 0) }

func Down[T Scalar]() Vec2[T] {
	var one T = 1
	return NewVec2(0, 0-one)
}

func Left[T Scalar]() Vec2[T] {
	var one T = 1
	return NewVec2(0-one, 0)
}

// Len returns the number of components.
func (v Vec[A, T]) Len() int { return len(v.c) }

// At returns component i.
func (v Vec[A, T]) At(i int) T { return v.c[i] }

// Set assigns component i.
func (v *Vec[A, T]) Set(i int, x T) { v.c[i] = x }

// Array returns the backing array.
func (v Vec[A, T]) Array() A { return v.c }

func (v Vec[A, T]) X() T { return v.c[0] }
func (v Vec[A, T]) Y() T { return v.c[1] }

// Z panics on 2-component vectors.
func (v Vec[A, T]) Z() T { return v.At(int(Z)) }

// W panics on vectors with fewer than 4 components.
func (v Vec[A, T]) W() T { return v.At(int(W)) }

func (v Vec[A, T]) Add(o Vec[A, T]) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] += o.c[i]
	}
	return v
}

func (v Vec[A, T]) Sub(o Vec[A, T]) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] -= o.c[i]
	}
	return v
}

// Mul multiplies component-wise.
func (v Vec[A, T]) Mul(o Vec[A, T]) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] *= o.c[i]
	}
	return v
}

// Div divides component-wise.
func (v Vec[A, T]) Div(o Vec[A, T]) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] /= o.c[i]
	}
	return v
}

func (v Vec[A, T]) AddScalar(s T) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] += s
	}
	return v
}

func (v Vec[A, T]) SubScalar(s T) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] -= s
	}
	return v
}

// Scale multiplies every component by s.
func (v Vec[A, T]) Scale(s T) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] *= s
	}
	return v
}

func (v Vec[A, T]) DivScalar(s T) Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] /= s
	}
	return v
}

func (v Vec[A, T]) Neg() Vec[A, T] {
	for i := 0; i < len(v.c); i++ {
		v.c[i] = 0 - v.c[i]
	}
	return v
}

func (v Vec[A, T]) Dot(o Vec[A, T]) T {
	var d T
	for i := 0; i < len(v.c); i++ {
		d += v.c[i] * o.c[i]
	}
	return d
}

// LengthSquared is accumulated in float64 whatever the component type.
func (v Vec[A, T]) LengthSquared() float64 {
	var d float64
	for i := 0; i < len(v.c); i++ {
		f := float64(v.c[i])
		d += f * f
	}
	return d
}

// Length is computed in float64 whatever the component type.
func (v Vec[A, T]) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized divides v by its length narrowed to T. A zero vector yields
// non-finite components for float types.
func (v Vec[A, T]) Normalized() Vec[A, T] {
	return v.DivScalar(T(v.Length()))
}

func (v Vec[A, T]) compare(o Vec[A, T], op func(a, b T) bool) BitVec {
	b := BitVec{n: uint8(len(v.c))}
	for i := 0; i < len(v.c); i++ {
		b = b.Set(i, op(v.c[i], o.c[i]))
	}
	return b
}

// Eq compares component-wise using Equal.
func (v Vec[A, T]) Eq(o Vec[A, T]) BitVec { return v.compare(o, Equal[T]) }

func (v Vec[A, T]) Ne(o Vec[A, T]) BitVec { return v.Eq(o).Not() }

func (v Vec[A, T]) Lt(o Vec[A, T]) BitVec {
	return v.compare(o, func(a, b T) bool { return a < b })
}

func (v Vec[A, T]) Le(o Vec[A, T]) BitVec {
	return v.compare(o, func(a, b T) bool { return a < b || Equal(a, b) })
}

func (v Vec[A, T]) Gt(o Vec[A, T]) BitVec {
	return v.compare(o, func(a, b T) bool { return a > b })
}

func (v Vec[A, T]) Ge(o Vec[A, T]) BitVec {
	return v.compare(o, func(a, b T) bool { return a > b || Equal(a, b) })
}

// Equals reports whether every component compares equal.
func (v Vec[A, T]) Equals(o Vec[A, T]) bool { return v.Eq(o).All() }

// ApproxEquals reports whether every component is within tol of o.
func (v Vec[A, T]) ApproxEquals(o Vec[A, T], tol float64) bool {
	for i := 0; i < len(v.c); i++ {
		if !ApproxEqual(v.c[i], o.c[i], tol) {
			return false
		}
	}
	return true
}

func (v Vec[A, T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < len(v.c); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v.c[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

// Cross returns the cross product a × b.
func Cross[T Scalar](a, b Vec3[T]) Vec3[T] {
	return NewVec3(
		a.c[1]*b.c[2]-a.c[2]*b.c[1],
		a.c[2]*b.c[0]-a.c[0]*b.c[2],
		a.c[0]*b.c[1]-a.c[1]*b.c[0],
	)
}
