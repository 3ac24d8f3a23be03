// Package vmath provides the fixed-dimension vectors, 4x4 matrix and
// quaternion used by every transform in the renderer.
//
// All types are plain values: operations return new values and never
// allocate. Degenerate inputs (normalizing a zero vector, inverting a
// singular matrix) are not checked and yield non-finite results.
package vmath

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Scalar is the component type of vectors and matrices.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Machine epsilon for the two IEEE widths.
const (
	Epsilon32 = 1.1920928955078125e-07
	Epsilon64 = 2.220446049250313e-16
)

// IsFloat reports whether T is a floating-point type.
func IsFloat[T Scalar]() bool {
	var half T = 1
	half /= 2
	return half != 0
}

// Epsilon returns the machine epsilon of T, or 0 for integer types.
func Epsilon[T Scalar]() float64 {
	if !IsFloat[T]() {
		return 0
	}
	var z T
	if unsafe.Sizeof(z) == 4 {
		return Epsilon32
	}
	return Epsilon64
}

// Equal compares two scalars. Integers compare exactly. Floats are equal
// when their absolute difference is below epsilon or, when both are
// non-zero, when the relative difference |a-b|/(|a|+|b|) is below epsilon.
func Equal[T Scalar](a, b T) bool {
	if a == b {
		return true
	}
	if !IsFloat[T]() {
		return false
	}

	eps := Epsilon[T]()
	fa, fb := float64(a), float64(b)
	diff := math.Abs(fa - fb)
	if fa == 0 || fb == 0 || diff < eps {
		return diff < eps
	}
	return diff/(math.Abs(fa)+math.Abs(fb)) < eps
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual[T Scalar](a, b T, tol float64) bool {
	return math.Abs(float64(a)-float64(b)) <= tol
}

// Radians converts degrees to radians.
func Radians[T constraints.Float](deg T) T {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees[T constraints.Float](rad T) T {
	return rad * 180 / math.Pi
}

// Clamp restricts x to [lo, hi].
func Clamp[T Scalar](x, lo, hi T) T {
	return max(lo, min(x, hi))
}

// Lerp interpolates linearly between a and b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// SmoothStep is the cubic Hermite step between edge0 and edge1.
func SmoothStep[T constraints.Float](edge0, edge1, x T) T {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
