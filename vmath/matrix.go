package vmath

import (
	"math"
	"strings"
)

// Mat4 is a 4x4 matrix stored as four column vectors.
type Mat4[T Scalar] struct {
	cols [4]Vec4[T]
}

type (
	Mat4f = Mat4[float32]
	Mat4d = Mat4[float64]
)

// Diagonal returns a matrix with d on the diagonal and zeros elsewhere.
func Diagonal[T Scalar](d T) Mat4[T] {
	var m Mat4[T]
	for i := 0; i < 4; i++ {
		m.cols[i].c[i] = d
	}
	return m
}

// Identity returns the identity matrix.
func Identity[T Scalar]() Mat4[T] { return Diagonal[T](1) }

// Mat4FromCols builds a matrix from its columns.
func Mat4FromCols[T Scalar](c0, c1, c2, c3 Vec4[T]) Mat4[T] {
	return Mat4[T]{cols: [4]Vec4[T]{c0, c1, c2, c3}}
}

// Mat4FromData builds a matrix from 16 column-major scalars.
func Mat4FromData[T Scalar](d [16]T) Mat4[T] {
	var m Mat4[T]
	for i := 0; i < 16; i++ {
		m.cols[i/4].c[i%4] = d[i]
	}
	return m
}

// At returns the i-th scalar in column-major order.
func (m Mat4[T]) At(i int) T { return m.cols[i/4].c[i%4] }

// Get returns the element at row r, column c.
func (m Mat4[T]) Get(r, c int) T { return m.cols[c].c[r] }

// Data returns the 16 scalars in column-major order, ready for upload.
func (m Mat4[T]) Data() [16]T {
	var d [16]T
	for i := 0; i < 16; i++ {
		d[i] = m.cols[i/4].c[i%4]
	}
	return d
}

func (m Mat4[T]) Col(n int) Vec4[T] { return m.cols[n] }

func (m Mat4[T]) Row(n int) Vec4[T] {
	return NewVec4(m.cols[0].c[n], m.cols[1].c[n], m.cols[2].c[n], m.cols[3].c[n])
}

// SetCol returns a copy of m with column n replaced.
func (m Mat4[T]) SetCol(n int, c Vec4[T]) Mat4[T] {
	m.cols[n] = c
	return m
}

// SetRow returns a copy of m with row n replaced.
func (m Mat4[T]) SetRow(n int, r Vec4[T]) Mat4[T] {
	for i := 0; i < 4; i++ {
		m.cols[i].c[n] = r.c[i]
	}
	return m
}

func (m Mat4[T]) Add(o Mat4[T]) Mat4[T] {
	for i := range m.cols {
		m.cols[i] = m.cols[i].Add(o.cols[i])
	}
	return m
}

func (m Mat4[T]) Sub(o Mat4[T]) Mat4[T] {
	for i := range m.cols {
		m.cols[i] = m.cols[i].Sub(o.cols[i])
	}
	return m
}

func (m Mat4[T]) MulScalar(n T) Mat4[T] {
	for i := range m.cols {
		m.cols[i] = m.cols[i].Scale(n)
	}
	return m
}

func (m Mat4[T]) Neg() Mat4[T] {
	for i := range m.cols {
		m.cols[i] = m.cols[i].Neg()
	}
	return m
}

// MulVec returns m·v.
func (m Mat4[T]) MulVec(v Vec4[T]) Vec4[T] {
	var r Vec4[T]
	for k := 0; k < 4; k++ {
		r = r.Add(m.cols[k].Scale(v.c[k]))
	}
	return r
}

// Mul returns m·o.
func (m Mat4[T]) Mul(o Mat4[T]) Mat4[T] {
	var r Mat4[T]
	for j := 0; j < 4; j++ {
		r.cols[j] = m.MulVec(o.cols[j])
	}
	return r
}

// TransformPoint applies m to (p, 1) and drops w.
func (m Mat4[T]) TransformPoint(p Vec3[T]) Vec3[T] {
	return XYZ(m.MulVec(Extend4(p, 1)))
}

// TransformVec2 applies m to (p, 0, 1) and keeps x and y.
func (m Mat4[T]) TransformVec2(p Vec2[T]) Vec2[T] {
	return XY(m.TransformPoint(Extend3(p, 0)))
}

func (m Mat4[T]) Transposed() Mat4[T] {
	var r Mat4[T]
	for i := 0; i < 4; i++ {
		r.cols[i] = m.Row(i)
	}
	return r
}

// Equals compares every element with Equal.
func (m Mat4[T]) Equals(o Mat4[T]) bool {
	for i := range m.cols {
		if !m.cols[i].Equals(o.cols[i]) {
			return false
		}
	}
	return true
}

// ApproxEquals reports whether every element is within tol of o.
func (m Mat4[T]) ApproxEquals(o Mat4[T], tol float64) bool {
	for i := range m.cols {
		if !m.cols[i].ApproxEquals(o.cols[i], tol) {
			return false
		}
	}
	return true
}

// Inverse returns the cofactor-expansion inverse. The determinant is not
// checked: a singular matrix produces non-finite elements.
func (m Mat4[T]) Inverse() Mat4[T] {
	var a [16]float64
	for i := 0; i < 16; i++ {
		a[i] = float64(m.At(i))
	}

	var inv [16]float64
	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := 1 / (a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12])

	var r Mat4[T]
	for i := 0; i < 16; i++ {
		r.cols[i/4].c[i%4] = T(inv[i] * det)
	}
	return r
}

func (m Mat4[T]) String() string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		if i == 0 {
			sb.WriteByte('{')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.Row(i).String())
		if i < 3 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Ortho builds an orthographic projection mapping the box to clip space.
func Ortho[T Scalar](left, right, bottom, top, near, far T) Mat4[T] {
	l, r, b, t := float64(left), float64(right), float64(bottom), float64(top)
	n, f := float64(near), float64(far)

	m := Identity[T]()
	m.cols[0].c[0] = T(2 / (r - l))
	m.cols[1].c[1] = T(2 / (t - b))
	m.cols[2].c[2] = T(-2 / (f - n))
	m.cols[3].c[0] = T(-(r + l) / (r - l))
	m.cols[3].c[1] = T(-(t + b) / (t - b))
	m.cols[3].c[2] = T(-(f + n) / (f - n))
	return m
}

// Perspective builds a right-handed perspective projection. fovY is the
// vertical field of view in degrees.
func Perspective[T Scalar](fovY, aspect, near, far T) Mat4[T] {
	n, f := float64(near), float64(far)
	w := -1.0
	focal := 1 / math.Tan(Radians(float64(fovY))/2)

	var m Mat4[T]
	m.cols[0].c[0] = T(focal / float64(aspect))
	m.cols[1].c[1] = T(focal)
	m.cols[2].c[2] = T((f + n) / (n - f))
	m.cols[2].c[3] = T(w)
	m.cols[3].c[2] = T(2 * f * n / (n - f))
	return m
}

// LookAt builds a right-handed view matrix looking from eye towards center.
func LookAt[T Scalar](eye, center, up Vec3[T]) Mat4[T] {
	e := NewVec3(float64(eye.c[0]), float64(eye.c[1]), float64(eye.c[2]))
	c := NewVec3(float64(center.c[0]), float64(center.c[1]), float64(center.c[2]))
	u := NewVec3(float64(up.c[0]), float64(up.c[1]), float64(up.c[2]))

	f := c.Sub(e).Normalized()
	s := Cross(f, u).Normalized()
	u = Cross(s, f)

	m := Identity[T]()
	for i := 0; i < 3; i++ {
		m.cols[i].c[0] = T(s.c[i])
		m.cols[i].c[1] = T(u.c[i])
		m.cols[i].c[2] = T(-f.c[i])
	}
	m.cols[3].c[0] = T(-s.Dot(e))
	m.cols[3].c[1] = T(-u.Dot(e))
	m.cols[3].c[2] = T(f.Dot(e))
	return m
}

// Translate builds a translation matrix.
func Translate[T Scalar](t Vec3[T]) Mat4[T] {
	m := Identity[T]()
	m.cols[3] = Extend4(t, 1)
	return m
}

// Scale builds a scaling matrix.
func Scale[T Scalar](s Vec3[T]) Mat4[T] {
	return Mat4FromCols(
		NewVec4(s.c[0], 0, 0, 0),
		NewVec4(0, s.c[1], 0, 0),
		NewVec4(0, 0, s.c[2], 0),
		NewVec4[T](0, 0, 0, 1),
	)
}

// Rotate builds a rotation of angle degrees about axis. The axis is
// normalized first.
func Rotate[T Scalar](angle T, axis Vec3[T]) Mat4[T] {
	rad := Radians(float64(angle))
	c, s := math.Cos(rad), math.Sin(rad)
	a := NewVec3(float64(axis.c[0]), float64(axis.c[1]), float64(axis.c[2])).Normalized()
	t := a.Scale(1 - c)

	m := Identity[T]()
	m.cols[0].c[0] = T(c + t.c[0]*a.c[0])
	m.cols[0].c[1] = T(t.c[0]*a.c[1] + s*a.c[2])
	m.cols[0].c[2] = T(t.c[0]*a.c[2] - s*a.c[1])

	m.cols[1].c[0] = T(t.c[1]*a.c[0] - s*a.c[2])
	m.cols[1].c[1] = T(c + t.c[1]*a.c[1])
	m.cols[1].c[2] = T(t.c[1]*a.c[2] + s*a.c[0])

	m.cols[2].c[0] = T(t.c[2]*a.c[0] + s*a.c[1])
	m.cols[2].c[1] = T(t.c[2]*a.c[1] - s*a.c[0])
	m.cols[2].c[2] = T(c + t.c[2]*a.c[2])
	return m
}

// Translate returns m·Translate(t).
func (m Mat4[T]) Translate(t Vec3[T]) Mat4[T] { return m.Mul(Translate(t)) }

// Scale returns m·Scale(s).
func (m Mat4[T]) Scale(s Vec3[T]) Mat4[T] { return m.Mul(Scale(s)) }

// Rotate returns m·Rotate(angle, axis).
func (m Mat4[T]) Rotate(angle T, axis Vec3[T]) Mat4[T] { return m.Mul(Rotate(angle, axis)) }
