// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Lerp sets m to contain (1-t) ⋅ l + t ⋅ r,
// element-wise.
func (m *M4) Lerp(l, r *M4, t float32) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = (1-t)*l[i][j] + t*r[i][j]
		}
	}
}

// Translate sets m to contain a translation.
func (m *M4) Translate(x, y, z float32) {
	*m = M4{{1}, {0, 1}, {0, 0, 1}, {x, y, z, 1}}
}

// Scale sets m to contain a scale.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {0, y}, {0, 0, z}, {0, 0, 0, 1}}
}

// RotateQ sets m to contain the rotation that
// the unit quaternion q represents.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// Frustum sets m to contain a perspective projection
// for the given clip volume, mapping depth into
// the [-1, 1] range.
func (m *M4) Frustum(left, right, bottom, top, near, far float32) {
	*m = M4{
		{2 * near / (right - left)},
		{1: 2 * near / (top - bottom)},
		{
			(right + left) / (right - left),
			(top + bottom) / (top - bottom),
			-(far + near) / (far - near),
			-1,
		},
		{2: -2 * far * near / (far - near)},
	}
}

// Perspective sets m to contain a symmetric perspective
// projection.
// yfov is given in radians.
func (m *M4) Perspective(yfov, aspect, near, far float32) {
	top := near * float32(math.Tan(float64(yfov)*0.5))
	right := top * aspect
	m.Frustum(-right, right, -top, top, near, far)
}
