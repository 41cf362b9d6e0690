// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.V.Add(&v, &w)
	q.R = l.R*r.R - d
}

// Conj sets q to contain the conjugate of p.
func (q *Q) Conj(p *Q) {
	q.V.Scale(-1, &p.V)
	q.R = p.R
}

// Len returns the length of q.
func (q *Q) Len() float32 {
	return float32(math.Sqrt(float64(q.V.Dot(&q.V) + q.R*q.R)))
}

// Norm sets q to contain p normalized.
func (q *Q) Norm(p *Q) {
	s := 1 / p.Len()
	q.V.Scale(s, &p.V)
	q.R = s * p.R
}

// Rotate sets q to contain a rotation of angle
// radians about axis.
// axis must be a unit vector.
func (q *Q) Rotate(angle float32, axis *V3) {
	s, c := math.Sincos(float64(angle) * 0.5)
	q.V.Scale(float32(s), axis)
	q.R = float32(c)
}
