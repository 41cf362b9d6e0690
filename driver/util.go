// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/hmd/linear"
)

// Compose returns the pose b expressed in the space of
// which a is a transform, i.e., a ⋅ b.
func Compose(a, b *Pose) (p Pose) {
	p.Orientation.Mul(&a.Orientation, &b.Orientation)
	p.Position.Rot(&a.Orientation, &b.Position)
	p.Position.Add(&p.Position, &a.Position)
	return
}

// CalcEyePoses computes the pose of each eye from the
// head pose and the eye offsets relative to the head.
func CalcEyePoses(head Pose, hmdToEye [EyeCount]Pose) (eyes [EyeCount]Pose) {
	for i := range eyes {
		eyes[i] = Compose(&head, &hmdToEye[i])
	}
	return
}

// Projection returns the projection matrix for the given
// field of view, using a right-handed coordinate system
// and the GL clip range ([-1, 1] depth).
func Projection(fov FovPort, near, far float32) (m linear.M4) {
	m.Frustum(
		-fov.LeftTan*near, fov.RightTan*near,
		-fov.DownTan*near, fov.UpTan*near,
		near, far)
	return
}
