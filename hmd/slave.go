// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"math"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

// headView returns the inverse of the head transform.
func headView(d *Device) (m linear.M4) {
	q := d.Orientation()
	q.Conj(&q)
	p := d.Position()
	var r, t linear.M4
	r.RotateQ(&q)
	t.Translate(-p[0], -p[1], -p[2])
	m.Mul(&r, &t)
	return
}

// EyeSlave updates the camera of one eye.
// It implements scene.SlaveUpdater.
//
// Exactly one EyeSlave per view must be the Leader, and
// it must be updated before the other. The leader samples
// the head pose for the frame that the swap hook will
// submit next; the other eye reuses that pose.
type EyeSlave struct {
	Device *Device
	Swap   *SwapHook
	Eye    driver.Eye
	Leader bool

	warned int64
}

// NewEyeSlave creates a new EyeSlave.
func NewEyeSlave(d *Device, h *SwapHook, eye driver.Eye, leader bool) *EyeSlave {
	return &EyeSlave{Device: d, Swap: h, Eye: eye, Leader: leader, warned: -1}
}

// UpdateSlave sets the view and projection of the eye's
// camera from the head pose and the master camera.
func (e *EyeSlave) UpdateSlave(v *scene.View, s *scene.Slave) {
	d := e.Device
	frame := e.Swap.FrameIndex()
	if e.Leader {
		d.UpdatePose(frame)
	} else if f, ok := d.PoseFrame(); d.Enabled() && (!ok || f != frame) && e.warned != frame {
		e.warned = frame
		Logger().Warn("eye rendered with a stale pose", "eye", e.Eye, "frame", frame, "pose_frame", f)
	}
	eye := d.ViewMatrix(e.Eye)
	head := headView(d)
	var m linear.M4
	m.Mul(&eye, &head)
	s.Camera.View.Mul(&m, &v.Camera().View)
	s.Camera.Projection = d.ProjectionMatrix(e.Eye)
	s.UpdateDefault(v)
}

// PreviewSlave updates a camera that shows the scene
// from behind the viewer's head, with a fixed projection.
// It implements scene.SlaveUpdater.
type PreviewSlave struct {
	Device     *Device
	Offset     linear.V3
	Projection linear.M4
}

// NewPreviewSlave creates a new PreviewSlave.
func NewPreviewSlave(d *Device, c PreviewConfig) *PreviewSlave {
	p := &PreviewSlave{Device: d, Offset: linear.V3(c.Offset)}
	yfov := float32(float64(c.FovY) * math.Pi / 180)
	p.Projection.Perspective(yfov, c.Aspect, c.Near, c.Far)
	return p
}

// UpdateSlave sets the view and projection of the
// preview camera.
func (p *PreviewSlave) UpdateSlave(v *scene.View, s *scene.Slave) {
	center := p.Device.CenterViewMatrix()
	var off linear.M4
	off.Translate(-p.Offset[0], -p.Offset[1], -p.Offset[2])
	head := headView(p.Device)
	var m linear.M4
	m.Mul(&center, &off)
	m.Mul(&m, &head)
	s.Camera.View.Mul(&m, &v.Camera().View)
	s.Camera.Projection = p.Projection
	s.UpdateDefault(v)
}
