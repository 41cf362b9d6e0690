// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

// Camera names set by Viewer.
const (
	LeftCameraName    = "LeftRTT"
	RightCameraName   = "RightRTT"
	PreviewCameraName = "center_cam"
)

// Viewer renders a scene.View in stereo to a Device.
//
// The view's master camera must have a graphics context.
// Once the context is realized, the viewer adds one
// render-to-texture slave per eye plus a preview slave
// that draws into the window, and detaches the master
// camera from the context.
type Viewer struct {
	view       *scene.View
	dev        *Device
	realize    *RealizeOp
	swap       *SwapHook
	configured bool
	eyes       [driver.EyeCount]*scene.Camera
	preview    *scene.Camera
}

// NewViewer creates a new Viewer and installs its realize
// operation in v.
func NewViewer(v *scene.View, d *Device) *Viewer {
	vw := &Viewer{view: v, dev: d, realize: NewRealizeOp(d)}
	v.SetRealizeOperation(vw.realize)
	return vw
}

// Frame renders one frame.
func (vw *Viewer) Frame() {
	if !vw.view.Realized() {
		vw.view.Realize()
	}
	if vw.realize.Realized() && !vw.configured {
		vw.configure()
	}
	vw.view.Frame()
}

func (vw *Viewer) configure() {
	vw.configured = true
	master := vw.view.Camera()
	gc := master.GraphicsContext()
	if gc == nil {
		Logger().Warn("master camera has no graphics context")
		return
	}
	vw.swap = NewSwapHook(vw.dev)
	gc.SetSwapHook(vw.swap)

	clear := master.ClearColor
	names := [driver.EyeCount]string{LeftCameraName, RightCameraName}
	leader := true
	for i := range vw.eyes {
		eye := driver.Eye(i)
		cam := vw.dev.CreateRTTCamera(eye, scene.AbsoluteRF, clear, gc)
		if cam == nil {
			continue
		}
		cam.Name = names[i]
		n := vw.view.AddSlave(cam, vw.dev.ProjectionMatrix(eye), vw.dev.ViewMatrix(eye), true)
		vw.view.Slave(n).Updater = NewEyeSlave(vw.dev, vw.swap, eye, leader)
		leader = false
		vw.eyes[i] = cam
	}

	cam := scene.NewCamera()
	cam.Name = PreviewCameraName
	cam.ClearColor = clear
	cam.ClearMask = glext.COLOR_BUFFER_BIT | glext.DEPTH_BUFFER_BIT
	cam.Order = scene.PostRender
	cam.ComputeNearFar = false
	cam.ReferenceFrame = scene.AbsoluteRF
	cam.Viewport = master.Viewport
	cam.SetGraphicsContext(gc)
	var id linear.M4
	id.I()
	n := vw.view.AddSlave(cam, id, id, true)
	vw.view.Slave(n).Updater = NewPreviewSlave(vw.dev, vw.dev.cfg.Preview)
	vw.preview = cam

	vw.view.Lighting = scene.SkyLight
	// The eyes' swap chains replace the master camera.
	master.SetGraphicsContext(nil)
}

// Configured returns whether the slave cameras were
// added to the view.
func (vw *Viewer) Configured() bool { return vw.configured }

// View returns the view.
func (vw *Viewer) View() *scene.View { return vw.view }

// Device returns the device.
func (vw *Viewer) Device() *Device { return vw.dev }

// SwapHook returns the swap hook installed in the master
// context, or nil if the viewer is not configured.
func (vw *Viewer) SwapHook() *SwapHook { return vw.swap }

// EyeCamera returns the camera of the given eye, or nil.
func (vw *Viewer) EyeCamera(eye driver.Eye) *scene.Camera { return vw.eyes[eye] }

// PreviewCamera returns the preview camera, or nil.
func (vw *Viewer) PreviewCamera() *scene.Camera { return vw.preview }

// Resize updates the viewports that cover the window.
// The eye cameras keep the size of their render buffers.
func (vw *Viewer) Resize(width, height int) {
	vp := scene.Viewport{Width: width, Height: height}
	vw.view.Camera().Viewport = vp
	if vw.preview != nil {
		vw.preview.Viewport = vp
	}
}

// Destroy releases the framebuffer objects of the eye
// cameras. It must be called before the device is
// destroyed, with the eyes' context current.
func (vw *Viewer) Destroy() {
	for _, cam := range vw.eyes {
		if cam == nil {
			continue
		}
		if gc := cam.GraphicsContext(); gc != nil {
			cam.Release(gc.State())
		}
	}
}
