// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

// CreateRTTCamera creates a camera that renders the given
// eye into its render buffer.
// It returns nil if the eye has no render buffer.
func (d *Device) CreateRTTCamera(eye driver.Eye, rf scene.ReferenceFrame, clearColor linear.V4, gc scene.GraphicsContext) *scene.Camera {
	b := d.buffers[eye]
	if b == nil {
		return nil
	}
	cam := scene.NewCamera()
	cam.ClearColor = clearColor
	cam.ClearMask = glext.COLOR_BUFFER_BIT | glext.DEPTH_BUFFER_BIT
	cam.RenderTarget = scene.FrameBufferObject
	cam.Order = scene.PreRender
	cam.OrderNum = int(eye)
	cam.ComputeNearFar = false
	cam.AllowEventFocus = false
	cam.ReferenceFrame = rf
	cam.Viewport = scene.Viewport{Width: b.Width(), Height: b.Height()}
	cam.SetGraphicsContext(gc)

	if c := b.ColorBuffer(); c != nil {
		cam.Attach(scene.ColorBuffer, c)
	}
	if z := b.DepthBuffer(); z != nil {
		cam.Attach(scene.DepthBuffer, z)
	}
	if d.cfg.Samples != 0 {
		// The multisample framebuffers are bound by b.
		cam.SetInitialDraw(disableSetUp)
	}
	cam.SetEyeRenderer(b)
	return cam
}

func disableSetUp(ri *scene.RenderInfo) { ri.Camera.SetRequiresSetUp(false) }
