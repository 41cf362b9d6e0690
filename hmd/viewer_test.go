// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/driver/sim"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/glext/gltrace"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

func newViewer(t *testing.T, cfg Config) (*Viewer, *sim.Session, *scene.HeadlessContext, *gltrace.Recorder) {
	t.Helper()
	d, drv := newSimDevice(t, cfg, simConfig())
	gc, rec := newContext()
	v := scene.NewView()
	cam := v.Camera()
	cam.SetGraphicsContext(gc)
	cam.Viewport = scene.Viewport{Width: 960, Height: 533}
	cam.ClearColor = linear.V4{0.2, 0.2, 0.4, 1}
	cam.View.Translate(0, -1, -4)
	return NewViewer(v, d), drv.Session(), gc, rec
}

func TestViewerOneFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PixelsPerDisplayPixel = 1
	cfg.Samples = 0
	cfg.MirrorWidth = 960
	vw, sess, gc, rec := newViewer(t, cfg)
	vw.Frame()

	d := vw.Device()
	commits := 0
	for i := range driver.EyeCount {
		commits += d.Buffer(driver.Eye(i)).Swapchain().(*sim.Swapchain).Commits()
	}
	assert.Equal(t, 2, commits)
	assert.Equal(t, 1, countBlitsFrom(rec, d.Mirror().Framebuffer()))
	assert.Len(t, rec.Blits(), 1)
	assert.Len(t, sess.Submissions(), 1)
	assert.Equal(t, 1, gc.Swaps())
	assert.Equal(t, int64(1), vw.SwapHook().FrameIndex())
	assert.Equal(t, 1, sess.TrackingQueries())
}

func TestViewerConfigure(t *testing.T) {
	vw, _, gc, _ := newViewer(t, DefaultConfig())
	v := vw.View()
	master := v.Camera()
	vw.Frame()

	require.True(t, vw.Configured())
	require.Equal(t, 3, v.NumSlaves())
	assert.Nil(t, master.GraphicsContext())
	assert.Same(t, vw.SwapHook(), gc.SwapHook())
	assert.Equal(t, scene.SkyLight, v.Lighting)

	names := []string{LeftCameraName, RightCameraName, PreviewCameraName}
	for i, name := range names {
		cam := v.Slave(i).Camera
		assert.Equal(t, name, cam.Name)
		assert.Equal(t, scene.AbsoluteRF, cam.ReferenceFrame)
		assert.Equal(t, master.ClearColor, cam.ClearColor)
		assert.Equal(t, uint32(glext.COLOR_BUFFER_BIT|glext.DEPTH_BUFFER_BIT), cam.ClearMask)
		assert.False(t, cam.ComputeNearFar)
		assert.Equal(t, gc, cam.GraphicsContext())
		assert.True(t, v.Slave(i).UseMastersScene)
	}
	for i := range driver.EyeCount {
		eye := driver.Eye(i)
		cam := vw.EyeCamera(eye)
		require.NotNil(t, cam)
		b := vw.Device().Buffer(eye)
		assert.Equal(t, scene.PreRender, cam.Order)
		assert.Equal(t, int(eye), cam.OrderNum)
		assert.Equal(t, scene.FrameBufferObject, cam.RenderTarget)
		assert.False(t, cam.AllowEventFocus)
		assert.Equal(t, scene.Viewport{Width: b.Width(), Height: b.Height()}, cam.Viewport)
		assert.Same(t, b.ColorBuffer(), cam.Attachment(scene.ColorBuffer))
		assert.Same(t, b.DepthBuffer(), cam.Attachment(scene.DepthBuffer))
		es, ok := v.Slave(int(i)).Updater.(*EyeSlave)
		require.True(t, ok)
		assert.Equal(t, eye == driver.EyeLeft, es.Leader)
		assert.Equal(t, eye, es.Eye)
	}
	pc := vw.PreviewCamera()
	assert.Equal(t, scene.PostRender, pc.Order)
	assert.Equal(t, master.Viewport, pc.Viewport)
	assert.Equal(t, scene.FrameBuffer, pc.RenderTarget)
	_, ok := v.Slave(2).Updater.(*PreviewSlave)
	assert.True(t, ok)

	vw.Frame()
	assert.Equal(t, 3, v.NumSlaves())
}

func TestViewerSlaveMatrices(t *testing.T) {
	vw, _, _, _ := newViewer(t, DefaultConfig())
	vw.Frame()
	v := vw.View()
	d := vw.Device()
	mv := v.Camera().View

	head := headView(d)
	for i := range driver.EyeCount {
		eye := driver.Eye(i)
		ev := d.ViewMatrix(eye)
		var want linear.M4
		want.Mul(&ev, &head)
		want.Mul(&want, &mv)
		assert.Equal(t, want, vw.EyeCamera(eye).View)
		assert.Equal(t, d.ProjectionMatrix(eye), vw.EyeCamera(eye).Projection)
	}

	var proj linear.M4
	cfg := DefaultConfig().Preview
	proj.Perspective(float32(30*3.141592653589793/180), cfg.Aspect, cfg.Near, cfg.Far)
	pc := vw.PreviewCamera()
	for i := range pc.Projection {
		for j := range pc.Projection[i] {
			assert.InDelta(t, proj[i][j], pc.Projection[i][j], 1e-5)
		}
	}
	center := d.CenterViewMatrix()
	var off, want linear.M4
	off.Translate(0, 0, -6)
	want.Mul(&center, &off)
	want.Mul(&want, &head)
	want.Mul(&want, &mv)
	assert.Equal(t, want, pc.View)

	// The eye is behind the head by 6 units.
	assert.InDelta(t, mv[3][2]-6, pc.View[3][2], 1e-3)
}

func TestViewerFrames(t *testing.T) {
	const frames = 10
	vw, sess, gc, rec := newViewer(t, DefaultConfig())
	for range frames {
		vw.Frame()
	}
	d := vw.Device()
	for i := range driver.EyeCount {
		assert.Equal(t, frames, d.Buffer(driver.Eye(i)).Swapchain().(*sim.Swapchain).Commits())
	}
	subs := sess.Submissions()
	require.Len(t, subs, frames)
	for f, sub := range subs {
		assert.Equal(t, int64(f), sub.Frame)
	}
	assert.Equal(t, frames, countBlitsFrom(rec, d.Mirror().Framebuffer()))
	assert.Equal(t, frames, gc.Swaps())
	assert.Equal(t, int64(frames), vw.SwapHook().Submitted())
	assert.Equal(t, frames, sess.TrackingQueries())
	// Only the eye cameras and the mirror have framebuffers.
	assert.Equal(t, 3, rec.Framebuffers())
	assert.Equal(t, d.RenderPose(driver.EyeLeft), subs[frames-1].Layer.RenderPose[0])
}

func TestViewerMSAA(t *testing.T) {
	const frames = 3
	cfg := DefaultConfig()
	cfg.Samples = 4
	vw, sess, _, rec := newViewer(t, cfg)
	for range frames {
		vw.Frame()
	}
	d := vw.Device()
	for i := range driver.EyeCount {
		eye := driver.Eye(i)
		b := d.Buffer(eye)
		assert.Equal(t, frames, b.Swapchain().(*sim.Swapchain).Commits())
		assert.Equal(t, frames, countBlitsFrom(rec, b.msaaFBO))
		cam := vw.EyeCamera(eye)
		assert.Nil(t, cam.Attachment(scene.ColorBuffer))
		assert.False(t, cam.RequiresSetUp())
		_, ok := cam.FrameBufferObject()
		assert.False(t, ok)
	}
	assert.Len(t, sess.Submissions(), frames)
	assert.Equal(t, frames, countBlitsFrom(rec, d.Mirror().Framebuffer()))
	assert.Equal(t, 5, rec.Framebuffers())
}

func TestViewerMirrorOff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisplayMirror = false
	vw, sess, gc, rec := newViewer(t, cfg)
	vw.Frame()
	vw.Frame()
	assert.Empty(t, rec.Blits())
	assert.Len(t, sess.Submissions(), 2)
	assert.Equal(t, 2, gc.Swaps())
}

func TestViewerDisabled(t *testing.T) {
	scfg := simConfig()
	scfg.NoDevice = true
	d, _ := newSimDevice(t, DefaultConfig(), scfg)
	gc, rec := newContext()
	v := scene.NewView()
	v.Camera().SetGraphicsContext(gc)
	vw := NewViewer(v, d)
	vw.Frame()
	vw.Frame()
	assert.True(t, vw.Configured())
	assert.Equal(t, 1, v.NumSlaves())
	assert.Nil(t, vw.EyeCamera(driver.EyeLeft))
	assert.Equal(t, 2, gc.Swaps())
	assert.Empty(t, rec.Blits())
	assert.Equal(t, int64(2), vw.SwapHook().FrameIndex())
	assert.Zero(t, vw.SwapHook().Submitted())
}

func TestFollowerDoesNotUpdatePose(t *testing.T) {
	d, sess, gc, _ := realized(t, DefaultConfig())
	require.NoError(t, d.UpdatePose(0))
	q := sess.TrackingQueries()
	pos := d.Position()

	h := NewSwapHook(d)
	v := scene.NewView()
	var id linear.M4
	id.I()
	var cams [driver.EyeCount]*scene.Camera
	for i := range cams {
		cams[i] = scene.NewCamera()
		cams[i].ReferenceFrame = scene.AbsoluteRF
		cams[i].SetGraphicsContext(gc)
		n := v.AddSlave(cams[i], id, id, true)
		v.Slave(n).Updater = NewEyeSlave(d, h, driver.Eye(i), false)
	}
	v.Frame()
	v.Frame()
	assert.Equal(t, q, sess.TrackingQueries())
	assert.Equal(t, pos, d.Position())

	head := headView(d)
	for i := range cams {
		ev := d.ViewMatrix(driver.Eye(i))
		var want linear.M4
		want.Mul(&ev, &head)
		want.Mul(&want, &v.Camera().View)
		assert.Equal(t, want, cams[i].View)
	}
}

func TestViewerDestroy(t *testing.T) {
	vw, _, _, rec := newViewer(t, DefaultConfig())
	vw.Frame()
	require.Equal(t, 3, rec.Framebuffers())
	vw.Destroy()
	assert.Equal(t, 1, rec.Framebuffers())
	for i := range driver.EyeCount {
		_, ok := vw.EyeCamera(driver.Eye(i)).FrameBufferObject()
		assert.False(t, ok)
	}
	// The mirror framebuffer belongs to the device.
	vw.Device().Destroy()
	assert.Zero(t, rec.Framebuffers())
	vw.Destroy()
}

func TestViewerResize(t *testing.T) {
	vw, _, _, _ := newViewer(t, DefaultConfig())
	vw.Resize(100, 50)
	assert.Equal(t, scene.Viewport{Width: 100, Height: 50}, vw.View().Camera().Viewport)
	vw.Frame()
	vw.Resize(640, 360)
	want := scene.Viewport{Width: 640, Height: 360}
	assert.Equal(t, want, vw.View().Camera().Viewport)
	assert.Equal(t, want, vw.PreviewCamera().Viewport)
	b := vw.Device().Buffer(driver.EyeLeft)
	assert.Equal(t, scene.Viewport{Width: b.Width(), Height: b.Height()}, vw.EyeCamera(driver.EyeLeft).Viewport)
}
