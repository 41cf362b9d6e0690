// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/glext/gltrace"
	"github.com/gviegas/hmd/linear"
)

type recEye struct {
	calls []string
	fbo   []uint32
	gl    *gltrace.Recorder
}

func (r *recEye) OnBeforeEyeRender(ri *RenderInfo) {
	r.calls = append(r.calls, "before:"+ri.Camera.Name)
	r.fbo = append(r.fbo, r.gl.Bound(glext.DRAW_FRAMEBUFFER))
}

func (r *recEye) OnAfterEyeRender(ri *RenderInfo) {
	r.calls = append(r.calls, "after:"+ri.Camera.Name)
	r.fbo = append(r.fbo, r.gl.Bound(glext.DRAW_FRAMEBUFFER))
}

type countHook struct{ n int }

func (h *countHook) SwapBuffers(gc GraphicsContext) {
	h.n++
	gc.SwapBuffersImplementation()
}

type countRealizer struct{ gcs []GraphicsContext }

func (r *countRealizer) Realize(gc GraphicsContext) { r.gcs = append(r.gcs, gc) }

func TestSwapBuffers(t *testing.T) {
	gc := NewHeadless(1, gltrace.New(0))
	SwapBuffers(gc)
	assert.Equal(t, 1, gc.Swaps())
	h := new(countHook)
	gc.SetSwapHook(h)
	SwapBuffers(gc)
	assert.Equal(t, 1, h.n)
	assert.Equal(t, 2, gc.Swaps())
	gc.SetSwapHook(nil)
	SwapBuffers(gc)
	assert.Equal(t, 1, h.n)
	assert.Equal(t, 3, gc.Swaps())
}

func TestTexture2D(t *testing.T) {
	rec := gltrace.New(0)
	st := &State{ContextID: 3, GL: rec}

	tex := NewTexture2D(64, 32)
	_, ok := tex.TextureObject(3)
	require.False(t, ok)
	name := tex.Apply(st)
	require.NotZero(t, name)
	assert.True(t, tex.Owned(3))
	assert.Equal(t, name, tex.Apply(st))
	ts, ok := rec.Texture(name)
	require.True(t, ok)
	assert.Equal(t, int32(64), ts.Width)
	assert.Equal(t, int32(32), ts.Height)
	tex.Release(st)
	assert.Equal(t, 0, rec.Textures())

	ext := NewTexture2D(16, 16)
	ext.SetTextureObject(3, 77)
	assert.False(t, ext.Owned(3))
	assert.Equal(t, uint32(77), ext.Apply(st))
	ext.Release(st)
	assert.Equal(t, 1, rec.Calls("TexImage2D"))
	assert.Equal(t, 1, rec.Calls("DeleteTexture"))
}

func TestCameraSetUp(t *testing.T) {
	rec := gltrace.New(0)
	gc := NewHeadless(1, rec)
	cam := NewCamera()
	cam.Name = "rtt"
	cam.RenderTarget = FrameBufferObject
	cam.Viewport = Viewport{Width: 100, Height: 50}
	color := NewTexture2D(100, 50)
	color.SetTextureObject(1, 42)
	cam.Attach(ColorBuffer, color)
	depth := NewTexture2D(100, 50)
	depth.InternalFormat = glext.DEPTH_COMPONENT24
	cam.Attach(DepthBuffer, depth)
	cam.SetGraphicsContext(gc)
	eye := &recEye{gl: rec}
	cam.SetEyeRenderer(eye)

	require.True(t, cam.RequiresSetUp())
	v := NewView()
	v.AddSlave(cam, linear.M4{}, linear.M4{}, true)
	v.Slave(0).Camera.ReferenceFrame = AbsoluteRF
	v.Frame()

	fbo, ok := cam.FrameBufferObject()
	require.True(t, ok)
	assert.False(t, cam.RequiresSetUp())
	a, ok := rec.Attachment(fbo, glext.COLOR_ATTACHMENT0)
	require.True(t, ok)
	assert.Equal(t, uint32(42), a.Tex)
	_, ok = rec.Attachment(fbo, glext.DEPTH_ATTACHMENT)
	assert.True(t, ok)
	assert.Equal(t, []string{"before:rtt", "after:rtt"}, eye.calls)
	assert.Equal(t, []uint32{fbo, 0}, eye.fbo)
	require.Len(t, rec.Clears(), 1)
	assert.Equal(t, fbo, rec.Clears()[0].Draw)

	v.Frame()
	assert.Equal(t, 1, rec.Calls("GenFramebuffer"))
	cam.Release(gc.State())
	_, ok = cam.FrameBufferObject()
	assert.False(t, ok)
}

func TestCameraNoSetUp(t *testing.T) {
	rec := gltrace.New(0)
	gc := NewHeadless(1, rec)
	cam := NewCamera()
	cam.RenderTarget = FrameBufferObject
	cam.Attach(ColorBuffer, NewTexture2D(8, 8))
	cam.SetGraphicsContext(gc)
	initial := 0
	cam.SetInitialDraw(func(ri *RenderInfo) {
		initial++
		ri.Camera.SetRequiresSetUp(false)
	})
	v := NewView()
	v.AddSlave(cam, linear.M4{}, linear.M4{}, true)
	v.Frame()
	assert.Equal(t, 1, initial)
	assert.Zero(t, rec.Calls("GenFramebuffer"))
	_, ok := cam.FrameBufferObject()
	assert.False(t, ok)
}

func TestViewFrame(t *testing.T) {
	rec := gltrace.New(0)
	gc := NewHeadless(1, rec)
	eye := &recEye{gl: rec}
	mk := func(name string, order RenderOrder, num int) *Camera {
		c := NewCamera()
		c.Name = name
		c.Order = order
		c.OrderNum = num
		c.SetGraphicsContext(gc)
		c.SetEyeRenderer(eye)
		return c
	}
	v := NewView()
	v.Camera().View.Translate(0, 0, -5)
	v.Camera().Projection.Perspective(1, 1, 1, 10)

	var off linear.M4
	off.Translate(1, 0, 0)
	var id linear.M4
	id.I()
	v.AddSlave(mk("post", PostRender, 0), id, off, true)
	v.AddSlave(mk("b", PreRender, 1), id, id, true)
	v.AddSlave(mk("a", PreRender, 0), id, id, true)
	abs := mk("abs", NestedRender, 0)
	abs.ReferenceFrame = AbsoluteRF
	v.AddSlave(abs, id, off, true)
	v.AddSlave(NewCamera(), id, id, true)
	require.Equal(t, 5, v.NumSlaves())

	r := new(countRealizer)
	v.SetRealizeOperation(r)
	v.Frame()
	assert.True(t, v.Realized())
	assert.Equal(t, []GraphicsContext{gc}, r.gcs)
	assert.Equal(t, []string{
		"before:a", "after:a",
		"before:b", "after:b",
		"before:abs", "after:abs",
		"before:post", "after:post",
	}, eye.calls)
	assert.Equal(t, 1, gc.Swaps())

	var want linear.M4
	want.Mul(&off, &v.Camera().View)
	assert.Equal(t, want, v.Slave(0).Camera.View)
	assert.Equal(t, v.Camera().Projection, v.Slave(0).Camera.Projection)
	var ident linear.M4
	ident.I()
	assert.Equal(t, ident, abs.View)

	v.Frame()
	assert.Len(t, r.gcs, 1)
	assert.Equal(t, 2, gc.Swaps())
	assert.Equal(t, int64(2), v.FrameNumber())
}

type funcUpdater func(v *View, s *Slave)

func (f funcUpdater) UpdateSlave(v *View, s *Slave) { f(v, s) }

func TestSlaveUpdater(t *testing.T) {
	v := NewView()
	cam := NewCamera()
	var id linear.M4
	id.I()
	i := v.AddSlave(cam, id, id, false)
	var order []int
	v.Slave(i).Updater = funcUpdater(func(v *View, s *Slave) {
		order = append(order, 0)
		s.Camera.View.Translate(0, 1, 0)
	})
	v.AddSlave(NewCamera(), id, id, false)
	v.Slave(1).Updater = funcUpdater(func(*View, *Slave) { order = append(order, 1) })
	v.Frame()
	assert.Equal(t, []int{0, 1}, order)
	assert.Equal(t, float32(1), cam.View[3][1])
	assert.False(t, v.Slave(i).UseMastersScene)
	assert.Empty(t, v.Contexts())
}
