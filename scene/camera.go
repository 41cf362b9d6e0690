// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/linear"
)

// RenderTarget is the type of a camera's render target.
type RenderTarget int

// Render targets.
const (
	// Render into the context's window.
	FrameBuffer RenderTarget = iota
	// Render into a framebuffer object built from the
	// camera's attachments.
	FrameBufferObject
)

// RenderOrder is the type of a camera's render order.
type RenderOrder int

// Render orders.
const (
	PreRender RenderOrder = iota
	NestedRender
	PostRender
)

// ReferenceFrame is the type of a camera's reference
// frame.
type ReferenceFrame int

// Reference frames.
const (
	// View and projection derive from the master
	// camera's.
	RelativeRF ReferenceFrame = iota
	// View and projection are set explicitly.
	AbsoluteRF
)

// BufferComponent identifies a camera attachment point.
type BufferComponent int

// Buffer components.
const (
	ColorBuffer BufferComponent = iota
	DepthBuffer
)

func (c BufferComponent) glAttachment() uint32 {
	if c == DepthBuffer {
		return glext.DEPTH_ATTACHMENT
	}
	return glext.COLOR_ATTACHMENT0
}

// Viewport is a rectangle in window coordinates.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// EyeRenderer is the interface that a camera's render
// target manager implements.
// OnBeforeEyeRender is called immediately before the
// camera's draw commands and OnAfterEyeRender right
// after them, on the same thread and context.
type EyeRenderer interface {
	OnBeforeEyeRender(ri *RenderInfo)
	OnAfterEyeRender(ri *RenderInfo)
}

// RenderInfo is passed to per-camera draw hooks.
type RenderInfo struct {
	State  *State
	Camera *Camera
}

// FrameBufferObject returns the framebuffer object that
// the current camera renders into, if one was set up.
func (ri *RenderInfo) FrameBufferObject() (uint32, bool) {
	if ri.Camera == nil {
		return 0, false
	}
	return ri.Camera.FrameBufferObject()
}

// Camera defines a view into the scene and the target
// it renders to.
type Camera struct {
	Name            string
	ClearColor      linear.V4
	ClearMask       uint32
	RenderTarget    RenderTarget
	Order           RenderOrder
	OrderNum        int
	ComputeNearFar  bool
	AllowEventFocus bool
	ReferenceFrame  ReferenceFrame
	Viewport        Viewport
	View            linear.M4
	Projection      linear.M4

	gc          GraphicsContext
	attach      map[BufferComponent]*Texture2D
	eye         EyeRenderer
	initialDraw func(*RenderInfo)
	noSetUp     bool
	fbo         uint32
}

// NewCamera creates a new camera with identity view and
// projection matrices.
func NewCamera() *Camera {
	c := &Camera{
		ClearMask:       glext.COLOR_BUFFER_BIT | glext.DEPTH_BUFFER_BIT,
		ComputeNearFar:  true,
		AllowEventFocus: true,
		attach:          make(map[BufferComponent]*Texture2D),
	}
	c.View.I()
	c.Projection.I()
	return c
}

// SetGraphicsContext sets the graphics context the
// camera draws with. A nil context disables drawing.
func (c *Camera) SetGraphicsContext(gc GraphicsContext) { c.gc = gc }

// GraphicsContext returns the camera's graphics context.
func (c *Camera) GraphicsContext() GraphicsContext { return c.gc }

// Attach attaches t to the given buffer component.
func (c *Camera) Attach(comp BufferComponent, t *Texture2D) { c.attach[comp] = t }

// Attachment returns the texture attached to comp.
func (c *Camera) Attachment(comp BufferComponent) *Texture2D { return c.attach[comp] }

// SetEyeRenderer sets the camera's EyeRenderer.
func (c *Camera) SetEyeRenderer(r EyeRenderer) { c.eye = r }

// EyeRenderer returns the camera's EyeRenderer.
func (c *Camera) EyeRenderer() EyeRenderer { return c.eye }

// SetInitialDraw sets a function to be called before
// anything else when the camera is drawn.
func (c *Camera) SetInitialDraw(f func(*RenderInfo)) { c.initialDraw = f }

// SetRequiresSetUp enables or disables the automatic
// framebuffer object setup of the camera.
func (c *Camera) SetRequiresSetUp(on bool) { c.noSetUp = !on }

// RequiresSetUp returns whether the camera's framebuffer
// object will be set up on the next draw.
func (c *Camera) RequiresSetUp() bool {
	return !c.noSetUp && c.RenderTarget == FrameBufferObject && c.fbo == 0
}

// FrameBufferObject returns the framebuffer object built
// from the camera's attachments, if there is one.
func (c *Camera) FrameBufferObject() (uint32, bool) { return c.fbo, c.fbo != 0 }

// setUp creates the camera's framebuffer object.
// Cameras with no attachments get none.
func (c *Camera) setUp(st *State) {
	if len(c.attach) == 0 {
		return
	}
	gl := st.GL
	c.fbo = gl.GenFramebuffer()
	gl.BindFramebuffer(glext.FRAMEBUFFER, c.fbo)
	for _, comp := range [...]BufferComponent{ColorBuffer, DepthBuffer} {
		if t := c.attach[comp]; t != nil {
			gl.FramebufferTexture2D(glext.FRAMEBUFFER, comp.glAttachment(), glext.TEXTURE_2D, t.Apply(st), 0)
		}
	}
	gl.BindFramebuffer(glext.FRAMEBUFFER, 0)
}

// draw draws the camera. content may be nil.
func (c *Camera) draw(content func(*RenderInfo)) {
	st := c.gc.State()
	gl := st.GL
	ri := &RenderInfo{State: st, Camera: c}
	if c.initialDraw != nil {
		c.initialDraw(ri)
	}
	if c.RequiresSetUp() {
		c.setUp(st)
	}
	fbo, hasFBO := c.FrameBufferObject()
	if hasFBO {
		gl.BindFramebuffer(glext.FRAMEBUFFER, fbo)
	}
	if c.eye != nil {
		c.eye.OnBeforeEyeRender(ri)
	}
	vp := c.Viewport
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	if c.ClearMask != 0 {
		gl.ClearColor(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3])
		gl.Clear(c.ClearMask)
	}
	if content != nil {
		content(ri)
	}
	if hasFBO {
		gl.BindFramebuffer(glext.FRAMEBUFFER, 0)
	}
	if c.eye != nil {
		c.eye.OnAfterEyeRender(ri)
	}
}

// Release deletes the camera's framebuffer object.
func (c *Camera) Release(st *State) {
	if c.fbo != 0 {
		st.GL.DeleteFramebuffer(c.fbo)
		c.fbo = 0
	}
}
