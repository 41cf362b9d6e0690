// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"fmt"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/scene"
)

// TextureBuffer is the render target of one eye.
// It wraps a swap chain whose textures belong to the
// compositor and implements scene.EyeRenderer so that
// the camera rendering the eye binds the current swap
// chain texture before drawing and commits it after.
//
// Without multisampling, the camera's own framebuffer
// object is used, with the current swap chain texture
// as color attachment and a persistent texture as depth
// attachment.
// With multisampling, rendering goes to a private
// multisample framebuffer that is resolved into the
// current swap chain texture before the commit.
type TextureBuffer struct {
	sess    driver.Session
	st      *scene.State
	chain   driver.Swapchain
	texs    []*scene.Texture2D
	color   *scene.Texture2D
	depth   *scene.Texture2D
	width   int
	height  int
	samples int

	// Multisample targets.
	outFBO    uint32
	msaaFBO   uint32
	msaaColor uint32
	msaaDepth uint32
}

var _ scene.EyeRenderer = (*TextureBuffer)(nil)

// NewTextureBuffer creates a new TextureBuffer of the
// given size.
// samples is the MSAA sample count; zero disables
// multisampling.
// The GL calls are issued through st, whose context
// must be current.
func NewTextureBuffer(sess driver.Session, st *scene.State, size driver.Sizei, samples int) (*TextureBuffer, error) {
	desc := driver.SwapchainDesc{
		Format:      driver.RGBA8sRGB,
		Width:       size.W,
		Height:      size.H,
		MipLevels:   1,
		SampleCount: 1,
	}
	chain, err := sess.NewSwapchain(&desc)
	if err != nil {
		return nil, fmt.Errorf("hmd: creating %dx%d swap chain: %w", size.W, size.H, err)
	}
	b := &TextureBuffer{
		sess:    sess,
		st:      st,
		chain:   chain,
		width:   size.W,
		height:  size.H,
		samples: samples,
	}
	b.texs = make([]*scene.Texture2D, chain.Len())
	for i := range b.texs {
		name, err := chain.Texture(i)
		if err != nil {
			chain.Destroy()
			return nil, fmt.Errorf("hmd: querying swap chain texture %d: %w", i, err)
		}
		t := scene.NewTexture2D(size.W, size.H)
		t.InternalFormat = glext.SRGB8_ALPHA8
		t.SetTextureObject(st.ContextID, name)
		b.texs[i] = t
	}
	if samples == 0 {
		b.setUp()
	} else {
		b.setUpMSAA()
	}
	Logger().Debug("swap chain created",
		"width", size.W, "height", size.H,
		"length", chain.Len(), "samples", samples)
	return b, nil
}

func (b *TextureBuffer) setUp() {
	b.color = b.texs[0]
	b.depth = scene.NewTexture2D(b.width, b.height)
	b.depth.InternalFormat = glext.DEPTH_COMPONENT24
	b.depth.SourceFormat = glext.DEPTH_COMPONENT
	b.depth.SourceType = glext.UNSIGNED_INT
}

func (b *TextureBuffer) setUpMSAA() {
	gl := b.st.GL
	for _, t := range b.texs {
		name, _ := t.TextureObject(b.st.ContextID)
		gl.BindTexture(glext.TEXTURE_2D, name)
		gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_MIN_FILTER, glext.LINEAR)
		gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_MAG_FILTER, glext.LINEAR)
		gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_WRAP_S, glext.CLAMP_TO_EDGE)
		gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_WRAP_T, glext.CLAMP_TO_EDGE)
	}
	gl.BindTexture(glext.TEXTURE_2D, 0)

	b.outFBO = gl.GenFramebuffer()
	b.msaaFBO = gl.GenFramebuffer()
	w, h, n := int32(b.width), int32(b.height), int32(b.samples)

	b.msaaColor = gl.GenTexture()
	gl.BindTexture(glext.TEXTURE_2D_MULTISAMPLE, b.msaaColor)
	gl.TexImage2DMultisample(glext.TEXTURE_2D_MULTISAMPLE, n, glext.RGBA8, w, h, false)
	gl.TexParameteri(glext.TEXTURE_2D_MULTISAMPLE, glext.TEXTURE_MAX_LEVEL, 0)

	b.msaaDepth = gl.GenTexture()
	gl.BindTexture(glext.TEXTURE_2D_MULTISAMPLE, b.msaaDepth)
	gl.TexImage2DMultisample(glext.TEXTURE_2D_MULTISAMPLE, n, glext.DEPTH_COMPONENT24, w, h, false)
	gl.TexParameteri(glext.TEXTURE_2D_MULTISAMPLE, glext.TEXTURE_MAX_LEVEL, 0)
	gl.BindTexture(glext.TEXTURE_2D_MULTISAMPLE, 0)
}

// current returns the name of the writable swap chain
// texture.
func (b *TextureBuffer) current() (uint32, bool) {
	i, err := b.chain.CurrentIndex()
	if err == nil {
		var name uint32
		if name, err = b.chain.Texture(i); err == nil {
			return name, true
		}
	}
	Logger().Warn("querying current swap chain texture", "err", err)
	return 0, false
}

// OnBeforeEyeRender binds the render target for the
// current swap chain texture.
// Without multisampling it does nothing until the
// camera has a framebuffer object.
func (b *TextureBuffer) OnBeforeEyeRender(ri *scene.RenderInfo) {
	if b.chain == nil {
		return
	}
	gl := ri.State.GL
	if b.samples == 0 {
		fbo, ok := ri.FrameBufferObject()
		if !ok {
			return
		}
		tex, ok := b.current()
		if !ok {
			return
		}
		gl.BindFramebuffer(glext.FRAMEBUFFER, fbo)
		gl.FramebufferTexture2D(glext.FRAMEBUFFER, glext.COLOR_ATTACHMENT0, glext.TEXTURE_2D, tex, 0)
		gl.FramebufferTexture2D(glext.FRAMEBUFFER, glext.DEPTH_ATTACHMENT, glext.TEXTURE_2D, b.depth.Apply(ri.State), 0)
		return
	}
	gl.BindFramebuffer(glext.FRAMEBUFFER, b.msaaFBO)
	gl.FramebufferTexture2D(glext.FRAMEBUFFER, glext.COLOR_ATTACHMENT0, glext.TEXTURE_2D_MULTISAMPLE, b.msaaColor, 0)
	gl.FramebufferTexture2D(glext.FRAMEBUFFER, glext.DEPTH_ATTACHMENT, glext.TEXTURE_2D_MULTISAMPLE, b.msaaDepth, 0)
}

// OnAfterEyeRender commits the current swap chain
// texture, resolving the multisample target into it
// first when multisampling is enabled.
func (b *TextureBuffer) OnAfterEyeRender(ri *scene.RenderInfo) {
	if b.chain == nil {
		return
	}
	if b.samples != 0 {
		b.resolve(ri.State.GL)
	}
	if err := b.chain.Commit(); err != nil {
		Logger().Warn("committing swap chain", "err", err)
	}
}

func (b *TextureBuffer) resolve(gl glext.Funcs) {
	tex, ok := b.current()
	if !ok {
		return
	}
	gl.BindFramebuffer(glext.READ_FRAMEBUFFER, b.msaaFBO)
	gl.FramebufferTexture2D(glext.READ_FRAMEBUFFER, glext.COLOR_ATTACHMENT0, glext.TEXTURE_2D_MULTISAMPLE, b.msaaColor, 0)
	gl.FramebufferRenderbuffer(glext.READ_FRAMEBUFFER, glext.DEPTH_ATTACHMENT, glext.RENDERBUFFER, 0)

	gl.BindFramebuffer(glext.DRAW_FRAMEBUFFER, b.outFBO)
	gl.FramebufferTexture2D(glext.DRAW_FRAMEBUFFER, glext.COLOR_ATTACHMENT0, glext.TEXTURE_2D, tex, 0)
	gl.FramebufferRenderbuffer(glext.DRAW_FRAMEBUFFER, glext.DEPTH_ATTACHMENT, glext.RENDERBUFFER, 0)

	w, h := int32(b.width), int32(b.height)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, glext.COLOR_BUFFER_BIT, glext.NEAREST)
	gl.BindFramebuffer(glext.FRAMEBUFFER, 0)
}

// ColorBuffer returns the texture to attach as color
// buffer of the eye's camera.
// It is nil when multisampling is enabled.
func (b *TextureBuffer) ColorBuffer() *scene.Texture2D { return b.color }

// DepthBuffer returns the texture to attach as depth
// buffer of the eye's camera.
// It is nil when multisampling is enabled.
func (b *TextureBuffer) DepthBuffer() *scene.Texture2D { return b.depth }

// Textures returns the wrappers of the swap chain
// textures, in chain order.
func (b *TextureBuffer) Textures() []*scene.Texture2D { return b.texs }

// Swapchain returns the underlying swap chain.
func (b *TextureBuffer) Swapchain() driver.Swapchain { return b.chain }

func (b *TextureBuffer) Width() int   { return b.width }
func (b *TextureBuffer) Height() int  { return b.height }
func (b *TextureBuffer) Samples() int { return b.samples }

// Destroy destroys the swap chain and every GL object
// created by b.
// It must be called before the session is destroyed.
func (b *TextureBuffer) Destroy() {
	if b.chain == nil {
		return
	}
	for _, t := range b.texs {
		t.Release(b.st)
	}
	if b.depth != nil {
		b.depth.Release(b.st)
	}
	gl := b.st.GL
	if b.samples != 0 {
		gl.DeleteFramebuffer(b.outFBO)
		gl.DeleteFramebuffer(b.msaaFBO)
		gl.DeleteTexture(b.msaaColor)
		gl.DeleteTexture(b.msaaDepth)
	}
	b.chain.Destroy()
	b.chain = nil
}
