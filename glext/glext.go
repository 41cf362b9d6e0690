// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package glext defines the GL entry points needed to
// manage framebuffer objects and multisample textures.
// Implementations are bound to a single GL context and
// must only be called from the thread on which that
// context is current.
package glext

// Funcs is the GL function table of a context.
type Funcs interface {
	// GenFramebuffer creates a framebuffer object name.
	GenFramebuffer() uint32

	// DeleteFramebuffer deletes a framebuffer object.
	DeleteFramebuffer(fb uint32)

	// BindFramebuffer binds fb to target.
	// Binding zero selects the default framebuffer.
	BindFramebuffer(target, fb uint32)

	// FramebufferTexture2D attaches a texture image to
	// the framebuffer bound to target.
	FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32)

	// FramebufferRenderbuffer attaches a renderbuffer to
	// the framebuffer bound to target.
	// rb zero detaches whatever is attached.
	FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32)

	// BlitFramebuffer copies a block of pixels from the
	// read framebuffer to the draw framebuffer.
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	// GenTexture creates a texture name.
	GenTexture() uint32

	// DeleteTexture deletes a texture.
	DeleteTexture(tex uint32)

	// BindTexture binds tex to target.
	BindTexture(target, tex uint32)

	// TexParameteri sets a texture parameter.
	TexParameteri(target, pname uint32, param int32)

	// TexImage2D allocates uninitialized storage for
	// level of the texture bound to target.
	TexImage2D(target uint32, level, internalFmt, width, height int32, format, typ uint32)

	// TexImage2DMultisample allocates storage for the
	// multisample texture bound to target.
	TexImage2DMultisample(target uint32, samples int32, internalFmt uint32, width, height int32, fixedLocations bool)

	// Viewport sets the viewport.
	Viewport(x, y, width, height int32)

	// ClearColor sets the clear color.
	ClearColor(r, g, b, a float32)

	// Clear clears the buffers selected by mask.
	Clear(mask uint32)
}

// GL enums.
const (
	DEPTH_BUFFER_BIT = 0x00000100
	COLOR_BUFFER_BIT = 0x00004000

	TEXTURE_2D             = 0x0DE1
	TEXTURE_2D_MULTISAMPLE = 0x9100

	UNSIGNED_BYTE = 0x1401
	UNSIGNED_INT  = 0x1405

	DEPTH_COMPONENT   = 0x1902
	RGBA              = 0x1908
	RGBA8             = 0x8058
	DEPTH_COMPONENT24 = 0x81A6
	SRGB8_ALPHA8      = 0x8C43

	NEAREST              = 0x2600
	LINEAR               = 0x2601
	LINEAR_MIPMAP_LINEAR = 0x2703
	TEXTURE_MAG_FILTER   = 0x2800
	TEXTURE_MIN_FILTER   = 0x2801
	TEXTURE_WRAP_S       = 0x2802
	TEXTURE_WRAP_T       = 0x2803
	REPEAT               = 0x2901
	CLAMP_TO_BORDER      = 0x812D
	CLAMP_TO_EDGE        = 0x812F
	TEXTURE_MAX_LEVEL    = 0x813D

	READ_FRAMEBUFFER  = 0x8CA8
	DRAW_FRAMEBUFFER  = 0x8CA9
	COLOR_ATTACHMENT0 = 0x8CE0
	DEPTH_ATTACHMENT  = 0x8D00
	FRAMEBUFFER       = 0x8D40
	RENDERBUFFER      = 0x8D41
)
