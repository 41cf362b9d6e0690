// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"fmt"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/scene"
)

// MirrorTexture copies the compositor's output into
// a window.
type MirrorTexture struct {
	mirror driver.Mirror
	st     *scene.State
	fbo    uint32
	width  int
	height int
}

// NewMirrorTexture creates a new MirrorTexture.
func NewMirrorTexture(sess driver.Session, st *scene.State, width, height int) (*MirrorTexture, error) {
	desc := driver.MirrorDesc{Format: driver.RGBA8sRGB, Width: width, Height: height}
	m, err := sess.NewMirror(&desc)
	if err != nil {
		return nil, fmt.Errorf("hmd: creating %dx%d mirror texture: %w", width, height, err)
	}
	tex, err := m.Texture()
	if err != nil {
		m.Destroy()
		return nil, fmt.Errorf("hmd: querying mirror texture: %w", err)
	}
	gl := st.GL
	fbo := gl.GenFramebuffer()
	gl.BindFramebuffer(glext.READ_FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(glext.READ_FRAMEBUFFER, glext.COLOR_ATTACHMENT0, glext.TEXTURE_2D, tex, 0)
	gl.FramebufferRenderbuffer(glext.READ_FRAMEBUFFER, glext.DEPTH_ATTACHMENT, glext.RENDERBUFFER, 0)
	gl.BindFramebuffer(glext.READ_FRAMEBUFFER, 0)
	return &MirrorTexture{mirror: m, st: st, fbo: fbo, width: width, height: height}, nil
}

// Blit copies the mirror texture into the default
// framebuffer of gc.
// The copy is flipped vertically, since the mirror
// texture has its origin at the top-left corner.
func (m *MirrorTexture) Blit(gc scene.GraphicsContext) {
	if m.mirror == nil {
		return
	}
	gl := gc.State().GL
	w, h := int32(m.width), int32(m.height)
	gl.BindFramebuffer(glext.READ_FRAMEBUFFER, m.fbo)
	gl.BindFramebuffer(glext.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, h, w, 0, 0, 0, w, h, glext.COLOR_BUFFER_BIT, glext.NEAREST)
	gl.BindFramebuffer(glext.READ_FRAMEBUFFER, 0)
}

func (m *MirrorTexture) Width() int  { return m.width }
func (m *MirrorTexture) Height() int { return m.height }

// Framebuffer returns the framebuffer object that
// reads from the mirror texture.
func (m *MirrorTexture) Framebuffer() uint32 { return m.fbo }

// Destroy releases the mirror texture.
func (m *MirrorTexture) Destroy() {
	if m.mirror == nil {
		return
	}
	m.st.GL.DeleteFramebuffer(m.fbo)
	m.mirror.Destroy()
	m.mirror = nil
}
