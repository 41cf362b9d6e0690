// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package glcore implements glext.Funcs on top of the
// GL 4.1 core profile.
package glcore

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/hmd/glext"
)

// Funcs calls into the GL context that is current on
// the calling thread.
type Funcs struct{}

var _ glext.Funcs = Funcs{}

// Init loads the GL entry points. It must be called once
// a context is current.
func Init() (Funcs, error) {
	if err := gl.Init(); err != nil {
		return Funcs{}, fmt.Errorf("glcore: %w", err)
	}
	return Funcs{}, nil
}

// Version returns the version string of the current
// context.
func Version() string { return gl.GoStr(gl.GetString(gl.VERSION)) }

func (Funcs) GenFramebuffer() (fb uint32) {
	gl.GenFramebuffers(1, &fb)
	return
}

func (Funcs) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }

func (Funcs) BindFramebuffer(target, fb uint32) { gl.BindFramebuffer(target, fb) }

func (Funcs) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, tex, level)
}

func (Funcs) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}

func (Funcs) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (Funcs) GenTexture() (tex uint32) {
	gl.GenTextures(1, &tex)
	return
}

func (Funcs) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }

func (Funcs) BindTexture(target, tex uint32) { gl.BindTexture(target, tex) }

func (Funcs) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (Funcs) TexImage2D(target uint32, level, internalFmt, width, height int32, format, typ uint32) {
	gl.TexImage2D(target, level, internalFmt, width, height, 0, format, typ, nil)
}

func (Funcs) TexImage2DMultisample(target uint32, samples int32, internalFmt uint32, width, height int32, fixedLocations bool) {
	gl.TexImage2DMultisample(target, samples, internalFmt, width, height, fixedLocations)
}

func (Funcs) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Funcs) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Funcs) Clear(mask uint32) { gl.Clear(mask) }
