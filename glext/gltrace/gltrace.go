// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package gltrace implements glext.Funcs without a GPU.
// It keeps track of object names, bindings, attachments
// and blits so that GL usage can be inspected.
package gltrace

import (
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/internal/namepool"
)

// Attachment is an image attached to a framebuffer.
type Attachment struct {
	TexTarget uint32
	Tex       uint32
	// Set when a renderbuffer (possibly zero) was
	// attached instead of a texture.
	Renderbuffer bool
}

// Texture is the state of a texture object.
type Texture struct {
	Target      uint32
	Width       int32
	Height      int32
	Samples     int32
	InternalFmt uint32
	Params      map[uint32]int32
}

// Blit records a call to BlitFramebuffer.
type Blit struct {
	Read, Draw uint32
	// Color attachment of Read at the time of the blit.
	ReadColor Attachment
	// Color attachment of Draw at the time of the blit.
	// It is the zero value when Draw is zero.
	DrawColor Attachment
	Src       [4]int32
	Dst       [4]int32
	Mask      uint32
	Filter    uint32
}

// Clear records a call to Clear.
type Clear struct {
	Draw uint32
	Mask uint32
}

// Recorder is a glext.Funcs that records GL usage.
// It is not safe for concurrent use.
type Recorder struct {
	fbNames  *namepool.Pool
	texNames *namepool.Pool
	fbs      map[uint32]map[uint32]Attachment
	texs     map[uint32]*Texture
	bound    map[uint32]uint32
	texBind  map[uint32]uint32
	blits    []Blit
	clears   []Clear
	calls    map[string]int
}

var _ glext.Funcs = (*Recorder)(nil)

// New creates a new Recorder.
// Texture names start at texBase+1, which allows
// different recorders to hand out disjoint names.
// Deleted names are reused, as GL does.
func New(texBase uint32) *Recorder {
	return &Recorder{
		fbNames:  namepool.New(0),
		texNames: namepool.New(texBase),
		fbs:      make(map[uint32]map[uint32]Attachment),
		texs:     make(map[uint32]*Texture),
		bound:    make(map[uint32]uint32),
		texBind:  make(map[uint32]uint32),
		calls:    make(map[string]int),
	}
}

func (r *Recorder) GenFramebuffer() uint32 {
	r.calls["GenFramebuffer"]++
	fb := r.fbNames.Gen()
	r.fbs[fb] = make(map[uint32]Attachment)
	return fb
}

func (r *Recorder) DeleteFramebuffer(fb uint32) {
	r.calls["DeleteFramebuffer"]++
	if !r.fbNames.Delete(fb) {
		return
	}
	delete(r.fbs, fb)
	for t, b := range r.bound {
		if b == fb {
			r.bound[t] = 0
		}
	}
}

func (r *Recorder) BindFramebuffer(target, fb uint32) {
	r.calls["BindFramebuffer"]++
	if target == glext.FRAMEBUFFER {
		r.bound[glext.READ_FRAMEBUFFER] = fb
		r.bound[glext.DRAW_FRAMEBUFFER] = fb
	} else {
		r.bound[target] = fb
	}
}

// target resolves FRAMEBUFFER to its draw binding.
func (r *Recorder) target(target uint32) uint32 {
	if target == glext.FRAMEBUFFER {
		return r.bound[glext.DRAW_FRAMEBUFFER]
	}
	return r.bound[target]
}

func (r *Recorder) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	r.calls["FramebufferTexture2D"]++
	if atts, ok := r.fbs[r.target(target)]; ok {
		atts[attachment] = Attachment{TexTarget: texTarget, Tex: tex}
	}
}

func (r *Recorder) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	r.calls["FramebufferRenderbuffer"]++
	if atts, ok := r.fbs[r.target(target)]; ok {
		atts[attachment] = Attachment{TexTarget: rbTarget, Tex: rb, Renderbuffer: true}
	}
}

func (r *Recorder) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	r.calls["BlitFramebuffer"]++
	read := r.bound[glext.READ_FRAMEBUFFER]
	draw := r.bound[glext.DRAW_FRAMEBUFFER]
	b := Blit{
		Read:   read,
		Draw:   draw,
		Src:    [4]int32{srcX0, srcY0, srcX1, srcY1},
		Dst:    [4]int32{dstX0, dstY0, dstX1, dstY1},
		Mask:   mask,
		Filter: filter,
	}
	b.ReadColor = r.fbs[read][glext.COLOR_ATTACHMENT0]
	if draw != 0 {
		b.DrawColor = r.fbs[draw][glext.COLOR_ATTACHMENT0]
	}
	r.blits = append(r.blits, b)
}

func (r *Recorder) GenTexture() uint32 {
	r.calls["GenTexture"]++
	tex := r.texNames.Gen()
	r.texs[tex] = &Texture{Params: make(map[uint32]int32)}
	return tex
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.calls["DeleteTexture"]++
	if r.texNames.Delete(tex) {
		delete(r.texs, tex)
	}
}

func (r *Recorder) BindTexture(target, tex uint32) {
	r.calls["BindTexture"]++
	r.texBind[target] = tex
	if t, ok := r.texs[tex]; ok && t.Target == 0 {
		t.Target = target
	}
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.calls["TexParameteri"]++
	if t, ok := r.texs[r.texBind[target]]; ok {
		t.Params[pname] = param
	}
}

func (r *Recorder) TexImage2D(target uint32, level, internalFmt, width, height int32, format, typ uint32) {
	r.calls["TexImage2D"]++
	if t, ok := r.texs[r.texBind[target]]; ok && level == 0 {
		t.Width, t.Height = width, height
		t.Samples = 1
		t.InternalFmt = uint32(internalFmt)
	}
}

func (r *Recorder) TexImage2DMultisample(target uint32, samples int32, internalFmt uint32, width, height int32, fixedLocations bool) {
	r.calls["TexImage2DMultisample"]++
	if t, ok := r.texs[r.texBind[target]]; ok {
		t.Width, t.Height = width, height
		t.Samples = samples
		t.InternalFmt = internalFmt
	}
}

func (r *Recorder) Viewport(x, y, width, height int32) { r.calls["Viewport"]++ }

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.calls["ClearColor"]++ }

func (r *Recorder) Clear(mask uint32) {
	r.calls["Clear"]++
	r.clears = append(r.clears, Clear{Draw: r.bound[glext.DRAW_FRAMEBUFFER], Mask: mask})
}

// Bound returns the framebuffer bound to target.
// FRAMEBUFFER reports the draw binding.
func (r *Recorder) Bound(target uint32) uint32 { return r.target(target) }

// Attachment returns what is attached to fb at the
// given attachment point.
func (r *Recorder) Attachment(fb, attachment uint32) (Attachment, bool) {
	a, ok := r.fbs[fb][attachment]
	return a, ok
}

// Texture returns the state of a texture object.
func (r *Recorder) Texture(tex uint32) (Texture, bool) {
	t, ok := r.texs[tex]
	if !ok {
		return Texture{}, false
	}
	return *t, true
}

// Framebuffers returns the number of live framebuffer
// objects.
func (r *Recorder) Framebuffers() int { return len(r.fbs) }

// Textures returns the number of live textures.
func (r *Recorder) Textures() int { return len(r.texs) }

// Blits returns the recorded blits.
func (r *Recorder) Blits() []Blit { return r.blits }

// Clears returns the recorded clears.
func (r *Recorder) Clears() []Clear { return r.clears }

// Calls returns how many times the named function
// was called.
func (r *Recorder) Calls(name string) int { return r.calls[name] }
