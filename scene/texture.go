// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/hmd/glext"
)

type texObj struct {
	name  uint32
	owned bool
}

// Texture2D is a 2D texture.
// Its GL texture object is created per context, either
// by Apply or by wrapping a texture that something else
// owns with SetTextureObject.
type Texture2D struct {
	Width          int
	Height         int
	MinFilter      int32
	MagFilter      int32
	WrapS          int32
	WrapT          int32
	InternalFormat int32
	SourceFormat   uint32
	SourceType     uint32

	objs map[ContextID]texObj
}

// NewTexture2D creates a new RGBA texture with linear
// filtering and edge clamping.
func NewTexture2D(width, height int) *Texture2D {
	return &Texture2D{
		Width:          width,
		Height:         height,
		MinFilter:      glext.LINEAR,
		MagFilter:      glext.LINEAR,
		WrapS:          glext.CLAMP_TO_EDGE,
		WrapT:          glext.CLAMP_TO_EDGE,
		InternalFormat: glext.RGBA8,
		SourceFormat:   glext.RGBA,
		SourceType:     glext.UNSIGNED_BYTE,
		objs:           make(map[ContextID]texObj),
	}
}

// SetTextureObject makes t refer to an existing texture
// name in the given context.
// The texture is considered allocated, and Release will
// not delete it.
func (t *Texture2D) SetTextureObject(ctx ContextID, name uint32) {
	t.objs[ctx] = texObj{name: name}
}

// TextureObject returns the texture name of t in the
// given context, if there is one.
func (t *Texture2D) TextureObject(ctx ContextID) (uint32, bool) {
	o, ok := t.objs[ctx]
	return o.name, ok
}

// Owned returns whether t's texture object in the given
// context was created by t itself.
func (t *Texture2D) Owned(ctx ContextID) bool { return t.objs[ctx].owned }

// Apply returns t's texture name in st's context. If
// there is none, it allocates the texture storage first.
func (t *Texture2D) Apply(st *State) uint32 {
	if o, ok := t.objs[st.ContextID]; ok {
		return o.name
	}
	gl := st.GL
	name := gl.GenTexture()
	gl.BindTexture(glext.TEXTURE_2D, name)
	gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_MIN_FILTER, t.MinFilter)
	gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_MAG_FILTER, t.MagFilter)
	gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_WRAP_S, t.WrapS)
	gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_WRAP_T, t.WrapT)
	gl.TexImage2D(glext.TEXTURE_2D, 0, t.InternalFormat, int32(t.Width), int32(t.Height), t.SourceFormat, t.SourceType)
	gl.BindTexture(glext.TEXTURE_2D, 0)
	t.objs[st.ContextID] = texObj{name: name, owned: true}
	return name
}

// Release forgets t's texture object in st's context,
// deleting it only if t owns it.
func (t *Texture2D) Release(st *State) {
	o, ok := t.objs[st.ContextID]
	if !ok {
		return
	}
	if o.owned {
		st.GL.DeleteTexture(o.name)
	}
	delete(t.objs, st.ContextID)
}
