// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides the scene-graph primitives onto
// which stereo rendering is attached: graphics contexts,
// textures, cameras and views with slave cameras.
// Everything in this package runs on the thread that owns
// the graphics context being drawn.
package scene

import (
	"github.com/gviegas/hmd/glext"
)

// ContextID identifies a graphics context.
type ContextID int

// State is the per-context rendering state.
type State struct {
	ContextID ContextID
	GL        glext.Funcs
}

// GraphicsContext is the interface that defines a GL
// context along with the surface it presents to.
type GraphicsContext interface {
	// MakeCurrent makes the context current on the
	// calling thread.
	MakeCurrent() bool

	// State returns the context's rendering state.
	// It must not return nil.
	State() *State

	// SwapBuffersImplementation presents the back
	// buffer. It ignores any SwapHook.
	SwapBuffersImplementation()

	// SetSwapHook replaces the context's SwapHook.
	// A nil hook restores the default behavior.
	SetSwapHook(h SwapHook)

	// SwapHook returns the context's SwapHook.
	SwapHook() SwapHook
}

// VSyncer is the interface that a GraphicsContext may
// implement to allow vertical sync to be toggled.
type VSyncer interface {
	SetSyncToVBlank(on bool)
}

// SwapHook is the interface that wraps the SwapBuffers
// method.
// When a context has a SwapHook, SwapBuffers is called
// in place of the context's own presentation, which
// becomes the hook's responsibility.
type SwapHook interface {
	SwapBuffers(gc GraphicsContext)
}

// Realizer is the interface that wraps the Realize
// method.
// Realize is called when a context first becomes ready
// for rendering. It may be called for more than one
// context, possibly in parallel.
type Realizer interface {
	Realize(gc GraphicsContext)
}

// SwapBuffers presents gc, deferring to its SwapHook
// if one is set.
func SwapBuffers(gc GraphicsContext) {
	if h := gc.SwapHook(); h != nil {
		h.SwapBuffers(gc)
		return
	}
	gc.SwapBuffersImplementation()
}

// Traits describes the window of a graphics context.
type Traits struct {
	Title            string
	X, Y             int
	Width, Height    int
	WindowDecoration bool
	DoubleBuffer     bool
	VSync            bool
}
