// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"errors"
	"sync"

	"github.com/gviegas/hmd/scene"
)

// RealizeOp initializes a Device when a graphics context
// is first realized.
// It implements scene.Realizer.
type RealizeOp struct {
	dev      *Device
	mu       sync.Mutex
	realized bool
}

// NewRealizeOp creates a new RealizeOp.
func NewRealizeOp(d *Device) *RealizeOp { return &RealizeOp{dev: d} }

// Realize disables vertical sync on gc and creates the
// device's render buffers in it.
// Only the first call has any effect. It is safe for
// concurrent use.
func (r *RealizeOp) Realize(gc scene.GraphicsContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.realized {
		return
	}
	r.realized = true
	if !gc.MakeCurrent() {
		Logger().Warn("graphics context could not be made current")
	}
	if vs, ok := gc.(scene.VSyncer); ok {
		vs.SetSyncToVBlank(false)
	}
	if !r.dev.Enabled() {
		return
	}
	if err := r.dev.CreateRenderBuffers(gc.State()); err != nil {
		Logger().Warn("render buffers incomplete", "err", err)
	}
	if err := r.dev.Init(); err != nil {
		Logger().Warn("initializing device", "err", err)
	}
}

// Realized returns whether Realize was called.
func (r *RealizeOp) Realized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.realized
}

// SwapHook submits a frame to the compositor and blits
// the mirror texture on every buffer swap.
// It implements scene.SwapHook.
type SwapHook struct {
	dev       *Device
	frame     int64
	submitted int64
}

// NewSwapHook creates a new SwapHook.
func NewSwapHook(d *Device) *SwapHook { return &SwapHook{dev: d} }

// SwapBuffers submits the current frame, blits the mirror
// texture and then presents gc.
func (h *SwapHook) SwapBuffers(gc scene.GraphicsContext) {
	switch err := h.dev.SubmitFrame(h.frame); {
	case err == nil:
		h.submitted++
	case !errors.Is(err, ErrDisabled):
		Logger().Warn("frame not submitted", "frame", h.frame, "err", err)
	}
	h.frame++
	h.dev.BlitMirrorTexture(gc)
	gc.SwapBuffersImplementation()
}

// FrameIndex returns the index of the frame that the
// next swap will submit.
func (h *SwapHook) FrameIndex() int64 { return h.frame }

// Submitted returns how many frames the compositor accepted.
func (h *SwapHook) Submitted() int64 { return h.submitted }
