// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/hmd/glext"
)

// HeadlessContext is a GraphicsContext with no window.
type HeadlessContext struct {
	state   State
	hook    SwapHook
	vsync   bool
	current bool
	swaps   int
}

var (
	_ GraphicsContext = (*HeadlessContext)(nil)
	_ VSyncer         = (*HeadlessContext)(nil)
)

// NewHeadless creates a new HeadlessContext that issues
// GL calls through gl.
func NewHeadless(id ContextID, gl glext.Funcs) *HeadlessContext {
	return &HeadlessContext{
		state: State{ContextID: id, GL: gl},
		vsync: true,
	}
}

func (c *HeadlessContext) MakeCurrent() bool {
	c.current = true
	return true
}

func (c *HeadlessContext) State() *State { return &c.state }

func (c *HeadlessContext) SwapBuffersImplementation() { c.swaps++ }

func (c *HeadlessContext) SetSwapHook(h SwapHook) { c.hook = h }

func (c *HeadlessContext) SwapHook() SwapHook { return c.hook }

func (c *HeadlessContext) SetSyncToVBlank(on bool) { c.vsync = on }

// SyncToVBlank returns whether vertical sync is enabled.
func (c *HeadlessContext) SyncToVBlank() bool { return c.vsync }

// Current returns whether MakeCurrent was called.
func (c *HeadlessContext) Current() bool { return c.current }

// Swaps returns how many times the context presented.
func (c *HeadlessContext) Swaps() int { return c.swaps }
