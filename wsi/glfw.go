// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/hmd/glext/glcore"
	"github.com/gviegas/hmd/scene"
)

// glfwWindow implements Window.
type glfwWindow struct {
	win    *glfw.Window
	state  scene.State
	hook   scene.SwapHook
	width  int
	height int
	title  string
}

func newGLFWWindow(id scene.ContextID, t scene.Traits) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfwBool(t.WindowDecoration))
	glfw.WindowHint(glfw.DoubleBuffer, glfwBool(t.DoubleBuffer))
	win, err := glfw.CreateWindow(t.Width, t.Height, t.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("wsi: %w", err)
	}
	win.SetPos(t.X, t.Y)
	win.MakeContextCurrent()
	gl, err := glcore.Init()
	if err != nil {
		win.Destroy()
		return nil, err
	}
	w := &glfwWindow{
		win:    win,
		state:  scene.State{ContextID: id, GL: gl},
		width:  t.Width,
		height: t.Height,
		title:  t.Title,
	}
	w.SetSyncToVBlank(t.VSync)
	win.SetCloseCallback(w.closeEvent)
	win.SetSizeCallback(w.sizeEvent)
	win.SetFocusCallback(w.focusEvent)
	win.SetKeyCallback(w.keyEvent)
	return w, nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *glfwWindow) MakeCurrent() bool {
	if w.win == nil {
		return false
	}
	w.win.MakeContextCurrent()
	return true
}

func (w *glfwWindow) State() *scene.State { return &w.state }

func (w *glfwWindow) SwapBuffersImplementation() {
	if w.win != nil {
		w.win.SwapBuffers()
	}
}

func (w *glfwWindow) SetSwapHook(h scene.SwapHook) { w.hook = h }

func (w *glfwWindow) SwapHook() scene.SwapHook { return w.hook }

// SetSyncToVBlank sets the swap interval of w's context.
// It leaves w's context current.
func (w *glfwWindow) SetSyncToVBlank(on bool) {
	if !w.MakeCurrent() {
		return
	}
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (w *glfwWindow) ShouldClose() bool { return w.win == nil || w.win.ShouldClose() }

func (w *glfwWindow) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	closeWindow(w)
}

func (w *glfwWindow) Width() int { return w.width }

func (w *glfwWindow) Height() int { return w.height }

func (w *glfwWindow) Title() string { return w.title }

func (w *glfwWindow) closeEvent(*glfw.Window) {
	if windowHandler != nil {
		windowHandler.WindowClose(w)
	}
}

func (w *glfwWindow) sizeEvent(_ *glfw.Window, width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	if windowHandler != nil {
		windowHandler.WindowResize(w, width, height)
	}
}

func (w *glfwWindow) focusEvent(_ *glfw.Window, focused bool) {
	if keyboardHandler == nil {
		return
	}
	if focused {
		keyboardHandler.KeyboardIn(w)
	} else {
		keyboardHandler.KeyboardOut(w)
	}
}

func (w *glfwWindow) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if keyboardHandler == nil || action == glfw.Repeat {
		return
	}
	keyboardHandler.KeyboardKey(keyFrom(key), action == glfw.Press, modFrom(mods))
}
