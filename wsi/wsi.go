// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package wsi provides window system integration (WSI)
// for graphics contexts.
// Windows are created through GLFW, and each one owns
// a GL 4.1 core context that is usable as a
// scene.GraphicsContext.
package wsi

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/hmd/scene"
)

// Window is the interface that defines a drawable window.
// The purpose of a window is to provide a surface into
// which a graphics context presents.
type Window interface {
	scene.GraphicsContext
	scene.VSyncer

	// ShouldClose reports whether the user asked for
	// the window to close.
	ShouldClose() bool

	// Close closes the window.
	Close()

	// Width returns the window's width.
	Width() int

	// Height returns the window's height.
	Height() int

	// Title returns the window's title.
	Title() string
}

var errTooMany = errors.New("wsi: too many windows")

// NewWindow creates a new window as described by t.
// Init must have been called.
func NewWindow(t scene.Traits) (Window, error) {
	if windowCount >= MaxWindows {
		return nil, errTooMany
	}
	var slot int
	for slot = range createdWindows {
		if createdWindows[slot] == nil {
			break
		}
	}
	win, err := newWindow(scene.ContextID(slot), t)
	if err != nil {
		return nil, err
	}
	createdWindows[slot] = win
	windowCount++
	return win, nil
}

var newWindow = newGLFWWindow

// The maximum number of windows that can exist at any
// given time.
const MaxWindows = 16

// Windows returns all created windows.
// The returned value becomes out of date after calls to
// NewWindow and Window.Close.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	windowCount    int
	createdWindows [MaxWindows]Window
)

// Key identifies a keyboard key.
// Letters, digits and function keys are contiguous, so
// that Key0+n is the digit n and KeyF1+n-1 is Fn.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	KeyEsc
	KeyReturn
	KeySpace
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifier is the type of modifier flags.
type Modifier int

// Modifier flags.
const (
	ModCapsLock Modifier = 1 << iota
	ModShift
	ModCtrl
	ModAlt
)

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowClose is called when a window is closed.
	WindowClose(win Window)

	// WindowResize is called when a window is resized.
	WindowResize(win Window, newWidth, newHeight int)
}

// SetWindowHandler sets the global WindowHandler.
func SetWindowHandler(wh WindowHandler) {
	windowHandler = wh
}

var windowHandler WindowHandler

// KeyboardHandler is the interface that defines the methods
// for handling keyboard events.
type KeyboardHandler interface {
	// KeyboardIn is called when focus is gained.
	KeyboardIn(win Window)

	// KeyboardOut is called when focus is lost.
	KeyboardOut(win Window)

	// KeyboardKey is called when a key is pressed/released.
	KeyboardKey(key Key, pressed bool, modMask Modifier)
}

// SetKeyboardHandler sets the global KeyboardHandler.
func SetKeyboardHandler(kh KeyboardHandler) {
	keyboardHandler = kh
}

var keyboardHandler KeyboardHandler

// Init initializes the window system.
// It must be called from the main thread.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("wsi: %w", err)
	}
	return nil
}

// Terminate closes every open window and releases the
// window system.
func Terminate() {
	for _, w := range Windows() {
		w.Close()
	}
	glfw.Terminate()
}

// Dispatch dispatches queued events.
func Dispatch() {
	glfw.PollEvents()
}
