// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keyFrom returns the Key value that represents a
// GLFW key code.
func keyFrom(code glfw.Key) Key {
	switch {
	case code >= glfw.Key0 && code <= glfw.Key9:
		return Key0 + Key(code-glfw.Key0)
	case code >= glfw.KeyA && code <= glfw.KeyZ:
		return KeyA + Key(code-glfw.KeyA)
	case code >= glfw.KeyF1 && code <= glfw.KeyF12:
		return KeyF1 + Key(code-glfw.KeyF1)
	}
	switch code {
	case glfw.KeyEscape:
		return KeyEsc
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return KeyReturn
	case glfw.KeySpace:
		return KeySpace
	case glfw.KeyTab:
		return KeyTab
	case glfw.KeyBackspace:
		return KeyBackspace
	case glfw.KeyUp:
		return KeyUp
	case glfw.KeyDown:
		return KeyDown
	case glfw.KeyLeft:
		return KeyLeft
	case glfw.KeyRight:
		return KeyRight
	}
	return KeyUnknown
}

// modFrom converts GLFW modifier bits.
func modFrom(mods glfw.ModifierKey) (m Modifier) {
	if mods&glfw.ModCapsLock != 0 {
		m |= ModCapsLock
	}
	if mods&glfw.ModShift != 0 {
		m |= ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= ModAlt
	}
	return
}
