// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"github.com/gviegas/hmd/hmd"
	"github.com/gviegas/hmd/wsi"
)

// controls maps events of the mirror window to device
// and viewer controls.
type controls struct {
	dev  *hmd.Device
	vw   *hmd.Viewer
	quit bool
}

func (c *controls) WindowClose(wsi.Window) { c.quit = true }

func (c *controls) WindowResize(_ wsi.Window, width, height int) {
	if c.vw != nil {
		c.vw.Resize(width, height)
	}
}

func (c *controls) KeyboardIn(wsi.Window)  {}
func (c *controls) KeyboardOut(wsi.Window) {}

func (c *controls) KeyboardKey(key wsi.Key, pressed bool, _ wsi.Modifier) {
	if !pressed {
		return
	}
	switch key {
	case wsi.KeyEsc:
		c.quit = true
	case wsi.KeyR:
		c.dev.ResetSensorOrientation()
	case wsi.KeyM:
		c.dev.SetDisplayMirror(!c.dev.DisplayMirror())
	case wsi.Key0, wsi.Key1, wsi.Key2, wsi.Key3, wsi.Key4, wsi.Key5:
		c.dev.SetPerfHudMode(int(key - wsi.Key0))
	}
}
