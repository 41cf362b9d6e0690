// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/hmd/scene"
)

type fakeWindow struct {
	scene.HeadlessContext
	t      scene.Traits
	closed bool
}

func (w *fakeWindow) ShouldClose() bool { return w.closed }
func (w *fakeWindow) Width() int        { return w.t.Width }
func (w *fakeWindow) Height() int       { return w.t.Height }
func (w *fakeWindow) Title() string     { return w.t.Title }

func (w *fakeWindow) Close() {
	if !w.closed {
		w.closed = true
		closeWindow(w)
	}
}

func useFake(t *testing.T) {
	prev := newWindow
	newWindow = func(id scene.ContextID, tr scene.Traits) (Window, error) {
		return &fakeWindow{HeadlessContext: *scene.NewHeadless(id, nil), t: tr}, nil
	}
	t.Cleanup(func() {
		for _, w := range Windows() {
			w.Close()
		}
		newWindow = prev
	})
}

func TestWindows(t *testing.T) {
	useFake(t)
	assert.Nil(t, Windows())

	var wins []Window
	for i := range MaxWindows {
		w, err := NewWindow(scene.Traits{Title: "w", Width: 100 + i, Height: 50})
		require.NoError(t, err)
		assert.Equal(t, scene.ContextID(i), w.State().ContextID)
		wins = append(wins, w)
	}
	assert.Len(t, Windows(), MaxWindows)
	_, err := NewWindow(scene.Traits{})
	assert.ErrorIs(t, err, errTooMany)

	wins[3].Close()
	assert.Len(t, Windows(), MaxWindows-1)
	w, err := NewWindow(scene.Traits{Title: "again", Width: 1, Height: 1})
	require.NoError(t, err)
	assert.Equal(t, scene.ContextID(3), w.State().ContextID)
	assert.Equal(t, "again", w.Title())

	for _, w := range Windows() {
		w.Close()
	}
	assert.Nil(t, Windows())
}

func TestKeyFrom(t *testing.T) {
	for code, want := range map[glfw.Key]Key{
		glfw.KeyEscape:   KeyEsc,
		glfw.KeyEnter:    KeyReturn,
		glfw.KeyKPEnter:  KeyReturn,
		glfw.KeySpace:    KeySpace,
		glfw.KeyRight:    KeyRight,
		glfw.KeyUnknown:  KeyUnknown,
		glfw.KeyKP0:      KeyUnknown,
		glfw.KeyF13:      KeyUnknown,
		glfw.KeyPeriod:   KeyUnknown,
		glfw.KeyLast + 1: KeyUnknown,
	} {
		assert.Equal(t, want, keyFrom(code), "keyFrom(%d)", code)
	}
	for i := range 10 {
		assert.Equal(t, Key0+Key(i), keyFrom(glfw.Key0+glfw.Key(i)))
	}
	for i := range 26 {
		assert.Equal(t, KeyA+Key(i), keyFrom(glfw.KeyA+glfw.Key(i)))
	}
	for i := range 12 {
		assert.Equal(t, KeyF1+Key(i), keyFrom(glfw.KeyF1+glfw.Key(i)))
	}
	assert.Equal(t, KeyM, keyFrom(glfw.KeyM))
	assert.Equal(t, KeyF12, keyFrom(glfw.KeyF12))
}

func TestModFrom(t *testing.T) {
	assert.Equal(t, Modifier(0), modFrom(0))
	assert.Equal(t, ModShift|ModCtrl, modFrom(glfw.ModShift|glfw.ModControl))
	assert.Equal(t, ModAlt|ModCapsLock, modFrom(glfw.ModAlt|glfw.ModCapsLock|glfw.ModSuper))
}

type keyRec struct {
	keys []Key
	in   int
}

func (r *keyRec) KeyboardIn(Window)  { r.in++ }
func (r *keyRec) KeyboardOut(Window) { r.in-- }

func (r *keyRec) KeyboardKey(key Key, pressed bool, _ Modifier) {
	if pressed {
		r.keys = append(r.keys, key)
	}
}

func TestKeyEvent(t *testing.T) {
	rec := &keyRec{}
	SetKeyboardHandler(rec)
	t.Cleanup(func() { SetKeyboardHandler(nil) })

	w := &glfwWindow{}
	w.focusEvent(nil, true)
	w.keyEvent(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	w.keyEvent(nil, glfw.KeyEscape, 0, glfw.Repeat, 0)
	w.keyEvent(nil, glfw.KeyEscape, 0, glfw.Release, 0)
	w.keyEvent(nil, glfw.KeyM, 0, glfw.Press, glfw.ModShift)
	assert.Equal(t, []Key{KeyEsc, KeyM}, rec.keys)
	assert.Equal(t, 1, rec.in)
	w.focusEvent(nil, false)
	assert.Equal(t, 0, rec.in)

	assert.False(t, w.MakeCurrent())
	assert.True(t, w.ShouldClose())
}

type winRec struct {
	closed int
	sizes  [][2]int
}

func (r *winRec) WindowClose(Window) { r.closed++ }

func (r *winRec) WindowResize(_ Window, width, height int) {
	r.sizes = append(r.sizes, [2]int{width, height})
}

func TestWindowEvent(t *testing.T) {
	rec := &winRec{}
	SetWindowHandler(rec)
	t.Cleanup(func() { SetWindowHandler(nil) })

	w := &glfwWindow{width: 320, height: 180}
	w.sizeEvent(nil, 320, 180)
	w.sizeEvent(nil, 640, 360)
	w.sizeEvent(nil, 640, 360)
	w.closeEvent(nil)
	assert.Equal(t, [][2]int{{640, 360}}, rec.sizes)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 360, w.Height())
	assert.Equal(t, 1, rec.closed)
}
