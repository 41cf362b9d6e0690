// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/hmd/glext"
)

// Session is the main interface to an opened runtime.
// It is used to create swap chains and mirror textures,
// to query tracking and to submit frames.
// A Session is obtained from a call to Driver.Open.
// Unless stated otherwise, methods must be called from
// the thread that owns the rendering context.
type Session interface {
	Destroyer

	// Driver returns the Driver that owns the session.
	Driver() Driver

	// Desc returns the HMD descriptor.
	// It is immutable for the lifetime of the session.
	Desc() HMDDesc

	// FovTextureSize returns the recommended render
	// target size for the given eye and field of view.
	// pixelsPerDisplayPixel scales the result; 1 means
	// one rendered pixel per display pixel at the
	// center of the distorted view.
	FovTextureSize(eye Eye, fov FovPort, pixelsPerDisplayPixel float32) Sizei

	// RenderDesc returns the render description of
	// the given eye.
	RenderDesc(eye Eye, fov FovPort) EyeRenderDesc

	// NewSwapchain creates a new texture swap chain.
	// The images in the chain belong to the runtime.
	NewSwapchain(desc *SwapchainDesc) (Swapchain, error)

	// NewMirror creates a new mirror texture.
	// At most one mirror texture can exist at a time.
	NewMirror(desc *MirrorDesc) (Mirror, error)

	// PredictedDisplayTime returns the absolute time,
	// in seconds, at which the given frame is expected
	// to be displayed.
	PredictedDisplayTime(frame int64) float64

	// TrackingState returns the tracking state predicted
	// for the given absolute time.
	// latencyMarker indicates that the query is the one
	// whose result will be used to render the frame.
	TrackingState(absTime float64, latencyMarker bool) (TrackingState, error)

	// SubmitFrame submits the layers of the given frame
	// to the compositor.
	// Every swap chain referenced by the layers must
	// have been committed since the previous submission.
	SubmitFrame(frame int64, scale *ViewScale, layers []*LayerEyeFov) error

	// SetPerfHUD selects the performance overlay shown
	// on the headset.
	SetPerfHUD(mode PerfHUD) error

	// RecenterTrackingOrigin sets the tracking origin
	// to the current head pose.
	RecenterTrackingOrigin() error

	// Status returns the session status.
	Status() (SessionStatus, error)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface hold handles that
// are owned by the runtime, so Destroy must be called
// explicitly to unregister them.
type Destroyer interface {
	Destroy()
}

// Swapchain is the interface that defines a ring of
// textures owned by the compositor.
// To render, one calls CurrentIndex to obtain the index
// of the writable texture, draws into Texture(index)
// and then calls Commit. The compositor is free to
// choose any index on each frame, so callers must not
// cache it.
type Swapchain interface {
	Destroyer

	// Len returns the number of textures in the chain.
	// It remains unchanged for the lifetime of the
	// swap chain.
	Len() int

	// CurrentIndex returns the index of the texture
	// that is writable for the current frame.
	CurrentIndex() (int, error)

	// Texture returns the GL texture name of the
	// texture at the given index.
	Texture(index int) (uint32, error)

	// Commit signals that rendering into the current
	// texture is complete.
	Commit() error

	// Desc returns the description used to create
	// the swap chain.
	Desc() SwapchainDesc
}

// Mirror is the interface that defines a texture into
// which the compositor copies its composited output.
type Mirror interface {
	Destroyer

	// Texture returns the GL texture name of the
	// mirror texture.
	Texture() (uint32, error)

	// Desc returns the description used to create
	// the mirror texture.
	Desc() MirrorDesc
}

// GLBinder is an optional interface that a Session may
// implement when it allocates the GL textures of its swap
// chains and mirror textures itself.
// BindGL is called with the entry points of the render
// context before any swap chain is created.
type GLBinder interface {
	BindGL(gl glext.Funcs)
}
