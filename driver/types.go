// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/hmd/linear"
)

// Eye identifies an eye.
type Eye int

// Eyes.
const (
	EyeLeft Eye = iota
	EyeRight
	EyeCount
)

// String implements fmt.Stringer.
func (e Eye) String() string {
	switch e {
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	}
	return "invalid eye"
}

// Sizei is a 2D size in pixels.
type Sizei struct {
	W, H int
}

// Recti is a 2D rectangle in pixels.
type Recti struct {
	X, Y int
	Sizei
}

// FovPort describes a field of view as the tangents of
// the half-angles from the view axis to each edge.
type FovPort struct {
	UpTan    float32
	DownTan  float32
	LeftTan  float32
	RightTan float32
}

// Pose is a rigid transform.
// Position is given in meters.
type Pose struct {
	Orientation linear.Q
	Position    linear.V3
}

// IdentityPose returns a pose with no rotation and no
// translation.
func IdentityPose() Pose { return Pose{Orientation: linear.Q{R: 1}} }

// PoseState is a pose along with its derivatives.
type PoseState struct {
	ThePose             Pose
	AngularVelocity     linear.V3
	LinearVelocity      linear.V3
	AngularAcceleration linear.V3
	LinearAcceleration  linear.V3
	// Absolute time of the pose, in seconds.
	TimeInSeconds float64
}

// StatusFlags describes the tracking status.
type StatusFlags int

// Tracking status flags.
const (
	OrientationTracked StatusFlags = 1 << iota
	PositionTracked
)

// TrackingState is the result of a tracking query.
type TrackingState struct {
	HeadPose    PoseState
	StatusFlags StatusFlags
}

// HMDDesc describes an HMD.
type HMDDesc struct {
	ProductName   string
	Manufacturer  string
	VendorID      int
	ProductID     int
	SerialNumber  string
	FirmwareMajor int
	FirmwareMinor int
	// Resolution of the whole display.
	Resolution    Sizei
	DefaultEyeFov [EyeCount]FovPort
	MaxEyeFov     [EyeCount]FovPort
	// Display refresh rate, in hertz.
	RefreshRate float32
}

// EyeRenderDesc describes how an eye should be rendered.
type EyeRenderDesc struct {
	Eye                       Eye
	Fov                       FovPort
	DistortedViewport         Recti
	PixelsPerTanAngleAtCenter [2]float32
	// Transform of the eye relative to the HMD center.
	HmdToEyePose Pose
}

// PixelFmt is the type of a texture format.
type PixelFmt int

// Texture formats.
const (
	RGBA8un PixelFmt = iota
	RGBA8sRGB
	BGRA8un
	BGRA8sRGB
)

// SwapchainDesc describes a texture swap chain.
type SwapchainDesc struct {
	Format      PixelFmt
	Width       int
	Height      int
	MipLevels   int
	SampleCount int
	StaticImage bool
}

// MirrorDesc describes a mirror texture.
type MirrorDesc struct {
	Format PixelFmt
	Width  int
	Height int
}

// LayerType is the type of a compositor layer.
type LayerType int

// Layer types.
const (
	LayerDisabled LayerType = iota
	LayerEyeFovType
)

// LayerFlags modify how the compositor treats a layer.
type LayerFlags int

// Layer flags.
const (
	LayerHighQuality LayerFlags = 1 << iota
	// Set when texture data starts at the bottom-left
	// corner, as is the case with GL.
	LayerTextureOriginAtBottomLeft
	LayerHeadLocked
)

// LayerHeader is shared by every layer type.
type LayerHeader struct {
	Type  LayerType
	Flags LayerFlags
}

// LayerEyeFov is a stereo layer with one swap chain
// per eye.
type LayerEyeFov struct {
	Header       LayerHeader
	ColorTexture [EyeCount]Swapchain
	Viewport     [EyeCount]Recti
	Fov          [EyeCount]FovPort
	RenderPose   [EyeCount]Pose
	// Time at which the render poses were sampled.
	SensorSampleTime float64
}

// ViewScale describes the relation between HMD space
// and world space.
type ViewScale struct {
	HmdToEyePose                 [EyeCount]Pose
	HmdSpaceToWorldScaleInMeters float32
}

// PerfHUD is the type of a performance overlay mode.
type PerfHUD int

// Performance overlay modes.
const (
	PerfHUDOff PerfHUD = iota
	PerfHUDPerfSummary
	PerfHUDLatencyTiming
	PerfHUDAppRenderTiming
	PerfHUDCompRenderTiming
	PerfHUDVersionInfo
	PerfHUDCount
)

// SessionStatus describes the state of a session.
type SessionStatus struct {
	IsVisible      bool
	HmdPresent     bool
	HmdMounted     bool
	DisplayLost    bool
	ShouldQuit     bool
	ShouldRecenter bool
}
