// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package sim implements driver interfaces with a
// simulated compositor.
// It needs no hardware. Texture names are handed out by
// the session itself unless GL entry points are bound
// with BindGL, in which case real (or recorded) GL
// textures back every swap chain and mirror texture.
package sim

import (
	"fmt"
	"math"
	"sync"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/glext"
	"github.com/gviegas/hmd/linear"
)

const driverName = "sim"

// Base of the texture names used when no GL entry
// points are bound.
const texBase = 1 << 16

// Config configures the simulated runtime.
type Config struct {
	Desc driver.HMDDesc
	// Pixels per tangent unit at the center of each eye's
	// distorted view.
	PixelsPerTanAngle float32
	// Number of textures in every swap chain.
	ChainLength int
	// Interpupillary distance, in meters.
	IPD float32
	// HeadPose computes the head pose at the given
	// absolute time. Nil selects a slow sway.
	HeadPose func(t float64) driver.Pose
	// Cause Open to fail.
	NotInstalled bool
	NoDevice     bool
}

// DefaultConfig returns a Config describing a headset
// with a 2160x1200 display refreshed at 90 Hz.
func DefaultConfig() Config {
	fov := driver.FovPort{UpTan: 1.329, DownTan: 1.329, LeftTan: 1.058, RightTan: 1.092}
	fovR := fov
	fovR.LeftTan, fovR.RightTan = fov.RightTan, fov.LeftTan
	return Config{
		Desc: driver.HMDDesc{
			ProductName:   "Simulated HMD",
			Manufacturer:  "gviegas",
			VendorID:      0x2833,
			ProductID:     0x0031,
			SerialNumber:  "SIM0000000001",
			FirmwareMajor: 1,
			FirmwareMinor: 0,
			Resolution:    driver.Sizei{W: 2160, H: 1200},
			DefaultEyeFov: [driver.EyeCount]driver.FovPort{fov, fovR},
			MaxEyeFov:     [driver.EyeCount]driver.FovPort{fov, fovR},
			RefreshRate:   90,
		},
		PixelsPerTanAngle: 600,
		ChainLength:       3,
		IPD:               0.064,
	}
}

// Driver implements driver.Driver.
type Driver struct {
	mu   sync.Mutex
	cfg  Config
	sess *Session
}

func init() {
	driver.Register(New(DefaultConfig()))
}

// New creates a new Driver.
// Drivers created this way are not registered.
func New(cfg Config) *Driver { return &Driver{cfg: cfg} }

// Open opens a new Session.
// Only one session may be open at a time.
func (d *Driver) Open() (driver.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.cfg.NotInstalled:
		return nil, driver.ErrNotInstalled
	case d.cfg.NoDevice:
		return nil, driver.ErrNoDevice
	case d.sess != nil:
		return nil, fmt.Errorf("sim: session already open: %w", driver.ErrNoDevice)
	}
	d.sess = newSession(d)
	return d.sess, nil
}

// Name returns "sim".
func (d *Driver) Name() string { return driverName }

// Close destroys the open session, if any.
func (d *Driver) Close() {
	d.mu.Lock()
	s := d.sess
	d.mu.Unlock()
	if s != nil {
		s.Destroy()
	}
}

// Session returns the open session, or nil.
func (d *Driver) Session() *Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sess
}

// Submission records a call to SubmitFrame.
type Submission struct {
	Frame int64
	Scale driver.ViewScale
	Layer driver.LayerEyeFov
	// Swap chain index committed for each eye.
	Index [driver.EyeCount]int
	// Texture name committed for each eye.
	Texture [driver.EyeCount]uint32
}

// Session implements driver.Session.
type Session struct {
	drv    *Driver
	cfg    Config
	gl     glext.Funcs
	next   uint32
	chains map[*Swapchain]struct{}
	mirror *Mirror

	lost      bool
	present   bool
	hud       driver.PerfHUD
	origin    driver.Pose
	lastPose  driver.Pose
	lastQuery float64
	queries   int
	subs      []Submission
	destroyed bool
}

var (
	_ driver.Session  = (*Session)(nil)
	_ driver.GLBinder = (*Session)(nil)
)

func newSession(d *Driver) *Session {
	return &Session{
		drv:      d,
		cfg:      d.cfg,
		next:     texBase,
		chains:   make(map[*Swapchain]struct{}),
		present:  true,
		origin:   driver.IdentityPose(),
		lastPose: driver.IdentityPose(),
	}
}

func (s *Session) Driver() driver.Driver { return s.drv }

func (s *Session) Desc() driver.HMDDesc { return s.cfg.Desc }

// BindGL makes s allocate GL textures through gl.
func (s *Session) BindGL(gl glext.Funcs) { s.gl = gl }

func (s *Session) FovTextureSize(eye driver.Eye, fov driver.FovPort, pixelsPerDisplayPixel float32) driver.Sizei {
	ppt := s.cfg.PixelsPerTanAngle * pixelsPerDisplayPixel
	w := int(math.Ceil(float64((fov.LeftTan + fov.RightTan) * ppt)))
	h := int(math.Ceil(float64((fov.UpTan + fov.DownTan) * ppt)))
	return driver.Sizei{W: max(w, 1), H: max(h, 1)}
}

func (s *Session) RenderDesc(eye driver.Eye, fov driver.FovPort) driver.EyeRenderDesc {
	res := s.cfg.Desc.Resolution
	half := res.W / 2
	pose := driver.IdentityPose()
	vp := driver.Recti{Sizei: driver.Sizei{W: half, H: res.H}}
	if eye == driver.EyeLeft {
		pose.Position[0] = -s.cfg.IPD / 2
	} else {
		pose.Position[0] = s.cfg.IPD / 2
		vp.X = half
	}
	return driver.EyeRenderDesc{
		Eye:                       eye,
		Fov:                       fov,
		DistortedViewport:         vp,
		PixelsPerTanAngleAtCenter: [2]float32{s.cfg.PixelsPerTanAngle, s.cfg.PixelsPerTanAngle},
		HmdToEyePose:              pose,
	}
}

// newTexture returns a new texture name, allocating
// storage when GL is bound.
func (s *Session) newTexture(format driver.PixelFmt, width, height int) uint32 {
	if s.gl == nil {
		s.next++
		return s.next
	}
	ifmt := int32(glext.RGBA8)
	if format == driver.RGBA8sRGB || format == driver.BGRA8sRGB {
		ifmt = glext.SRGB8_ALPHA8
	}
	tex := s.gl.GenTexture()
	s.gl.BindTexture(glext.TEXTURE_2D, tex)
	s.gl.TexParameteri(glext.TEXTURE_2D, glext.TEXTURE_MAX_LEVEL, 0)
	s.gl.TexImage2D(glext.TEXTURE_2D, 0, ifmt, int32(width), int32(height), glext.RGBA, glext.UNSIGNED_BYTE)
	s.gl.BindTexture(glext.TEXTURE_2D, 0)
	return tex
}

func (s *Session) deleteTexture(tex uint32) {
	if s.gl != nil {
		s.gl.DeleteTexture(tex)
	}
}

func (s *Session) NewSwapchain(desc *driver.SwapchainDesc) (driver.Swapchain, error) {
	if s.destroyed {
		return nil, driver.ErrFatal
	}
	if desc.Width <= 0 || desc.Height <= 0 || desc.SampleCount > 1 {
		return nil, fmt.Errorf("sim: invalid swap chain description: %w", driver.ErrSwapchain)
	}
	n := max(s.cfg.ChainLength, 1)
	sc := &Swapchain{s: s, desc: *desc, texs: make([]uint32, n), last: -1}
	for i := range sc.texs {
		sc.texs[i] = s.newTexture(desc.Format, desc.Width, desc.Height)
	}
	s.chains[sc] = struct{}{}
	return sc, nil
}

func (s *Session) NewMirror(desc *driver.MirrorDesc) (driver.Mirror, error) {
	if s.destroyed {
		return nil, driver.ErrFatal
	}
	if s.mirror != nil {
		return nil, fmt.Errorf("sim: mirror texture already exists: %w", driver.ErrMirror)
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("sim: invalid mirror description: %w", driver.ErrMirror)
	}
	s.mirror = &Mirror{s: s, desc: *desc, tex: s.newTexture(desc.Format, desc.Width, desc.Height)}
	return s.mirror, nil
}

func (s *Session) PredictedDisplayTime(frame int64) float64 {
	return float64(frame+1) / float64(s.cfg.Desc.RefreshRate)
}

// headPose computes the untracked head pose at time t.
func (s *Session) headPose(t float64) driver.Pose {
	if s.cfg.HeadPose != nil {
		return s.cfg.HeadPose(t)
	}
	var p driver.Pose
	p.Orientation.Rotate(float32(0.2*math.Sin(t)), &linear.V3{0, 1, 0})
	p.Position = linear.V3{float32(0.05 * math.Sin(2*t)), 1.6, 0}
	return p
}

func (s *Session) TrackingState(absTime float64, latencyMarker bool) (driver.TrackingState, error) {
	if s.destroyed {
		return driver.TrackingState{}, driver.ErrFatal
	}
	s.queries++
	if s.lost {
		return driver.TrackingState{}, fmt.Errorf("sim: tracking lost: %w", driver.ErrTracking)
	}
	p := s.headPose(absTime)
	var inv driver.Pose
	inv.Orientation.Conj(&s.origin.Orientation)
	inv.Position.Rot(&inv.Orientation, &s.origin.Position)
	inv.Position.Scale(-1, &inv.Position)
	p = driver.Compose(&inv, &p)
	s.lastPose = p
	s.lastQuery = absTime
	return driver.TrackingState{
		HeadPose: driver.PoseState{
			ThePose:       p,
			TimeInSeconds: absTime,
		},
		StatusFlags: driver.OrientationTracked | driver.PositionTracked,
	}, nil
}

func (s *Session) SubmitFrame(frame int64, scale *driver.ViewScale, layers []*driver.LayerEyeFov) error {
	if s.destroyed {
		return driver.ErrFatal
	}
	sub := Submission{Frame: frame, Scale: *scale}
	for _, l := range layers {
		if l == nil || l.Header.Type == driver.LayerDisabled {
			continue
		}
		for i, sc := range l.ColorTexture {
			c, ok := sc.(*Swapchain)
			if !ok {
				return fmt.Errorf("sim: %v eye: foreign swap chain: %w", driver.Eye(i), driver.ErrSwapchain)
			}
			if _, ok := s.chains[c]; !ok {
				return fmt.Errorf("sim: %v eye: destroyed swap chain: %w", driver.Eye(i), driver.ErrSwapchain)
			}
			if !c.pending {
				return fmt.Errorf("sim: %v eye: swap chain not committed: %w", driver.Eye(i), driver.ErrSwapchain)
			}
			sub.Index[i] = c.last
			sub.Texture[i] = c.texs[c.last]
		}
		sub.Layer = *l
	}
	for c := range s.chains {
		c.pending = false
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *Session) SetPerfHUD(mode driver.PerfHUD) error {
	if mode < driver.PerfHUDOff || mode >= driver.PerfHUDCount {
		return fmt.Errorf("sim: invalid perf HUD mode %d", mode)
	}
	s.hud = mode
	return nil
}

func (s *Session) RecenterTrackingOrigin() error {
	if s.destroyed {
		return driver.ErrFatal
	}
	s.origin = s.headPose(s.lastQuery)
	return nil
}

func (s *Session) Status() (driver.SessionStatus, error) {
	if s.destroyed {
		return driver.SessionStatus{}, driver.ErrFatal
	}
	return driver.SessionStatus{
		IsVisible:  s.present,
		HmdPresent: s.present,
		HmdMounted: s.present,
	}, nil
}

// Destroy destroys s along with any swap chain and mirror
// texture not yet destroyed.
func (s *Session) Destroy() {
	if s.destroyed {
		return
	}
	for c := range s.chains {
		c.Destroy()
	}
	if s.mirror != nil {
		s.mirror.Destroy()
	}
	s.destroyed = true
	s.drv.mu.Lock()
	if s.drv.sess == s {
		s.drv.sess = nil
	}
	s.drv.mu.Unlock()
}

// SetTrackingLost causes TrackingState to fail while
// lost is true.
func (s *Session) SetTrackingLost(lost bool) { s.lost = lost }

// SetHMDPresent sets the presence reported by Status.
func (s *Session) SetHMDPresent(present bool) { s.present = present }

// PerfHUD returns the current perf HUD mode.
func (s *Session) PerfHUD() driver.PerfHUD { return s.hud }

// Submissions returns the submitted frames.
func (s *Session) Submissions() []Submission { return s.subs }

// TrackingQueries returns how many times TrackingState
// was called.
func (s *Session) TrackingQueries() int { return s.queries }

// Swapchains returns the number of live swap chains.
func (s *Session) Swapchains() int { return len(s.chains) }

// MirrorTexture returns the live mirror texture, or nil.
func (s *Session) MirrorTexture() *Mirror { return s.mirror }

// Destroyed returns whether s was destroyed.
func (s *Session) Destroyed() bool { return s.destroyed }

// Swapchain implements driver.Swapchain.
// The writable texture rotates through the chain with
// each commit.
type Swapchain struct {
	s       *Session
	desc    driver.SwapchainDesc
	texs    []uint32
	commits int
	last    int
	pending bool
}

var _ driver.Swapchain = (*Swapchain)(nil)

func (c *Swapchain) Len() int { return len(c.texs) }

func (c *Swapchain) CurrentIndex() (int, error) {
	if c.texs == nil {
		return 0, driver.ErrSwapchain
	}
	return c.commits % len(c.texs), nil
}

func (c *Swapchain) Texture(index int) (uint32, error) {
	if index < 0 || index >= len(c.texs) {
		return 0, fmt.Errorf("sim: swap chain index %d out of range: %w", index, driver.ErrSwapchain)
	}
	return c.texs[index], nil
}

// Commit commits the current texture.
// It fails if the chain was already committed for the
// current frame.
func (c *Swapchain) Commit() error {
	if c.texs == nil {
		return driver.ErrSwapchain
	}
	if c.pending {
		return fmt.Errorf("sim: swap chain committed twice in a frame: %w", driver.ErrSwapchain)
	}
	c.last = c.commits % len(c.texs)
	c.commits++
	c.pending = true
	return nil
}

func (c *Swapchain) Desc() driver.SwapchainDesc { return c.desc }

// Commits returns how many times c was committed.
func (c *Swapchain) Commits() int { return c.commits }

func (c *Swapchain) Destroy() {
	if c.texs == nil {
		return
	}
	for _, t := range c.texs {
		c.s.deleteTexture(t)
	}
	c.texs = nil
	delete(c.s.chains, c)
}

// Mirror implements driver.Mirror.
type Mirror struct {
	s    *Session
	desc driver.MirrorDesc
	tex  uint32
}

var _ driver.Mirror = (*Mirror)(nil)

func (m *Mirror) Texture() (uint32, error) {
	if m.tex == 0 {
		return 0, driver.ErrMirror
	}
	return m.tex, nil
}

func (m *Mirror) Desc() driver.MirrorDesc { return m.desc }

func (m *Mirror) Destroy() {
	if m.tex == 0 {
		return
	}
	m.s.deleteTexture(m.tex)
	m.tex = 0
	if m.s.mirror == m {
		m.s.mirror = nil
	}
}
