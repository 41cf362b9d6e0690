// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package hmd implements stereo rendering to a head
// mounted display on top of the scene package.
//
// A Device owns the session with the compositor runtime
// along with the render targets of both eyes and the
// mirror texture. A Viewer attaches a Device to a
// scene.View, adding one render-to-texture slave camera
// per eye that is updated with the predicted head pose
// on every frame.
//
// Every method of this package must be called from the
// thread that owns the graphics context, unless stated
// otherwise.
package hmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

// ErrDisabled means that the Device has no session.
var ErrDisabled = errors.New("hmd: device disabled")

// ErrNoBuffers means that the render buffers are not
// available.
var ErrNoBuffers = errors.New("hmd: render buffers not created")

var errNoDriver = errors.New("hmd: driver not found")

// Device is the connection to an HMD.
// A Device whose session could not be opened is
// disabled: its methods do nothing and report failure.
type Device struct {
	cfg     Config
	drv     driver.Driver
	sess    driver.Session
	openErr error
	desc    driver.HMDDesc

	buffers [driver.EyeCount]*TextureBuffer
	mirror  *MirrorTexture

	eyeDesc    [driver.EyeCount]driver.EyeRenderDesc
	viewOffset [driver.EyeCount]driver.Pose
	renderPose [driver.EyeCount]driver.Pose
	layer      driver.LayerEyeFov
	timing     float64
	poseFrame  int64
	position   linear.V3
	rotation   linear.Q
	view       [driver.EyeCount]linear.M4
	proj       [driver.EyeCount]linear.M4

	displayMirror bool
}

// NewDevice opens the first registered driver whose name
// contains cfg.Driver.
// It only fails if cfg is not valid. If no session can
// be opened, the Device is disabled.
func NewDevice(cfg Config) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := newDevice(cfg)
	name := strings.ToLower(cfg.Driver)
	d.openErr = errNoDriver
	for _, drv := range driver.Drivers() {
		if !strings.Contains(strings.ToLower(drv.Name()), name) {
			continue
		}
		if d.open(drv) == nil {
			break
		}
	}
	return d, nil
}

// NewDeviceWithDriver is like NewDevice but uses drv
// regardless of cfg.Driver.
func NewDeviceWithDriver(cfg Config, drv driver.Driver) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := newDevice(cfg)
	d.open(drv)
	return d, nil
}

func newDevice(cfg Config) *Device {
	d := &Device{
		cfg:           cfg,
		poseFrame:     -1,
		displayMirror: cfg.DisplayMirror,
	}
	d.rotation.I()
	for i := range d.view {
		d.view[i].I()
		d.proj[i].I()
		d.viewOffset[i] = driver.IdentityPose()
		d.renderPose[i] = driver.IdentityPose()
	}
	return d
}

func (d *Device) open(drv driver.Driver) error {
	sess, err := drv.Open()
	if err != nil {
		d.openErr = fmt.Errorf("hmd: opening driver %q: %w", drv.Name(), err)
		Logger().Warn("HMD unavailable", "driver", drv.Name(), "err", err)
		return err
	}
	d.drv = drv
	d.sess = sess
	d.openErr = nil
	d.desc = sess.Desc()
	d.logDesc()
	return nil
}

func (d *Device) logDesc() {
	Logger().Info("HMD",
		"driver", d.drv.Name(),
		"product", d.desc.ProductName,
		"manufacturer", d.desc.Manufacturer,
		"vendor_id", d.desc.VendorID,
		"product_id", d.desc.ProductID,
		"serial", d.desc.SerialNumber,
		"firmware", fmt.Sprintf("%d.%d", d.desc.FirmwareMajor, d.desc.FirmwareMinor))
}

// Enabled returns whether d has a session.
func (d *Device) Enabled() bool { return d.sess != nil }

// Err returns the reason why d is disabled.
func (d *Device) Err() error { return d.openErr }

// Session returns d's session, or nil if d is disabled.
func (d *Device) Session() driver.Session { return d.sess }

// Config returns the configuration of d.
func (d *Device) Config() Config { return d.cfg }

// Desc returns the HMD descriptor.
func (d *Device) Desc() driver.HMDDesc { return d.desc }

// HMDPresent returns whether the HMD is connected.
func (d *Device) HMDPresent() bool {
	if d.sess == nil {
		return false
	}
	st, err := d.sess.Status()
	if err != nil {
		Logger().Warn("querying session status", "err", err)
		return false
	}
	return st.HmdPresent
}

// ScreenResolution returns the resolution of the whole
// display.
func (d *Device) ScreenResolution() (width, height int) {
	return d.desc.Resolution.W, d.desc.Resolution.H
}

// mirrorHeight returns the mirror height that keeps the
// display's aspect ratio.
func (d *Device) mirrorHeight() int {
	w, h := d.ScreenResolution()
	if w == 0 {
		return d.cfg.MirrorWidth * 9 / 16
	}
	return int(float32(d.cfg.MirrorWidth) / float32(w) * float32(h))
}

// CreateRenderBuffers creates the render buffer of each
// eye and the mirror texture.
// st must be the state of the context that will render
// the eyes, and that context must be current.
// A buffer that cannot be created is left nil and the
// error is returned after every creation was attempted.
func (d *Device) CreateRenderBuffers(st *scene.State) error {
	if d.sess == nil {
		return ErrDisabled
	}
	if d.cfg.PixelsPerDisplayPixel > 1 {
		Logger().Warn("pixels per display pixel is higher than 1",
			"value", d.cfg.PixelsPerDisplayPixel)
	}
	if b, ok := d.sess.(driver.GLBinder); ok {
		b.BindGL(st.GL)
	}
	var errs []error
	for i := range d.buffers {
		eye := driver.Eye(i)
		size := d.sess.FovTextureSize(eye, d.desc.DefaultEyeFov[eye], d.cfg.PixelsPerDisplayPixel)
		b, err := NewTextureBuffer(d.sess, st, size, d.cfg.Samples)
		if err != nil {
			Logger().Warn("creating render buffer", "eye", eye, "err", err)
			errs = append(errs, err)
			continue
		}
		d.buffers[i] = b
	}
	m, err := NewMirrorTexture(d.sess, st, d.cfg.MirrorWidth, d.mirrorHeight())
	if err != nil {
		Logger().Warn("creating mirror texture", "err", err)
		errs = append(errs, err)
	} else {
		d.mirror = m
	}
	return errors.Join(errs...)
}

// Init computes the eye render descriptions and the
// initial view and projection matrices, and prepares
// the layer submitted every frame.
// It must be called after CreateRenderBuffers.
func (d *Device) Init() error {
	if d.sess == nil {
		return ErrDisabled
	}
	for i := range d.eyeDesc {
		eye := driver.Eye(i)
		d.eyeDesc[i] = d.sess.RenderDesc(eye, d.desc.DefaultEyeFov[eye])
		d.viewOffset[i] = d.eyeDesc[i].HmdToEyePose
	}
	d.calcViews()
	d.calcProjections()
	d.setUpLayer()
	if err := d.sess.SetPerfHUD(driver.PerfHUD(d.cfg.PerfHUD)); err != nil {
		Logger().Warn("setting perf HUD", "err", err)
	}
	return nil
}

// calcViews computes the view offset of each eye
// relative to the head.
// The offset is the inverse of the head-to-eye pose, since
// it maps head space into eye space.
func (d *Device) calcViews() {
	w := d.cfg.WorldUnitsPerMetre
	for i := range d.view {
		p := &d.eyeDesc[i].HmdToEyePose
		var q linear.Q
		q.Conj(&p.Orientation)
		var r, t linear.M4
		r.RotateQ(&q)
		t.Translate(-w*p.Position[0], -w*p.Position[1], -w*p.Position[2])
		d.view[i].Mul(&r, &t)
	}
}

func (d *Device) calcProjections() {
	for i := range d.proj {
		d.proj[i] = driver.Projection(d.eyeDesc[i].Fov, d.cfg.NearClip, d.cfg.FarClip)
	}
}

func (d *Device) setUpLayer() {
	d.layer.Header = driver.LayerHeader{
		Type:  driver.LayerEyeFovType,
		Flags: driver.LayerTextureOriginAtBottomLeft,
	}
	for i, b := range d.buffers {
		if b != nil {
			d.layer.Viewport[i] = driver.Recti{Sizei: driver.Sizei{W: b.Width(), H: b.Height()}}
		}
		d.layer.Fov[i] = d.eyeDesc[i].Fov
	}
}

// UpdatePose samples the head pose predicted for the
// display time of the given frame.
// It must be called once per frame, before either eye
// is rendered. If tracking fails, the previous pose is
// kept and the error is returned.
func (d *Device) UpdatePose(frame int64) error {
	if d.sess == nil {
		return ErrDisabled
	}
	if frame == d.poseFrame {
		Logger().Debug("pose updated twice", "frame", frame)
	}
	d.poseFrame = frame
	d.timing = d.sess.PredictedDisplayTime(frame)
	for i := range d.viewOffset {
		d.viewOffset[i] = d.eyeDesc[i].HmdToEyePose
	}
	ts, err := d.sess.TrackingState(d.timing, true)
	if err != nil {
		Logger().Warn("querying tracking state", "frame", frame, "err", err)
		return err
	}
	head := ts.HeadPose.ThePose
	d.renderPose = driver.CalcEyePoses(head, d.viewOffset)
	d.layer.SensorSampleTime = ts.HeadPose.TimeInSeconds
	d.position.Scale(d.cfg.WorldUnitsPerMetre, &head.Position)
	d.rotation = head.Orientation
	d.calcProjections()
	d.calcViews()
	return nil
}

// PoseFrame returns the frame of the last UpdatePose
// call, if there was one.
func (d *Device) PoseFrame() (int64, bool) { return d.poseFrame, d.poseFrame >= 0 }

// SubmitFrame submits both eyes to the compositor using
// the render poses of the last UpdatePose call.
// Both swap chains must have been committed.
func (d *Device) SubmitFrame(frame int64) error {
	if d.sess == nil {
		return ErrDisabled
	}
	for i, b := range d.buffers {
		if b == nil || b.Swapchain() == nil {
			return ErrNoBuffers
		}
		d.layer.ColorTexture[i] = b.Swapchain()
	}
	d.layer.RenderPose = d.renderPose
	scale := driver.ViewScale{
		HmdToEyePose:                 d.viewOffset,
		HmdSpaceToWorldScaleInMeters: d.cfg.WorldUnitsPerMetre,
	}
	if err := d.sess.SubmitFrame(frame, &scale, []*driver.LayerEyeFov{&d.layer}); err != nil {
		return fmt.Errorf("hmd: submitting frame %d: %w", frame, err)
	}
	return nil
}

// BlitMirrorTexture copies the mirror texture into the
// default framebuffer of gc.
// It does nothing when mirroring is disabled.
func (d *Device) BlitMirrorTexture(gc scene.GraphicsContext) {
	if !d.displayMirror || d.mirror == nil {
		return
	}
	d.mirror.Blit(gc)
}

// SetDisplayMirror enables or disables mirroring.
func (d *Device) SetDisplayMirror(on bool) { d.displayMirror = on }

// DisplayMirror returns whether mirroring is enabled.
func (d *Device) DisplayMirror() bool { return d.displayMirror }

// SetPerfHudMode selects the performance overlay.
// Valid modes are in the range [0, 5]; other values
// are ignored.
func (d *Device) SetPerfHudMode(mode int) {
	if d.sess == nil || mode < int(driver.PerfHUDOff) || mode >= int(driver.PerfHUDCount) {
		return
	}
	if err := d.sess.SetPerfHUD(driver.PerfHUD(mode)); err != nil {
		Logger().Warn("setting perf HUD", "mode", mode, "err", err)
	}
}

// ResetSensorOrientation sets the tracking origin to
// the current head pose.
func (d *Device) ResetSensorOrientation() {
	if d.sess == nil {
		return
	}
	if err := d.sess.RecenterTrackingOrigin(); err != nil {
		Logger().Warn("recentering tracking origin", "err", err)
	}
}

func (d *Device) NearClip() float32 { return d.cfg.NearClip }
func (d *Device) FarClip() float32  { return d.cfg.FarClip }

// Position returns the head position in world units.
func (d *Device) Position() linear.V3 { return d.position }

// Orientation returns the head orientation.
func (d *Device) Orientation() linear.Q { return d.rotation }

// ProjectionMatrix returns the projection of the
// given eye.
func (d *Device) ProjectionMatrix(eye driver.Eye) linear.M4 { return d.proj[eye] }

// ViewMatrix returns the view offset of the given eye
// relative to the head.
func (d *Device) ViewMatrix(eye driver.Eye) linear.M4 { return d.view[eye] }

// CenterViewMatrix returns the average of both eyes'
// view offsets.
func (d *Device) CenterViewMatrix() (m linear.M4) {
	m.Lerp(&d.view[driver.EyeLeft], &d.view[driver.EyeRight], 0.5)
	return
}

// RenderPose returns the pose of the given eye as
// sampled by the last UpdatePose call.
func (d *Device) RenderPose(eye driver.Eye) driver.Pose { return d.renderPose[eye] }

// Buffer returns the render buffer of the given eye, or
// nil if it was not created.
func (d *Device) Buffer(eye driver.Eye) *TextureBuffer { return d.buffers[eye] }

// Mirror returns the mirror texture, or nil if it was
// not created.
func (d *Device) Mirror() *MirrorTexture { return d.mirror }

// GraphicsContextTraits returns the traits of a window
// suited for displaying the mirror texture.
func (d *Device) GraphicsContextTraits() scene.Traits {
	return scene.Traits{
		Title:            "HMD mirror",
		X:                50,
		Y:                50,
		Width:            d.cfg.MirrorWidth,
		Height:           d.mirrorHeight(),
		WindowDecoration: true,
		DoubleBuffer:     true,
		// The compositor paces the frames.
		VSync: false,
	}
}

// Destroy destroys the mirror texture, the render
// buffers and the session, in this order, and then
// closes the driver.
func (d *Device) Destroy() {
	if d.mirror != nil {
		d.mirror.Destroy()
		d.mirror = nil
	}
	for i, b := range d.buffers {
		if b != nil {
			b.Destroy()
			d.buffers[i] = nil
		}
	}
	if d.sess != nil {
		d.sess.Destroy()
		d.sess = nil
		d.drv.Close()
		d.openErr = ErrDisabled
	}
}
