// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/driver/sim"
	"github.com/gviegas/hmd/glext/gltrace"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
)

// fixedHead places the head at (0, 1.5, 0) looking down
// -Z, moving t meters along +X.
func fixedHead(t float64) driver.Pose {
	p := driver.IdentityPose()
	p.Position = linear.V3{float32(t), 1.5, 0}
	return p
}

func simConfig() sim.Config {
	c := sim.DefaultConfig()
	c.HeadPose = fixedHead
	return c
}

func newSimDevice(t *testing.T, cfg Config, scfg sim.Config) (*Device, *sim.Driver) {
	t.Helper()
	drv := sim.New(scfg)
	d, err := NewDeviceWithDriver(cfg, drv)
	require.NoError(t, err)
	t.Cleanup(d.Destroy)
	return d, drv
}

func newContext() (*scene.HeadlessContext, *gltrace.Recorder) {
	rec := gltrace.New(0)
	return scene.NewHeadless(1, rec), rec
}

// realized returns an initialized device.
func realized(t *testing.T, cfg Config) (*Device, *sim.Session, *scene.HeadlessContext, *gltrace.Recorder) {
	t.Helper()
	d, drv := newSimDevice(t, cfg, simConfig())
	gc, rec := newContext()
	NewRealizeOp(d).Realize(gc)
	require.NotNil(t, d.Buffer(driver.EyeLeft))
	require.NotNil(t, d.Buffer(driver.EyeRight))
	return d, drv.Session(), gc, rec
}

func countBlitsFrom(rec *gltrace.Recorder, fbo uint32) (n int) {
	for _, b := range rec.Blits() {
		if b.Read == fbo {
			n++
		}
	}
	return
}
