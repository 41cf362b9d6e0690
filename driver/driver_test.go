// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gviegas/hmd/driver"
	"github.com/gviegas/hmd/linear"
)

type nameOnly string

func (d nameOnly) Open() (driver.Session, error) { return nil, driver.ErrNotInstalled }
func (d nameOnly) Name() string                  { return string(d) }
func (d nameOnly) Close()                        {}

func TestDrivers(t *testing.T) {
	driver.Register(nameOnly("test-a"))
	driver.Register(nameOnly("test-b"))
	driver.Register(nameOnly("test-a"))

	drivers := driver.Drivers()
	n := 0
	for i := range drivers {
		name := drivers[i].Name()
		if name == "test-a" || name == "test-b" {
			n++
		}
		for j := range i {
			if name == drivers[j].Name() {
				t.Error("driver.Drivers: Driver.Name is not unique")
			}
		}
	}
	if n != 2 {
		t.Errorf("driver.Drivers: registered test drivers\nhave %d\nwant 2", n)
	}
	drivers2 := driver.Drivers()
	if len(drivers) != len(drivers2) {
		t.Error("driver.Drivers: length mismatch")
	} else {
		for i := range drivers {
			if drivers[i].Name() != drivers2[i].Name() {
				t.Error("driver.Drivers: Driver.Name mismatch")
			}
		}
	}
}

func TestProjection(t *testing.T) {
	fov := driver.FovPort{UpTan: 1.2, DownTan: 1.3, LeftTan: 1.1, RightTan: 0.9}
	m := driver.Projection(fov, 0.05, 1000)
	want := mgl32.Frustum(-1.1*0.05, 0.9*0.05, -1.3*0.05, 1.2*0.05, 0.05, 1000)
	for i := range m {
		for j := range m[i] {
			if math.Abs(float64(m[i][j]-want[i*4+j])) > 1e-4 {
				t.Fatalf("driver.Projection\nhave %v\nwant %v", m, want)
			}
		}
	}
	// Asymmetric horizontal tangents shift the projection
	// center toward the wider side.
	if m[2][0] >= 0 {
		t.Fatalf("driver.Projection: m[2][0]\nhave %v\nwant < 0", m[2][0])
	}
}

func TestCalcEyePoses(t *testing.T) {
	var head driver.Pose
	head.Orientation.Rotate(math.Pi/2, &linear.V3{0, 1, 0})
	head.Position = linear.V3{1, 1.6, 0}
	offsets := [driver.EyeCount]driver.Pose{driver.IdentityPose(), driver.IdentityPose()}
	offsets[driver.EyeLeft].Position = linear.V3{-0.032}
	offsets[driver.EyeRight].Position = linear.V3{0.032}

	eyes := driver.CalcEyePoses(head, offsets)
	// A quarter turn about +Y maps +X onto -Z.
	wantL := linear.V3{1, 1.6, 0.032}
	wantR := linear.V3{1, 1.6, -0.032}
	for i := range wantL {
		if math.Abs(float64(eyes[driver.EyeLeft].Position[i]-wantL[i])) > 1e-5 {
			t.Fatalf("driver.CalcEyePoses: left position\nhave %v\nwant %v", eyes[driver.EyeLeft].Position, wantL)
		}
		if math.Abs(float64(eyes[driver.EyeRight].Position[i]-wantR[i])) > 1e-5 {
			t.Fatalf("driver.CalcEyePoses: right position\nhave %v\nwant %v", eyes[driver.EyeRight].Position, wantR)
		}
	}
	if eyes[driver.EyeLeft].Orientation != head.Orientation {
		t.Fatalf("driver.CalcEyePoses: left orientation\nhave %v\nwant %v", eyes[driver.EyeLeft].Orientation, head.Orientation)
	}
}
