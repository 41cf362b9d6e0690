// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"sort"

	"github.com/gviegas/hmd/linear"
)

// LightingMode is the type of a view's lighting mode.
type LightingMode int

// Lighting modes.
const (
	NoLight LightingMode = iota
	HeadLight
	SkyLight
)

// SlaveUpdater is the interface that wraps the
// UpdateSlave method.
// UpdateSlave is called once per frame, in slave order,
// before any camera is drawn.
type SlaveUpdater interface {
	UpdateSlave(v *View, s *Slave)
}

// Slave is a camera whose matrices are derived from the
// master camera of a View.
type Slave struct {
	Camera           *Camera
	ProjectionOffset linear.M4
	ViewOffset       linear.M4
	UseMastersScene  bool
	Updater          SlaveUpdater
}

// UpdateDefault updates the slave camera from the master
// camera and the slave's offsets.
// Only cameras in the RelativeRF reference frame are
// affected.
func (s *Slave) UpdateDefault(v *View) {
	if s.Camera.ReferenceFrame != RelativeRF {
		return
	}
	m := v.camera
	s.Camera.View.Mul(&s.ViewOffset, &m.View)
	s.Camera.Projection.Mul(&s.ProjectionOffset, &m.Projection)
}

// View is a master camera with any number of slaves.
type View struct {
	Lighting LightingMode
	// Content draws the scene for a camera.
	Content func(*RenderInfo)

	camera   *Camera
	slaves   []*Slave
	realize  Realizer
	realized bool
	frame    int64
}

// NewView creates a new view.
func NewView() *View { return &View{camera: NewCamera(), Lighting: HeadLight} }

// Camera returns the master camera.
func (v *View) Camera() *Camera { return v.camera }

// AddSlave adds a slave camera and returns its index.
func (v *View) AddSlave(cam *Camera, proj, view linear.M4, useMastersScene bool) int {
	v.slaves = append(v.slaves, &Slave{
		Camera:           cam,
		ProjectionOffset: proj,
		ViewOffset:       view,
		UseMastersScene:  useMastersScene,
	})
	return len(v.slaves) - 1
}

// Slave returns the slave at index i.
func (v *View) Slave(i int) *Slave { return v.slaves[i] }

// NumSlaves returns the number of slaves.
func (v *View) NumSlaves() int { return len(v.slaves) }

// SetRealizeOperation sets the Realizer called by Realize.
func (v *View) SetRealizeOperation(r Realizer) { v.realize = r }

// Contexts returns the distinct graphics contexts used
// by the view's cameras, master first.
func (v *View) Contexts() []GraphicsContext {
	var gcs []GraphicsContext
	add := func(gc GraphicsContext) {
		if gc == nil {
			return
		}
		for _, x := range gcs {
			if x == gc {
				return
			}
		}
		gcs = append(gcs, gc)
	}
	add(v.camera.gc)
	for _, s := range v.slaves {
		add(s.Camera.gc)
	}
	return gcs
}

// Realize calls the realize operation for every context.
// Further calls have no effect.
func (v *View) Realize() {
	if v.realized {
		return
	}
	if v.realize != nil {
		for _, gc := range v.Contexts() {
			v.realize.Realize(gc)
		}
	}
	v.realized = true
}

// Realized returns whether Realize was called.
func (v *View) Realized() bool { return v.realized }

// FrameNumber returns the number of frames drawn.
func (v *View) FrameNumber() int64 { return v.frame }

// Frame updates the slaves, draws every camera that has
// a graphics context in render order and then swaps
// every context.
func (v *View) Frame() {
	if !v.realized {
		v.Realize()
	}
	for _, s := range v.slaves {
		if s.Updater != nil {
			s.Updater.UpdateSlave(v, s)
		} else {
			s.UpdateDefault(v)
		}
	}

	var cams []*Camera
	if v.camera.gc != nil {
		cams = append(cams, v.camera)
	}
	for _, s := range v.slaves {
		if s.Camera.gc != nil {
			cams = append(cams, s.Camera)
		}
	}
	sort.SliceStable(cams, func(i, j int) bool {
		if cams[i].Order != cams[j].Order {
			return cams[i].Order < cams[j].Order
		}
		return cams[i].OrderNum < cams[j].OrderNum
	})
	for _, c := range cams {
		c.draw(v.Content)
	}

	for _, gc := range v.Contexts() {
		SwapBuffers(gc)
	}
	v.frame++
}
