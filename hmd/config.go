// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package hmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gviegas/hmd/driver"
)

const (
	dflNearClip              = 0.01
	dflFarClip               = 10000
	dflPixelsPerDisplayPixel = 1
	dflWorldUnitsPerMetre    = 1
	dflMirrorWidth           = 960
	dflPreviewFovY           = 30
	dflPreviewAspect         = 16.0 / 9.0
	dflPreviewNear           = 1
	dflPreviewFar            = 10000
	dflPreviewDistance       = 6
)

// Config is used to configure a Device.
type Config struct {
	// Name of the driver to use. Matching is
	// case-insensitive.
	//
	// Default is "", which selects the first
	// driver that opens.
	Driver string `toml:"driver"`

	// Distance of the near clip plane.
	//
	// Default is 0.01.
	NearClip float32 `toml:"near_clip"`

	// Distance of the far clip plane.
	//
	// Default is 10000.
	FarClip float32 `toml:"far_clip"`

	// Render scale relative to the display.
	// Values above 1 are accepted but reduce the
	// perceived sharpness.
	//
	// Default is 1.
	PixelsPerDisplayPixel float32 `toml:"pixels_per_display_pixel"`

	// How many world units make one meter.
	//
	// Default is 1.
	WorldUnitsPerMetre float32 `toml:"world_units_per_metre"`

	// MSAA sample count. Zero disables multisampling.
	//
	// Default is 0.
	Samples int `toml:"samples"`

	// Width of the mirror texture. The height is
	// derived from the HMD's aspect ratio.
	//
	// Default is 960.
	MirrorWidth int `toml:"mirror_width"`

	// Whether to blit the mirror texture into the
	// window on every swap.
	//
	// Default is true.
	DisplayMirror bool `toml:"display_mirror"`

	// Initial performance overlay mode, in the
	// range [0, 5].
	//
	// Default is 0 (off).
	PerfHUD int `toml:"perf_hud"`

	// Preview camera settings.
	Preview PreviewConfig `toml:"preview"`
}

// PreviewConfig configures the preview camera that
// renders into the window.
type PreviewConfig struct {
	// Vertical field of view, in degrees.
	FovY   float32 `toml:"fov_y"`
	Aspect float32 `toml:"aspect"`
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
	// Offset of the preview camera from the center
	// eye, in world units.
	Offset [3]float32 `toml:"offset"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NearClip:              dflNearClip,
		FarClip:               dflFarClip,
		PixelsPerDisplayPixel: dflPixelsPerDisplayPixel,
		WorldUnitsPerMetre:    dflWorldUnitsPerMetre,
		MirrorWidth:           dflMirrorWidth,
		DisplayMirror:         true,
		Preview: PreviewConfig{
			FovY:   dflPreviewFovY,
			Aspect: dflPreviewAspect,
			Near:   dflPreviewNear,
			Far:    dflPreviewFar,
			Offset: [3]float32{0, 0, dflPreviewDistance},
		},
	}
}

// ErrConfig means that a Config is not valid.
var ErrConfig = errors.New("hmd: invalid configuration")

// Validate checks that c can be used to create a Device.
func (c *Config) Validate() error {
	switch {
	case c.NearClip <= 0 || c.FarClip <= 0:
		return fmt.Errorf("%w: clip planes must be positive", ErrConfig)
	case c.FarClip <= c.NearClip:
		return fmt.Errorf("%w: far clip (%g) must be greater than near clip (%g)", ErrConfig, c.FarClip, c.NearClip)
	case c.PixelsPerDisplayPixel <= 0:
		return fmt.Errorf("%w: pixels per display pixel must be positive", ErrConfig)
	case c.WorldUnitsPerMetre <= 0:
		return fmt.Errorf("%w: world units per metre must be positive", ErrConfig)
	case c.Samples < 0:
		return fmt.Errorf("%w: negative sample count", ErrConfig)
	case c.MirrorWidth <= 0:
		return fmt.Errorf("%w: mirror width must be positive", ErrConfig)
	case c.PerfHUD < int(driver.PerfHUDOff) || c.PerfHUD >= int(driver.PerfHUDCount):
		return fmt.Errorf("%w: perf HUD mode %d out of range", ErrConfig, c.PerfHUD)
	case c.Preview.FovY <= 0 || c.Preview.FovY >= 180:
		return fmt.Errorf("%w: preview fov_y (%g) must be in (0, 180) degrees", ErrConfig, c.Preview.FovY)
	case c.Preview.Near <= 0 || c.Preview.Far <= c.Preview.Near || c.Preview.Aspect <= 0:
		return fmt.Errorf("%w: bad preview projection", ErrConfig)
	}
	return nil
}

// ParseConfig decodes a TOML document on top of the
// default configuration and validates the result.
// Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig calls ParseConfig with the contents of
// the named file.
func LoadConfig(name string) (Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ParseConfig(f)
}
