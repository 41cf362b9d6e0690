// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/gviegas/hmd/glext/gltrace"
	"github.com/gviegas/hmd/hmd"
	"github.com/gviegas/hmd/linear"
	"github.com/gviegas/hmd/scene"
	"github.com/gviegas/hmd/wsi"
)

var errFrames = errors.New("hmdview: frame count must be positive when running headless")

type options struct {
	config   string
	driver   string
	frames   int
	window   bool
	logLevel string
}

func (o *options) loadConfig() (hmd.Config, error) {
	if o.config == "" {
		return hmd.DefaultConfig(), nil
	}
	return hmd.LoadConfig(o.config)
}

func (o *options) run(out io.Writer, stop <-chan struct{}) error {
	lvl, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "hmdview",
		ReportTimestamp: true,
	})
	hmd.SetLogger(slog.New(logger))

	if o.frames < 0 || o.frames == 0 && !o.window {
		return errFrames
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.driver != "" {
		cfg.Driver = o.driver
	}
	dev, err := hmd.NewDevice(cfg)
	if err != nil {
		return err
	}
	if !dev.Enabled() {
		logger.Warn("HMD disabled", "err", dev.Err())
	}

	traits := dev.GraphicsContextTraits()
	view := scene.NewView()
	master := view.Camera()
	master.Viewport = scene.Viewport{Width: traits.Width, Height: traits.Height}
	master.ClearColor = linear.V4{0.1, 0.1, 0.15, 1}
	vw := hmd.NewViewer(view, dev)

	var (
		gc   scene.GraphicsContext
		quit func() bool
	)
	if o.window {
		if err := wsi.Init(); err != nil {
			dev.Destroy()
			return err
		}
		defer wsi.Terminate()
		win, err := wsi.NewWindow(traits)
		if err != nil {
			dev.Destroy()
			return err
		}
		c := &controls{dev: dev, vw: vw}
		wsi.SetKeyboardHandler(c)
		wsi.SetWindowHandler(c)
		defer func() {
			wsi.SetKeyboardHandler(nil)
			wsi.SetWindowHandler(nil)
		}()
		gc = win
		quit = func() bool {
			wsi.Dispatch()
			return c.quit || win.ShouldClose()
		}
	} else {
		gc = scene.NewHeadless(1, gltrace.New(0))
	}
	master.SetGraphicsContext(gc)
	// The GL objects of both belong to gc.
	defer dev.Destroy()
	defer vw.Destroy()

	n := render(vw, o.frames, stop, quit)

	var submitted int64
	if h := vw.SwapHook(); h != nil {
		submitted = h.Submitted()
	}
	logger.Info("done", "frames", n, "submitted", submitted, "enabled", dev.Enabled())
	fmt.Fprintf(out, "rendered %d frames, submitted %d\n", n, submitted)
	return nil
}

// render renders frames until the count is reached or
// either stop or quit says otherwise. A zero count means
// no limit. quit may be nil.
// It returns the number of frames rendered.
func render(vw *hmd.Viewer, frames int, stop <-chan struct{}, quit func() bool) (n int) {
	for ; frames == 0 || n < frames; n++ {
		select {
		case <-stop:
			return
		default:
		}
		if quit != nil && quit() {
			return
		}
		vw.Frame()
	}
	return
}
