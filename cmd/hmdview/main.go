// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Hmdview renders frames to an HMD.
//
// By default it runs headless, recording GL calls instead
// of issuing them. With --window it opens a GL window that
// shows the HMD mirror and accepts these keys:
//
//	Esc  quit
//	R    recenter tracking
//	M    toggle the mirror
//	0-5  select the performance HUD mode
package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/xlab/closer"

	_ "github.com/gviegas/hmd/driver/sim"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()
	if err := newRootCmd().Execute(); err != nil {
		closer.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "hmdview",
		Short:        "Render frames to an HMD",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stop := make(chan struct{})
			done := make(chan struct{})
			defer close(done)
			closer.Bind(func() {
				select {
				case stop <- struct{}{}:
					<-done
				case <-done:
				}
			})
			return o.run(cmd.OutOrStdout(), stop)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "TOML configuration file")
	f.StringVar(&o.driver, "driver", "", "driver name filter, overriding the configuration")
	f.IntVarP(&o.frames, "frames", "n", 90, "number of frames to render (0 renders until the window closes)")
	f.BoolVarP(&o.window, "window", "w", false, "show the mirror in a window")
	f.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}
