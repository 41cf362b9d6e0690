// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines a set of interfaces encompassing
// the functionality of an HMD compositor runtime.
// It is designed to allow vendor SDKs to be wrapped in a
// mostly straightforward manner. Every handle obtained from
// a driver is owned by the runtime: callers destroy handles
// explicitly but never free the memory backing them.
package driver

import (
	"errors"
	"log"
	"sync"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying runtime.
type Driver interface {
	// Open initializes the runtime and acquires the
	// first available HMD.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open() (Session, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close shuts down the runtime.
	// Every Session that was opened must have been
	// destroyed before Close is called.
	// Closing a driver that is not open has no effect.
	Close()
}

// ErrNotInstalled means that the runtime library could
// not be initialized.
var ErrNotInstalled = errors.New("driver: runtime library unavailable")

// ErrNoDevice means that no HMD could be found.
var ErrNoDevice = errors.New("driver: no HMD found")

// ErrSwapchain represents an error related to a specific
// texture swap chain.
var ErrSwapchain = errors.New("driver: swap chain error")

// ErrMirror represents an error related to a mirror
// texture.
var ErrMirror = errors.New("driver: mirror texture error")

// ErrTracking means that tracking state could not be
// queried.
var ErrTracking = errors.New("driver: tracking unavailable")

// ErrSubmit means that the compositor rejected a frame.
var ErrSubmit = errors.New("driver: frame submission failed")

// ErrFatal means that the runtime is in an unrecoverable
// state. Upon encountering such an error, the application
// must destroy everything that it created using the
// session and then call the driver's Close method.
var ErrFatal = errors.New("driver: fatal error")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages, and then
// call this function. As such, drivers that do not
// register themselves on init will not be considered
// for selection.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			log.Printf("[!] driver '%s' replaced", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	log.Printf("driver '%s' registered", drv.Name())
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers []Driver = make([]Driver, 0, 1)
)
