// Copyright 2026 The vkren authors. All rights reserved.

// Package instance bootstraps a Vulkan instance for windowed
// applications: it negotiates the surface extensions a display
// requires, applies a debug strategy, creates the instance and
// tears it down in order.
package instance

import (
	"fmt"
	"sync/atomic"

	"vkren/wsi"
)

// validationLayer is the standard layer that the non-idle debug
// strategies enable.
const validationLayer = "VK_LAYER_KHRONOS_validation"

// Display is implemented by windowing collaborators that can
// report a platform display handle. It is the only data that
// bootstrap pulls from the windowing subsystem.
type Display interface {
	DisplayHandle() (wsi.DisplayHandle, error)
}

// Instance wraps a created Vulkan instance and its optional
// debug messenger. It records the version it was created with
// and may be shared, via Acquire/Release, with collaborators
// that need the raw handle without owning its lifecycle.
type Instance struct {
	ld      Loader
	raw     RawInstance
	vers    APIVersion
	msgr    RawMessenger
	dbg     bool
	borrows atomic.Int32
}

// New creates a Vulkan instance able to present on dp's display,
// using the registered loader.
// The bootstrap is synchronous and has no recovery path: each
// failure is terminal and retrying with the same parameters
// cannot succeed.
func New(dp Display, ds DebugStrategy, v APIVersion) (*Instance, error) {
	ld, err := defaultLoader()
	if err != nil {
		return nil, err
	}
	return NewWithLoader(ld, dp, ds, v)
}

// ForWindow creates an instance with defaults suited to
// development builds: version 1.1 and the panic-on-errors debug
// strategy, so that programming errors in downstream usage
// cannot be silently ignored.
func ForWindow(dp Display) (*Instance, error) {
	return New(dp, DebugPanicOnErrors, V11)
}

// NewWithLoader is like New with an explicit loader.
func NewWithLoader(ld Loader, dp Display, ds DebugStrategy, v APIVersion) (*Instance, error) {
	dh, err := dp.DisplayHandle()
	if err != nil {
		return nil, fmt.Errorf("instance: no display handle: %w", err)
	}
	exts, err := RequiredExtensions(dh, ds)
	if err != nil {
		return nil, err
	}
	var layers []string
	if !ds.Idle() {
		layers = []string{validationLayer}
	}
	if err := ld.Open(); err != nil {
		return nil, err
	}
	if err := checkVersion(ld, v); err != nil {
		return nil, err
	}
	if err := checkExtensions(ld, exts); err != nil {
		return nil, err
	}
	info := CreateInfo{
		APIVersion: v.Uint32(),
		Extensions: exts,
		Layers:     layers,
		Flags:      FlagEnumeratePortability,
	}
	raw, err := ld.CreateInstance(&info)
	if err != nil {
		return nil, fmt.Errorf("instance: creation failed: %w", err)
	}
	inst := &Instance{ld: ld, raw: raw, vers: v}
	if !ds.Idle() {
		minfo := MessengerInfo{
			Severities: debugSeverities,
			Types:      debugTypes,
			Callback:   ds.Callback(),
		}
		msgr, err := ld.CreateMessenger(raw, &minfo)
		if err != nil {
			ld.DestroyInstance(raw)
			return nil, fmt.Errorf("instance: messenger creation failed: %w", err)
		}
		inst.msgr = msgr
		inst.dbg = true
	}
	return inst, nil
}

// checkVersion verifies that the loader can create instances of
// version v. A loader that cannot report a version is treated as
// 1.0, since vkEnumerateInstanceVersion was introduced in 1.1.
func checkVersion(ld Loader, v APIVersion) error {
	u, err := ld.Version()
	if err != nil {
		u = V10.Uint32()
	}
	if isVariant(u) {
		// Do not support variants.
		return fmt.Errorf("instance: variant implementation (version %#x)", u)
	}
	if u < v.Uint32() {
		return fmt.Errorf("instance: version %s requested, loader supports %d.%d",
			v, versionMajor(u), versionMinor(u))
	}
	return nil
}

// checkExtensions verifies that exts is a subset of what the
// loader advertises.
func checkExtensions(ld Loader, exts []string) error {
	from, err := ld.Extensions()
	if err != nil {
		return fmt.Errorf("instance: cannot enumerate extensions: %w", err)
	}
extLoop:
	for _, e := range exts {
		for _, f := range from {
			if e == f {
				continue extLoop
			}
		}
		return fmt.Errorf("instance: required extension %s not present", e)
	}
	return nil
}

// Version returns the API version that was requested when the
// instance was created.
func (i *Instance) Version() APIVersion { return i.vers }

// Acquire returns a shared reference to the raw instance handle
// for collaborators that need it (device creation, surface
// creation). Every Acquire must be paired with a Release before
// the owner calls Close.
func (i *Instance) Acquire() RawInstance {
	i.borrows.Add(1)
	return i.raw
}

// Release returns a reference obtained with Acquire.
func (i *Instance) Release() {
	if i.borrows.Add(-1) < 0 {
		panic("instance: Release without matching Acquire")
	}
}

// Close destroys the instance. The debug messenger, if any, is a
// child object of the instance and is destroyed first.
// Closing while acquired references remain is a programming
// error and panics. Closing a closed instance has no effect.
func (i *Instance) Close() {
	if i == nil || i.raw == nil {
		return
	}
	if n := i.borrows.Load(); n != 0 {
		panic(fmt.Sprintf("instance: Close with %d acquired reference(s) outstanding", n))
	}
	if i.dbg {
		i.ld.DestroyMessenger(i.raw, i.msgr)
	}
	i.ld.DestroyInstance(i.raw)
	i.raw = nil
	i.msgr = 0
	i.dbg = false
	i.ld = nil
}
