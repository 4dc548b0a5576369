// Copyright 2026 The vkren authors. All rights reserved.

package instance

import (
	"fmt"

	"vkren/wsi"
)

// Instance extensions.
const (
	extSurface        = "VK_KHR_surface"
	extAndroidSurface = "VK_KHR_android_surface"
	extWaylandSurface = "VK_KHR_wayland_surface"
	extWin32Surface   = "VK_KHR_win32_surface"
	extXCBSurface     = "VK_KHR_xcb_surface"
	extXlibSurface    = "VK_KHR_xlib_surface"
	extMetalSurface   = "VK_EXT_metal_surface"

	// Portability pair, so that implementations that only
	// conditionally expose non-conforming devices can still
	// be enumerated.
	extPortabilityEnumeration = "VK_KHR_portability_enumeration"
	extPhysicalDeviceProps2   = "VK_KHR_get_physical_device_properties2"

	extDebugUtils = "VK_EXT_debug_utils"
)

// RequiredExtensions returns the instance extensions needed to
// create a surface for the given display handle, the portability
// pair, and the debug-utils extension when ds is not idle.
// It is a pure function of its inputs; duplicates never occur in
// its output. Bootstrap cannot proceed when it fails.
func RequiredExtensions(dh wsi.DisplayHandle, ds DebugStrategy) ([]string, error) {
	var exts []string
	switch dh.Platform {
	case wsi.Wayland:
		exts = []string{extSurface, extWaylandSurface}
	case wsi.XCB:
		exts = []string{extSurface, extXCBSurface}
	case wsi.Xlib:
		exts = []string{extSurface, extXlibSurface}
	case wsi.Win32:
		exts = []string{extSurface, extWin32Surface}
	case wsi.Metal:
		exts = []string{extSurface, extMetalSurface}
	case wsi.Android:
		exts = []string{extSurface, extAndroidSurface}
	default:
		return nil, fmt.Errorf("instance: no surface extensions for platform %s", dh.Platform)
	}
	exts = append(exts, extPortabilityEnumeration, extPhysicalDeviceProps2)
	if !ds.Idle() {
		exts = append(exts, extDebugUtils)
	}
	return exts, nil
}
