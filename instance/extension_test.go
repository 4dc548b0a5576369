// Copyright 2026 The vkren authors. All rights reserved.

package instance

import (
	"testing"

	"vkren/wsi"
)

func TestRequiredExtensions(t *testing.T) {
	for _, c := range []struct {
		platform wsi.Platform
		surface  string
	}{
		{wsi.Wayland, extWaylandSurface},
		{wsi.XCB, extXCBSurface},
		{wsi.Xlib, extXlibSurface},
		{wsi.Win32, extWin32Surface},
		{wsi.Metal, extMetalSurface},
		{wsi.Android, extAndroidSurface},
	} {
		dh := wsi.DisplayHandle{Platform: c.platform}
		exts, err := RequiredExtensions(dh, DebugIdle)
		if err != nil {
			t.Fatalf("RequiredExtensions(%s): %v", c.platform, err)
		}
		want := []string{extSurface, c.surface, extPortabilityEnumeration, extPhysicalDeviceProps2}
		if len(exts) != len(want) {
			t.Fatalf("RequiredExtensions(%s)\nhave %v\nwant %v", c.platform, exts, want)
		}
		for i := range want {
			if exts[i] != want[i] {
				t.Errorf("RequiredExtensions(%s)[%d]\nhave %s\nwant %s", c.platform, i, exts[i], want[i])
			}
		}
	}
}

func TestRequiredExtensionsDebug(t *testing.T) {
	dh := wsi.DisplayHandle{Platform: wsi.XCB}
	for _, c := range []struct {
		ds   DebugStrategy
		want bool
	}{
		{DebugIdle, false},
		{DebugPrintAll, true},
		{DebugPanicOnErrors, true},
	} {
		exts, err := RequiredExtensions(dh, c.ds)
		if err != nil {
			t.Fatalf("RequiredExtensions: %v", err)
		}
		if x := contains(exts, extDebugUtils); x != c.want {
			t.Errorf("contains %s\nhave %v\nwant %v", extDebugUtils, x, c.want)
		}
		// The debug extension, when present, comes after the
		// portability pair.
		if c.want && exts[len(exts)-1] != extDebugUtils {
			t.Errorf("last extension\nhave %s\nwant %s", exts[len(exts)-1], extDebugUtils)
		}
	}
}

func TestRequiredExtensionsNoPlatform(t *testing.T) {
	dh := wsi.DisplayHandle{Platform: wsi.None}
	if exts, err := RequiredExtensions(dh, DebugIdle); err == nil {
		t.Errorf("RequiredExtensions(none)\nhave %v, nil\nwant nil, error", exts)
	}
}
