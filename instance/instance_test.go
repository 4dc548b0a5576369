// Copyright 2026 The vkren authors. All rights reserved.

package instance

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"vkren/wsi"
)

// testLoader implements Loader without a driver and records the
// order of calls.
type testLoader struct {
	calls     []string
	version   uint32
	exts      []string
	extsErr   error
	openErr   error
	createErr error
	msgrErr   error
	info      *CreateInfo
	minfo     *MessengerInfo
}

var tRaw = RawInstance(unsafe.Pointer(new(int)))

func newTestLoader() *testLoader {
	return &testLoader{
		version: V13.Uint32(),
		exts: []string{
			extSurface, extAndroidSurface, extWaylandSurface, extWin32Surface,
			extXCBSurface, extXlibSurface, extMetalSurface,
			extPortabilityEnumeration, extPhysicalDeviceProps2, extDebugUtils,
		},
	}
}

func (l *testLoader) Open() error {
	l.calls = append(l.calls, "open")
	return l.openErr
}

func (l *testLoader) Name() string { return "test" }

func (l *testLoader) Version() (uint32, error) { return l.version, nil }

func (l *testLoader) Extensions() ([]string, error) { return l.exts, l.extsErr }

func (l *testLoader) CreateInstance(info *CreateInfo) (RawInstance, error) {
	l.calls = append(l.calls, "createInstance")
	l.info = info
	if l.createErr != nil {
		return nil, l.createErr
	}
	return tRaw, nil
}

func (l *testLoader) DestroyInstance(inst RawInstance) {
	l.calls = append(l.calls, "destroyInstance")
}

func (l *testLoader) CreateMessenger(inst RawInstance, info *MessengerInfo) (RawMessenger, error) {
	l.calls = append(l.calls, "createMessenger")
	l.minfo = info
	if l.msgrErr != nil {
		return 0, l.msgrErr
	}
	return 1, nil
}

func (l *testLoader) DestroyMessenger(inst RawInstance, msgr RawMessenger) {
	l.calls = append(l.calls, "destroyMessenger")
}

func (l *testLoader) Close() { l.calls = append(l.calls, "close") }

// testDisplay reports a fixed display handle.
type testDisplay struct{ p wsi.Platform }

func (d testDisplay) DisplayHandle() (wsi.DisplayHandle, error) {
	return wsi.DisplayHandle{Platform: d.p}, nil
}

func contains(strs []string, s string) bool {
	for _, x := range strs {
		if x == s {
			return true
		}
	}
	return false
}

func TestVersions(t *testing.T) {
	for _, v := range []APIVersion{V10, V11, V12, V13} {
		ld := newTestLoader()
		inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, v)
		if err != nil {
			t.Fatalf("NewWithLoader(%s): %v", v, err)
		}
		if x := inst.Version(); x != v {
			t.Errorf("inst.Version()\nhave %s\nwant %s", x, v)
		}
		if u := ld.info.APIVersion; u != v.Uint32() {
			t.Errorf("info.APIVersion\nhave %#x\nwant %#x", u, v.Uint32())
		}
		inst.Close()
	}
}

func TestDebugExtension(t *testing.T) {
	for _, c := range []struct {
		ds   DebugStrategy
		want bool
	}{
		{DebugIdle, false},
		{DebugPrintAll, true},
		{DebugPanicOnErrors, true},
	} {
		ld := newTestLoader()
		inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, c.ds, V11)
		if err != nil {
			t.Fatalf("NewWithLoader: %v", err)
		}
		if x := contains(ld.info.Extensions, extDebugUtils); x != c.want {
			t.Errorf("extensions contain %s\nhave %v\nwant %v", extDebugUtils, x, c.want)
		}
		inst.Close()
	}
}

func TestLayers(t *testing.T) {
	for _, c := range []struct {
		ds     DebugStrategy
		layers []string
	}{
		{DebugIdle, nil},
		{DebugPrintAll, []string{validationLayer}},
		{DebugPanicOnErrors, []string{validationLayer}},
	} {
		ld := newTestLoader()
		inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, c.ds, V11)
		if err != nil {
			t.Fatalf("NewWithLoader: %v", err)
		}
		if n := len(ld.info.Layers); n != len(c.layers) {
			t.Fatalf("len(info.Layers)\nhave %d\nwant %d", n, len(c.layers))
		}
		for i, s := range c.layers {
			if ld.info.Layers[i] != s {
				t.Errorf("info.Layers[%d]\nhave %s\nwant %s", i, ld.info.Layers[i], s)
			}
		}
		inst.Close()
	}
}

func TestPortabilityFlag(t *testing.T) {
	ld := newTestLoader()
	inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V11)
	if err != nil {
		t.Fatalf("NewWithLoader: %v", err)
	}
	defer inst.Close()
	if ld.info.Flags&FlagEnumeratePortability == 0 {
		t.Errorf("info.Flags\nhave %#x\nwant portability bit set", ld.info.Flags)
	}
	if !contains(ld.info.Extensions, extPortabilityEnumeration) {
		t.Errorf("extensions missing %s", extPortabilityEnumeration)
	}
	if !contains(ld.info.Extensions, extPhysicalDeviceProps2) {
		t.Errorf("extensions missing %s", extPhysicalDeviceProps2)
	}
}

func TestMessengerParams(t *testing.T) {
	ld := newTestLoader()
	inst, err := NewWithLoader(ld, testDisplay{wsi.Win32}, DebugPrintAll, V12)
	if err != nil {
		t.Fatalf("NewWithLoader: %v", err)
	}
	defer inst.Close()
	if ld.minfo == nil {
		t.Fatal("minfo\nhave nil\nwant non-nil")
	}
	if s, x := ld.minfo.Severities, SeverityError|SeverityWarning|SeverityInfo; s != x {
		t.Errorf("minfo.Severities\nhave %s\nwant %s", s, x)
	}
	if ty, x := ld.minfo.Types, TypeGeneral|TypeValidation|TypePerformance; ty != x {
		t.Errorf("minfo.Types\nhave %s\nwant %s", ty, x)
	}
	if ld.minfo.Callback == nil {
		t.Error("minfo.Callback\nhave nil\nwant non-nil")
	}
}

func TestTeardownOrder(t *testing.T) {
	ld := newTestLoader()
	inst, err := NewWithLoader(ld, testDisplay{wsi.Wayland}, DebugPanicOnErrors, V11)
	if err != nil {
		t.Fatalf("NewWithLoader: %v", err)
	}
	inst.Close()
	n := len(ld.calls)
	if n < 2 || ld.calls[n-2] != "destroyMessenger" || ld.calls[n-1] != "destroyInstance" {
		t.Errorf("teardown order\nhave %v\nwant ...destroyMessenger, destroyInstance", ld.calls)
	}
	// Closing again has no effect.
	inst.Close()
	if len(ld.calls) != n {
		t.Errorf("calls after second Close\nhave %v\nwant %v", ld.calls, ld.calls[:n])
	}
}

func TestOwnershipViolation(t *testing.T) {
	for _, ds := range []DebugStrategy{DebugIdle, DebugPrintAll, DebugPanicOnErrors} {
		ld := newTestLoader()
		inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, ds, V11)
		if err != nil {
			t.Fatalf("NewWithLoader: %v", err)
		}
		raw := inst.Acquire()
		if raw == nil {
			t.Fatal("inst.Acquire()\nhave nil\nwant non-nil")
		}
		func() {
			defer func() {
				if recover() == nil {
					t.Error("Close with acquired reference: no panic")
				}
			}()
			inst.Close()
		}()
		if contains(ld.calls, "destroyInstance") {
			t.Error("Close with acquired reference destroyed the instance")
		}
		inst.Release()
		inst.Close()
		if !contains(ld.calls, "destroyInstance") {
			t.Error("Close after Release did not destroy the instance")
		}
	}
}

func TestReleaseUnderflow(t *testing.T) {
	ld := newTestLoader()
	inst, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V10)
	if err != nil {
		t.Fatalf("NewWithLoader: %v", err)
	}
	defer inst.Close()
	defer func() {
		if recover() == nil {
			t.Error("Release without Acquire: no panic")
		}
	}()
	inst.Release()
}

func TestUnsupportedVersion(t *testing.T) {
	ld := newTestLoader()
	ld.version = V10.Uint32()
	if _, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V13); err == nil {
		t.Error("NewWithLoader with 1.0 loader, 1.3 requested\nhave nil error\nwant error")
	}
}

func TestVariantRejected(t *testing.T) {
	ld := newTestLoader()
	ld.version = makeVersion(1, 1, 3, 0)
	if _, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V10); err == nil {
		t.Error("NewWithLoader with variant loader\nhave nil error\nwant error")
	}
}

func TestMissingExtension(t *testing.T) {
	ld := newTestLoader()
	ld.exts = []string{extSurface, extPortabilityEnumeration, extPhysicalDeviceProps2}
	_, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V11)
	if err == nil {
		t.Fatal("NewWithLoader without xcb surface\nhave nil error\nwant error")
	}
	if !strings.Contains(err.Error(), extXCBSurface) {
		t.Errorf("error\nhave %v\nwant mention of %s", err, extXCBSurface)
	}
}

func TestCreateFailure(t *testing.T) {
	ld := newTestLoader()
	ld.createErr = errors.New("boom")
	if _, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugIdle, V11); err == nil {
		t.Error("NewWithLoader with failing creation\nhave nil error\nwant error")
	}
}

func TestMessengerFailure(t *testing.T) {
	ld := newTestLoader()
	ld.msgrErr = errors.New("boom")
	if _, err := NewWithLoader(ld, testDisplay{wsi.XCB}, DebugPrintAll, V11); err == nil {
		t.Fatal("NewWithLoader with failing messenger\nhave nil error\nwant error")
	}
	// The half-built instance must not leak.
	if !contains(ld.calls, "destroyInstance") {
		t.Errorf("calls\nhave %v\nwant destroyInstance after messenger failure", ld.calls)
	}
}

func TestNoSurfacePlatform(t *testing.T) {
	ld := newTestLoader()
	if _, err := NewWithLoader(ld, testDisplay{wsi.None}, DebugIdle, V11); err == nil {
		t.Error("NewWithLoader with platform none\nhave nil error\nwant error")
	}
	if contains(ld.calls, "createInstance") {
		t.Error("createInstance called despite negotiation failure")
	}
}

func TestForWindowDefaults(t *testing.T) {
	ld := newTestLoader()
	RegisterLoader(ld)
	defer func() {
		mu.Lock()
		loaders = loaders[:0]
		mu.Unlock()
	}()
	inst, err := ForWindow(testDisplay{wsi.XCB})
	if err != nil {
		t.Fatalf("ForWindow: %v", err)
	}
	if v := inst.Version(); v != V11 {
		t.Errorf("inst.Version()\nhave %s\nwant %s", v, V11)
	}
	if ld.minfo == nil {
		t.Error("ForWindow did not install a messenger")
	}
	if !contains(ld.info.Extensions, extDebugUtils) {
		t.Error("ForWindow did not request the debug extension")
	}
	raw := inst.Acquire()
	if raw != tRaw {
		t.Errorf("inst.Acquire()\nhave %v\nwant %v", raw, tRaw)
	}
	inst.Release()
	inst.Close()
	n := len(ld.calls)
	if n < 2 || ld.calls[n-2] != "destroyMessenger" || ld.calls[n-1] != "destroyInstance" {
		t.Errorf("teardown order\nhave %v\nwant ...destroyMessenger, destroyInstance", ld.calls)
	}
}
