// Copyright 2026 The vkren authors. All rights reserved.

package wsi

import (
	"testing"
)

type tHandler struct {
	closes, resizes, redraws int
}

func (h *tHandler) WindowClose(Window)            { h.closes++ }
func (h *tHandler) WindowResize(Window, int, int) { h.resizes++ }
func (h *tHandler) WindowRedraw(Window)           { h.redraws++ }

func TestWSI(t *testing.T) {
	var h tHandler
	SetWindowHandler(&h)
	defer SetWindowHandler(nil)
	switch PlatformInUse() {
	case None:
		win, err := NewWindow(480, 360, "Will fail")
		if win != nil || err != errMissing {
			t.Fatalf("NewWindow: win, err\nhave %v, %v\nwant nil, %v", win, err, errMissing)
		}
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
		// Dummy Dispatch does nothing.
		Dispatch()
		// Dummy SetAppName does nothing.
		SetAppName("Won't be displayed")
	default:
		win, err := NewWindow(480, 360, "My window")
		if err != nil {
			t.Logf("NewWindow (error): %v", err)
			return
		}
		defer win.Close()
		if n := len(Windows()); n != 1 {
			t.Fatalf("len(Windows())\nhave %v\nwant 1", n)
		}
		if w, x := win.Width(), 480; w != x {
			t.Fatalf("win.Width()\nhave %v\nwant %v", w, x)
		}
		if s, x := win.Title(), "My window"; s != x {
			t.Fatalf("win.Title()\nhave %v\nwant %v", s, x)
		}
		dh, err := win.DisplayHandle()
		if err != nil {
			t.Fatalf("win.DisplayHandle(): %v", err)
		}
		if dh.Platform != PlatformInUse() {
			t.Fatalf("dh.Platform\nhave %v\nwant %v", dh.Platform, PlatformInUse())
		}
		win.Map()
		win.RequestRedraw()
		Dispatch()
		if h.redraws != 1 {
			t.Fatalf("h.redraws\nhave %v\nwant 1", h.redraws)
		}
		// The request is one-shot until re-requested.
		Dispatch()
		if h.redraws != 1 {
			t.Fatalf("h.redraws\nhave %v\nwant 1", h.redraws)
		}
		win.Unmap()
	}
}

func TestPlatformString(t *testing.T) {
	for _, c := range []struct {
		p Platform
		s string
	}{
		{None, "none"},
		{Android, "android"},
		{Wayland, "wayland"},
		{Win32, "win32"},
		{XCB, "xcb"},
		{Xlib, "xlib"},
		{Metal, "metal"},
		{Platform(-1), "invalid platform"},
	} {
		if s := c.p.String(); s != c.s {
			t.Errorf("Platform(%d).String()\nhave %v\nwant %v", int(c.p), s, c.s)
		}
	}
}
