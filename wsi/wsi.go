// Copyright 2026 The vkren authors. All rights reserved.

// Package wsi provides window system integration for Vulkan
// instance bootstrap.
// Because a system need not have a window system, wsi is
// conditionally supported. Window creation and event dispatch
// must happen on the main thread.
package wsi

import (
	"errors"
)

// Window is the interface that defines a drawable window.
// The purpose of a window is to provide a surface into which
// a GPU can draw, and to identify the display connection that
// instance creation must negotiate surface extensions for.
type Window interface {
	// Map makes the window visible.
	Map() error

	// Unmap hides the window.
	Unmap() error

	// Resize resizes the window.
	Resize(width, height int) error

	// SetTitle sets the window's title.
	SetTitle(title string) error

	// RequestRedraw asks that the window be redrawn.
	// The request is delivered by Dispatch to the window
	// handler's WindowRedraw method.
	RequestRedraw()

	// DisplayHandle returns the handle of the display
	// connection that the window was created on.
	DisplayHandle() (DisplayHandle, error)

	// Close closes the window.
	Close()

	// Width returns the window's width.
	Width() int

	// Height returns the window's height.
	Height() int

	// Title returns the window's title.
	Title() string
}

// DisplayHandle identifies a display connection.
// It is an opaque, platform-specific value; callers use it only
// to decide which surface extensions an instance will need.
type DisplayHandle struct {
	// Platform that owns the display.
	Platform Platform

	// Display is the native connection handle, on platforms
	// that expose one. It may be zero.
	Display uintptr
}

// NewWindow creates a new window.
func NewWindow(width, height int, title string) (Window, error) {
	if windowCount >= MaxWindows {
		return nil, errors.New("wsi: too many windows")
	}
	win, err := newWindow(width, height, title)
	if err != nil {
		return nil, err
	}
	for i := range createdWindows {
		if createdWindows[i] == nil {
			createdWindows[i] = win
			windowCount++
			break
		}
	}
	return win, nil
}

var newWindow func(int, int, string) (Window, error)

// The maximum number of windows that can exist at any
// given time.
const MaxWindows = 16

// Windows returns all created windows.
// The returned value becomes out of date after calls to
// NewWindow and Window.Close.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	windowCount    int
	createdWindows [MaxWindows]Window
)

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowClose is called when closing of a window is
	// requested.
	WindowClose(win Window)

	// WindowResize is called when a window is resized.
	WindowResize(win Window, newWidth, newHeight int)

	// WindowRedraw is called when a redraw requested via
	// Window.RequestRedraw is due.
	WindowRedraw(win Window)
}

// SetWindowHandler sets the global WindowHandler.
func SetWindowHandler(wh WindowHandler) {
	windowHandler = wh
}

var windowHandler WindowHandler

// Dispatch dispatches queued events.
func Dispatch() {
	dispatch()
}

var dispatch func()

// AppName returns the string used to identify the application.
// Its use is platform-specific.
func AppName() string {
	return appName
}

// SetAppName updates the string used to identify the
// application.
func SetAppName(s string) {
	setAppName(s)
	appName = s
}

var (
	appName    string
	setAppName func(string)
)

// Platform identifies an underlying platform used to
// implement wsi.
type Platform int

// Platforms.
const (
	// None means that wsi is not available.
	// In this case, calls to NewWindow will
	// always fail, and calls to Dispatch
	// will do nothing.
	None Platform = iota
	Android
	Wayland
	Win32
	XCB
	Xlib
	Metal
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case None:
		return "none"
	case Android:
		return "android"
	case Wayland:
		return "wayland"
	case Win32:
		return "win32"
	case XCB:
		return "xcb"
	case Xlib:
		return "xlib"
	case Metal:
		return "metal"
	}
	return "invalid platform"
}

// PlatformInUse identifies the underlying platform which
// wsi is using.
func PlatformInUse() Platform {
	return platform
}

var platform Platform
