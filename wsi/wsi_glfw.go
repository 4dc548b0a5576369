// Copyright 2026 The vkren authors. All rights reserved.

//go:build (linux && !android) || windows || (darwin && !ios)

package wsi

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	platform = detectPlatform()
	if platform == None {
		initDummy()
		return
	}
	newWindow = newWindowGLFW
	dispatch = dispatchGLFW
	setAppName = setAppNameGLFW
}

// detectPlatform guesses the platform that glfw will use.
// Wayland needs a wayland-enabled build of the glfw bindings,
// so X is preferred unless explicitly requested.
func detectPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Win32
	case "darwin":
		return Metal
	default:
		if os.Getenv("VKREN_USE_WAYLAND") != "" && os.Getenv("WAYLAND_DISPLAY") != "" {
			return Wayland
		}
		if os.Getenv("DISPLAY") != "" {
			// glfw's Vulkan surfaces go through xcb on X11.
			return XCB
		}
		return None
	}
}

var glfwReady bool

// ensureGLFW initializes the glfw library on first use.
// It must be called from the main thread.
func ensureGLFW() error {
	if glfwReady {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("wsi: glfw init failed: %w", err)
	}
	glfwReady = true
	return nil
}

// winGLFW implements Window over a glfw window.
type winGLFW struct {
	win    *glfw.Window
	width  int
	height int
	title  string
	redraw bool
}

func newWindowGLFW(width, height int, title string) (Window, error) {
	if err := ensureGLFW(); err != nil {
		return nil, err
	}
	// The window will host a Vulkan surface; no GL context wanted.
	// It starts unmapped, as Map is a separate operation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfw.False)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("wsi: %w", err)
	}
	win := &winGLFW{win: w, width: width, height: height, title: title}
	w.SetCloseCallback(func(*glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(win)
		}
	})
	w.SetSizeCallback(func(_ *glfw.Window, newWidth, newHeight int) {
		win.width = newWidth
		win.height = newHeight
		if windowHandler != nil {
			windowHandler.WindowResize(win, newWidth, newHeight)
		}
	})
	return win, nil
}

func (w *winGLFW) Map() error {
	w.win.Show()
	return nil
}

func (w *winGLFW) Unmap() error {
	w.win.Hide()
	return nil
}

func (w *winGLFW) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("wsi: invalid window size")
	}
	w.win.SetSize(width, height)
	w.width = width
	w.height = height
	return nil
}

func (w *winGLFW) SetTitle(title string) error {
	w.win.SetTitle(title)
	w.title = title
	return nil
}

func (w *winGLFW) RequestRedraw() {
	w.redraw = true
}

func (w *winGLFW) DisplayHandle() (DisplayHandle, error) {
	if platform == None {
		return DisplayHandle{}, errMissing
	}
	// The connection pointer is not exposed by the glfw bindings.
	// The platform tag is all that extension negotiation needs.
	return DisplayHandle{Platform: platform}, nil
}

func (w *winGLFW) Close() {
	w.win.Destroy()
	closeWindow(w)
}

func (w *winGLFW) Width() int    { return w.width }
func (w *winGLFW) Height() int   { return w.height }
func (w *winGLFW) Title() string { return w.title }

func dispatchGLFW() {
	glfw.PollEvents()
	for _, win := range Windows() {
		w, ok := win.(*winGLFW)
		if !ok || !w.redraw {
			continue
		}
		w.redraw = false
		if windowHandler != nil {
			windowHandler.WindowRedraw(w)
		}
	}
}

// glfw has no application name; keep it for AppName only.
func setAppNameGLFW(string) {}
