// Copyright 2026 The vkren authors. All rights reserved.

// Eventdemo opens a window, creates a Vulkan instance for it
// and services window events until the window is closed.
package main

import (
	"log"
	"runtime"

	"vkren/instance"
	_ "vkren/vk"
	"vkren/wsi"
)

func init() { runtime.LockOSThread() }

type app struct {
	win  wsi.Window
	quit bool
}

func (a *app) WindowClose(win wsi.Window) {
	if win == a.win {
		a.quit = true
	}
}

func (a *app) WindowResize(win wsi.Window, newWidth, newHeight int) {
	log.Printf("resized to %dx%d", newWidth, newHeight)
}

func (a *app) WindowRedraw(win wsi.Window) {
	// Nothing is drawn yet; keep the redraw cycle going.
	win.RequestRedraw()
}

func main() {
	log.SetFlags(0)
	wsi.SetAppName("eventdemo")
	win, err := wsi.NewWindow(960, 540, "eventdemo")
	if err != nil {
		log.Fatalf("wsi.NewWindow: %v", err)
	}
	defer win.Close()
	inst, err := instance.ForWindow(win)
	if err != nil {
		log.Fatalf("instance.ForWindow: %v", err)
	}
	defer inst.Close()
	var a app
	a.win = win
	wsi.SetWindowHandler(&a)
	if err := win.Map(); err != nil {
		log.Fatalf("win.Map: %v", err)
	}
	win.RequestRedraw()
	for !a.quit {
		wsi.Dispatch()
	}
}
