// Copyright 2026 The vkren authors. All rights reserved.

// Instdemo creates a window and a Vulkan instance suited to
// presenting to it, then tears both down.
package main

import (
	"log"
	"runtime"

	"vkren/instance"
	_ "vkren/vk"
	"vkren/wsi"
)

func init() { runtime.LockOSThread() }

func main() {
	log.SetFlags(0)
	wsi.SetAppName("instdemo")
	win, err := wsi.NewWindow(480, 270, "instdemo")
	if err != nil {
		log.Fatalf("wsi.NewWindow: %v", err)
	}
	defer win.Close()
	inst, err := instance.ForWindow(win)
	if err != nil {
		log.Fatalf("instance.ForWindow: %v", err)
	}
	log.Printf("created a %s instance on %s", inst.Version(), wsi.PlatformInUse())
	inst.Close()
}
