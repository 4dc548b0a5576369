// Copyright 2026 The vkren authors. All rights reserved.

package vk

// #include <windows.h>
// #include <stdlib.h>
// #include "proc.h"
import "C"

import (
	"unsafe"

	"vkren/instance"
)

// proc is responsible for loading and unloading the Vulkan
// library.
type proc struct {
	h C.HMODULE
}

// open loads the Vulkan library and fetches
// vkGetInstanceProcAddr.
func (p *proc) open() error {
	lib := C.CString("vulkan-1.dll")
	defer C.free(unsafe.Pointer(lib))
	h := C.LoadLibrary(lib)
	if h == nil {
		return instance.ErrNotInstalled
	}
	sym := C.CString("vkGetInstanceProcAddr")
	defer C.free(unsafe.Pointer(sym))
	f := C.GetProcAddress(h, sym)
	if f == nil {
		C.FreeLibrary(h)
		return instance.ErrNotInstalled
	}
	p.h = h
	C.getInstanceProcAddr = C.PFN_vkGetInstanceProcAddr(f)
	return nil
}

// close unloads the Vulkan library and invalidates all symbols.
func (p *proc) close() {
	if p.h != nil {
		C.FreeLibrary(p.h)
	}
	C.getInstanceProcAddr = nil
	*p = proc{}
}
