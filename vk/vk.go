// Copyright 2026 The vkren authors. All rights reserved.

// Package vk implements the instance loader using the Vulkan
// API. The library is located and loaded at run time.
// Importing the package registers the loader:
//
//	import _ "vkren/vk"
package vk

// #include <stdlib.h>
// #include "proc.h"
import "C"

import (
	"errors"
	"unsafe"

	"vkren/instance"
)

const loaderName = "vulkan"

// Loader implements instance.Loader over the system's Vulkan
// library.
type Loader struct {
	proc
}

func init() {
	instance.RegisterLoader(&Loader{})
}

// Open loads the Vulkan library and the global entry points.
// If it succeeds, further calls with the same receiver have no
// effect. Callers should assume that Open is not safe for
// parallel execution.
func (l *Loader) Open() error {
	if l.h != nil {
		return nil
	}
	if err := l.proc.open(); err != nil {
		return err
	}
	C.getGlobalProcs()
	return nil
}

// Name returns the loader name.
func (l *Loader) Name() string { return loaderName }

// Close unloads the library and invalidates all fetched
// symbols. Closing a loader that is not open has no effect.
// Callers should assume that Close is not safe for parallel
// execution.
func (l *Loader) Close() {
	if l.h == nil {
		return
	}
	C.clearProcs()
	l.proc.close()
}

// Version returns the packed instance-level API version that
// the loader supports. vkEnumerateInstanceVersion was added in
// 1.1; its absence means 1.0.
func (l *Loader) Version() (uint32, error) {
	if l.h == nil {
		return 0, errNotOpen
	}
	if C.enumerateInstanceVersion == nil {
		return uint32(C.VK_API_VERSION_1_0), nil
	}
	var v C.uint32_t
	if err := checkResult(C.vkEnumerateInstanceVersion(&v)); err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Extensions returns the names of all instance extensions
// advertised by the Vulkan implementation.
func (l *Loader) Extensions() ([]string, error) {
	if l.h == nil {
		return nil, errNotOpen
	}
	var n C.uint32_t
	if err := checkResult(C.vkEnumerateInstanceExtensionProperties(nil, &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	p := (*C.VkExtensionProperties)(C.malloc(C.sizeof_VkExtensionProperties * C.size_t(n)))
	defer C.free(unsafe.Pointer(p))
	if err := checkResult(C.vkEnumerateInstanceExtensionProperties(nil, &n, p)); err != nil {
		return nil, err
	}
	props := unsafe.Slice(p, n)
	exts := make([]string, n)
	for i, prop := range props {
		prop.extensionName[len(prop.extensionName)-1] = 0
		exts[i] = C.GoString(&prop.extensionName[0])
	}
	return exts, nil
}

// CreateInstance creates a new Vulkan instance and fetches the
// instance-level procs.
func (l *Loader) CreateInstance(info *instance.CreateInfo) (instance.RawInstance, error) {
	if l.h == nil {
		return nil, errNotOpen
	}
	appInfo := (*C.VkApplicationInfo)(C.malloc(C.sizeof_VkApplicationInfo))
	defer C.free(unsafe.Pointer(appInfo))
	*appInfo = C.VkApplicationInfo{
		sType:      C.VK_STRUCTURE_TYPE_APPLICATION_INFO,
		apiVersion: C.uint32_t(info.APIVersion),
	}
	extNames, extFree := cStrings(info.Extensions)
	defer extFree()
	layNames, layFree := cStrings(info.Layers)
	defer layFree()
	ci := C.VkInstanceCreateInfo{
		sType:                   C.VK_STRUCTURE_TYPE_INSTANCE_CREATE_INFO,
		flags:                   C.VkInstanceCreateFlags(info.Flags),
		pApplicationInfo:        appInfo,
		enabledLayerCount:       C.uint32_t(len(info.Layers)),
		ppEnabledLayerNames:     layNames,
		enabledExtensionCount:   C.uint32_t(len(info.Extensions)),
		ppEnabledExtensionNames: extNames,
	}
	var inst C.VkInstance
	if err := checkResult(C.vkCreateInstance(&ci, nil, &inst)); err != nil {
		return nil, err
	}
	C.getInstanceProcs(inst)
	return instance.RawInstance(unsafe.Pointer(inst)), nil
}

// DestroyInstance destroys an instance created by
// CreateInstance. All of its child objects must have been
// destroyed already.
func (l *Loader) DestroyInstance(inst instance.RawInstance) {
	C.vkDestroyInstance(C.VkInstance(unsafe.Pointer(inst)), nil)
}

// CreateMessenger creates a debug messenger attached to inst.
// The messenger's callback may fire on driver-owned threads from
// this point on.
func (l *Loader) CreateMessenger(inst instance.RawInstance, info *instance.MessengerInfo) (instance.RawMessenger, error) {
	if C.createDebugUtilsMessenger == nil {
		return 0, errNoExtension
	}
	user := registerCallback(info.Callback)
	var msgr C.VkDebugUtilsMessengerEXT
	res := C.createDebugMessenger(C.VkInstance(unsafe.Pointer(inst)),
		C.VkDebugUtilsMessageSeverityFlagsEXT(info.Severities),
		C.VkDebugUtilsMessageTypeFlagsEXT(info.Types),
		user, &msgr)
	if err := checkResult(res); err != nil {
		unregisterCallback(user)
		return 0, err
	}
	m := instance.RawMessenger(msgr)
	bindMessenger(m, user)
	return m, nil
}

// DestroyMessenger destroys a messenger created by
// CreateMessenger and releases its callback registration.
func (l *Loader) DestroyMessenger(inst instance.RawInstance, msgr instance.RawMessenger) {
	C.destroyDebugMessenger(C.VkInstance(unsafe.Pointer(inst)), C.VkDebugUtilsMessengerEXT(msgr))
	unbindMessenger(msgr)
}

// cStrings creates an array of C strings that matches the
// contents of strs.
// Call the free closure to deallocate the array and strings.
func cStrings(strs []string) (names **C.char, free func()) {
	if len(strs) == 0 {
		return nil, func() {}
	}
	names = (**C.char)(C.malloc(C.size_t(unsafe.Sizeof(*names)) * C.size_t(len(strs))))
	s := unsafe.Slice(names, len(strs))
	for i, e := range strs {
		s[i] = C.CString(e)
	}
	return names, func() {
		for _, cs := range s {
			C.free(unsafe.Pointer(cs))
		}
		C.free(unsafe.Pointer(names))
	}
}

// checkResult returns an error derived from a VkResult value.
// If such value does not indicate an error, it returns nil
// instead.
func checkResult(res C.VkResult) error {
	if res >= 0 {
		// Not an error: VK_ERROR_* values are all negative.
		return nil
	}
	switch res {
	case C.VK_ERROR_OUT_OF_HOST_MEMORY:
		return errNoHostMemory
	case C.VK_ERROR_OUT_OF_DEVICE_MEMORY:
		return errNoDeviceMemory
	case C.VK_ERROR_INITIALIZATION_FAILED:
		return errInitFailed
	case C.VK_ERROR_LAYER_NOT_PRESENT:
		return errNoLayer
	case C.VK_ERROR_EXTENSION_NOT_PRESENT:
		return errNoExtension
	case C.VK_ERROR_INCOMPATIBLE_DRIVER:
		return errDriverCompat
	}
	return errUnknown
}

// Common Vulkan errors (VK_ERROR_*).
var (
	errNotOpen        = errors.New("vk: loader not open")
	errNoHostMemory   = errors.New("vk: out of host memory")
	errNoDeviceMemory = errors.New("vk: out of device memory")
	errInitFailed     = errors.New("vk: initialization failed")
	errNoLayer        = errors.New("vk: layer not present")
	errNoExtension    = errors.New("vk: extension not present")
	errDriverCompat   = errors.New("vk: incompatible driver")
	errUnknown        = errors.New("vk: unknown error")
)
