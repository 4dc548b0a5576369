// Copyright 2026 The vkren authors. All rights reserved.

package vk

// #include <stdlib.h>
// #include "proc.h"
import "C"

import (
	"sync"
	"unsafe"

	"vkren/instance"
)

// Messenger callbacks, keyed by the tag stored in pUserData.
// The driver invokes the trampoline on threads it owns,
// asynchronously with respect to everything else, hence the
// lock.
var callbacks struct {
	sync.Mutex
	next uintptr
	fns  map[uintptr]instance.DebugCallback
	user map[instance.RawMessenger]unsafe.Pointer
}

// registerCallback stores fn and returns a C allocation holding
// its tag, suitable for use as pUserData.
func registerCallback(fn instance.DebugCallback) unsafe.Pointer {
	callbacks.Lock()
	defer callbacks.Unlock()
	if callbacks.fns == nil {
		callbacks.fns = make(map[uintptr]instance.DebugCallback)
		callbacks.user = make(map[instance.RawMessenger]unsafe.Pointer)
	}
	callbacks.next++
	tag := callbacks.next
	callbacks.fns[tag] = fn
	p := C.malloc(C.size_t(unsafe.Sizeof(C.uintptr_t(0))))
	*(*C.uintptr_t)(p) = C.uintptr_t(tag)
	return p
}

// unregisterCallback undoes a registerCallback whose messenger
// was never created.
func unregisterCallback(user unsafe.Pointer) {
	callbacks.Lock()
	defer callbacks.Unlock()
	delete(callbacks.fns, uintptr(*(*C.uintptr_t)(user)))
	C.free(user)
}

// bindMessenger associates msgr with its pUserData allocation so
// that unbindMessenger can release it.
func bindMessenger(msgr instance.RawMessenger, user unsafe.Pointer) {
	callbacks.Lock()
	defer callbacks.Unlock()
	callbacks.user[msgr] = user
}

// unbindMessenger releases the callback registration of a
// destroyed messenger.
func unbindMessenger(msgr instance.RawMessenger) {
	callbacks.Lock()
	defer callbacks.Unlock()
	user := callbacks.user[msgr]
	if user == nil {
		return
	}
	delete(callbacks.user, msgr)
	delete(callbacks.fns, uintptr(*(*C.uintptr_t)(user)))
	C.free(user)
}

// debugMessage is called by the C trampoline installed as every
// messenger's pfnUserCallback. It runs on a driver-owned thread.
//
//export debugMessage
func debugMessage(severity C.VkDebugUtilsMessageSeverityFlagBitsEXT, types C.VkDebugUtilsMessageTypeFlagsEXT, data *C.VkDebugUtilsMessengerCallbackDataEXT, user unsafe.Pointer) C.VkBool32 {
	var fn instance.DebugCallback
	if user != nil {
		tag := uintptr(*(*C.uintptr_t)(user))
		callbacks.Lock()
		fn = callbacks.fns[tag]
		callbacks.Unlock()
	}
	if fn == nil {
		return C.VK_FALSE
	}
	if fn(instance.DebugSeverity(severity), instance.DebugType(types), callbackData(data)) {
		return C.VK_TRUE
	}
	return C.VK_FALSE
}

// callbackData converts the driver's callback data, tolerating
// null id-name/message pointers.
func callbackData(data *C.VkDebugUtilsMessengerCallbackDataEXT) *instance.DebugData {
	if data == nil {
		return nil
	}
	var d instance.DebugData
	if data.pMessageIdName != nil {
		d.MessageIDName = C.GoString(data.pMessageIdName)
	}
	d.MessageIDNumber = int32(data.messageIdNumber)
	if data.pMessage != nil {
		d.Message = C.GoString(data.pMessage)
	}
	return &d
}
