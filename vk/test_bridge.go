// Copyright 2026 The vkren authors. All rights reserved.

//go:build !notest

package vk

// #include <stdlib.h>
// #include "proc.h"
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"vkren/instance"
)

// checkCStrings checks if a string slice matches a C string
// array. It assumes that the C array, if non-nil, contains
// len(strs) C strings.
func checkCStrings(strs []string, cstrs unsafe.Pointer) error {
	if cstrs == nil {
		if len(strs) == 0 {
			return nil
		}
		return fmt.Errorf("checkCStrings(%v, %v): unexpected nil C array", strs, cstrs)
	}
	css := unsafe.Slice((**C.char)(cstrs), len(strs))
	for i := range strs {
		s := []byte(strs[i] + "\x00")
		for j, b := range s {
			chr := *(*C.char)(unsafe.Add(unsafe.Pointer(css[i]), j))
			if byte(chr) != b {
				const errf = "checkCStrings(%v, %v): string mismatch: \"%s\"[%d] = %c (%#v), got %c (%#v)"
				return fmt.Errorf(errf, strs, cstrs, s, j, b, b, byte(chr), byte(chr))
			}
		}
	}
	return nil
}

// checkProcOpen checks that C.getInstanceProcAddr is not nil.
func checkProcOpen() error {
	if C.getInstanceProcAddr == nil {
		return errors.New("checkProcOpen: C.getInstanceProcAddr is nil")
	}
	return nil
}

// checkProcGlobal checks the values of function pointers that
// must be valid after the loader is opened.
func checkProcGlobal() error {
	if err := checkProcOpen(); err != nil {
		return err
	}
	if C.createInstance == nil {
		return errors.New("checkProcGlobal: C.createInstance is nil")
	}
	if C.enumerateInstanceExtensionProperties == nil {
		return errors.New("checkProcGlobal: C.enumerateInstanceExtensionProperties is nil")
	}
	return nil
}

// checkProcInstance checks the values of function pointers that
// must be valid after instance creation.
func checkProcInstance() error {
	if err := checkProcGlobal(); err != nil {
		return err
	}
	if C.destroyInstance == nil {
		return errors.New("checkProcInstance: C.destroyInstance is nil")
	}
	return nil
}

// tCallbackData builds a C callback data struct from the given
// fields and converts it back. Empty strings are passed as null
// pointers.
func tCallbackData(name string, num int32, msg string) *instance.DebugData {
	var data C.VkDebugUtilsMessengerCallbackDataEXT
	data.sType = C.VK_STRUCTURE_TYPE_DEBUG_UTILS_MESSENGER_CALLBACK_DATA_EXT
	if name != "" {
		cs := C.CString(name)
		defer C.free(unsafe.Pointer(cs))
		data.pMessageIdName = cs
	}
	data.messageIdNumber = C.int32_t(num)
	if msg != "" {
		cs := C.CString(msg)
		defer C.free(unsafe.Pointer(cs))
		data.pMessage = cs
	}
	return callbackData(&data)
}

// tNilCallbackData exercises callbackData with a nil pointer.
func tNilCallbackData() *instance.DebugData {
	return callbackData(nil)
}

// tDebugMessage invokes the messenger entry point as the C
// trampoline would, with no callback data.
func tDebugMessage(severity instance.DebugSeverity, types instance.DebugType, user unsafe.Pointer) bool {
	r := debugMessage(C.VkDebugUtilsMessageSeverityFlagBitsEXT(severity),
		C.VkDebugUtilsMessageTypeFlagsEXT(types), nil, user)
	return r == C.VK_TRUE
}

// checkProcClear checks the values of function pointers that
// must be invalid after the loader is closed.
func checkProcClear() error {
	if C.getInstanceProcAddr != nil {
		return errors.New("checkProcClear: C.getInstanceProcAddr is not nil")
	}
	if C.createInstance != nil {
		return errors.New("checkProcClear: C.createInstance is not nil")
	}
	if C.destroyInstance != nil {
		return errors.New("checkProcClear: C.destroyInstance is not nil")
	}
	return nil
}
