// Copyright 2026 The vkren authors. All rights reserved.

package instance

import (
	"errors"
	"log"
	"sync"
	"unsafe"
)

// RawInstance is the native, dispatchable VkInstance handle.
// Downstream consumers receive it through Instance.Acquire and
// must not destroy it themselves.
type RawInstance unsafe.Pointer

// RawMessenger is the native VkDebugUtilsMessengerEXT handle.
type RawMessenger uint64

// FlagEnumeratePortability is the instance creation flag that
// enables portability enumeration
// (VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR).
const FlagEnumeratePortability uint32 = 0x1

// CreateInfo holds the parameters for instance creation.
// Extension and layer order does not affect semantics and
// duplicates are tolerated by loaders.
type CreateInfo struct {
	// APIVersion packed as by APIVersion.Uint32.
	APIVersion uint32
	Extensions []string
	Layers     []string
	Flags      uint32
}

// MessengerInfo holds the parameters for debug messenger
// creation.
type MessengerInfo struct {
	Severities DebugSeverity
	Types      DebugType
	Callback   DebugCallback
}

// Loader is the interface to a platform Vulkan loader.
// The vk package provides the real implementation over the
// system library.
type Loader interface {
	// Open loads the underlying library and the global entry
	// points. If it succeeds, further calls with the same
	// receiver have no effect.
	Open() error

	// Name returns the loader name.
	// It must not cause the loader to be opened.
	Name() string

	// Version returns the packed instance-level API version
	// that the loader supports.
	Version() (uint32, error)

	// Extensions returns the names of the instance extensions
	// advertised by the implementation.
	Extensions() ([]string, error)

	// CreateInstance creates a new instance.
	CreateInstance(info *CreateInfo) (RawInstance, error)

	// DestroyInstance destroys an instance created by
	// CreateInstance. All of the instance's child objects
	// must have been destroyed already.
	DestroyInstance(inst RawInstance)

	// CreateMessenger creates a debug messenger attached to
	// inst. The callback may fire on loader-owned threads from
	// this point on.
	CreateMessenger(inst RawInstance, info *MessengerInfo) (RawMessenger, error)

	// DestroyMessenger destroys a messenger created by
	// CreateMessenger.
	DestroyMessenger(inst RawInstance, msgr RawMessenger)

	// Close unloads the library and invalidates all fetched
	// symbols. Closing a loader that is not open has no effect.
	Close()
}

// ErrNotInstalled means that a platform-specific library
// required for bootstrap is not present in the system.
var ErrNotInstalled = errors.New("instance: missing required library")

// ErrNoLoader means that no Loader implementation was
// registered.
var ErrNoLoader = errors.New("instance: no loader registered")

// Loaders returns the registered Loaders.
// Client code imports specific loader packages, which register
// themselves on init.
func Loaders() []Loader {
	mu.Lock()
	defer mu.Unlock()
	lds := make([]Loader, len(loaders))
	copy(lds, loaders)
	return lds
}

// RegisterLoader registers a Loader.
// Loader implementations are expected to call RegisterLoader
// exactly once, from an init function.
// If a loader with the same name has already been registered,
// it will be replaced by ld.
func RegisterLoader(ld Loader) {
	mu.Lock()
	defer mu.Unlock()
	for i := range loaders {
		if loaders[i].Name() == ld.Name() {
			loaders[i] = ld
			log.Printf("[!] loader '%s' replaced", ld.Name())
			return
		}
	}
	loaders = append(loaders, ld)
	log.Printf("loader '%s' registered", ld.Name())
}

// defaultLoader returns the loader that New will use.
func defaultLoader() (Loader, error) {
	mu.Lock()
	defer mu.Unlock()
	if len(loaders) == 0 {
		return nil, ErrNoLoader
	}
	return loaders[0], nil
}

// Variables used for loader registration.
var (
	mu      sync.Mutex
	loaders = make([]Loader, 0, 1)
)
