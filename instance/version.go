// Copyright 2026 The vkren authors. All rights reserved.

package instance

// APIVersion selects the Vulkan API version requested at
// instance creation.
type APIVersion int

// Supported API versions.
// These are the only versions an instance can be created with;
// arbitrary version composition is not supported.
const (
	V10 APIVersion = iota
	V11
	V12
	V13
)

// Uint32 returns v packed as VK_MAKE_API_VERSION would encode
// it, with variant and patch set to zero.
func (v APIVersion) Uint32() uint32 {
	switch v {
	case V10:
		return makeVersion(0, 1, 0, 0)
	case V11:
		return makeVersion(0, 1, 1, 0)
	case V12:
		return makeVersion(0, 1, 2, 0)
	case V13:
		return makeVersion(0, 1, 3, 0)
	}
	panic("instance: invalid APIVersion")
}

// String returns the version in major.minor form.
func (v APIVersion) String() string {
	switch v {
	case V10:
		return "1.0"
	case V11:
		return "1.1"
	case V12:
		return "1.2"
	case V13:
		return "1.3"
	}
	return "invalid version"
}

// makeVersion packs version numbers as VK_MAKE_API_VERSION does.
func makeVersion(variant, major, minor, patch uint32) uint32 {
	return variant<<29 | major<<22 | minor<<12 | patch
}

// versionMajor extracts the major version number from v.
// v must have been generated by VK_MAKE_API_VERSION.
func versionMajor(v uint32) int { return int(v >> 22 & 0x7f) }

// versionMinor extracts the minor version number from v.
// v must have been generated by VK_MAKE_API_VERSION.
func versionMinor(v uint32) int { return int(v >> 12 & 0x3ff) }

// versionPatch extracts the patch version number from v.
// v must have been generated by VK_MAKE_API_VERSION.
func versionPatch(v uint32) int { return int(v & 0xfff) }

// isVariant returns whether version v identifies a variant
// implementation of the Vulkan API.
// v must have been generated by VK_MAKE_API_VERSION.
func isVariant(v uint32) bool { return v>>29 != 0 }
