// Copyright 2026 The vkren authors. All rights reserved.

//go:build !((linux && !android) || windows || (darwin && !ios))

package wsi

func init() {
	initDummy()
}
