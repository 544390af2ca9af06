// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"os"
	"strconv"
	"strings"
)

// DefaultBase is the physical address of the system controller as per
// datasheet.
const DefaultBase = 0x10000000

// syscSize is the span of the sysc registers used here.
const syscSize = 0x100

// BaseAddress queries the virtual file system to retrieve the base address
// of the system controller.
//
// Defaults to DefaultBase if it could not query the file system.
func BaseAddress() uint64 {
	return getBaseAddress("/sys/bus/platform/devices")
}

func getBaseAddress(devicesDir string) uint64 {
	items, err := os.ReadDir(devicesDir)
	if err != nil {
		return DefaultBase
	}
	for _, item := range items {
		if address, ok := extractBaseAddress(item); ok {
			return address
		}
	}
	return DefaultBase
}

// extractBaseAddress parses device entries named "<hex address>.sysc" or
// "<hex address>.syscon".
func extractBaseAddress(item os.DirEntry) (uint64, bool) {
	if item.IsDir() {
		return 0, false
	}
	parts := strings.SplitN(item.Name(), ".", 2)
	if len(parts) != 2 || (parts[1] != "sysc" && parts[1] != "syscon") {
		return 0, false
	}
	address, err := strconv.ParseUint(parts[0], 16, 64)
	if err != nil {
		return 0, false
	}
	return address, true
}
