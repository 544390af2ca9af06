// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mmio maps physical register blocks into the process and accesses
// them as 32 bits words.
//
// DevMem maps through /dev/mem, which requires root or CAP_SYS_RAWIO and a
// kernel without CONFIG_STRICT_DEVMEM for the ranges used.
package mmio
