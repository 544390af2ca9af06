// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ralink exposes the Ralink / MediaTek MIPS SoC system controller.
//
// The "ralink" driver identifies the chip from the sysc identity registers,
// detects the CPU clock and commits the pin multiplexing requested by the
// device tree.
//
// # Datasheet
//
// MT7620 Programming Guide, "System Control" chapter.
package ralink
