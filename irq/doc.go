// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package irq registers interrupt handlers for platform devices.
//
// On Linux, interrupts reach userspace through the UIO framework: the kernel
// masks the line when it fires and a read on /dev/uioN returns the event
// count. Writing 1 to the same file unmasks the line again.
package irq
