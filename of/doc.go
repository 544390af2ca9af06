// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package of queries the platform description (open firmware flattened
// device tree) exposed by the kernel.
//
// The tree is decoded with github.com/u-root/u-root/pkg/dt. Only the
// properties used by the drivers in this module are interpreted: string
// lists, single big endian cells, flags and phandles.
//
// Property reads distinguish a missing property from one that is present but
// encoded with the wrong width, see State.
package of
