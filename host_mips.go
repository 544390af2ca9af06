// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build mips || mipsle

package host

import (
	// Make sure the SoC driver is registered.
	_ "periph.io/x/ralink/v3/ralink"
)
