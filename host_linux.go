// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package host

import (
	// Make sure the platform bus and its device drivers are registered.
	_ "periph.io/x/ralink/v3/dwc2"
	_ "periph.io/x/ralink/v3/fon"
	_ "periph.io/x/ralink/v3/platform"
)
