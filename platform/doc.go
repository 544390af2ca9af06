// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package platform binds drivers to the devices described by the platform
// description.
//
// A Device carries memory and interrupt resources. Drivers acquire them
// through a Scope, which releases everything it holds in reverse order, once,
// either when the driver gives up during Probe or when the device is unbound.
//
// The package registers the "platform" driver in
// periph.io/x/conn/v3/driver/driverreg. It populates devices from
// /sys/firmware/fdt and binds every registered Driver whose compatible string
// matches.
package platform
