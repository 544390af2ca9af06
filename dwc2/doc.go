// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dwc2 binds the Synopsys DesignWare USB 2.0 Hi-Speed On-The-Go
// controller found in Ralink SoCs.
//
// The controller is described by a "snps,dwc2" device tree node. Importing
// the package registers its platform driver; the "platform" host driver
// binds it.
//
// Core tunables may be overridden with the device tree properties listed in
// CoreParams; each is a single 32 bit cell.
package dwc2
