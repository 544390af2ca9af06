// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fon reads the factory configuration of Fonera boards.
//
// The configuration is described by a "fon,config" device tree node whose
// "fon,config" property holds three cells: the phandle of the flash
// partition, the offset of the SKU and the offset of the board
// configuration.
//
// Once bound, the entries "sku", "mac", "serial" and "key" are available
// through Entry and published with expvar as "fon.<entry>".
package fon
