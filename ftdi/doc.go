// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftdi reads the EEPROM user area of FTDI USB adapters.
//
// Boards being brought up over a FTDI serial cable may keep their factory
// configuration in the adapter's EEPROM user area instead of a flash
// partition. The user area of the adapter at index N is exposed as the
// partition "ftdi:N".
//
// Use build tag periph_host_ralink_debug to enable verbose debugging.
//
// # Datasheets
//
// http://www.ftdichip.com/Support/Documents/DataSheets/ICs/DS_FT232R.pdf
//
// http://www.ftdichip.com/Support/Documents/DataSheets/ICs/DS_FT232H.pdf
package ftdi
