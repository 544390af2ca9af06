// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinmux commits the pin function multiplexing requested by the
// platform description to the system controller GPIO mode register.
//
// The sysc node (compatible "ralink,rt3050-sysc") lists pin groups by name:
//
//	ralink,gpiomux = "i2c", "jtag";  // bits set in the mode register
//	ralink,pinmmux = "spi";          // bits cleared, applied after gpiomux
//	ralink,uartmux = "gpio";         // selects the UART field
//	ralink,wdtmux = <1>;             // routes the watchdog to the reset line
//
// Names are resolved against the per-SoC tables in a Config. Unknown names are
// logged and skipped.
package pinmux
