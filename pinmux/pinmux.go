// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinmux

import (
	"log"

	"periph.io/x/conn/v3/pin"
	"periph.io/x/ralink/v3/mmio"
	"periph.io/x/ralink/v3/of"
)

// Platform description of the system controller.
const (
	Compatible  = "ralink,rt3050-sysc"
	PropEnable  = "ralink,gpiomux"
	PropDisable = "ralink,pinmmux"
	PropUART    = "ralink,uartmux"
	PropWDT     = "ralink,wdtmux"
)

// RegGPIOMode is the offset of the GPIO mode register in the sysc block.
const RegGPIOMode = 0x60

// FuncGPIO is reported by FuncOf for a line in GPIO mode.
const FuncGPIO pin.Func = "GPIO"

// WatchdogResetter routes the watchdog output to the SoC reset line.
type WatchdogResetter interface {
	ResetWatchdog()
}

// WatchdogFunc adapts a function to WatchdogResetter.
type WatchdogFunc func()

// ResetWatchdog implements WatchdogResetter.
func (f WatchdogFunc) ResetWatchdog() {
	f()
}

// Config describes the multiplexing capabilities of one SoC variant.
//
// It is read-only after initialization.
type Config struct {
	// Mode lists the groups of the general mode bits.
	Mode Table
	// UART lists the values of the UART mode field.
	UART      Table
	UARTShift uint
	UARTMask  uint32
	// WDTReset is nil when the SoC can't route the watchdog.
	WDTReset WatchdogResetter
}

// Apply resolves the requests of the sysc node found in f and writes the
// resulting mode to reg.
//
// It returns false without touching reg when there is no sysc node; the
// feature doesn't apply to the platform. Otherwise exactly one register
// write happens, even if no request resolved.
func (c *Config) Apply(f of.Finder, reg mmio.Register) bool {
	n := f.FindCompatible(Compatible)
	if n == nil {
		return false
	}
	reg.Write32(RegGPIOMode, c.Resolve(n))
	return true
}

// Resolve computes the mode register value requested by n.
//
// Disabled groups are cleared after every enabled group is set so a disable
// always wins. Both lists resolve against the general table.
func (c *Config) Resolve(n of.Source) uint32 {
	var mode uint32
	for _, name := range of.ReadStrings(n, PropEnable) {
		if g, ok := c.Mode.Lookup(name); ok && g.Mask != 0 {
			mode |= g.Mask
			logf("pinmux: registered gpiomux %q", name)
		} else {
			log.Printf("pinmux: failed to load %q", name)
		}
	}
	for _, name := range of.ReadStrings(n, PropDisable) {
		if g, ok := c.Mode.Lookup(name); ok && g.Mask != 0 {
			mode &^= g.Mask
			logf("pinmux: registered pinmux %q", name)
		} else {
			log.Printf("pinmux: failed to load group %q", name)
		}
	}
	if uart, ok := of.ReadString(n, PropUART); ok {
		mode |= c.UARTMask << c.UARTShift
		if g, ok := c.UART.Lookup(uart); ok && g.Mask != 0 {
			mode &^= g.Mask << c.UARTShift
			logf("pinmux: registered uartmux %q", uart)
		} else {
			logf("pinmux: registered uartmux \"gpio\"")
		}
	}
	if of.ReadFlag(n, PropWDT) && c.WDTReset != nil {
		c.WDTReset.ResetWatchdog()
	}
	return mode
}

// FuncOf returns the function of a GPIO line covered by the general table
// under mode.
//
// A line whose group bits are set in mode is in GPIO mode. Lines outside the
// general table return pin.FuncNone.
func (c *Config) FuncOf(line int, mode uint32) pin.Func {
	for _, g := range c.Mode {
		if g.Mask == 0 || !g.Contains(line) {
			continue
		}
		if mode&g.Mask == g.Mask {
			return FuncGPIO
		}
		return pin.Func(g.Name)
	}
	return pin.FuncNone
}
