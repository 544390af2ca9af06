// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"fmt"
	"sort"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/ralink/v3/mmio"
)

const (
	cpuClkSelShift = 24
	cpuClkSelMask  = 0x1
)

// Clocks are the rates of the SoC clocks.
type Clocks struct {
	CPU physic.Frequency
	Sys physic.Frequency
	// Fixed holds the peripheral clocks keyed by device name.
	Fixed map[string]physic.Frequency
}

// Rate returns the rate of the named clock.
//
// "cpu" and "sys" name the core clocks, anything else a peripheral.
func (c *Clocks) Rate(name string) (physic.Frequency, bool) {
	switch name {
	case "cpu":
		return c.CPU, c.CPU != 0
	case "sys":
		return c.Sys, c.Sys != 0
	}
	f, ok := c.Fixed[name]
	return f, ok
}

// Names returns the peripheral clock names, sorted.
func (c *Clocks) Names() []string {
	out := make([]string, 0, len(c.Fixed))
	for n := range c.Fixed {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (c *Clocks) String() string {
	return fmt.Sprintf("cpu:%s sys:%s", c.CPU, c.Sys)
}

// peripheralClocks are derived from the 40MHz crystal.
var peripheralClocks = []string{"10000100.timer", "10000500.uart", "10000c00.uartlite"}

// DetectClocks reads the CPU PLL selection from the sysc block r.
func DetectClocks(r mmio.Register) (Clocks, error) {
	var c Clocks
	switch sel := (r.Read32(RegCPLLConfig1) >> cpuClkSelShift) & cpuClkSelMask; sel {
	case 1:
		c.CPU = 480 * physic.MegaHertz
	case 0:
		c.CPU = 600 * physic.MegaHertz
	default:
		return c, fmt.Errorf("ralink: unknown cpu clock selection %d", sel)
	}
	c.Sys = c.CPU / 4
	c.Fixed = make(map[string]physic.Frequency, len(peripheralClocks))
	for _, n := range peripheralClocks {
		c.Fixed[n] = 40 * physic.MegaHertz
	}
	logf("ralink: %s", &c)
	return c, nil
}
