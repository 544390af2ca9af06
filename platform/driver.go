// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/mmio"
	"periph.io/x/ralink/v3/of"
)

// Default is the bus populated by the "platform" driver.
//
// It is initialized once at driver initialization. Do not modify it.
var Default = &Bus{}

// driver implements periph.Driver.
type driver struct {
	// Mocked in tests.
	loadTree func() (*of.Tree, error)
	newHost  func() (*Host, error)
}

func (d *driver) String() string {
	return "platform"
}

func (d *driver) Prerequisites() []string {
	return nil
}

// After makes sure the SoC pin multiplexing is committed before devices are
// bound.
func (d *driver) After() []string {
	return []string{"ralink"}
}

// Init populates Default from the platform description and binds the
// registered drivers.
//
// A device failing to bind is logged and doesn't fail the driver, the same
// way the kernel keeps booting without it.
func (d *driver) Init() (bool, error) {
	t, err := d.loadTree()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("platform: no device tree: %w", err)
		}
		return true, err
	}
	h, err := d.newHost()
	if err != nil {
		return true, err
	}
	Default.Host = h
	for _, dev := range Default.Populate(t) {
		if err := Default.Bind(dev); err != nil {
			log.Printf("platform: %s: probe failed: %v", dev, err)
		}
	}
	return true, nil
}

func (d *driver) reset() {
	d.loadTree = func() (*of.Tree, error) {
		return of.Load(of.DefaultPath)
	}
	d.newHost = func() (*Host, error) {
		lines, err := irq.DiscoverUIO("/sys/class/uio", "/proc/interrupts")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return &Host{Mapper: &mmio.DevMem{}, IRQ: &irq.UIO{Devices: lines}}, nil
	}
}

func init() {
	if isLinux {
		drv.reset()
		driverreg.MustRegister(&drv)
	}
}

var drv driver
