// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dwc2

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/platform"
)

// Compatible is the device tree compatible string of the controller.
const Compatible = "snps,dwc2"

var (
	// ErrNoIRQ is returned by Probe for a device without interrupt.
	ErrNoIRQ = errors.New("dwc2: missing IRQ resource")
	// ErrNoMem is returned by Probe for a device without registers.
	ErrNoMem = errors.New("dwc2: missing memory base resource")
)

// Probe binds the controller described by dev.
//
// On failure dev is left as before the call: no mapping, no interrupt
// handler and no driver data.
func Probe(dev *platform.Device) (err error) {
	line, err := dev.IRQ(0)
	if err != nil {
		return fmt.Errorf("%s: %w", dev, ErrNoIRQ)
	}
	res := dev.Resource(platform.MemResource, 0)
	if res == nil {
		return fmt.Errorf("%s: %w", dev, ErrNoMem)
	}
	params := DefaultParams()
	if n := dev.Node(); n != nil {
		LoadProperties(n, &params)
	}

	s := dev.OpenScope()
	defer func() {
		if err != nil {
			if err2 := s.Release(); err2 != nil {
				log.Printf("dwc2: %s: %v", dev, err2)
			}
		}
	}()
	h := &HSOTG{irq: line, params: params}
	s.Add("hsotg", func() error {
		h.regs = nil
		return nil
	})
	if h.regs, err = s.IORemap(res); err != nil {
		return err
	}
	if err = core.Init(h); err != nil {
		return fmt.Errorf("dwc2: %s: %w", dev, err)
	}
	dev.SetDrvData(h)
	if err = s.RequestIRQ(line, handleIRQ, irq.Shared, dev.Name(), h); err != nil {
		remove(dev)
		return err
	}
	s.Commit()
	return nil
}

// Remove unbinds the controller. The mapping and the interrupt handler are
// released by the platform afterward.
//
// It panics if dev isn't bound to this driver.
func Remove(dev *platform.Device) error {
	remove(dev)
	return nil
}

func remove(dev *platform.Device) {
	h, ok := dev.DrvData().(*HSOTG)
	if !ok {
		panic(fmt.Sprintf("dwc2: %s: remove without a bound controller", dev))
	}
	core.Remove(h)
	dev.SetDrvData(nil)
}

func handleIRQ(line int, cookie interface{}) irq.Return {
	return core.HandleIRQ(cookie.(*HSOTG))
}

// core is mocked in tests.
var core Core = hostCore{}

func init() {
	platform.MustRegister(&platform.Driver{
		Name:       "dwc2",
		Compatible: []string{Compatible},
		Probe:      Probe,
		Remove:     Remove,
	})
}
