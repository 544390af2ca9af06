// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/d2xx"
)

// Info describes a connected adapter.
type Info struct {
	Index int
	Type  DevType
	VenID uint16
	DevID uint16
	// UASize is the size of the EEPROM user area, 0 when the EEPROM isn't
	// programmed.
	UASize int
}

func (i *Info) String() string {
	return fmt.Sprintf("%s%d(%s %04x:%04x)", PartitionPrefix, i.Index, i.Type, i.VenID, i.DevID)
}

// All enumerates all the connected FTDI devices.
func All() []Info {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	out := make([]Info, len(drv.all))
	copy(out, drv.all)
	return out
}

// driver implements driver.Impl.
type driver struct {
	mu         sync.Mutex
	all        []Info
	d2xxOpen   func(i int) (d2xx.Handle, d2xx.Err)
	numDevices func() (int, error)
}

func (d *driver) String() string {
	return "ftdi"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

// Init enumerates the adapters. An adapter failing to open is skipped and
// its error returned.
func (d *driver) Init() (bool, error) {
	num, err := d.numDevices()
	if err != nil {
		return true, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < num; i++ {
		h, info, err1 := d.open(i)
		if err1 != nil {
			err = err1
			continue
		}
		_ = h.Close()
		logf("ftdi: found %s", &info)
		d.all = append(d.all, info)
	}
	return true, err
}

func (d *driver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = nil
	// open is mocked in tests.
	d.d2xxOpen = d2xx.Open
	// numDevices is mocked in tests.
	d.numDevices = func() (int, error) {
		n, e := d2xx.CreateDeviceInfoList()
		return n, d2xxErr("CreateDeviceInfoList", e)
	}
}

func init() {
	if d2xx.Available {
		drv.reset()
		drv.resetLog()
		driverreg.MustRegister(&drv)
	}
}

var drv driver
