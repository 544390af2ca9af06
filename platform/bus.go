// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package platform

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"periph.io/x/ralink/v3/of"
)

// Driver binds to devices whose description is compatible with it.
type Driver struct {
	Name string
	// Compatible lists the compatible strings the driver handles.
	Compatible []string
	// Probe binds the driver to the device. When it fails, every resource
	// acquired through the device is released.
	Probe func(d *Device) error
	// Remove unbinds the driver. It is only called after a successful Probe.
	Remove func(d *Device) error
}

// Matches reports whether the driver handles the device.
func (drv *Driver) Matches(d *Device) bool {
	if d.node == nil {
		return false
	}
	for _, c := range drv.Compatible {
		if d.node.IsCompatible(c) {
			return true
		}
	}
	return false
}

// Register registers a platform driver.
func Register(drv *Driver) error {
	if drv.Name == "" || drv.Probe == nil {
		return errors.New("platform: driver needs a name and a Probe function")
	}
	mu.Lock()
	defer mu.Unlock()
	for _, d := range drivers {
		if d.Name == drv.Name {
			return fmt.Errorf("platform: driver %q already registered", drv.Name)
		}
	}
	drivers = append(drivers, drv)
	return nil
}

// MustRegister calls Register and panics on failure.
func MustRegister(drv *Driver) {
	if err := Register(drv); err != nil {
		panic(err)
	}
}

// Drivers returns the registered drivers.
func Drivers() []*Driver {
	mu.Lock()
	defer mu.Unlock()
	return append([]*Driver(nil), drivers...)
}

// Bus holds the devices of a platform and binds them to drivers.
type Bus struct {
	Host *Host

	mu      sync.Mutex
	devices []*Device
}

// Devices returns the devices known to the bus.
func (b *Bus) Devices() []*Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Device(nil), b.devices...)
}

// Populate creates a device for every node of t that a registered driver is
// compatible with and whose status isn't "disabled".
func (b *Bus) Populate(t *of.Tree) []*Device {
	var out []*Device
	drvs := Drivers()
	var walk func(n *of.Node, tr translation)
	walk = func(n *of.Node, tr translation) {
		for _, c := range n.Children() {
			if s, ok := of.ReadString(c, "status"); ok && s == "disabled" {
				continue
			}
			d := newDeviceFromNode(c, t, b.Host, tr)
			for _, drv := range drvs {
				if drv.Matches(d) {
					out = append(out, d)
					break
				}
			}
			walk(c, tr.child(c))
		}
	}
	walk(t.Root(), nil)
	b.mu.Lock()
	b.devices = append(b.devices, out...)
	b.mu.Unlock()
	return out
}

// Add adds a device created with NewDevice.
func (b *Bus) Add(d *Device) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.devices = append(b.devices, d)
}

// Bind probes the first registered driver compatible with d.
func (b *Bus) Bind(d *Device) error {
	for _, drv := range Drivers() {
		if drv.Matches(d) {
			return b.BindDriver(d, drv)
		}
	}
	return fmt.Errorf("platform: %s: no matching driver", d)
}

// BindDriver probes drv on d.
//
// When Probe fails, the managed resources of d are released and its driver
// data is cleared, leaving d as if Probe was never called.
func (b *Bus) BindDriver(d *Device, drv *Driver) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d.drv != nil {
		return fmt.Errorf("platform: %s: already bound to %s", d, d.drv.Name)
	}
	logf("platform: %s: probing %s", d, drv.Name)
	if err := drv.Probe(d); err != nil {
		if err2 := d.releaseManaged(); err2 != nil {
			log.Printf("platform: %s: %v", d, err2)
		}
		d.drvdata = nil
		return err
	}
	d.drv = drv
	return nil
}

// Unbind removes the driver bound to d and releases its managed resources.
func (b *Bus) Unbind(d *Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	drv := d.drv
	if drv == nil {
		return fmt.Errorf("platform: %s: not bound", d)
	}
	var err error
	if drv.Remove != nil {
		err = drv.Remove(d)
	}
	d.drv = nil
	d.drvdata = nil
	return errors.Join(err, d.releaseManaged())
}

// translation maps child bus addresses to parent addresses, as described by
// a "ranges" property. nil is the identity.
type translation []rangeEntry

type rangeEntry struct {
	child, parent, size uint64
}

// child returns the translation in effect for the children of n.
//
// Only single cell addresses and sizes are supported, which is what the
// Ralink device trees use.
func (tr translation) child(n *of.Node) translation {
	cells, st := of.ReadCells(n, "ranges")
	if st != of.Present || len(cells) == 0 || len(cells)%3 != 0 {
		return tr
	}
	out := make(translation, 0, len(cells)/3)
	for i := 0; i < len(cells); i += 3 {
		out = append(out, rangeEntry{
			child:  uint64(cells[i]),
			parent: tr.apply(uint64(cells[i+1])),
			size:   uint64(cells[i+2]),
		})
	}
	return out
}

func (tr translation) apply(addr uint64) uint64 {
	for _, r := range tr {
		if addr >= r.child && addr < r.child+r.size {
			return addr - r.child + r.parent
		}
	}
	return addr
}

// newDeviceFromNode builds the resources of n from its reg and interrupts
// properties.
func newDeviceFromNode(n *of.Node, t *of.Tree, h *Host, tr translation) *Device {
	var res []Resource
	if cells, st := of.ReadCells(n, "reg"); st == of.Present {
		if len(cells)%2 != 0 {
			log.Printf("platform: %s: reg has %d cells, not address/size pairs", n, len(cells))
		}
		for i := 0; i+1 < len(cells); i += 2 {
			if cells[i+1] == 0 {
				log.Printf("platform: %s: ignoring empty reg entry at %#x", n, cells[i])
				continue
			}
			start := tr.apply(uint64(cells[i]))
			res = append(res, Resource{Type: MemResource, Start: start, End: start + uint64(cells[i+1]) - 1, Name: n.Name()})
		}
	} else if st == of.Malformed {
		log.Printf("platform: %s: malformed reg property", n)
	}
	if cells, st := of.ReadCells(n, "interrupts"); st == of.Present {
		for _, c := range cells {
			res = append(res, Resource{Type: IRQResource, Start: uint64(c), End: uint64(c), Name: n.Name()})
		}
	}
	return NewDevice(deviceName(n, res), n, t, h, res...)
}

// deviceName returns the kernel style name of a device: the first register
// address followed by the node name without its unit address.
func deviceName(n *of.Node, res []Resource) string {
	base := n.Name()
	if i := strings.IndexByte(base, '@'); i != -1 {
		base = base[:i]
	}
	for i := range res {
		if res[i].Type == MemResource {
			return fmt.Sprintf("%x.%s", res[i].Start, base)
		}
	}
	return base
}

var (
	mu      sync.Mutex
	drivers []*Driver
)
