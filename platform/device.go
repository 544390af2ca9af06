// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package platform

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/mmio"
	"periph.io/x/ralink/v3/of"
)

// ResourceType is the kind of a Resource.
type ResourceType int

const (
	// MemResource is a physical register range.
	MemResource ResourceType = iota + 1
	// IRQResource is an interrupt line, stored in Start.
	IRQResource
)

func (r ResourceType) String() string {
	switch r {
	case MemResource:
		return "mem"
	case IRQResource:
		return "irq"
	default:
		return "ResourceType(?)"
	}
}

// Resource is a hardware resource of a Device.
type Resource struct {
	Type  ResourceType
	Start uint64
	// End is inclusive.
	End  uint64
	Name string
}

// Size returns the number of addresses covered by the resource.
func (r *Resource) Size() uint64 {
	return r.End - r.Start + 1
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s %#08x-%#08x", r.Type, r.Start, r.End)
}

// overlaps reports whether both memory ranges share an address.
func (r *Resource) overlaps(o *Resource) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// ErrBusy is returned when a memory range is already claimed by another
// device.
var ErrBusy = errors.New("platform: resource busy")

// Host provides the services drivers acquire resources from.
//
// It also tracks which physical ranges are claimed, so that two devices never
// map the same registers.
type Host struct {
	Mapper mmio.Mapper
	IRQ    irq.Controller

	mu      sync.Mutex
	claimed []Resource
}

func (h *Host) claim(r *Resource) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.claimed {
		if h.claimed[i].overlaps(r) {
			return fmt.Errorf("%s: %w", r, ErrBusy)
		}
	}
	h.claimed = append(h.claimed, *r)
	return nil
}

func (h *Host) release(r *Resource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.claimed {
		if h.claimed[i] == *r {
			h.claimed = append(h.claimed[:i], h.claimed[i+1:]...)
			return
		}
	}
}

// Claimed returns the number of claimed memory ranges.
func (h *Host) Claimed() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.claimed)
}

// Device is one platform device.
//
// Bind and Unbind of a Device are serialized by its Bus.
type Device struct {
	name      string
	node      *of.Node
	tree      *of.Tree
	resources []Resource
	host      *Host

	drv     *Driver
	drvdata interface{}
	// managed holds the resources acquired for the lifetime of the binding.
	managed Scope
}

// NewDevice returns an unbound device.
//
// node and tree may be nil for devices not described by the platform
// description.
func NewDevice(name string, node *of.Node, tree *of.Tree, host *Host, res ...Resource) *Device {
	d := &Device{name: name, node: node, tree: tree, resources: res, host: host}
	d.managed.dev = d
	return d
}

// Name returns the device name, e.g. "101c0000.usb".
func (d *Device) Name() string {
	return d.name
}

func (d *Device) String() string {
	return d.name
}

// Node returns the device's platform description node, or nil.
func (d *Device) Node() *of.Node {
	return d.node
}

// Tree returns the platform description the device comes from, or nil.
func (d *Device) Tree() *of.Tree {
	return d.tree
}

// Resource returns the i-th resource of type t, or nil.
func (d *Device) Resource(t ResourceType, i int) *Resource {
	for j := range d.resources {
		if d.resources[j].Type != t {
			continue
		}
		if i == 0 {
			return &d.resources[j]
		}
		i--
	}
	return nil
}

// IRQ returns the i-th interrupt line of the device.
func (d *Device) IRQ(i int) (int, error) {
	r := d.Resource(IRQResource, i)
	if r == nil {
		return -1, fmt.Errorf("platform: %s: no irq %d", d.name, i)
	}
	return int(r.Start), nil
}

// Driver returns the driver bound to the device, or nil.
func (d *Device) Driver() *Driver {
	return d.drv
}

// DrvData returns the value published by the bound driver.
func (d *Device) DrvData() interface{} {
	return d.drvdata
}

// SetDrvData publishes the driver's private state for the device.
func (d *Device) SetDrvData(v interface{}) {
	d.drvdata = v
}

// Managed returns the number of resources held for the lifetime of the
// binding.
func (d *Device) Managed() int {
	return d.managed.Len()
}

// OpenScope returns a Scope whose resources are handed over to the device
// when committed.
func (d *Device) OpenScope() *Scope {
	return &Scope{dev: d, parent: &d.managed}
}

// releaseManaged releases every resource held for the binding.
func (d *Device) releaseManaged() error {
	return d.managed.Release()
}
