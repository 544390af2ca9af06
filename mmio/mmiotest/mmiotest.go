// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mmiotest implements fake register blocks and mappers.
package mmiotest

import (
	"errors"
	"sync"

	"periph.io/x/ralink/v3/mmio"
)

// Write is one recorded register write.
type Write struct {
	Off   uint32
	Value uint32
}

// Regs is a fake register block.
//
// Unwritten registers read as the value in Init, or 0.
type Regs struct {
	mu     sync.Mutex
	Init   map[uint32]uint32
	Writes []Write
	values map[uint32]uint32
}

// Read32 implements mmio.Register.
func (r *Regs) Read32(off uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.values[off]; ok {
		return v
	}
	return r.Init[off]
}

// Write32 implements mmio.Register.
func (r *Regs) Write32(off uint32, v uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = map[uint32]uint32{}
	}
	r.values[off] = v
	r.Writes = append(r.Writes, Write{Off: off, Value: v})
}

// Window is a fake mmio.Window.
type Window struct {
	Regs
	base   uint64
	size   int
	m      *Mapper
	closed bool
}

// Base implements mmio.Window.
func (w *Window) Base() uint64 {
	return w.base
}

// Size implements mmio.Window.
func (w *Window) Size() int {
	return w.size
}

// Close implements mmio.Window.
func (w *Window) Close() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	if w.closed {
		return errors.New("mmiotest: window closed twice")
	}
	w.closed = true
	w.m.live--
	return nil
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	return w.closed
}

// Mapper is a fake mmio.Mapper that keeps track of live windows.
type Mapper struct {
	// Err, when set, is returned by Map.
	Err error
	// Init is copied into every new window.
	Init map[uint32]uint32

	mu      sync.Mutex
	live    int
	windows []*Window
}

// Map implements mmio.Mapper.
func (m *Mapper) Map(base uint64, size int) (mmio.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	w := &Window{base: base, size: size, m: m}
	w.Regs.Init = m.Init
	m.windows = append(m.windows, w)
	m.live++
	return w, nil
}

// Live returns the number of windows mapped and not closed yet.
func (m *Mapper) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// Windows returns every window mapped so far.
func (m *Mapper) Windows() []*Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Window(nil), m.windows...)
}

var _ mmio.Register = &Regs{}
var _ mmio.Window = &Window{}
var _ mmio.Mapper = &Mapper{}
