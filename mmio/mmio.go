// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mmio

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

// Register is a block of 32 bits registers addressed by byte offset.
type Register interface {
	Read32(off uint32) uint32
	Write32(off uint32, v uint32)
}

// Window is a mapped register block.
//
// A Window is owned by whoever mapped it and must be closed exactly once.
type Window interface {
	Register
	// Base is the physical address of the first byte of the window.
	Base() uint64
	// Size is the length of the window in bytes.
	Size() int
	Close() error
}

// Mapper maps physical register blocks.
type Mapper interface {
	Map(base uint64, size int) (Window, error)
}

// NewWindow returns a Window backed by b, which is assumed to be the mapping
// of the physical range starting at base.
//
// close is called once by Close; it can be nil.
func NewWindow(base uint64, b []byte, close func() error) Window {
	return &window{base: base, mem: b, close: close}
}

// DevMem maps physical memory through a device node, usually /dev/mem.
type DevMem struct {
	// Path defaults to /dev/mem.
	Path string
}

// Map implements Mapper.
func (d *DevMem) Map(base uint64, size int) (Window, error) {
	if size <= 0 {
		return nil, errors.New("mmio: invalid window size")
	}
	p := d.Path
	if p == "" {
		p = "/dev/mem"
	}
	f, err := os.OpenFile(p, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("mmio: need more access, try as root: %w", err)
		}
		return nil, fmt.Errorf("mmio: %w", err)
	}
	// The file descriptor can be closed once the mapping is established.
	defer f.Close()
	page := uint64(os.Getpagesize())
	aligned := base &^ (page - 1)
	delta := int(base - aligned)
	m, err := mmap.MapRegion(f, size+delta, mmap.RDWR, 0, int64(aligned))
	if err != nil {
		return nil, fmt.Errorf("mmio: mapping %#x+%#x: %w", base, size, err)
	}
	return &window{base: base, mem: m[delta : delta+size], close: m.Unmap}, nil
}

//

type window struct {
	base  uint64
	mem   []byte
	close func() error
}

func (w *window) String() string {
	return fmt.Sprintf("mmio@%#x+%#x", w.base, len(w.mem))
}

func (w *window) Base() uint64 {
	return w.base
}

func (w *window) Size() int {
	return len(w.mem)
}

// Read32 reads one aligned word. It panics when off is outside the window.
func (w *window) Read32(off uint32) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&w.mem[off : off+4][0])))
}

// Write32 writes one aligned word. It panics when off is outside the window.
func (w *window) Write32(off uint32, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&w.mem[off : off+4][0])), v)
}

func (w *window) Close() error {
	if w.mem == nil {
		return errors.New("mmio: window already closed")
	}
	w.mem = nil
	if w.close == nil {
		return nil
	}
	return w.close()
}

var _ Mapper = &DevMem{}
var _ Window = &window{}
