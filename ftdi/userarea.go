// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"periph.io/x/d2xx"
)

// PartitionPrefix prefixes the partition names served by this package.
const PartitionPrefix = "ftdi:"

// UserArea is a snapshot of the EEPROM user area of one adapter.
type UserArea struct {
	index int
	b     []byte
}

func (u *UserArea) String() string {
	return PartitionPrefix + strconv.Itoa(u.index)
}

// Size returns the size of the user area in bytes.
func (u *UserArea) Size() int64 {
	return int64(len(u.b))
}

// ReadAt implements io.ReaderAt.
func (u *UserArea) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("ftdi: negative offset")
	}
	if off >= int64(len(u.b)) {
		return 0, io.EOF
	}
	n := copy(p, u.b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// IsPartition reports whether name designates an adapter user area.
func IsPartition(name string) bool {
	return strings.HasPrefix(name, PartitionPrefix)
}

// OpenPartition reads the user area designated by name, e.g. "ftdi:0".
func OpenPartition(name string) (*UserArea, error) {
	if !IsPartition(name) {
		return nil, fmt.Errorf("ftdi: %q is not a user area", name)
	}
	i, err := strconv.Atoi(name[len(PartitionPrefix):])
	if err != nil || i < 0 {
		return nil, fmt.Errorf("ftdi: invalid adapter index in %q", name)
	}
	return ReadUserArea(i)
}

// ReadUserArea reads the user area of the adapter at index i.
func ReadUserArea(i int) (*UserArea, error) {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	if drv.d2xxOpen == nil {
		return nil, errors.New("ftdi: d2xx not available")
	}
	h, info, err := drv.open(i)
	if err != nil {
		return nil, err
	}
	var b []byte
	// An unprogrammed EEPROM reports an empty user area.
	if info.UASize != 0 {
		b = make([]byte, info.UASize)
		err = d2xxErr("EEUARead", h.EEUARead(b))
	}
	if err2 := d2xxErr("Close", h.Close()); err == nil {
		err = err2
	}
	if err != nil {
		return nil, err
	}
	logf("ftdi: %s: %d bytes of user area", &info, len(b))
	return &UserArea{index: i, b: b}, nil
}

// Close implements io.Closer. The snapshot holds no handle.
func (u *UserArea) Close() error {
	return nil
}

// open opens the adapter at index i and describes it. The caller closes the
// returned handle.
//
// d.mu must be held.
func (d *driver) open(i int) (d2xx.Handle, Info, error) {
	info := Info{Index: i}
	h, e := d.d2xxOpen(i)
	if e != 0 {
		return nil, info, d2xxErr("Open", e)
	}
	t, vid, did, e := h.GetDeviceInfo()
	if e != 0 {
		_ = h.Close()
		return nil, info, d2xxErr("GetDeviceInfo", e)
	}
	info.Type, info.VenID, info.DevID = DevType(t), vid, did
	size, e := h.EEUASize()
	if e != 0 {
		_ = h.Close()
		return nil, info, d2xxErr("EEUASize", e)
	}
	info.UASize = size
	return h, info, nil
}

func d2xxErr(op string, e d2xx.Err) error {
	if e == 0 {
		return nil
	}
	return fmt.Errorf("ftdi: %s: %s", op, e)
}
