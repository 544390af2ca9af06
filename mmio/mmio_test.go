// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mmio

import (
	"encoding/binary"
	"path/filepath"
	"testing"
	"unsafe"
)

func nativeEndian() binary.ByteOrder {
	v := uint16(1)
	if *(*byte)(unsafe.Pointer(&v)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func TestWindow(t *testing.T) {
	b := make([]byte, 16)
	closed := 0
	w := NewWindow(0x10000000, b, func() error {
		closed++
		return nil
	})
	if w.Base() != 0x10000000 || w.Size() != 16 {
		t.Fatalf("Base()=%#x Size()=%d", w.Base(), w.Size())
	}
	nativeEndian().PutUint32(b[4:], 0x3637544d)
	if v := w.Read32(4); v != 0x3637544d {
		t.Fatalf("Read32() = %#x", v)
	}
	w.Write32(0xc, 0x10203)
	if v := nativeEndian().Uint32(b[0xc:]); v != 0x10203 {
		t.Fatalf("Write32() stored %#x", v)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err == nil {
		t.Fatal("second Close() should fail")
	}
	if closed != 1 {
		t.Fatalf("close callback called %d times", closed)
	}
}

func TestWindow_OutOfRange(t *testing.T) {
	w := NewWindow(0, make([]byte, 8), nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	w.Read32(6)
}

func TestDevMem_Errors(t *testing.T) {
	d := DevMem{Path: filepath.Join(t.TempDir(), "mem")}
	if _, err := d.Map(0x10000000, 0x100); err == nil {
		t.Fatal("expected error on missing device")
	}
	if _, err := d.Map(0x10000000, 0); err == nil {
		t.Fatal("expected error on empty window")
	}
}
