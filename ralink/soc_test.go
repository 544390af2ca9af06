// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"strings"
	"testing"

	"periph.io/x/ralink/v3/mmio/mmiotest"
)

func TestResolve_MTK7620N(t *testing.T) {
	r := &mmiotest.Regs{Init: map[uint32]uint32{
		RegChipName0: 0x33365452,
		RegChipName1: 0x20203235,
		RegChipRev:   0x00000205,
	}}
	id := Resolve(r, Chips)
	if id.Name != "MTK7620N" || id.Compatible != "ralink,mtk7620n-soc" {
		t.Fatalf("unexpected identity %#v", id)
	}
	if id.Version != 2 || id.ECO != 5 {
		t.Fatalf("ver:%d eco:%d", id.Version, id.ECO)
	}
	if id.SysType != "Ralink MTK7620N ver:2 eco:5" {
		t.Fatalf("%q", id.SysType)
	}
	if len(r.Writes) != 0 {
		t.Fatal("identity registers are read only")
	}
}

func TestResolve_customTable(t *testing.T) {
	chips := []Chip{
		{Name: "example-variant-A", Compatible: "example,variant-a", Name0: 0x3637544D, Name1: 0x32303030},
		{Name: "shadowed", Compatible: "example,shadowed", Name0: 0x3637544D, Name1: 0x32303030},
	}
	r := &mmiotest.Regs{Init: map[uint32]uint32{
		RegChipName0: 0x3637544D,
		RegChipName1: 0x32303030,
		RegChipRev:   0x00000302,
	}}
	id := Resolve(r, chips)
	if id.Name != "example-variant-A" || id.Compatible != "example,variant-a" {
		t.Fatalf("first match must win: %#v", id)
	}
	if id.Version != 3 || id.ECO != 2 {
		t.Fatalf("ver:%d eco:%d", id.Version, id.ECO)
	}
}

func TestResolve_unknown(t *testing.T) {
	r := &mmiotest.Regs{Init: map[uint32]uint32{RegChipRev: 0x00000a0b}}
	id := Resolve(r, Chips)
	if id.Name != "" || id.Compatible != "" {
		t.Fatalf("unexpected identity %#v", id)
	}
	if id.Version != 10 || id.ECO != 11 {
		t.Fatalf("ver:%d eco:%d", id.Version, id.ECO)
	}
	if id.SysType != "Ralink <unknown> ver:10 eco:11" {
		t.Fatalf("%q", id.SysType)
	}
}

func TestResolve_emptyTable(t *testing.T) {
	r := &mmiotest.Regs{Init: map[uint32]uint32{RegChipName0: 0x33365452, RegChipName1: 0x20203235}}
	if id := Resolve(r, nil); id.Name != "" {
		t.Fatalf("unexpected identity %#v", id)
	}
}

func TestResolve_truncated(t *testing.T) {
	chips := []Chip{{Name: strings.Repeat("x", 40), Name0: 1, Name1: 2}}
	r := &mmiotest.Regs{Init: map[uint32]uint32{RegChipName0: 1, RegChipName1: 2}}
	id := Resolve(r, chips)
	if len(id.SysType) != SysTypeLen-1 {
		t.Fatalf("len(%q) = %d", id.SysType, len(id.SysType))
	}
	if !strings.HasPrefix(id.SysType, "Ralink xxx") {
		t.Fatalf("%q", id.SysType)
	}
}
