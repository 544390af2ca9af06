// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"fmt"
	"log"

	"periph.io/x/ralink/v3/mmio"
)

// System controller registers.
const (
	RegChipName0     = 0x00
	RegChipName1     = 0x04
	RegChipRev       = 0x0c
	RegSystemConfig0 = 0x10
	RegCPLLConfig0   = 0x54
	RegCPLLConfig1   = 0x58
)

// CHIP_REV fields.
const (
	chipRevVerShift = 8
	chipRevVerMask  = 0xf
	chipRevECOMask  = 0xf
)

// SysTypeLen is the capacity of the system type string, including the
// terminator the kernel reserves.
const SysTypeLen = 32

// Chip is a known SoC, identified by the two CHIP_NAME words.
type Chip struct {
	Name       string
	Compatible string
	Name0      uint32
	Name1      uint32
}

// Identity is the detected SoC.
//
// Name and Compatible are empty when the chip is not known.
type Identity struct {
	Name       string
	Compatible string
	Version    uint32
	ECO        uint32
	// SysType is the human readable platform string, at most SysTypeLen-1
	// bytes long.
	SysType string
}

func (i *Identity) String() string {
	return i.SysType
}

// Resolve reads the identity registers of the sysc block r and matches them
// against chips; the first match wins.
//
// An unknown chip is logged and leaves Name and Compatible empty; the
// revision is decoded either way.
func Resolve(r mmio.Register, chips []Chip) Identity {
	n0 := r.Read32(RegChipName0)
	n1 := r.Read32(RegChipName1)
	var id Identity
	for _, c := range chips {
		if c.Name0 == n0 && c.Name1 == n1 {
			id.Name = c.Name
			id.Compatible = c.Compatible
			break
		}
	}
	if id.Name == "" {
		log.Printf("ralink: unknown SoC, n0:%08x n1:%08x", n0, n1)
	}
	rev := r.Read32(RegChipRev)
	id.Version = (rev >> chipRevVerShift) & chipRevVerMask
	id.ECO = rev & chipRevECOMask
	name := id.Name
	if name == "" {
		name = "<unknown>"
	}
	id.SysType = truncate(fmt.Sprintf("Ralink %s ver:%d eco:%d", name, id.Version, id.ECO), SysTypeLen-1)
	return id
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
