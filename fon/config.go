// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fon

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultSKU is reported by boards with no SKU in flash, like the Fonera
// 2.0n.
const DefaultSKU = "FON2303"

const (
	// SKULen is the size of the SKU field in flash.
	SKULen = 64
	// ConfigLen is the size of the board configuration in flash.
	ConfigLen = 6 + 32 + 11
)

// BoardConfig is the board configuration as stored in flash.
type BoardConfig struct {
	MAC [6]byte
	Key [32]byte
	// Serial is NUL terminated.
	Serial [11]byte
}

// UnmarshalBinary decodes the flash layout. The last serial byte is always
// forced to NUL.
func (c *BoardConfig) UnmarshalBinary(b []byte) error {
	if len(b) < ConfigLen {
		return fmt.Errorf("fon: board config needs %d bytes, got %d", ConfigLen, len(b))
	}
	n := copy(c.MAC[:], b)
	n += copy(c.Key[:], b[n:])
	copy(c.Serial[:], b[n:])
	c.Serial[len(c.Serial)-1] = 0
	return nil
}

// MACString returns the MAC address as 00-11-22-33-44-55.
func (c *BoardConfig) MACString() string {
	return fmt.Sprintf("%02X-%02X-%02X-%02X-%02X-%02X", c.MAC[0], c.MAC[1], c.MAC[2], c.MAC[3], c.MAC[4], c.MAC[5])
}

// KeyString returns the key as upper case hexadecimal.
func (c *BoardConfig) KeyString() string {
	return strings.ToUpper(hex.EncodeToString(c.Key[:]))
}

// SerialString returns the serial number.
func (c *BoardConfig) SerialString() string {
	return cString(c.Serial[:])
}

// Board is the factory configuration of a board.
type Board struct {
	SKU    string
	Config BoardConfig
}

// Entries lists the entry names.
var Entries = []string{"sku", "mac", "serial", "key"}

// Entry returns the value of the named entry.
func (b *Board) Entry(name string) (string, bool) {
	switch name {
	case "sku":
		return b.SKU, true
	case "mac":
		return b.Config.MACString(), true
	case "serial":
		return b.Config.SerialString(), true
	case "key":
		return b.Config.KeyString(), true
	}
	return "", false
}

// Read reads the SKU at skuOff and the board configuration at cfgOff.
func Read(r io.ReaderAt, skuOff, cfgOff int64) (*Board, error) {
	var sku [SKULen]byte
	if err := readFull(r, sku[:], skuOff); err != nil {
		return nil, fmt.Errorf("fon: reading sku: %w", err)
	}
	b := &Board{SKU: cString(sku[:])}
	if b.SKU == "" {
		b.SKU = DefaultSKU
	}
	var cfg [ConfigLen]byte
	if err := readFull(r, cfg[:], cfgOff); err != nil {
		return nil, fmt.Errorf("fon: reading board config: %w", err)
	}
	if err := b.Config.UnmarshalBinary(cfg[:]); err != nil {
		return nil, err
	}
	return b, nil
}

// readFull fills p, an io.EOF after a complete read is not an error.
func readFull(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}
	return string(b)
}
