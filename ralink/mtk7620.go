// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This file contains the description of the MediaTek MT7620 family.

package ralink

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"periph.io/x/ralink/v3/pinmux"
)

// Chips lists the SoCs recognized by Resolve.
var Chips = []Chip{
	{Name: "MTK7620N", Compatible: "ralink,mtk7620n-soc", Name0: 0x33365452, Name1: 0x20203235},
	{Name: "MTK7620A", Compatible: "ralink,mtk7620a-soc", Name0: 0x3637544d, Name1: 0x32303030},
}

// mtk7620Pinmux describes the GPIO_MODE register of the MT7620.
//
// The "ephy" and "nand" groups share the JTAG mode bit; the pads are shared
// on the die.
//
// The UART field takes one of eight values, "gpio" leaves no pin to the
// UART block. The baseline mask is zero, so resolving a UART group never
// moves the field away from "uartf".
//
//go:embed mtk7620_pinmux.json
var mtk7620PinmuxSpec []byte

type serializedPinmux struct {
	Mode      pinmux.Table `json:"mode"`
	UART      pinmux.Table `json:"uart"`
	UARTShift uint         `json:"uart_shift"`
	UARTMask  uint32       `json:"uart_mask"`
}

// getMTK7620Pinmux decodes and validates the embedded tables.
//
// The MT7620 can't route the watchdog to the reset line so WDTReset stays
// nil.
func getMTK7620Pinmux() (*pinmux.Config, error) {
	var s serializedPinmux
	if err := json.Unmarshal(mtk7620PinmuxSpec, &s); err != nil {
		return nil, fmt.Errorf("ralink: invalid MT7620 pinmux description: %w", err)
	}
	if err := s.Mode.Validate(); err != nil {
		return nil, fmt.Errorf("ralink: mode table: %w", err)
	}
	if err := s.UART.Validate(); err != nil {
		return nil, fmt.Errorf("ralink: uart table: %w", err)
	}
	return &pinmux.Config{
		Mode:      s.Mode,
		UART:      s.UART,
		UARTShift: s.UARTShift,
		UARTMask:  s.UARTMask,
	}, nil
}
