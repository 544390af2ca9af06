// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dwc2

import (
	"log"

	"periph.io/x/ralink/v3/of"
)

// Unset marks a parameter left to the core's auto detection.
const Unset = -1

// CoreParams are the tunables of the core.
//
// Each field is set from the device tree property named in its comment.
type CoreParams struct {
	OTGCap                  int // otg-cap
	OTGVer                  int // otg-ver
	DMAEnable               int // dma-enable
	DMADescEnable           int // dma-desc-enable
	Speed                   int // speed
	EnableDynamicFIFO       int // enable-dynamic-fifo
	EnMultipleTxFIFO        int // en-multiple-tx-fifo
	HostRxFIFOSize          int // host-rx-fifo-size
	HostNPerioTxFIFOSize    int // host-nperio-tx-fifo-size
	HostPerioTxFIFOSize     int // host-perio-tx-fifo-size
	MaxTransferSize         int // max-transfer-size
	MaxPacketCount          int // max-packet-count
	HostChannels            int // host-channels
	PhyType                 int // phy-type
	PhyUTMIWidth            int // phy-utmi-width
	PhyULPIDDR              int // phy-ulpi-ddr
	PhyULPIExtVbus          int // phy-ulpi-ext-vbus
	I2CEnable               int // i2c-enable
	ULPIFSLS                int // ulpi-fs-ls
	HostSupportFSLSLowPower int // host-support-fs-ls-low-power
	HostLSLowPowerPhyClk    int // host-ls-low-power-phy-clk
	TSDline                 int // ts-dline
	ReloadCtl               int // reload-ctl
	AHBSingle               int // ahb-single
}

// DefaultParams returns parameters with every field Unset.
func DefaultParams() CoreParams {
	var p CoreParams
	for _, f := range p.fields() {
		*f.v = Unset
	}
	return p
}

// LoadProperties overrides the fields of p found in src.
//
// An absent property leaves its field as is. A property not exactly one cell
// wide is logged and ignored. Loading twice from the same source yields the
// same result.
func LoadProperties(src of.Source, p *CoreParams) {
	for _, f := range p.fields() {
		v, st := of.ReadU32(src, f.name)
		switch st {
		case of.Present:
			*f.v = int(int32(v))
			logf("dwc2: %s = %d", f.name, *f.v)
		case of.Malformed:
			log.Printf("dwc2: ignoring %q: not a single %d byte cell", f.name, of.CellSize)
		}
	}
}

type field struct {
	name string
	v    *int
}

// fields returns the fields of p in device tree order.
func (p *CoreParams) fields() []field {
	return []field{
		{"otg-cap", &p.OTGCap},
		{"otg-ver", &p.OTGVer},
		{"dma-enable", &p.DMAEnable},
		{"dma-desc-enable", &p.DMADescEnable},
		{"speed", &p.Speed},
		{"enable-dynamic-fifo", &p.EnableDynamicFIFO},
		{"en-multiple-tx-fifo", &p.EnMultipleTxFIFO},
		{"host-rx-fifo-size", &p.HostRxFIFOSize},
		{"host-nperio-tx-fifo-size", &p.HostNPerioTxFIFOSize},
		{"host-perio-tx-fifo-size", &p.HostPerioTxFIFOSize},
		{"max-transfer-size", &p.MaxTransferSize},
		{"max-packet-count", &p.MaxPacketCount},
		{"host-channels", &p.HostChannels},
		{"phy-type", &p.PhyType},
		{"phy-utmi-width", &p.PhyUTMIWidth},
		{"phy-ulpi-ddr", &p.PhyULPIDDR},
		{"phy-ulpi-ext-vbus", &p.PhyULPIExtVbus},
		{"i2c-enable", &p.I2CEnable},
		{"ulpi-fs-ls", &p.ULPIFSLS},
		{"host-support-fs-ls-low-power", &p.HostSupportFSLSLowPower},
		{"host-ls-low-power-phy-clk", &p.HostLSLowPowerPhyClk},
		{"ts-dline", &p.TSDline},
		{"reload-ctl", &p.ReloadCtl},
		{"ahb-single", &p.AHBSingle},
	}
}
