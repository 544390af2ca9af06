// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dwc2

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/mmio"
)

// Core global registers.
const (
	regGAHBCFG = 0x008
	regGINTSTS = 0x014
	regGINTMSK = 0x018
	regGSNPSID = 0x040
	regGHWCFG2 = 0x048
)

const (
	gahbcfgGlblIntrEn = 1 << 0

	gintOTG        = 1 << 2
	gintConIDSts   = 1 << 28
	gintDisconnect = 1 << 29

	ghwcfg2ArchShift    = 3
	ghwcfg2ArchMask     = 0x3
	ghwcfg2ArchIntDMA   = 2
	ghwcfg2NumChanShift = 14
	ghwcfg2NumChanMask  = 0xf

	snpsidMask = 0xfffff000
	snpsidOT2  = 0x4f542000
	snpsidOT3  = 0x4f543000
)

// ErrBadID is returned when the registers don't belong to a DWC2 core.
var ErrBadID = errors.New("dwc2: bad value for GSNPSID")

// HSOTG is the state of one bound controller.
//
// It is published as the device's driver data.
type HSOTG struct {
	regs   mmio.Window
	irq    int
	params CoreParams

	mu      sync.Mutex
	snpsid  uint32
	running bool
	handled uint64
}

func (h *HSOTG) String() string {
	if h.regs == nil {
		return "dwc2"
	}
	return fmt.Sprintf("dwc2(%#x)", h.regs.Base())
}

// Halt implements conn.Resource.
//
// It masks the controller interrupts. The core stops servicing interrupts
// until it is initialized again.
func (h *HSOTG) Halt() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.quiesce()
	return nil
}

// quiesce disables the global interrupt and masks every source.
//
// h.mu must be held.
func (h *HSOTG) quiesce() {
	if h.regs != nil {
		h.regs.Write32(regGAHBCFG, h.regs.Read32(regGAHBCFG)&^gahbcfgGlblIntrEn)
		h.regs.Write32(regGINTMSK, 0)
	}
	h.running = false
}

// IRQ returns the interrupt line of the controller.
func (h *HSOTG) IRQ() int {
	return h.irq
}

// Params returns the parameters in effect, after auto detection.
func (h *HSOTG) Params() CoreParams {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.params
}

// SNPSID returns the core identification register.
func (h *HSOTG) SNPSID() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snpsid
}

// Handled returns the number of interrupts serviced.
func (h *HSOTG) Handled() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handled
}

// Core is the controller logic driven by the platform glue.
type Core interface {
	// Init brings the controller up with the parameters in h.
	Init(h *HSOTG) error
	// Remove releases the controller state. It can't fail.
	Remove(h *HSOTG)
	// HandleIRQ services the controller interrupt.
	HandleIRQ(h *HSOTG) irq.Return
}

// hostCore drives the controller in host mode.
type hostCore struct{}

func (hostCore) Init(h *HSOTG) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.regs.Read32(regGSNPSID)
	if m := id & snpsidMask; m != snpsidOT2 && m != snpsidOT3 {
		return fmt.Errorf("%w: %#08x", ErrBadID, id)
	}
	h.snpsid = id

	// Quiesce before touching anything else.
	h.quiesce()
	h.regs.Write32(regGINTSTS, 0xffffffff)

	hw := h.regs.Read32(regGHWCFG2)
	if h.params.HostChannels == Unset {
		h.params.HostChannels = int((hw>>ghwcfg2NumChanShift)&ghwcfg2NumChanMask) + 1
	}
	if h.params.DMAEnable == Unset {
		if (hw>>ghwcfg2ArchShift)&ghwcfg2ArchMask == ghwcfg2ArchIntDMA {
			h.params.DMAEnable = 1
		} else {
			h.params.DMAEnable = 0
		}
	}
	if h.params.Speed == Unset {
		h.params.Speed = 0
	}
	logf("dwc2: core %#08x, %d channels, dma %d", id, h.params.HostChannels, h.params.DMAEnable)

	h.regs.Write32(regGINTMSK, gintOTG|gintConIDSts|gintDisconnect)
	h.regs.Write32(regGAHBCFG, h.regs.Read32(regGAHBCFG)|gahbcfgGlblIntrEn)
	h.running = true
	return nil
}

func (hostCore) Remove(h *HSOTG) {
	_ = h.Halt()
}

func (hostCore) HandleIRQ(h *HSOTG) irq.Return {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return irq.None
	}
	sts := h.regs.Read32(regGINTSTS) & h.regs.Read32(regGINTMSK)
	if sts == 0 {
		return irq.None
	}
	h.regs.Write32(regGINTSTS, sts)
	h.handled++
	return irq.Handled
}

var _ conn.Resource = &HSOTG{}
