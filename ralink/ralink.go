// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/ralink/v3/mmio"
	"periph.io/x/ralink/v3/of"
	"periph.io/x/ralink/v3/pinmux"
)

// Present returns true if a Ralink / MediaTek MIPS SoC is detected.
func Present() bool {
	if !isMIPS {
		return false
	}
	t, err := drv.loadTree()
	return err == nil && isRalink(t)
}

// SoC returns the identity detected at driver initialization.
func SoC() Identity {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.id
}

// ClockRate returns the rate of a named clock, see Clocks.Rate.
func ClockRate(name string) (physic.Frequency, bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.clocks.Rate(name)
}

// PinFunc returns the function the GPIO line carries since the pin
// multiplexing was committed.
//
// It returns pin.FuncNone when the multiplexing wasn't committed.
func PinFunc(line int) pin.Func {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.mux == nil {
		return pin.FuncNone
	}
	return state.mux.FuncOf(line, state.mode)
}

var state struct {
	mu     sync.Mutex
	id     Identity
	clocks Clocks
	mux    *pinmux.Config
	mode   uint32
}

// isRalink looks at the root compatible strings.
func isRalink(t *of.Tree) bool {
	for _, c := range t.Root().Compatible() {
		if strings.HasPrefix(c, "ralink,") || strings.HasPrefix(c, "mediatek,mt7620") {
			return true
		}
	}
	return false
}

// driver implements periph.Driver.
type driver struct {
	// Mocked in tests.
	loadTree    func() (*of.Tree, error)
	mapper      mmio.Mapper
	baseAddress func() uint64
}

func (d *driver) String() string {
	return "ralink"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

// Init identifies the SoC and commits the pin multiplexing requested by the
// device tree.
func (d *driver) Init() (bool, error) {
	t, err := d.loadTree()
	if err != nil {
		return false, fmt.Errorf("ralink: %w", err)
	}
	if !isRalink(t) {
		return false, errors.New("ralink: SoC not detected")
	}
	w, err := d.mapper.Map(d.baseAddress(), syscSize)
	if err != nil {
		return true, fmt.Errorf("ralink: failed to map sysc: %w", err)
	}
	defer w.Close()

	id := Resolve(w, Chips)
	clocks, err := DetectClocks(w)
	if err != nil {
		return true, err
	}
	mux, err := getMTK7620Pinmux()
	if err != nil {
		return true, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	state.id = id
	state.clocks = clocks
	if mux.Apply(t, w) {
		state.mux = mux
		state.mode = w.Read32(pinmux.RegGPIOMode)
	} else {
		logf("ralink: no %s node, pin multiplexing left as is", pinmux.Compatible)
	}
	logf("ralink: %s", id.SysType)
	return true, nil
}

func (d *driver) reset() {
	d.loadTree = func() (*of.Tree, error) {
		return of.Load(of.DefaultPath)
	}
	d.mapper = &mmio.DevMem{}
	d.baseAddress = BaseAddress
}

func init() {
	if isMIPS {
		drv.reset()
		driverreg.MustRegister(&drv)
	}
}

var drv driver
