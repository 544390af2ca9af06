// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dwc2

import (
	"errors"
	"testing"

	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/irq/irqtest"
	"periph.io/x/ralink/v3/mmio/mmiotest"
	"periph.io/x/ralink/v3/of"
	"periph.io/x/ralink/v3/of/oftest"
	"periph.io/x/ralink/v3/platform"
)

const usbIRQ = 26

func newHost(regs map[uint32]uint32) (*platform.Host, *mmiotest.Mapper, *irqtest.Controller) {
	m := &mmiotest.Mapper{Init: regs}
	c := &irqtest.Controller{}
	return &platform.Host{Mapper: m, IRQ: c}, m, c
}

var coreRegs = map[uint32]uint32{
	regGSNPSID: 0x4f54280a,
	// Internal DMA, 8 host channels.
	regGHWCFG2: ghwcfg2ArchIntDMA<<ghwcfg2ArchShift | 7<<ghwcfg2NumChanShift,
}

func usbNode() *of.Node {
	p := oftest.Props(
		oftest.Strings("compatible", "ralink,rt3050-otg", Compatible),
		oftest.Cells("reg", 0x101c0000, 0x40000),
		oftest.Cells("interrupts", usbIRQ),
		oftest.Cells("host-channels", 4),
	)
	return of.NewNode(oftest.Node("usb@101c0000", p))
}

var (
	memRes = platform.Resource{Type: platform.MemResource, Start: 0x101c0000, End: 0x101fffff, Name: "usb"}
	irqRes = platform.Resource{Type: platform.IRQResource, Start: usbIRQ, End: usbIRQ, Name: "usb"}
)

// checkClean verifies that dev holds nothing.
func checkClean(t *testing.T, dev *platform.Device, h *platform.Host, m *mmiotest.Mapper, c *irqtest.Controller) {
	t.Helper()
	if n := m.Live(); n != 0 {
		t.Errorf("%d live mappings", n)
	}
	if n := h.Claimed(); n != 0 {
		t.Errorf("%d claimed ranges", n)
	}
	if r := c.Live(); len(r) != 0 {
		t.Errorf("live registrations: %v", r)
	}
	if d := dev.DrvData(); d != nil {
		t.Errorf("driver data left: %v", d)
	}
	if n := dev.Managed(); n != 0 {
		t.Errorf("%d managed resources", n)
	}
}

func TestProbe_noIRQ(t *testing.T) {
	h, m, c := newHost(coreRegs)
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes)
	if err := Probe(dev); !errors.Is(err, ErrNoIRQ) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
	if len(m.Windows()) != 0 {
		t.Fatal("mapped without an interrupt")
	}
}

func TestProbe_noMem(t *testing.T) {
	h, m, c := newHost(coreRegs)
	dev := platform.NewDevice("usb", usbNode(), nil, h, irqRes)
	if err := Probe(dev); !errors.Is(err, ErrNoMem) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
}

func TestProbe_mapFailure(t *testing.T) {
	h, m, c := newHost(coreRegs)
	errMap := errors.New("mmap denied")
	m.Err = errMap
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes, irqRes)
	if err := Probe(dev); !errors.Is(err, errMap) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
}

func TestProbe_initFailure(t *testing.T) {
	h, m, c := newHost(map[uint32]uint32{regGSNPSID: 0xdeadbeef})
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes, irqRes)
	if err := Probe(dev); !errors.Is(err, ErrBadID) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
	if w := m.Windows(); len(w) != 1 || !w[0].Closed() {
		t.Fatal("mapping not released")
	}
}

func TestProbe_irqFailure(t *testing.T) {
	h, m, c := newHost(coreRegs)
	c.Err = irq.ErrBusy
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes, irqRes)
	if err := Probe(dev); !errors.Is(err, irq.ErrBusy) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
	// The core was stopped before the mapping went away.
	w := m.Windows()[0]
	if v := w.Read32(regGINTMSK); v != 0 {
		t.Fatalf("GINTMSK = %#x", v)
	}
}

func TestProbe_failingCore(t *testing.T) {
	defer func(c Core) { core = c }(core)
	errInit := errors.New("phy timeout")
	core = &fakeCore{err: errInit}
	h, m, c := newHost(coreRegs)
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes, irqRes)
	if err := Probe(dev); !errors.Is(err, errInit) {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
}

func TestBindUnbind(t *testing.T) {
	h, m, c := newHost(coreRegs)
	b := &platform.Bus{Host: h}
	dev := platform.NewDevice("101c0000.usb", usbNode(), nil, h, memRes, irqRes)
	b.Add(dev)
	if err := b.Bind(dev); err != nil {
		t.Fatal(err)
	}
	if dev.Driver() == nil || dev.Driver().Name != "dwc2" {
		t.Fatal(dev.Driver())
	}
	hs, ok := dev.DrvData().(*HSOTG)
	if !ok {
		t.Fatalf("%#v", dev.DrvData())
	}
	if m.Live() != 1 || h.Claimed() != 1 || len(c.Live()) != 1 {
		t.Fatalf("mappings:%d claimed:%d irqs:%d", m.Live(), h.Claimed(), len(c.Live()))
	}
	r := c.Live()[0]
	if r.Line != usbIRQ || r.Flags&irq.Shared == 0 || r.Name != "101c0000.usb" || r.Cookie != hs {
		t.Fatalf("%#v", r)
	}
	p := hs.Params()
	if p.HostChannels != 4 || p.DMAEnable != 1 || p.Speed != 0 || p.OTGCap != Unset {
		t.Fatalf("%+v", p)
	}
	if hs.IRQ() != usbIRQ || hs.SNPSID() != 0x4f54280a {
		t.Fatal(hs.IRQ(), hs.SNPSID())
	}
	if s := hs.String(); s != "dwc2(0x101c0000)" {
		t.Fatal(s)
	}

	w := m.Windows()[0]
	// The fake doesn't implement write-1-to-clear.
	w.Write32(regGINTSTS, 0)
	if c.Fire(usbIRQ) != irq.None {
		t.Fatal("spurious interrupt handled")
	}
	w.Write32(regGINTSTS, gintDisconnect)
	if c.Fire(usbIRQ) != irq.Handled || hs.Handled() != 1 {
		t.Fatal("interrupt not handled")
	}

	if err := b.Unbind(dev); err != nil {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
	if v := w.Read32(regGAHBCFG); v&gahbcfgGlblIntrEn != 0 {
		t.Fatalf("GAHBCFG = %#x after unbind", v)
	}
	if v := w.Read32(regGINTMSK); v != 0 {
		t.Fatalf("GINTMSK = %#x after unbind", v)
	}
	if dev.Driver() != nil {
		t.Fatal("still bound")
	}
	if err := b.Unbind(dev); err == nil {
		t.Fatal("unbound twice")
	}
}

func TestHalt(t *testing.T) {
	h, m, c := newHost(coreRegs)
	b := &platform.Bus{Host: h}
	dev := platform.NewDevice("101c0000.usb", usbNode(), nil, h, memRes, irqRes)
	if err := b.BindDriver(dev, dwc2Driver(t)); err != nil {
		t.Fatal(err)
	}
	hs := dev.DrvData().(*HSOTG)
	w := m.Windows()[0]
	if err := hs.Halt(); err != nil {
		t.Fatal(err)
	}
	if v := w.Read32(regGAHBCFG); v&gahbcfgGlblIntrEn != 0 {
		t.Fatalf("GAHBCFG = %#x", v)
	}
	if v := w.Read32(regGINTMSK); v != 0 {
		t.Fatalf("GINTMSK = %#x", v)
	}
	w.Write32(regGINTSTS, gintDisconnect)
	if c.Fire(usbIRQ) != irq.None || hs.Handled() != 0 {
		t.Fatal("interrupt handled after Halt")
	}
	if err := b.Unbind(dev); err != nil {
		t.Fatal(err)
	}
	checkClean(t, dev, h, m, c)
}

func TestBind_twoControllers(t *testing.T) {
	h, m, c := newHost(coreRegs)
	b := &platform.Bus{Host: h}
	d1 := platform.NewDevice("101c0000.usb", usbNode(), nil, h, memRes, irqRes)
	mem2 := platform.Resource{Type: platform.MemResource, Start: 0x10200000, End: 0x1023ffff}
	d2 := platform.NewDevice("10200000.usb", nil, nil, h, mem2, irqRes)
	if err := b.BindDriver(d1, dwc2Driver(t)); err != nil {
		t.Fatal(err)
	}
	if err := b.BindDriver(d2, dwc2Driver(t)); err != nil {
		t.Fatal(err)
	}
	// Without a node, d2 keeps the defaults and auto detects.
	if p := d2.DrvData().(*HSOTG).Params(); p.HostChannels != 8 {
		t.Fatalf("%+v", p)
	}
	if p := d1.DrvData().(*HSOTG).Params(); p.HostChannels != 4 {
		t.Fatalf("%+v", p)
	}
	if len(c.Live()) != 2 {
		t.Fatal("the line is shared")
	}
	for _, d := range []*platform.Device{d1, d2} {
		if err := b.Unbind(d); err != nil {
			t.Fatal(err)
		}
	}
	checkClean(t, d1, h, m, c)
}

func TestRemove_unbound(t *testing.T) {
	h, _, _ := newHost(coreRegs)
	dev := platform.NewDevice("usb", usbNode(), nil, h, memRes, irqRes)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = Remove(dev)
}

func dwc2Driver(t *testing.T) *platform.Driver {
	for _, drv := range platform.Drivers() {
		if drv.Name == "dwc2" {
			return drv
		}
	}
	t.Fatal("dwc2 not registered")
	return nil
}

type fakeCore struct {
	err error
}

func (f *fakeCore) Init(h *HSOTG) error {
	return f.err
}

func (f *fakeCore) Remove(h *HSOTG) {
}

func (f *fakeCore) HandleIRQ(h *HSOTG) irq.Return {
	return irq.None
}
