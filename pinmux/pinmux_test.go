// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinmux

import (
	"testing"

	"github.com/u-root/u-root/pkg/dt"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/ralink/v3/mmio/mmiotest"
	"periph.io/x/ralink/v3/of"
	"periph.io/x/ralink/v3/of/oftest"
)

const (
	maskI2C   = 1 << 0
	maskUART1 = 1 << 5
	maskSPI   = 1 << 11
	maskJTAG  = 1 << 15
)

func testConfig() *Config {
	return &Config{
		Mode: Table{
			{Name: "i2c", Mask: maskI2C, First: 1, Last: 2},
			{Name: "spi", Mask: maskSPI, First: 3, Last: 6},
			{Name: "uartlite", Mask: maskUART1, First: 15, Last: 16},
			{Name: "jtag", Mask: maskJTAG, First: 40, Last: 44},
			{Name: "ephy", Mask: maskJTAG, First: 40, Last: 44},
			{Name: "spi+i2c", Mask: maskSPI | maskI2C, First: 1, Last: 6},
		},
		UART: Table{
			{Name: "uartf", Mask: 0x0, First: 7, Last: 14},
			{Name: "pcm uartf", Mask: 0x1, First: 7, Last: 14},
			{Name: "gpio", Mask: 0x7, First: -1, Last: -1},
		},
		UARTShift: 2,
		UARTMask:  0x7,
	}
}

func sysc(props ...dt.Property) *of.Tree {
	p := oftest.Props(oftest.Strings("compatible", "ralink,mtk7620a-sysc", Compatible))
	return of.NewTree(oftest.Node("", nil, oftest.Node("sysc@0", append(p, props...))))
}

func apply(t *testing.T, c *Config, tr *of.Tree) uint32 {
	r := &mmiotest.Regs{}
	if !c.Apply(tr, r) {
		t.Fatal("Apply() = false")
	}
	if len(r.Writes) != 1 || r.Writes[0].Off != RegGPIOMode {
		t.Fatalf("writes = %v", r.Writes)
	}
	return r.Writes[0].Value
}

func TestTable_Mask(t *testing.T) {
	tbl := Table{
		{Name: "a", Mask: 1},
		{Name: "b", Mask: 2},
		{Name: "a", Mask: 4},
	}
	data := []struct {
		name string
		want uint32
	}{
		{"a", 1},
		{"b", 2},
		{"c", 0},
		{"", 0},
		{"A", 0},
	}
	for _, line := range data {
		if got := tbl.Mask(line.name); got != line.want {
			t.Errorf("Mask(%q) = %#x, want %#x", line.name, got, line.want)
		}
	}
	if _, ok := tbl.Lookup(""); ok {
		t.Error("empty name must never match")
	}
	if err := tbl.Validate(); err == nil {
		t.Error("duplicate names must fail validation")
	}
	if err := (Table{{Name: "x", First: 5, Last: 2}}).Validate(); err == nil {
		t.Error("reversed range must fail validation")
	}
	if err := (Table{{Name: "", Mask: 1}}).Validate(); err == nil {
		t.Error("empty name must fail validation")
	}
	if err := testConfig().Mode.Validate(); err != nil {
		t.Error(err)
	}
}

func TestApply_NoNode(t *testing.T) {
	r := &mmiotest.Regs{}
	tr := of.NewTree(oftest.Node("", nil, oftest.Node("sysc@0", oftest.Props(oftest.Strings("compatible", "other")))))
	if testConfig().Apply(tr, r) {
		t.Fatal("Apply() = true")
	}
	if len(r.Writes) != 0 {
		t.Fatalf("writes = %v", r.Writes)
	}
}

func TestApply_Empty(t *testing.T) {
	if got := apply(t, testConfig(), sysc()); got != 0 {
		t.Fatalf("mode = %#x", got)
	}
}

func TestApply_EnableDisable(t *testing.T) {
	got := apply(t, testConfig(), sysc(oftest.Strings(PropEnable, "spi"), oftest.Strings(PropDisable, "jtag")))
	if got != maskSPI {
		t.Fatalf("mode = %#x", got)
	}
}

func TestApply_DisableWins(t *testing.T) {
	data := []struct {
		enable, disable []string
		want            uint32
	}{
		{[]string{"spi+i2c"}, []string{"spi"}, maskI2C},
		{[]string{"spi", "i2c"}, []string{"spi+i2c"}, 0},
		{[]string{"jtag", "uartlite"}, []string{"ephy"}, maskUART1},
		{[]string{"i2c", "unknown"}, []string{"bogus"}, maskI2C},
	}
	for i, line := range data {
		got := apply(t, testConfig(), sysc(oftest.Strings(PropEnable, line.enable...), oftest.Strings(PropDisable, line.disable...)))
		if got != line.want {
			t.Errorf("#%d: mode = %#x, want %#x", i, got, line.want)
		}
	}
}

func TestApply_UART(t *testing.T) {
	data := []struct {
		uart string
		want uint32
	}{
		// Resolved against a non-zero baseline: the baseline is set, then the
		// group's bits are cleared.
		{"pcm uartf", 0x6 << 2},
		// A zero mask keeps the baseline.
		{"uartf", 0x7 << 2},
		// Unknown keeps the baseline.
		{"nope", 0x7 << 2},
	}
	for _, line := range data {
		got := apply(t, testConfig(), sysc(oftest.Strings(PropUART, line.uart), oftest.Strings(PropEnable, "i2c")))
		if got != line.want|maskI2C {
			t.Errorf("%q: mode = %#x, want %#x", line.uart, got, line.want|maskI2C)
		}
	}
}

func TestApply_UARTZeroBaseline(t *testing.T) {
	c := testConfig()
	c.UARTMask = 0
	for _, name := range []string{"uartf", "pcm uartf", "gpio", "nope"} {
		got := apply(t, c, sysc(oftest.Strings(PropUART, name)))
		if f := (got >> c.UARTShift) & 7; f != 0 {
			t.Errorf("%q: uart field = %d, want 0", name, f)
		}
	}
}

func TestApply_Watchdog(t *testing.T) {
	calls := 0
	c := testConfig()
	c.WDTReset = WatchdogFunc(func() { calls++ })
	tr := func(v uint32) *of.Tree {
		return of.NewTree(oftest.Node("", nil, oftest.Node("sysc@0", oftest.Props(
			oftest.Strings("compatible", Compatible),
			oftest.Cells(PropWDT, v),
		))))
	}
	apply(t, c, tr(0))
	if calls != 0 {
		t.Fatal("zero wdtmux must not reset")
	}
	apply(t, c, tr(1))
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	// No capability: nothing to call, the mode is still written.
	apply(t, testConfig(), tr(1))
}

func TestFuncOf(t *testing.T) {
	c := testConfig()
	data := []struct {
		line int
		mode uint32
		want pin.Func
	}{
		{3, maskSPI, FuncGPIO},
		{3, 0, pin.Func("spi")},
		{41, 0, pin.Func("jtag")},
		{41, maskJTAG, FuncGPIO},
		{100, 0, pin.FuncNone},
	}
	for _, line := range data {
		if got := c.FuncOf(line.line, line.mode); got != line.want {
			t.Errorf("FuncOf(%d, %#x) = %q, want %q", line.line, line.mode, got, line.want)
		}
	}
}
