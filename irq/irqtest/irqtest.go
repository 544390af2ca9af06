// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package irqtest implements a fake interrupt controller.
package irqtest

import (
	"fmt"
	"sync"

	"periph.io/x/ralink/v3/irq"
)

// Registration is one live handler.
type Registration struct {
	Line    int
	Handler irq.Handler
	Flags   irq.Flags
	Name    string
	Cookie  interface{}
}

// Controller is a fake irq.Controller.
type Controller struct {
	// Err, when set, is returned by Request.
	Err error

	mu   sync.Mutex
	regs []Registration
}

// Request implements irq.Controller.
func (c *Controller) Request(line int, h irq.Handler, flags irq.Flags, name string, cookie interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for _, r := range c.regs {
		if r.Line == line && (r.Flags&irq.Shared == 0 || flags&irq.Shared == 0) {
			return fmt.Errorf("irq %d: %w", line, irq.ErrBusy)
		}
	}
	c.regs = append(c.regs, Registration{Line: line, Handler: h, Flags: flags, Name: name, Cookie: cookie})
	return nil
}

// Free implements irq.Controller.
func (c *Controller) Free(line int, cookie interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.regs {
		if r.Line == line && r.Cookie == cookie {
			c.regs = append(c.regs[:i], c.regs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("irq %d: %w", line, irq.ErrNotRequested)
}

// Live returns the registrations not freed yet.
func (c *Controller) Live() []Registration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Registration(nil), c.regs...)
}

// Fire calls every handler registered on line, as the interrupt would.
func (c *Controller) Fire(line int) irq.Return {
	ret := irq.None
	for _, r := range c.Live() {
		if r.Line == line && r.Handler(line, r.Cookie) == irq.Handled {
			ret = irq.Handled
		}
	}
	return ret
}

var _ irq.Controller = &Controller{}
