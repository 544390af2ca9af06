// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package platform

import (
	"errors"
	"fmt"

	"periph.io/x/ralink/v3/irq"
	"periph.io/x/ralink/v3/mmio"
)

// Scope owns resources acquired on behalf of a Device.
//
// Release frees them in reverse acquisition order and each of them exactly
// once. Commit hands them over to the device, which releases them when it is
// unbound.
//
// A Scope is not safe for concurrent use.
type Scope struct {
	dev     *Device
	parent  *Scope
	entries []entry
}

type entry struct {
	name    string
	release func() error
}

// Add registers release to be called when the scope is released.
func (s *Scope) Add(name string, release func() error) {
	s.entries = append(s.entries, entry{name: name, release: release})
}

// Len returns the number of live resources held.
func (s *Scope) Len() int {
	return len(s.entries)
}

// Release frees every resource, most recent first.
//
// All resources are released even if some fail; the errors are joined.
func (s *Scope) Release() error {
	var errs []error
	for len(s.entries) != 0 {
		e := s.entries[len(s.entries)-1]
		s.entries = s.entries[:len(s.entries)-1]
		logf("platform: %s: releasing %s", s.dev, e.name)
		if err := e.release(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

// Commit transfers the resources to the enclosing scope.
//
// The scope is empty afterward, so a deferred Release is a no-op.
func (s *Scope) Commit() {
	if s.parent == nil {
		return
	}
	s.parent.entries = append(s.parent.entries, s.entries...)
	s.entries = nil
}

// IORemap claims the memory resource r exclusively and maps it.
//
// Both the claim and the mapping are owned by the scope.
func (s *Scope) IORemap(r *Resource) (mmio.Window, error) {
	if r == nil || r.Type != MemResource {
		return nil, errors.New("platform: invalid memory resource")
	}
	h := s.dev.host
	if err := h.claim(r); err != nil {
		return nil, fmt.Errorf("platform: %s: %w", s.dev, err)
	}
	w, err := h.Mapper.Map(r.Start, int(r.Size()))
	if err != nil {
		h.release(r)
		return nil, fmt.Errorf("platform: %s: %w", s.dev, err)
	}
	res := *r
	s.Add(fmt.Sprintf("mapping %s", r), func() error {
		defer h.release(&res)
		return w.Close()
	})
	return w, nil
}

// RequestIRQ installs the handler h on line; the scope frees it.
func (s *Scope) RequestIRQ(line int, h irq.Handler, flags irq.Flags, name string, cookie interface{}) error {
	c := s.dev.host.IRQ
	if err := c.Request(line, h, flags, name, cookie); err != nil {
		return fmt.Errorf("platform: %s: %w", s.dev, err)
	}
	s.Add(fmt.Sprintf("irq %d", line), func() error {
		return c.Free(line, cookie)
	})
	return nil
}
