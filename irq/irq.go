// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package irq

import "errors"

// Return is the value returned by a Handler.
type Return int

const (
	// None means the interrupt wasn't raised by this handler's device.
	None Return = iota
	// Handled means the handler serviced its device.
	Handled
)

func (r Return) String() string {
	if r == Handled {
		return "Handled"
	}
	return "None"
}

// Handler services an interrupt. cookie is the value passed to Request.
type Handler func(line int, cookie interface{}) Return

// Flags modify Request.
type Flags uint32

const (
	// Shared allows several handlers on the same line. Every handler on the
	// line must request it.
	Shared Flags = 1 << iota
)

// Controller registers interrupt handlers.
type Controller interface {
	// Request installs h on line. cookie identifies the registration for Free
	// and is passed back to h.
	Request(line int, h Handler, flags Flags, name string, cookie interface{}) error
	// Free removes the handler registered with cookie on line.
	Free(line int, cookie interface{}) error
}

// ErrBusy is returned when a line is already used in a non shared way.
var ErrBusy = errors.New("irq: line busy")

// ErrNotRequested is returned by Free for an unknown registration.
var ErrNotRequested = errors.New("irq: handler not registered")

// action is one registered handler.
type action struct {
	h      Handler
	flags  Flags
	name   string
	cookie interface{}
}

// canShare reports whether a new registration with flags can be added to
// actions.
func canShare(actions []action, flags Flags) bool {
	if len(actions) == 0 {
		return true
	}
	if flags&Shared == 0 {
		return false
	}
	for _, a := range actions {
		if a.flags&Shared == 0 {
			return false
		}
	}
	return true
}

// remove returns actions without the registration for cookie.
func remove(actions []action, cookie interface{}) ([]action, bool) {
	for i, a := range actions {
		if a.cookie == cookie {
			return append(actions[:i:i], actions[i+1:]...), true
		}
	}
	return actions, false
}

// dispatch calls every handler and returns Handled if any of them serviced
// the interrupt.
func dispatch(line int, actions []action) Return {
	r := None
	for _, a := range actions {
		if a.h(line, a.cookie) == Handled {
			r = Handled
		}
	}
	return r
}
