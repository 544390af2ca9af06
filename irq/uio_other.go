// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package irq

import "errors"

// UIO delivers interrupts read from UIO device nodes.
//
// UIO is only supported on Linux.
type UIO struct {
	Devices map[int]string
}

// Request implements Controller.
func (u *UIO) Request(line int, h Handler, flags Flags, name string, cookie interface{}) error {
	return errors.New("irq: uio is only supported on linux")
}

// Free implements Controller.
func (u *UIO) Free(line int, cookie interface{}) error {
	return ErrNotRequested
}

var _ Controller = &UIO{}
