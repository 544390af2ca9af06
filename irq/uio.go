// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package irq

import (
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sys/unix"
)

// pollTimeout bounds how long Free waits for the reader loop to notice it
// has to stop, in milliseconds.
const pollTimeout = 100

// UIO delivers interrupts read from UIO device nodes.
type UIO struct {
	// Devices maps an interrupt line to its /dev/uioN node. See DiscoverUIO.
	Devices map[int]string

	mu    sync.Mutex
	lines map[int]*uioLine
}

type uioLine struct {
	fd      int
	mu      sync.RWMutex
	actions []action
	stop    chan struct{}
	done    chan struct{}
}

// Request implements Controller.
func (u *UIO) Request(line int, h Handler, flags Flags, name string, cookie interface{}) error {
	if h == nil {
		return fmt.Errorf("irq: nil handler for line %d", line)
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if l, ok := u.lines[line]; ok {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !canShare(l.actions, flags) {
			return fmt.Errorf("irq %d (%s): %w", line, name, ErrBusy)
		}
		l.actions = append(l.actions, action{h: h, flags: flags, name: name, cookie: cookie})
		return nil
	}
	p, ok := u.Devices[line]
	if !ok {
		return fmt.Errorf("irq: no uio device for line %d", line)
	}
	fd, err := unix.Open(p, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("irq: opening %s: %w", p, err)
	}
	l := &uioLine{
		fd:      fd,
		actions: []action{{h: h, flags: flags, name: name, cookie: cookie}},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if err := l.unmask(); err != nil {
		_ = unix.Close(fd)
		return fmt.Errorf("irq: enabling line %d: %w", line, err)
	}
	if u.lines == nil {
		u.lines = map[int]*uioLine{}
	}
	u.lines[line] = l
	go l.loop(line)
	return nil
}

// Free implements Controller.
//
// The UIO node is closed when the last handler of the line is removed.
func (u *UIO) Free(line int, cookie interface{}) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.lines[line]
	if !ok {
		return fmt.Errorf("irq %d: %w", line, ErrNotRequested)
	}
	l.mu.Lock()
	var found bool
	l.actions, found = remove(l.actions, cookie)
	empty := len(l.actions) == 0
	l.mu.Unlock()
	if !found {
		return fmt.Errorf("irq %d: %w", line, ErrNotRequested)
	}
	if !empty {
		return nil
	}
	delete(u.lines, line)
	close(l.stop)
	<-l.done
	return unix.Close(l.fd)
}

// unmask re-enables the line in the kernel.
func (l *uioLine) unmask() error {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], 1)
	_, err := unix.Write(l.fd, b[:])
	return err
}

// loop waits for events until stop is closed.
func (l *uioLine) loop(line int) {
	defer close(l.done)
	fds := []unix.PollFd{{Fd: int32(l.fd), Events: unix.POLLIN}}
	var b [4]byte
	for {
		select {
		case <-l.stop:
			return
		default:
		}
		n, err := unix.Poll(fds, pollTimeout)
		if err == unix.EINTR || n == 0 {
			continue
		}
		if err != nil {
			log.Printf("irq %d: poll: %v", line, err)
			return
		}
		if _, err := unix.Read(l.fd, b[:]); err != nil {
			log.Printf("irq %d: read: %v", line, err)
			return
		}
		l.mu.RLock()
		r := dispatch(line, l.actions)
		l.mu.RUnlock()
		if r == None {
			logf("irq %d: spurious interrupt", line)
		}
		if err := l.unmask(); err != nil {
			log.Printf("irq %d: unmask: %v", line, err)
			return
		}
	}
}

var _ Controller = &UIO{}
