// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mtd opens flash partitions by name.
//
// Partitions are looked up in /proc/mtd and read through the /dev/mtdN
// character devices.
package mtd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Info describes one partition.
type Info struct {
	// Index is N in /dev/mtdN.
	Index     int
	Name      string
	Size      int64
	EraseSize int64
}

func (i *Info) String() string {
	return fmt.Sprintf("mtd%d(%q, %#x)", i.Index, i.Name, i.Size)
}

// ErrNotFound is returned when no partition has the requested name.
var ErrNotFound = errors.New("mtd: partition not found")

// Table locates partitions.
type Table struct {
	// Proc is the partition list, /proc/mtd.
	Proc string
	// Dev is the directory holding the device nodes, /dev.
	Dev string
}

// Default is the table of the running system.
var Default = &Table{Proc: "/proc/mtd", Dev: "/dev"}

// Open opens the partition named name in Default.
func Open(name string) (*Partition, error) {
	return Default.Open(name)
}

// List returns every partition.
func (t *Table) List() ([]Info, error) {
	f, err := os.Open(t.Proc)
	if err != nil {
		return nil, fmt.Errorf("mtd: %w", err)
	}
	defer f.Close()
	var out []Info
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i, ok := parseLine(s.Text()); ok {
			out = append(out, i)
		}
	}
	return out, s.Err()
}

// Find returns the first partition named name.
func (t *Table) Find(name string) (Info, error) {
	all, err := t.List()
	if err != nil {
		return Info{}, err
	}
	for _, i := range all {
		if i.Name == name {
			return i, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Open opens the partition named name read only.
func (t *Table) Open(name string) (*Partition, error) {
	i, err := t.Find(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(t.Dev, "mtd"+strconv.Itoa(i.Index)))
	if err != nil {
		return nil, fmt.Errorf("mtd: %w", err)
	}
	return &Partition{Info: i, f: f}, nil
}

// Partition is an open partition.
type Partition struct {
	Info
	f *os.File
}

// ReadAt implements io.ReaderAt. Reads are bounded by the partition size.
func (p *Partition) ReadAt(b []byte, off int64) (int, error) {
	if off >= p.Size {
		return 0, io.EOF
	}
	if rem := p.Size - off; int64(len(b)) > rem {
		n, err := p.f.ReadAt(b[:rem], off)
		if err == nil {
			err = io.EOF
		}
		return n, err
	}
	return p.f.ReadAt(b, off)
}

// Close implements io.Closer.
func (p *Partition) Close() error {
	return p.f.Close()
}

// parseLine parses one /proc/mtd row, e.g.
// `mtd3: 00010000 00010000 "factory"`.
func parseLine(s string) (Info, bool) {
	fields := strings.Fields(s)
	if len(fields) < 4 || !strings.HasPrefix(fields[0], "mtd") || !strings.HasSuffix(fields[0], ":") {
		return Info{}, false
	}
	idx, err := strconv.Atoi(fields[0][3 : len(fields[0])-1])
	if err != nil {
		return Info{}, false
	}
	size, err := strconv.ParseInt(fields[1], 16, 64)
	if err != nil {
		return Info{}, false
	}
	erase, err := strconv.ParseInt(fields[2], 16, 64)
	if err != nil {
		return Info{}, false
	}
	name, err := strconv.Unquote(strings.Join(fields[3:], " "))
	if err != nil {
		return Info{}, false
	}
	return Info{Index: idx, Name: name, Size: size, EraseSize: erase}, true
}
