// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fon

import (
	"expvar"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"

	"periph.io/x/ralink/v3/ftdi"
	"periph.io/x/ralink/v3/mtd"
	"periph.io/x/ralink/v3/of"
	"periph.io/x/ralink/v3/platform"
)

// Compatible is the compatible string of the configuration node.
const Compatible = "fon,config"

// PropConfig holds the partition phandle, the SKU offset and the board
// configuration offset.
const PropConfig = "fon,config"

var (
	// ErrNoConfig is returned when the node lacks a valid PropConfig.
	ErrNoConfig = fmt.Errorf("fon: failed to load %s property: %w", PropConfig, fs.ErrNotExist)
	// ErrNoPartition is returned when the partition phandle doesn't resolve.
	ErrNoPartition = fmt.Errorf("fon: failed to load partition phandle: %w", fs.ErrNotExist)
)

// Partition is a readable flash partition.
type Partition interface {
	io.ReaderAt
	io.Closer
}

// Current returns the configuration of the bound board, or nil.
func Current() *Board {
	return current.Load()
}

// Entry returns the named entry of the bound board.
func Entry(name string) (string, bool) {
	b := current.Load()
	if b == nil {
		return "", false
	}
	return b.Entry(name)
}

// PartitionName returns the name of the partition described by n: its label,
// or its node name without unit address.
func PartitionName(n *of.Node) string {
	if s, ok := of.ReadString(n, "label"); ok && s != "" {
		return s
	}
	name := n.Name()
	if i := strings.IndexByte(name, '@'); i != -1 {
		name = name[:i]
	}
	return name
}

// Probe reads the board configuration described by dev.
func Probe(dev *platform.Device) error {
	n := dev.Node()
	if n == nil {
		return ErrNoConfig
	}
	cells, st := of.ReadCells(n, PropConfig)
	if st != of.Present || len(cells) < 3 {
		return ErrNoConfig
	}
	var part *of.Node
	if t := dev.Tree(); t != nil && cells[0] != 0 {
		part = t.ByPHandle(cells[0])
	}
	if part == nil {
		return ErrNoPartition
	}
	name := PartitionName(part)
	p, err := openPartition(name)
	if err != nil {
		return fmt.Errorf("fon: failed to get partition %q: %w", name, err)
	}
	defer p.Close()
	b, err := Read(p, int64(cells[1]), int64(cells[2]))
	if err != nil {
		return err
	}
	logf("fon: %s: sku %s, serial %s from %q", dev, b.SKU, b.Config.SerialString(), name)
	dev.SetDrvData(b)
	current.Store(b)
	publish()
	return nil
}

// Remove forgets the board configuration.
func Remove(dev *platform.Device) error {
	if b, ok := dev.DrvData().(*Board); ok {
		current.CompareAndSwap(b, nil)
	}
	dev.SetDrvData(nil)
	return nil
}

// OpenPartition opens a partition by name. "ftdi:N" names designate the
// user area of an FTDI adapter, other names a flash partition.
func OpenPartition(name string) (Partition, error) {
	if ftdi.IsPartition(name) {
		u, err := ftdi.OpenPartition(name)
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	p, err := mtd.Open(name)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// publish exposes the entries with expvar. expvar can't unpublish, so it
// happens once per process and the values follow the bound board.
func publish() {
	publishOnce.Do(func() {
		for _, e := range Entries {
			e := e
			expvar.Publish("fon."+e, expvar.Func(func() interface{} {
				v, _ := Entry(e)
				return v
			}))
		}
	})
}

var (
	current     atomic.Pointer[Board]
	publishOnce sync.Once
	// openPartition is mocked in tests.
	openPartition = OpenPartition
)

func init() {
	platform.MustRegister(&platform.Driver{
		Name:       "fon-config",
		Compatible: []string{Compatible},
		Probe:      Probe,
		Remove:     Remove,
	})
}
