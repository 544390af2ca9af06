// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package oftest builds in-memory platform descriptions for tests.
package oftest

import (
	"encoding/binary"
	"strings"

	"github.com/u-root/u-root/pkg/dt"
)

// Node returns a device tree node with the given properties and children.
func Node(name string, props []dt.Property, children ...*dt.Node) *dt.Node {
	return &dt.Node{Name: name, Properties: props, Children: children}
}

// Props is a convenience to build a property list.
func Props(p ...dt.Property) []dt.Property {
	return p
}

// Strings returns a string list property.
func Strings(name string, v ...string) dt.Property {
	return dt.Property{Name: name, Value: []byte(strings.Join(v, "\x00") + "\x00")}
}

// Cells returns a property made of big endian cells.
func Cells(name string, v ...uint32) dt.Property {
	b := make([]byte, 4*len(v))
	for i, c := range v {
		binary.BigEndian.PutUint32(b[4*i:], c)
	}
	return dt.Property{Name: name, Value: b}
}

// Raw returns a property with an arbitrary encoding.
func Raw(name string, b []byte) dt.Property {
	return dt.Property{Name: name, Value: b}
}

// Source is a map backed of.Source.
type Source map[string][]byte

// Property implements of.Source.
func (s Source) Property(name string) ([]byte, bool) {
	b, ok := s[name]
	return b, ok
}
