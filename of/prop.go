// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package of

import (
	"encoding/binary"
	"strings"
)

// Source is a node of the platform description that can be queried for raw
// named properties.
type Source interface {
	// Property returns the raw encoded value of the property name and true
	// if the property exists.
	Property(name string) ([]byte, bool)
}

// State is the outcome of a typed property read.
type State int

const (
	// Absent means the property doesn't exist.
	Absent State = iota
	// Malformed means the property exists but its encoding doesn't match the
	// requested type.
	Malformed
	// Present means the property was found and decoded.
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	case Present:
		return "present"
	default:
		return "State(?)"
	}
}

// CellSize is the encoded width of a single integer cell.
const CellSize = 4

// ReadU32 reads a property holding exactly one big endian cell.
//
// The returned value is only meaningful when the State is Present.
func ReadU32(s Source, name string) (uint32, State) {
	b, ok := s.Property(name)
	if !ok {
		return 0, Absent
	}
	if len(b) != CellSize {
		return 0, Malformed
	}
	return binary.BigEndian.Uint32(b), Present
}

// ReadCells reads a property made of big endian cells.
func ReadCells(s Source, name string) ([]uint32, State) {
	b, ok := s.Property(name)
	if !ok {
		return nil, Absent
	}
	if len(b)%CellSize != 0 {
		return nil, Malformed
	}
	out := make([]uint32, len(b)/CellSize)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*CellSize:])
	}
	return out, Present
}

// ReadStrings returns the NUL separated strings of a string list property.
//
// It returns nil if the property is absent.
func ReadStrings(s Source, name string) []string {
	b, ok := s.Property(name)
	if !ok || len(b) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(b), "\x00"), "\x00")
}

// ReadString returns the first string of a string property.
func ReadString(s Source, name string) (string, bool) {
	l := ReadStrings(s, name)
	if len(l) == 0 {
		return "", false
	}
	return l[0], true
}

// ReadFlag reports whether a boolean property is set.
//
// An empty property is a set flag. A property carrying cells is set when its
// first cell is non-zero.
func ReadFlag(s Source, name string) bool {
	b, ok := s.Property(name)
	if !ok {
		return false
	}
	if len(b) < CellSize {
		return len(b) == 0
	}
	return binary.BigEndian.Uint32(b) != 0
}
