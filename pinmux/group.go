// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinmux

import "fmt"

// Group is a set of pins switched together by a mode register mask.
type Group struct {
	Name string `json:"name"`
	Mask uint32 `json:"mask"`
	// First and Last are the GPIO lines of the group, inclusive. Both are -1
	// for a group without physical pins.
	First int `json:"first"`
	Last  int `json:"last"`
}

// HasPins reports whether the group covers GPIO lines.
func (g *Group) HasPins() bool {
	return g.First >= 0 && g.Last >= 0
}

// Contains reports whether line belongs to the group.
func (g *Group) Contains(line int) bool {
	return g.HasPins() && line >= g.First && line <= g.Last
}

func (g *Group) String() string {
	if !g.HasPins() {
		return fmt.Sprintf("%s(%#x)", g.Name, g.Mask)
	}
	return fmt.Sprintf("%s(%#x, GPIO%d-%d)", g.Name, g.Mask, g.First, g.Last)
}

// Table is an ordered list of groups.
//
// Tables are immutable once built.
type Table []Group

// Lookup returns the first group named name.
func (t Table) Lookup(name string) (Group, bool) {
	for _, g := range t {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Mask returns the mask of the first group named name, or 0.
//
// A zero mask has no effect on the mode register so an unknown name is not an
// error.
func (t Table) Mask(name string) uint32 {
	g, _ := t.Lookup(name)
	return g.Mask
}

// Validate checks that names are unique and non empty and that pin ranges
// are ordered.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t))
	for _, g := range t {
		if g.Name == "" {
			return fmt.Errorf("pinmux: group with empty name (%#x)", g.Mask)
		}
		if _, ok := seen[g.Name]; ok {
			return fmt.Errorf("pinmux: duplicate group %q", g.Name)
		}
		seen[g.Name] = struct{}{}
		if g.HasPins() && g.First > g.Last {
			return fmt.Errorf("pinmux: group %q: GPIO%d > GPIO%d", g.Name, g.First, g.Last)
		}
	}
	return nil
}
