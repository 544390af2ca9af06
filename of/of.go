// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package of

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/u-root/u-root/pkg/dt"
)

// DefaultPath is where the kernel exposes the flattened device tree it booted
// with.
const DefaultPath = "/sys/firmware/fdt"

// Node is one node of the platform description.
type Node struct {
	n *dt.Node
}

// NewNode wraps a decoded device tree node.
func NewNode(n *dt.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// Name returns the node name, including the unit address if any.
func (n *Node) Name() string {
	return n.n.Name
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.n.Name
}

// Property implements Source.
func (n *Node) Property(name string) ([]byte, bool) {
	p, ok := n.n.LookProperty(name)
	if !ok {
		return nil, false
	}
	return p.Value, true
}

// Compatible returns the node's compatible strings, most specific first.
func (n *Node) Compatible() []string {
	return ReadStrings(n, "compatible")
}

// IsCompatible reports whether c is one of the node's compatible strings.
func (n *Node) IsCompatible(c string) bool {
	for _, s := range n.Compatible() {
		if s == c {
			return true
		}
	}
	return false
}

// PHandle returns the node's phandle, if it has one.
func (n *Node) PHandle() (uint32, bool) {
	p, ok := n.n.LookProperty("phandle")
	if !ok {
		return 0, false
	}
	ph, err := p.AsPHandle()
	if err != nil {
		return 0, false
	}
	return uint32(ph), true
}

// Children returns the direct children of the node.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.n.Children))
	for _, c := range n.n.Children {
		out = append(out, &Node{n: c})
	}
	return out
}

// Tree is a decoded platform description.
//
// It is immutable after creation.
type Tree struct {
	fdt *dt.FDT
}

// NewTree returns a Tree rooted at root.
func NewTree(root *dt.Node) *Tree {
	return &Tree{fdt: &dt.FDT{RootNode: root}}
}

// Parse decodes a flattened device tree blob.
func Parse(r io.ReadSeeker) (*Tree, error) {
	fdt, err := dt.ReadFDT(r)
	if err != nil {
		return nil, fmt.Errorf("of: %w", err)
	}
	if fdt.RootNode == nil {
		return nil, errors.New("of: device tree has no root node")
	}
	return &Tree{fdt: fdt}, nil
}

// Load decodes the flattened device tree blob at path.
func Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("of: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &Node{n: t.fdt.RootNode}
}

// Model returns the board model advertised by the root node, or
// "<unknown>".
func (t *Tree) Model() string {
	if s, ok := ReadString(t.Root(), "model"); ok {
		return s
	}
	return "<unknown>"
}

// FindCompatible returns the first node, in depth first order, compatible
// with c, or nil.
func (t *Tree) FindCompatible(c string) *Node {
	l := t.FindAll(func(n *Node) bool { return n.IsCompatible(c) })
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// FindAll returns every node matching f in depth first order.
func (t *Tree) FindAll(f func(n *Node) bool) []*Node {
	var out []*Node
	// The callback never fails.
	_ = t.fdt.RootNode.Walk(func(n *dt.Node) error {
		if w := (&Node{n: n}); f(w) {
			out = append(out, w)
		}
		return nil
	})
	return out
}

// ByPHandle returns the node whose phandle is ph, or nil.
func (t *Tree) ByPHandle(ph uint32) *Node {
	if ph == 0 {
		return nil
	}
	l := t.FindAll(func(n *Node) bool {
		v, ok := n.PHandle()
		return ok && v == ph
	})
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Finder locates nodes by compatible string.
//
// Tree implements it.
type Finder interface {
	FindCompatible(c string) *Node
}

var _ Source = &Node{}
var _ Finder = &Tree{}
