// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package irq

import "testing"

func TestCanShare(t *testing.T) {
	shared := []action{{flags: Shared}}
	exclusive := []action{{}}
	if !canShare(nil, 0) {
		t.Fatal("free line")
	}
	if !canShare(shared, Shared) {
		t.Fatal("both shared")
	}
	if canShare(shared, 0) || canShare(exclusive, Shared) || canShare(exclusive, 0) {
		t.Fatal("exclusive registration")
	}
}

func TestRemoveDispatch(t *testing.T) {
	var calls []int
	h := func(id int, r Return) Handler {
		return func(line int, cookie interface{}) Return {
			calls = append(calls, id)
			return r
		}
	}
	a, b := new(int), new(int)
	actions := []action{{h: h(1, None), cookie: a}, {h: h(2, Handled), cookie: b}}
	if r := dispatch(7, actions); r != Handled || len(calls) != 2 {
		t.Fatal(r, calls)
	}
	rest, ok := remove(actions, b)
	if !ok || len(rest) != 1 || rest[0].cookie != a {
		t.Fatal(rest, ok)
	}
	if actions[1].cookie != b {
		t.Fatal("remove must not alias its input")
	}
	if r := dispatch(7, rest); r != None {
		t.Fatal(r)
	}
	if _, ok := remove(rest, b); ok {
		t.Fatal("removed twice")
	}
	if s := Handled.String(); s != "Handled" {
		t.Fatal(s)
	}
}
