// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ralink

import (
	"os"
	"path"
	"testing"
)

func createDirs(t *testing.T, root string, dirs ...string) string {
	for _, dir := range dirs {
		if err := os.MkdirAll(path.Join(root, dir), os.ModePerm); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func createFiles(t *testing.T, root string, paths ...string) string {
	for _, path_ := range paths {
		if file, err := os.Create(path.Join(root, path_)); err != nil {
			t.Fatal(err)
		} else {
			file.Close()
		}
	}
	return root
}

func createSymLink(t *testing.T, root string, source string, destination string) {
	if err := os.Symlink(path.Join(root, source), path.Join(root, destination)); err != nil {
		t.Fatal(err)
	}
}

func TestGetBaseAddress_default(t *testing.T) {
	want := uint64(DefaultBase)
	if address := getBaseAddress("/dev/null"); address != want {
		t.Errorf("Expected %#x received %#x", want, address)
	}
}

func TestGetBaseAddress_noSysc(t *testing.T) {
	root := t.TempDir()
	createDirs(t, root, "devices/10000100.timer")
	createFiles(t, root, "10000500.uart", "zz.sysc")
	if address := getBaseAddress(root); address != DefaultBase {
		t.Errorf("Expected %#x received %#x", DefaultBase, address)
	}
}

func TestGetBaseAddress(t *testing.T) {
	root := t.TempDir()
	createDirs(t,
		root,
		"devices/platform/10000000.palmbus/10080000.sysc",
		"bus",
	)
	createFiles(t, root, "bus/10000500.uart")
	createSymLink(t, root, "devices/platform/10000000.palmbus/10080000.sysc", "bus/10080000.sysc")
	want := uint64(0x10080000)
	if address := getBaseAddress(path.Join(root, "bus")); address != want {
		t.Errorf("Expected %#x received %#x", want, address)
	}
}

func TestExtractBaseAddress_syscon(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "1e000000.syscon")
	items, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := extractBaseAddress(items[0]); !ok || a != 0x1e000000 {
		t.Errorf("got %#x, %t", a, ok)
	}
}
