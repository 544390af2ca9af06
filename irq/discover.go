// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package irq

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DiscoverUIO returns the UIO device node of every interrupt line that is
// bound to a UIO device.
//
// classDir is usually /sys/class/uio and interrupts /proc/interrupts. The
// kernel names the interrupt action after the UIO device, which is how lines
// are matched to devices.
func DiscoverUIO(classDir, interrupts string) (map[int]string, error) {
	items, err := os.ReadDir(classDir)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	for _, item := range items {
		if !strings.HasPrefix(item.Name(), "uio") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(classDir, item.Name(), "name"))
		if err != nil {
			continue
		}
		names[strings.TrimSpace(string(b))] = "/dev/" + item.Name()
	}
	out := map[int]string{}
	if len(names) == 0 {
		return out, nil
	}
	f, err := os.Open(interrupts)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line, action, ok := parseInterruptLine(s.Text())
		if !ok {
			continue
		}
		if dev, ok := names[action]; ok {
			out[line] = dev
		}
	}
	return out, s.Err()
}

// parseInterruptLine parses one /proc/interrupts row, e.g.
// "  26:     1234      MIPS  26  dwc2".
//
// Rows for architecture counters like "ERR:" are skipped.
func parseInterruptLine(s string) (int, string, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 || !strings.HasSuffix(fields[0], ":") {
		return 0, "", false
	}
	line, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":"))
	if err != nil {
		return 0, "", false
	}
	return line, fields[len(fields)-1], true
}
