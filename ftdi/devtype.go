// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

// DevType is the chip family reported by the D2XX driver.
type DevType uint32

// Values as returned by FT_GetDeviceInfo.
const (
	DevTypeFTBM       DevType = 0
	DevTypeFTAM       DevType = 1
	DevTypeFT100AX    DevType = 2
	DevTypeUnknown    DevType = 3
	DevTypeFT2232C    DevType = 4
	DevTypeFT232R     DevType = 5
	DevTypeFT2232H    DevType = 6
	DevTypeFT4232H    DevType = 7
	DevTypeFT232H     DevType = 8
	DevTypeFTXSeries  DevType = 9
	DevTypeFT4222H0   DevType = 10
	DevTypeFT4222H1_2 DevType = 11
	DevTypeFT4222H3   DevType = 12
	DevTypeFT4222Prog DevType = 13
	DevTypeFT900      DevType = 14
	DevTypeFT930      DevType = 15
	DevTypeFTUMFTPD3A DevType = 16
)

var devTypeNames = map[DevType]string{
	DevTypeFTBM:       "FTBM",
	DevTypeFTAM:       "FTAM",
	DevTypeFT100AX:    "FT100AX",
	DevTypeFT2232C:    "FT2232C",
	DevTypeFT232R:     "FT232R",
	DevTypeFT2232H:    "FT2232H",
	DevTypeFT4232H:    "FT4232H",
	DevTypeFT232H:     "FT232H",
	DevTypeFTXSeries:  "FTXSeries",
	DevTypeFT4222H0:   "FT4222H0",
	DevTypeFT4222H1_2: "FT4222H1/2",
	DevTypeFT4222H3:   "FT4222H3",
	DevTypeFT4222Prog: "FT4222Prog",
	DevTypeFT900:      "FT900",
	DevTypeFT930:      "FT930",
	DevTypeFTUMFTPD3A: "FTUMFTPD3A",
}

func (d DevType) String() string {
	if s, ok := devTypeNames[d]; ok {
		return s
	}
	return "Unknown"
}
