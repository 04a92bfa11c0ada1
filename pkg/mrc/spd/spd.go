// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spd knows just enough about Serial Presence Detect contents to
// fingerprint a DIMM and to describe the bytes kept in the MRC save area.
package spd

import (
	"fmt"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/crc"
)

// Size is the size of the SPD image kept per DIMM.
const Size = 512

// SPD byte offsets shared by the supported layouts.
const (
	OffsetBytesUsed  = 0x00
	OffsetRevision   = 0x01
	OffsetDramType   = 0x02
	OffsetModuleType = 0x03
	OffsetDensity    = 0x04
	OffsetModuleOrg  = 0x0C
	OffsetBusWidth   = 0x0D
)

// Manufacturing information, from the module manufacturer ID up to the
// module revision code.
const (
	ddr3IdentityStart = 0x75
	ddr3IdentityEnd   = 0x93
	ddr4IdentityStart = 0x140
	ddr4IdentityEnd   = 0x15E
)

// DramType is the SPD "DRAM Device Type" byte.
type DramType uint8

// Known DRAM device types.
const (
	DramTypeDDR3    DramType = 0x0B
	DramTypeDDR4    DramType = 0x0C
	DramTypeLPDDR3  DramType = 0x0F
	DramTypeLPDDR4  DramType = 0x10
	DramTypeLPDDR4X DramType = 0x11
)

func (t DramType) String() string {
	switch t {
	case DramTypeDDR3:
		return "DDR3"
	case DramTypeDDR4:
		return "DDR4"
	case DramTypeLPDDR3:
		return "LPDDR3"
	case DramTypeLPDDR4:
		return "LPDDR4"
	case DramTypeLPDDR4X:
		return "LPDDR4X"
	}
	return fmt.Sprintf("DramType(%#02x)", uint8(t))
}

// IsDDR3Family returns true for the DDR3 SPD layout (DDR3 and LPDDR3).
func (t DramType) IsDDR3Family() bool {
	return t == DramTypeDDR3 || t == DramTypeLPDDR3
}

// Data is a raw SPD image.
type Data [Size]byte

// DramType returns the DRAM device type byte.
func (d *Data) DramType() DramType {
	return DramType(d[OffsetDramType])
}

// IdentityRegion returns the manufacturing information of the module. A
// change in this region means a different physical module sits in the slot.
func (d *Data) IdentityRegion() []byte {
	if d.DramType().IsDDR3Family() {
		return d[ddr3IdentityStart:ddr3IdentityEnd]
	}
	return d[ddr4IdentityStart:ddr4IdentityEnd]
}

// Fingerprint is the CRC-16 of the identity region.
func (d *Data) Fingerprint() uint16 {
	return crc.Crc16(d.IdentityRegion())
}

// ManufacturerID returns the JEDEC module manufacturer ID code.
func (d *Data) ManufacturerID() uint16 {
	r := d.IdentityRegion()
	return uint16(r[0]) | uint16(r[1])<<8
}

// SetManufacturerID overwrites the module manufacturer ID code. LPDDR parts
// without a real SPD get their vendor ID patched in from the DRAM mode
// registers this way.
func (d *Data) SetManufacturerID(id uint16) {
	r := d.IdentityRegion()
	r[0] = byte(id)
	r[1] = byte(id >> 8)
}
