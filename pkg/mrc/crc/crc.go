// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crc implements the checksums used by the MRC save area: CRC-32 for
// the save data and the JEDEC SPD CRC-16 for DIMM fingerprints.
package crc

import (
	"hash/crc32"
)

// Crc32 returns the reflected CRC-32 (polynomial 0xEDB88320, seed
// 0xFFFFFFFF, final complement) of data.
func Crc32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

const (
	crc16Poly = 0x1021
	crc16Seed = 0
)

var crc16Table = makeCrc16Table()

func makeCrc16Table() (t [256]uint16) {
	for i := range t {
		v := uint16(i) << 8
		for bit := 0; bit < 8; bit++ {
			if v&0x8000 != 0 {
				v = v<<1 ^ crc16Poly
			} else {
				v <<= 1
			}
		}
		t[i] = v
	}
	return
}

// Crc16 returns the SPD CRC-16 of data: polynomial 0x1021, seed 0, MSB first,
// no final complement.
func Crc16(data []byte) uint16 {
	v := uint16(crc16Seed)
	for _, b := range data {
		v = v<<8 ^ crc16Table[byte(v>>8)^b]
	}
	return v
}
