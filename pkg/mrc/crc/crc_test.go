// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrc32(t *testing.T) {
	require.Equal(t, uint32(0xCBF43926), Crc32([]byte("123456789")))
	require.Equal(t, uint32(0), Crc32(nil))
	require.Equal(t, uint32(0xD202EF8D), Crc32([]byte{0}))
}

func TestCrc32SingleBitFlip(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i * 7)
	}
	orig := Crc32(data)
	for i := range data {
		for bit := 0; bit < 8; bit++ {
			data[i] ^= 1 << bit
			if Crc32(data) == orig {
				t.Fatalf("flipping bit %d of byte %d did not change the CRC", bit, i)
			}
			data[i] ^= 1 << bit
		}
	}
}

func TestCrc16(t *testing.T) {
	require.Equal(t, uint16(0x31C3), Crc16([]byte("123456789")))
	require.Equal(t, uint16(0), Crc16(nil))
	require.Equal(t, uint16(0), Crc16([]byte{0, 0, 0}))
}
