// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/crc"
)

func TestIdentityRegion(t *testing.T) {
	var d Data
	d[OffsetDramType] = byte(DramTypeDDR4)
	require.Len(t, d.IdentityRegion(), ddr4IdentityEnd-ddr4IdentityStart)

	d[OffsetDramType] = byte(DramTypeLPDDR3)
	require.Len(t, d.IdentityRegion(), ddr3IdentityEnd-ddr3IdentityStart)
}

func TestFingerprintIgnoresBytesOutsideIdentity(t *testing.T) {
	var d Data
	d[OffsetDramType] = byte(DramTypeLPDDR4)
	for i := ddr4IdentityStart; i < ddr4IdentityEnd; i++ {
		d[i] = byte(i)
	}
	fp := d.Fingerprint()
	require.Equal(t, crc.Crc16(d[ddr4IdentityStart:ddr4IdentityEnd]), fp)

	d[0x20] ^= 0xff
	require.Equal(t, fp, d.Fingerprint())

	d[ddr4IdentityStart+5] ^= 0x01
	require.NotEqual(t, fp, d.Fingerprint())
}

func TestManufacturerID(t *testing.T) {
	var d Data
	d[OffsetDramType] = byte(DramTypeDDR4)
	d.SetManufacturerID(0x80ce)
	require.Equal(t, uint16(0x80ce), d.ManufacturerID())
	require.Equal(t, byte(0xce), d[ddr4IdentityStart])
	require.Equal(t, "DDR4", d.DramType().String())
	require.Equal(t, "DramType(0x7)", DramType(7).String())
}
