// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

// Frequency is a DDR data rate in MT/s.
type Frequency uint32

// Standard data rates.
const (
	F1067 = Frequency(1067)
	F1333 = Frequency(1333)
	F1600 = Frequency(1600)
	F1867 = Frequency(1867)
	F2133 = Frequency(2133)
	F2400 = Frequency(2400)
	F2667 = Frequency(2667)
	F2933 = Frequency(2933)
	F3200 = Frequency(3200)
)

// tCK in femtoseconds of the standard data rates.
var clockTable = map[Frequency]uint32{
	F1067: 1875000,
	F1333: 1500000,
	F1600: 1250000,
	F1867: 1071428,
	F2133: 937500,
	F2400: 833333,
	F2667: 750000,
	F2933: 681818,
	F3200: 625000,
}

// MemoryClock returns tCK in femtoseconds for the data rate.
func (f Frequency) MemoryClock() uint32 {
	if f == 0 {
		return 0
	}
	if tCK, ok := clockTable[f]; ok {
		return tCK
	}
	// two transfers per clock
	return uint32(2000000000 / uint64(f))
}

// Ratio returns the memory controller ratio for the data rate against the
// given reference clock, rounded to the nearest integer.
func (f Frequency) Ratio(refClk RefClk) uint8 {
	if refClk == RefClk100 {
		return uint8((uint32(f) + 50) / 100)
	}
	// 133.33 MHz
	return uint8((uint32(f)*3 + 200) / 400)
}

// defaultSaGvFrequency is the frequency of the low and mid points when the
// platform does not override them.
func defaultSaGvFrequency(ddrType DdrType, point SaGvPoint) Frequency {
	switch ddrType {
	case DdrTypeLPDDR4:
		if point == SaGvPointLow {
			return F1067
		}
		return F2133
	case DdrTypeDDR4:
		if point == SaGvPointLow {
			return F1333
		}
		return F2133
	default:
		if point == SaGvPointLow {
			return F1067
		}
		return F1333
	}
}
