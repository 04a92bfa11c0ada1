// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regs

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

var testGeometry = Geometry{
	Channels:      2,
	BytesPerRank:  3,
	ChannelStride: 0x1000,
	ByteStride:    0x100,
}

func collect(walk func(Geometry, func(uint32) error) error) []uint32 {
	var offsets []uint32
	_ = walk(testGeometry, func(offset uint32) error {
		offsets = append(offsets, offset)
		return nil
	})
	return offsets
}

func TestRangeValidate(t *testing.T) {
	require.NoError(t, Range(0x10, 0x10).Validate())
	require.NoError(t, Range(0x10, 0x1c).Validate())

	var reversed *ErrRangeReversed
	require.ErrorAs(t, Range(0x20, 0x10).Validate(), &reversed)

	var misaligned *ErrRangeMisaligned
	require.ErrorAs(t, Range(0x10, 0x12).Validate(), &misaligned)
	require.ErrorAs(t, Range(0x11, 0x15).Validate(), &misaligned)

	require.Equal(t, 1, Range(0x10, 0x10).Count())
	require.Equal(t, 4, Range(0x10, 0x1c).Count())
}

func TestTablesValidateAggregates(t *testing.T) {
	tables := Tables{
		Common:      []RegisterRange{Range(0, 4), Range(8, 4)},
		SaGvPerByte: []RegisterRange{Range(2, 6)},
	}
	err := tables.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var reversed *ErrRangeReversed
	require.ErrorAs(t, merr.Errors[0], &reversed)
	var misaligned *ErrRangeMisaligned
	require.ErrorAs(t, merr.Errors[1], &misaligned)
}

func TestWalkCommonOrder(t *testing.T) {
	tables := Tables{
		Common:        []RegisterRange{Range(0x0, 0x4)},
		CommonPerByte: []RegisterRange{Range(0x10, 0x10)},
		SaGvPerByte:   []RegisterRange{Range(0x20, 0x24)},
	}
	require.Equal(t, []uint32{
		0x0, 0x4,
		// per byte: channel outer, byte inner
		0x10, 0x110, 0x210, 0x1010, 0x1110, 0x1210,
		// ECC lane of SA-GV per-byte ranges
		0x220, 0x1220, 0x224, 0x1224,
	}, collect(tables.WalkCommon))
	require.Equal(t, len(collect(tables.WalkCommon))*RegisterSize, tables.CommonBytes(testGeometry))
}

func TestWalkSaGvSkipsEccLane(t *testing.T) {
	tables := Tables{
		SaGv:        []RegisterRange{Range(0x40, 0x40)},
		SaGvPerByte: []RegisterRange{Range(0x20, 0x20)},
	}
	require.Equal(t, []uint32{
		0x40,
		0x20, 0x120, 0x1020, 0x1120,
	}, collect(tables.WalkSaGv))
	require.Equal(t, 5*RegisterSize, tables.SaGvBytes(testGeometry))
}

func TestWalkStopsOnError(t *testing.T) {
	tables := Tables{Common: []RegisterRange{Range(0, 0x40)}}
	stop := errors.New("stop")
	n := 0
	err := tables.WalkCommon(testGeometry, func(uint32) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, n)
}

func TestGeometryValidate(t *testing.T) {
	require.NoError(t, testGeometry.Validate())
	var bad *ErrBadGeometry
	require.ErrorAs(t, Geometry{Channels: 2, BytesPerRank: 1}.Validate(), &bad)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	var seen []uint32
	m.OnWrite = func(offset, _ uint32) { seen = append(seen, offset) }

	m.WriteRegister(0x10, 0xdead)
	require.Equal(t, uint32(0xdead), m.ReadRegister(0x10))
	require.Equal(t, uint32(0), m.ReadRegister(0x14))
	require.Equal(t, 1, m.Writes)
	require.Equal(t, 2, m.Reads)
	require.Equal(t, []uint32{0x10}, seen)

	m.Set(0x20, 1)
	require.Equal(t, uint32(1), m.Get(0x20))
	require.Equal(t, 1, m.Writes)
	require.Equal(t, 2, m.Reads)
}
