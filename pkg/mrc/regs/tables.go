// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Geometry describes how per-byte registers are replicated across channels
// and SDRAM byte lanes.
type Geometry struct {
	Channels      int
	BytesPerRank  int
	ChannelStride uint32
	ByteStride    uint32
}

// EccByte is the index of the ECC byte lane, the last lane of a rank.
func (g Geometry) EccByte() int {
	return g.BytesPerRank - 1
}

// PerByteAddress returns the offset of the copy of the channel 0 / byte 0
// register at offset for the given channel and byte lane.
func (g Geometry) PerByteAddress(offset uint32, channel, lane int) uint32 {
	return offset + g.ChannelStride*uint32(channel) + g.ByteStride*uint32(lane)
}

// Validate checks that per-byte walks are possible.
func (g Geometry) Validate() error {
	if g.Channels < 1 || g.BytesPerRank < 2 {
		return &ErrBadGeometry{Geometry: g}
	}
	return nil
}

// Tables lists the register ranges holding trained values.
//
// Common and CommonPerByte do not depend on the memory frequency and are
// captured once. SaGv and SaGvPerByte are captured for every SA-GV point; the
// ECC lane of SaGvPerByte is frequency independent and belongs to the common
// section.
type Tables struct {
	Common        []RegisterRange
	CommonPerByte []RegisterRange
	SaGv          []RegisterRange
	SaGvPerByte   []RegisterRange
}

// Validate returns every malformed range of every table.
func (t *Tables) Validate() error {
	var result *multierror.Error
	check := func(name string, ranges []RegisterRange) {
		for idx, r := range ranges {
			if err := r.Validate(); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s[%d]: %w", name, idx, err))
			}
		}
	}
	check("common", t.Common)
	check("common per-byte", t.CommonPerByte)
	check("SA-GV", t.SaGv)
	check("SA-GV per-byte", t.SaGvPerByte)
	return result.ErrorOrNil()
}

// CommonBytes returns the number of bytes the common section occupies.
func (t *Tables) CommonBytes(g Geometry) int {
	n := countRegisters(t.Common)
	n += countRegisters(t.CommonPerByte) * g.Channels * g.BytesPerRank
	n += countRegisters(t.SaGvPerByte) * g.Channels
	return n * RegisterSize
}

// SaGvBytes returns the number of bytes one SA-GV point section occupies.
func (t *Tables) SaGvBytes(g Geometry) int {
	n := countRegisters(t.SaGv)
	n += countRegisters(t.SaGvPerByte) * g.Channels * (g.BytesPerRank - 1)
	return n * RegisterSize
}

// WalkCommon calls fn for every register of the common section in capture
// order:
//   - every offset of Common;
//   - every offset of CommonPerByte, for every channel, for every byte lane;
//   - every offset of SaGvPerByte, for every channel, ECC lane only.
//
// The walk stops at the first error returned by fn.
func (t *Tables) WalkCommon(g Geometry, fn func(offset uint32) error) error {
	for _, r := range t.Common {
		if err := r.Offsets(fn); err != nil {
			return err
		}
	}
	if err := t.walkPerByte(g, t.CommonPerByte, 0, g.BytesPerRank, fn); err != nil {
		return err
	}
	return t.walkPerByte(g, t.SaGvPerByte, g.EccByte(), g.BytesPerRank, fn)
}

// WalkSaGv calls fn for every register of an SA-GV point section in capture
// order:
//   - every offset of SaGv;
//   - every offset of SaGvPerByte, for every channel, for every byte lane
//     except the ECC lane.
func (t *Tables) WalkSaGv(g Geometry, fn func(offset uint32) error) error {
	for _, r := range t.SaGv {
		if err := r.Offsets(fn); err != nil {
			return err
		}
	}
	return t.walkPerByte(g, t.SaGvPerByte, 0, g.EccByte(), fn)
}

func (t *Tables) walkPerByte(g Geometry, ranges []RegisterRange, firstByte, endByte int, fn func(offset uint32) error) error {
	for _, r := range ranges {
		err := r.Offsets(func(offset uint32) error {
			for channel := 0; channel < g.Channels; channel++ {
				for b := firstByte; b < endByte; b++ {
					if err := fn(g.PerByteAddress(offset, channel, b)); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
