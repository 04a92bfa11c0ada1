// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regs describes the memory controller register space as seen by the
// save/restore code: a flat 32-bit register file addressed by byte offset,
// and the tables of offset ranges that hold trained values.
package regs

import (
	"fmt"
)

// RegisterSize is the width of every register in bytes.
const RegisterSize = 4

// RegisterSpace reads and writes memory controller registers.
type RegisterSpace interface {
	ReadRegister(offset uint32) uint32
	WriteRegister(offset uint32, value uint32)
}

// RegisterRange is a closed range [Start, End] of register offsets.
type RegisterRange struct {
	Start uint32
	End   uint32
}

// Range is a shorthand for RegisterRange{start, end}.
func Range(start, end uint32) RegisterRange {
	return RegisterRange{Start: start, End: end}
}

// Validate checks that the range is ordered and register aligned.
func (r RegisterRange) Validate() error {
	if r.End < r.Start {
		return &ErrRangeReversed{Range: r}
	}
	if r.Start%RegisterSize != 0 || (r.End-r.Start)%RegisterSize != 0 {
		return &ErrRangeMisaligned{Range: r}
	}
	return nil
}

// Count returns the number of registers in the range. The range is expected
// to be valid.
func (r RegisterRange) Count() int {
	return int((r.End-r.Start)/RegisterSize) + 1
}

func (r RegisterRange) String() string {
	return fmt.Sprintf("[%#x..%#x]", r.Start, r.End)
}

// Offsets calls fn for every register offset in the range, in ascending order.
func (r RegisterRange) Offsets(fn func(offset uint32) error) error {
	for offset := r.Start; ; offset += RegisterSize {
		if err := fn(offset); err != nil {
			return err
		}
		if offset >= r.End {
			return nil
		}
	}
}

func countRegisters(ranges []RegisterRange) int {
	n := 0
	for _, r := range ranges {
		n += r.Count()
	}
	return n
}
