// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regs

import (
	"fmt"
)

// ErrRangeReversed means a range ends before it starts.
type ErrRangeReversed struct {
	Range RegisterRange
}

func (err *ErrRangeReversed) Error() string {
	return fmt.Sprintf("register range %s ends before it starts", err.Range)
}

// ErrRangeMisaligned means a range boundary is not register aligned.
type ErrRangeMisaligned struct {
	Range RegisterRange
}

func (err *ErrRangeMisaligned) Error() string {
	return fmt.Sprintf("register range %s is not %d-byte aligned", err.Range, RegisterSize)
}

// ErrBadGeometry means the channel/byte geometry cannot address per-byte
// registers.
type ErrBadGeometry struct {
	Geometry Geometry
}

func (err *ErrBadGeometry) Error() string {
	return fmt.Sprintf("invalid per-byte geometry: %d channels, %d bytes per rank",
		err.Geometry.Channels, err.Geometry.BytesPerRank)
}
