// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mrc saves and restores trained memory controller state so that a
// later boot can skip DRAM training.
//
// A cold boot trains the memory controller and calls SaveTrainedState once
// per SA-GV point; the resulting SaveBlob is persisted by the caller. On the
// next boot CheckFastBootPermitted compares the silicon and DIMM identity
// against the blob, and if nothing changed RestoreTrainedState and
// RestoreNonTrainingMetadata bring the controller and the output model back
// to the trained state.
package mrc

import (
	"fmt"
)

// Platform limits. They size the persisted SaveBlob, so changing any of them
// changes the blob layout.
const (
	MaxControllers     = 1
	MaxChannels        = 2
	MaxDimmsPerChannel = 2
	MaxProfiles        = 4
	MaxSdram           = 9
	SpdSaveSize        = 32
	MaxBerAddresses    = 4

	MaxCommonRegisterBytes = 2048
	MaxSaGvRegisterBytes   = 1024

	NumSaGvPoints = 3
)

// SaGvPoint is an SA-GV frequency point.
type SaGvPoint uint8

// SA-GV points.
const (
	SaGvPointLow = SaGvPoint(iota)
	SaGvPointMid
	SaGvPointHigh
)

// Valid returns true if the point names one of the saved register slots.
func (p SaGvPoint) Valid() bool {
	return p < NumSaGvPoints
}

func (p SaGvPoint) String() string {
	switch p {
	case SaGvPointLow:
		return "Low"
	case SaGvPointMid:
		return "Mid"
	case SaGvPointHigh:
		return "High"
	}
	return fmt.Sprintf("SaGvPoint(%d)", uint8(p))
}

// SaGvPass describes the save or restore pass being executed.
type SaGvPass struct {
	// Enabled is true when the controller sweeps through SA-GV points.
	Enabled bool
	// Point is the point being trained or restored.
	Point SaGvPoint
	// FinalPass is true for the last pass of the sweep. The common register
	// section is only captured on that pass.
	FinalPass bool
}

// NewSaGvPass returns a pass descriptor where the High point is the final
// one.
func NewSaGvPass(enabled bool, point SaGvPoint) SaGvPass {
	return SaGvPass{
		Enabled:   enabled,
		Point:     point,
		FinalPass: !enabled || point == SaGvPointHigh,
	}
}

// slot is the register slot used by the pass. Without SA-GV the controller
// runs at its high point.
func (p SaGvPass) slot() SaGvPoint {
	if !p.Enabled {
		return SaGvPointHigh
	}
	return p.Point
}

func (p SaGvPass) String() string {
	if !p.Enabled {
		return "SA-GV disabled"
	}
	if p.FinalPass {
		return fmt.Sprintf("SA-GV %s (final)", p.Point)
	}
	return fmt.Sprintf("SA-GV %s", p.Point)
}

// FastBootDecision is the outcome of CheckFastBootPermitted.
type FastBootDecision int

// Fast boot decisions.
const (
	ColdBootRequired = FastBootDecision(iota)
	FastBootPermitted
)

func (d FastBootDecision) String() string {
	if d == FastBootPermitted {
		return "fast boot permitted"
	}
	return "cold boot required"
}
