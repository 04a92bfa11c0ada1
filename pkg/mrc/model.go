// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/spd"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

// Version is the memory reference code version.
type Version struct {
	Major uint8
	Minor uint8
	Rev   uint8
	Build uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Rev, v.Build)
}

// ParseVersion parses the "major.minor.rev.build" form of a version.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("version '%s' is not in the major.minor.rev.build form", s)
	}
	var fields [4]uint8
	for idx, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version '%s': %w", s, err)
		}
		fields[idx] = uint8(n)
	}
	return Version{Major: fields[0], Minor: fields[1], Rev: fields[2], Build: fields[3]}, nil
}

// BootMode is the reason for the current boot.
type BootMode uint8

// Boot modes.
const (
	BootModeCold = BootMode(iota)
	BootModeWarm
	BootModeS3
	BootModeFast
)

func (m BootMode) String() string {
	switch m {
	case BootModeCold:
		return "cold"
	case BootModeWarm:
		return "warm"
	case BootModeS3:
		return "S3 resume"
	case BootModeFast:
		return "fast"
	}
	return fmt.Sprintf("BootMode(%d)", uint8(m))
}

// DdrType is the memory technology of the populated DIMMs.
type DdrType uint8

// Memory technologies.
const (
	DdrTypeDDR4 = DdrType(iota)
	DdrTypeDDR3
	DdrTypeLPDDR3
	DdrTypeLPDDR4
)

func (t DdrType) String() string {
	switch t {
	case DdrTypeDDR4:
		return "DDR4"
	case DdrTypeDDR3:
		return "DDR3"
	case DdrTypeLPDDR3:
		return "LPDDR3"
	case DdrTypeLPDDR4:
		return "LPDDR4"
	}
	return fmt.Sprintf("DdrType(%d)", uint8(t))
}

// Profile is a memory timing profile.
type Profile int

// Timing profiles.
const (
	ProfileStd = Profile(iota)
	ProfileUser
	ProfileXmp1
	ProfileXmp2
)

func (p Profile) String() string {
	switch p {
	case ProfileStd:
		return "STD"
	case ProfileUser:
		return "USER"
	case ProfileXmp1:
		return "XMP1"
	case ProfileXmp2:
		return "XMP2"
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ChannelStatus is the population state of a channel.
type ChannelStatus uint8

// Channel states.
const (
	ChannelNotPresent = ChannelStatus(iota)
	ChannelDisabled
	ChannelPresent
)

func (s ChannelStatus) String() string {
	switch s {
	case ChannelNotPresent:
		return "not present"
	case ChannelDisabled:
		return "disabled"
	case ChannelPresent:
		return "present"
	}
	return fmt.Sprintf("ChannelStatus(%d)", uint8(s))
}

// DimmStatus is the population state of a DIMM slot as determined by SPD
// processing.
type DimmStatus uint8

// DIMM states.
const (
	DimmNotPresent = DimmStatus(iota)
	DimmDisabled
	DimmPresent
)

func (s DimmStatus) String() string {
	switch s {
	case DimmNotPresent:
		return "not present"
	case DimmDisabled:
		return "disabled"
	case DimmPresent:
		return "present"
	}
	return fmt.Sprintf("DimmStatus(%d)", uint8(s))
}

// DimmInputStatus is the platform policy for a DIMM slot.
type DimmInputStatus uint8

// Platform DIMM policies.
const (
	DimmEnabled = DimmInputStatus(iota)
	DimmInputDisabled
)

// RefClk is the memory reference clock in MHz.
type RefClk uint8

// Reference clocks.
const (
	RefClk133 = RefClk(133)
	RefClk100 = RefClk(100)
)

// Timing holds the DRAM timings of one profile. Times are in DCLKs except
// TCK, which is in femtoseconds.
type Timing struct {
	TCK     uint32
	NMode   uint16
	TCL     uint16
	TCWL    uint16
	TFAW    uint16
	TRAS    uint16
	TRCDtRP uint16
	TREFI   uint16
	TRFC    uint16
	TRFCpb  uint16
	TRFC2   uint16
	TRFC4   uint16
	TRP     uint16
	TRPab   uint16
	TRRD    uint16
	TRRDL   uint16
	TRRDS   uint16
	TRTP    uint16
	TWR     uint16
	TWTR    uint16
	TWTRL   uint16
	TWTRS   uint16
	TCCDL   uint16
}

// TurnaroundTiming is one decoded turnaround timing register.
type TurnaroundTiming struct {
	SameGroup uint8
	DiffGroup uint8
	DiffRank  uint8
	DiffDimm  uint8
}

// DecodeTurnaround splits a turnaround register value into its fields.
func DecodeTurnaround(value uint32) TurnaroundTiming {
	return TurnaroundTiming{
		SameGroup: uint8(value),
		DiffGroup: uint8(value >> 8),
		DiffRank:  uint8(value >> 16),
		DiffDimm:  uint8(value >> 24),
	}
}

// Encode is the inverse of DecodeTurnaround.
func (t TurnaroundTiming) Encode() uint32 {
	return uint32(t.SameGroup) | uint32(t.DiffGroup)<<8 | uint32(t.DiffRank)<<16 | uint32(t.DiffDimm)<<24
}

// DimmIn is the platform view of a DIMM slot.
type DimmIn struct {
	Status DimmInputStatus
	Spd    spd.Data
}

// ChannelIn is the platform view of a channel.
type ChannelIn struct {
	Dimm [MaxDimmsPerChannel]DimmIn
}

// ControllerIn is the platform view of a memory controller.
type ControllerIn struct {
	Channel [MaxChannels]ChannelIn
}

// Inputs are values provided by the platform and by CPU detection.
type Inputs struct {
	CpuModel    uint32
	CpuStepping uint32
	CpuFamily   uint32

	BootMode BootMode

	// FreqSaGvLow and FreqSaGvMid override the frequency of the low and
	// mid SA-GV points. Zero selects the DDR type default.
	FreqSaGvLow Frequency
	FreqSaGvMid Frequency

	Controller [MaxControllers]ControllerIn
}

// DimmOut is the trained state of a DIMM slot.
type DimmOut struct {
	Status DimmStatus
}

// ChannelOut is the trained state of a channel.
type ChannelOut struct {
	Status            ChannelStatus
	DimmCount         uint8
	ValidRankBitMask  uint8
	ValidSubChBitMask uint8
	ValidByteMask     uint16
	Timing            [MaxProfiles]Timing
	Turnaround        [variant.NumTurnaroundKinds]TurnaroundTiming
	Dimm              [MaxDimmsPerChannel]DimmOut
}

// ControllerOut is the trained state of a memory controller.
type ControllerOut struct {
	Channel [MaxChannels]ChannelOut
}

// Outputs are values produced by SPD processing and training.
type Outputs struct {
	Version Version

	Controller [MaxControllers]ControllerOut
	VddVoltage [MaxProfiles]uint32

	Frequency           Frequency
	HighFrequency       Frequency
	MemoryClock         uint32
	BurstLength         uint8
	Ratio               uint8
	RefClk              RefClk
	EccSupport          bool
	DdrType             DdrType
	Lp4x                bool
	EnhancedChannelMode bool

	TCRSensitiveHynixDDR4  bool
	TCRSensitiveMicronDDR4 bool

	XmpProfileEnable   bool
	BerEnable          bool
	BerAddress         [MaxBerAddresses]uint64
	LpddrEctDone       bool
	DualRankPerChannel bool
	DqOdtEnable        bool
	CaCsCkOdtSupport   bool

	MeStolenSize uint32
	ImrAlignment uint32

	// RestoreTrained is set once the saved training data may be used.
	RestoreTrained bool
}

// Params is the complete state shared by the save/restore operations.
type Params struct {
	Inputs  Inputs
	Outputs Outputs
}
