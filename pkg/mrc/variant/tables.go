// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/regs"
)

var cannonLake = Variant{
	ID: IDCannonLake,
	Geometry: regs.Geometry{
		Channels:      2,
		BytesPerRank:  9,
		ChannelStride: 0x400,
		ByteStride:    0x20,
	},
	Tables: regs.Tables{
		Common: []regs.RegisterRange{
			regs.Range(0x0000, 0x003C), // DDR PHY global
			regs.Range(0x0100, 0x011C), // CMD/CTL/CLK PI
		},
		CommonPerByte: []regs.RegisterRange{
			regs.Range(0x0800, 0x080C), // DQ/DQS drive and ODT per byte
		},
		SaGv: []regs.RegisterRange{
			regs.Range(0x4000, 0x407C), // channel 0 scheduler timing
			regs.Range(0x4400, 0x447C), // channel 1 scheduler timing
		},
		SaGvPerByte: []regs.RegisterRange{
			regs.Range(0x0A00, 0x0A1C), // RX/TX PI and Vref per byte
		},
	},
	CapabilityID: [3]uint32{0x00E4, 0x00E8, 0x00EC},
	Turnaround: [NumTurnaroundKinds][]uint32{
		TurnaroundRdRd: {0x400C, 0x440C},
		TurnaroundRdWr: {0x4010, 0x4410},
		TurnaroundWrRd: {0x4014, 0x4414},
		TurnaroundWrWr: {0x4018, 0x4418},
	},
	Rcomp: Rcomp{
		StatusOffset: 0x5000,
		DoneMask:     1 << 16,
		ForceOffset:  0x5004,
		ForceMask:    1 << 8,
	},
}

var coffeeLake = Variant{
	ID: IDCoffeeLake,
	Geometry: regs.Geometry{
		Channels:      2,
		BytesPerRank:  9,
		ChannelStride: 0x200,
		ByteStride:    0x10,
	},
	Tables: regs.Tables{
		Common: []regs.RegisterRange{
			regs.Range(0x0000, 0x002C),
			regs.Range(0x0180, 0x01BC),
		},
		CommonPerByte: []regs.RegisterRange{
			regs.Range(0x0600, 0x0608),
		},
		SaGv: []regs.RegisterRange{
			regs.Range(0x4000, 0x405C),
			regs.Range(0x4200, 0x425C),
		},
		SaGvPerByte: []regs.RegisterRange{
			regs.Range(0x0A00, 0x0A0C),
		},
	},
	CapabilityID: [3]uint32{0x00E4, 0x00E8, 0x00EC},
	Turnaround: [NumTurnaroundKinds][]uint32{
		TurnaroundRdRd: {0x4008, 0x4208},
		TurnaroundRdWr: {0x400C, 0x420C},
		TurnaroundWrRd: {0x4010, 0x4210},
		TurnaroundWrWr: {0x4014, 0x4214},
	},
	Rcomp: Rcomp{
		StatusOffset: 0x5100,
		DoneMask:     1 << 16,
		ForceOffset:  0x5104,
		ForceMask:    1 << 8,
	},
}
