// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/regs"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/spd"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

var testMemCfg = []byte("memory configuration of the test platform")

func newTestEngine(t *testing.T, v *variant.Variant) (*Engine, *regs.Memory) {
	mem := regs.NewMemory()
	mem.Set(v.Rcomp.StatusOffset, v.Rcomp.DoneMask)
	e, err := NewEngine(Config{Variant: v}, mem)
	require.NoError(t, err)
	e.Logger = log.Discard
	e.Sleep = func(time.Duration) {}
	return e, mem
}

// registerValue is an arbitrary but reproducible register content.
func registerValue(offset, seed uint32) uint32 {
	return (offset+1)*2654435761 ^ seed
}

func fillCommon(mem *regs.Memory, v *variant.Variant, seed uint32) {
	_ = v.Tables.WalkCommon(v.Geometry, func(offset uint32) error {
		mem.Set(offset, registerValue(offset, seed))
		return nil
	})
}

func fillSaGv(mem *regs.Memory, v *variant.Variant, seed uint32) {
	_ = v.Tables.WalkSaGv(v.Geometry, func(offset uint32) error {
		mem.Set(offset, registerValue(offset, seed))
		return nil
	})
}

func fillCapabilities(mem *regs.Memory, v *variant.Variant) {
	for i, offset := range v.CapabilityID {
		mem.Set(offset, 0x1F00_0000|uint32(i))
	}
}

// snapshot returns the content of every register walked by walk.
func snapshot(mem *regs.Memory, v *variant.Variant, walk func(*regs.Tables, regs.Geometry, func(uint32) error) error) map[uint32]uint32 {
	values := map[uint32]uint32{}
	_ = walk(&v.Tables, v.Geometry, func(offset uint32) error {
		values[offset] = mem.Get(offset)
		return nil
	})
	return values
}

func testSpd(seed byte) spd.Data {
	var data spd.Data
	data[spd.OffsetBytesUsed] = 0x23
	data[spd.OffsetRevision] = 0x11
	data[spd.OffsetDramType] = byte(spd.DramTypeDDR4)
	for idx := range data[0x140:0x15E] {
		data[0x140+idx] = seed + byte(idx)*3
	}
	return data
}

func newTestParams() *Params {
	p := &Params{}
	p.Inputs.CpuModel = 0x806E0
	p.Inputs.CpuStepping = 0xA
	p.Inputs.CpuFamily = 6
	p.Inputs.BootMode = BootModeCold

	seed := byte(0x10)
	for c := range p.Inputs.Controller {
		for ch := range p.Inputs.Controller[c].Channel {
			chOut := &p.Outputs.Controller[c].Channel[ch]
			chOut.Status = ChannelPresent
			chOut.DimmCount = MaxDimmsPerChannel
			chOut.ValidRankBitMask = 0x3
			chOut.ValidSubChBitMask = 0x1
			chOut.ValidByteMask = 0x1FF
			for profile := range chOut.Timing {
				chOut.Timing[profile] = Timing{TCK: 625000, TCL: uint16(22 + profile), TRFC: 560, TREFI: 12480}
			}
			for d := range chOut.Dimm {
				chOut.Dimm[d].Status = DimmPresent
				p.Inputs.Controller[c].Channel[ch].Dimm[d].Spd = testSpd(seed)
				seed += 0x20
			}
		}
	}

	out := &p.Outputs
	out.Version = Version{Major: 7, Minor: 1, Rev: 68, Build: 2}
	out.VddVoltage = [MaxProfiles]uint32{1200, 1200, 1350, 1350}
	out.Frequency = F3200
	out.HighFrequency = F3200
	out.MemoryClock = F3200.MemoryClock()
	out.BurstLength = 8
	out.RefClk = RefClk100
	out.Ratio = F3200.Ratio(RefClk100)
	out.EccSupport = true
	out.DdrType = DdrTypeDDR4
	out.XmpProfileEnable = true
	out.BerEnable = true
	out.BerAddress = [MaxBerAddresses]uint64{0x1000, 0x2000, 0x3000, 0x4000}
	out.DualRankPerChannel = true
	out.MeStolenSize = 32
	out.ImrAlignment = 0x100000
	return p
}

// coldBoot trains nothing but captures the given register file as a cold
// boot would, one pass per SA-GV point when enabled.
func coldBoot(t *testing.T, e *Engine, mem *regs.Memory, p *Params, sagv bool) *SaveBlob {
	v := e.Variant()
	blob := &SaveBlob{}
	if !sagv {
		fillSaGv(mem, v, uint32(SaGvPointHigh))
		require.NoError(t, e.SaveTrainedState(p, blob, NewSaGvPass(false, SaGvPointHigh), testMemCfg))
		return blob
	}
	for point := SaGvPointLow; point <= SaGvPointHigh; point++ {
		fillSaGv(mem, v, uint32(point))
		require.NoError(t, e.SaveTrainedState(p, blob, NewSaGvPass(true, point), testMemCfg))
	}
	return blob
}
