// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"errors"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/crc"
)

// dimmFingerprint is the SPD fingerprint of a slot; disabled slots
// fingerprint to zero.
func dimmFingerprint(dimm *DimmIn) uint16 {
	if dimm.Status == DimmInputDisabled {
		return 0
	}
	return dimm.Spd.Fingerprint()
}

// SaveTrainedState captures the trained register values and the output model
// into blob.
//
// The blob is zeroed on the first pass of a boot (SA-GV disabled or the Low
// point). The common register section is captured only on the final pass;
// the SA-GV section goes into the slot of pass.Point. memCfg is the platform
// memory configuration whose CRC is recorded in the blob.
func (e *Engine) SaveTrainedState(p *Params, blob *SaveBlob, pass SaGvPass, memCfg []byte) error {
	if !pass.Point.Valid() {
		return &ErrInvalidSaGvPoint{Point: pass.Point}
	}
	if !pass.Enabled || pass.Point == SaGvPointLow {
		*blob = SaveBlob{}
	}
	save := &blob.Data
	inputs := &p.Inputs
	outputs := &p.Outputs

	for i, offset := range e.variant.CapabilityID {
		save.CapabilityID[i] = e.Regs.ReadRegister(offset)
	}

	for c := range save.Controller {
		for ch := range save.Controller[c].Channel {
			chOut := &outputs.Controller[c].Channel[ch]
			chIn := &inputs.Controller[c].Channel[ch]
			chSave := &save.Controller[c].Channel[ch]

			chSave.Status = chOut.Status
			chSave.DimmCount = chOut.DimmCount
			chSave.ValidRankBitMask = chOut.ValidRankBitMask
			chSave.ValidSubChBitMask = chOut.ValidSubChBitMask
			chSave.ValidByteMask = chOut.ValidByteMask
			chSave.Timing = chOut.Timing

			for d := range chSave.Dimm {
				dimmSave := &chSave.Dimm[d]
				dimmSave.Status = chOut.Dimm[d].Status
				dimmSave.Crc = dimmFingerprint(&chIn.Dimm[d])
				copy(dimmSave.SpdSave[:], chIn.Dimm[d].Spd[:SpdSaveSize])
			}
		}
	}
	save.VddVoltage = outputs.VddVoltage

	if !pass.Enabled || pass.FinalPass {
		if err := e.captureCommon(save); err != nil {
			return err
		}
	}
	if err := e.captureSaGv(save, pass.slot()); err != nil {
		return err
	}

	save.Version = outputs.Version
	save.CpuModel = inputs.CpuModel
	save.CpuStepping = inputs.CpuStepping
	save.CpuFamily = inputs.CpuFamily
	save.Frequency = outputs.Frequency
	save.HighFrequency = outputs.HighFrequency
	save.MemoryClock = outputs.MemoryClock
	save.BurstLength = outputs.BurstLength
	save.Ratio = outputs.Ratio
	save.RefClk = outputs.RefClk
	save.EccSupport = outputs.EccSupport
	save.DdrType = outputs.DdrType
	save.Lp4x = outputs.Lp4x
	save.EnhancedChannelMode = outputs.EnhancedChannelMode
	save.TCRSensitiveHynixDDR4 = outputs.TCRSensitiveHynixDDR4
	save.TCRSensitiveMicronDDR4 = outputs.TCRSensitiveMicronDDR4
	save.XmpProfileEnable = outputs.XmpProfileEnable
	save.BerEnable = outputs.BerEnable
	save.BerAddress = outputs.BerAddress
	save.LpddrEctDone = outputs.LpddrEctDone
	save.DualRankPerChannel = outputs.DualRankPerChannel
	save.DqOdtEnable = outputs.DqOdtEnable
	save.CaCsCkOdtSupport = outputs.CaCsCkOdtSupport
	save.MeStolenSize = outputs.MeStolenSize
	save.ImrAlignment = outputs.ImrAlignment

	save.SaMemCfgCrc = crc.Crc32(memCfg)
	save.Size = uint32(SaveBlobSize)
	blob.UpdateCrc()

	e.logger().Debugf("saved training data (%s), CRC %#08x", pass, blob.Header.Crc)
	return nil
}

func (e *Engine) captureCommon(save *SaveData) error {
	cur := registerCursor{buf: save.RegisterCommon[:]}
	err := e.variant.Tables.WalkCommon(e.variant.Geometry, func(offset uint32) error {
		if !cur.put(e.Regs.ReadRegister(offset)) {
			return errCursorFull
		}
		return nil
	})
	if errors.Is(err, errCursorFull) {
		overflow := e.commonOverflow()
		e.logger().Errorf("%v", overflow)
		return overflow
	}
	if err != nil {
		return err
	}
	e.logger().Debugf("common section: %d of %d bytes", cur.pos, MaxCommonRegisterBytes)
	return nil
}

func (e *Engine) captureSaGv(save *SaveData, point SaGvPoint) error {
	cur := registerCursor{buf: save.RegisterSaGv[point][:]}
	err := e.variant.Tables.WalkSaGv(e.variant.Geometry, func(offset uint32) error {
		if !cur.put(e.Regs.ReadRegister(offset)) {
			return errCursorFull
		}
		return nil
	})
	if errors.Is(err, errCursorFull) {
		overflow := e.saGvOverflow()
		e.logger().Errorf("%v", overflow)
		return overflow
	}
	if err != nil {
		return err
	}
	e.logger().Debugf("SA-GV %s section: %d of %d bytes", point, cur.pos, MaxSaGvRegisterBytes)
	return nil
}
