// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

// RestoreNonTrainingMetadata copies the channel, DIMM and scalar metadata of
// the blob back into the output model.
//
// The saved frequency is the one of the High point; for the Low and Mid
// points of an SA-GV sweep the frequency comes from Inputs (or the DDR type
// default) and the memory clock and ratio are derived from it. The ME stolen
// size and the IMR alignment are only restored on S3 resume.
func (e *Engine) RestoreNonTrainingMetadata(p *Params, blob *SaveBlob, pass SaGvPass) {
	save := &blob.Data
	inputs := &p.Inputs
	outputs := &p.Outputs
	keepSpd := pass.Enabled && !pass.FinalPass

	for c := range save.Controller {
		for ch := range save.Controller[c].Channel {
			chSave := &save.Controller[c].Channel[ch]
			chOut := &outputs.Controller[c].Channel[ch]
			chIn := &inputs.Controller[c].Channel[ch]

			chOut.Status = chSave.Status
			chOut.DimmCount = chSave.DimmCount
			chOut.ValidRankBitMask = chSave.ValidRankBitMask
			chOut.ValidSubChBitMask = chSave.ValidSubChBitMask
			chOut.ValidByteMask = chSave.ValidByteMask
			chOut.Timing = chSave.Timing

			for d := range chSave.Dimm {
				chOut.Dimm[d].Status = chSave.Dimm[d].Status
				if !keepSpd {
					copy(chIn.Dimm[d].Spd[:SpdSaveSize], chSave.Dimm[d].SpdSave[:])
				}
			}
		}
	}
	outputs.VddVoltage = save.VddVoltage

	outputs.HighFrequency = save.HighFrequency
	outputs.BurstLength = save.BurstLength
	outputs.RefClk = save.RefClk
	outputs.EccSupport = save.EccSupport
	outputs.DdrType = save.DdrType
	outputs.Lp4x = save.Lp4x
	outputs.EnhancedChannelMode = save.EnhancedChannelMode
	outputs.TCRSensitiveHynixDDR4 = save.TCRSensitiveHynixDDR4
	outputs.TCRSensitiveMicronDDR4 = save.TCRSensitiveMicronDDR4
	outputs.XmpProfileEnable = save.XmpProfileEnable
	outputs.BerEnable = save.BerEnable
	outputs.BerAddress = save.BerAddress
	outputs.LpddrEctDone = save.LpddrEctDone
	outputs.DualRankPerChannel = save.DualRankPerChannel
	outputs.DqOdtEnable = save.DqOdtEnable
	outputs.CaCsCkOdtSupport = save.CaCsCkOdtSupport

	if pass.Enabled && (pass.Point == SaGvPointLow || pass.Point == SaGvPointMid) {
		freq := sweepFrequency(inputs, save.DdrType, pass.Point)
		outputs.Frequency = freq
		outputs.MemoryClock = freq.MemoryClock()
		outputs.Ratio = freq.Ratio(save.RefClk)
		e.logger().Debugf("SA-GV %s frequency %d, tCK %d fs, ratio %d", pass.Point, freq, outputs.MemoryClock, outputs.Ratio)
	} else {
		outputs.Frequency = save.Frequency
		outputs.MemoryClock = save.MemoryClock
		outputs.Ratio = save.Ratio
	}

	if inputs.BootMode == BootModeS3 {
		outputs.MeStolenSize = save.MeStolenSize
		outputs.ImrAlignment = save.ImrAlignment
	}
}

// sweepFrequency returns the frequency of the Low or Mid SA-GV point.
func sweepFrequency(inputs *Inputs, ddrType DdrType, point SaGvPoint) Frequency {
	override := inputs.FreqSaGvMid
	if point == SaGvPointLow {
		override = inputs.FreqSaGvLow
	}
	if override != 0 {
		return override
	}
	return defaultSaGvFrequency(ddrType, point)
}
