// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

// CheckFastBootPermitted compares the live silicon capabilities and DIMM
// fingerprints against the saved blob.
//
// On a match Outputs.RestoreTrained is set and FastBootPermitted is
// returned. Any difference means the saved training cannot be trusted and
// ColdBootRequired is returned; that is an expected outcome, not an error.
// The blob is never modified.
func (e *Engine) CheckFastBootPermitted(p *Params, saved *SaveBlob) FastBootDecision {
	for i, offset := range e.variant.CapabilityID {
		live := e.Regs.ReadRegister(offset)
		if live != saved.Data.CapabilityID[i] {
			e.logger().Debugf("capability ID %d changed: %#08x != %#08x", i, live, saved.Data.CapabilityID[i])
			return ColdBootRequired
		}
	}

	for c := range p.Inputs.Controller {
		for ch := range p.Inputs.Controller[c].Channel {
			chIn := &p.Inputs.Controller[c].Channel[ch]
			for d := range chIn.Dimm {
				live := dimmFingerprint(&chIn.Dimm[d])
				want := saved.Data.Controller[c].Channel[ch].Dimm[d].Crc
				if live != want {
					e.logger().Debugf("DIMM mc%d/ch%d/d%d changed: SPD CRC %#04x != %#04x", c, ch, d, live, want)
					return ColdBootRequired
				}
			}
		}
	}

	p.Outputs.RestoreTrained = true
	return FastBootPermitted
}
