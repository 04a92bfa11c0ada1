// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/crc"
)

// UpdateSavedScalars refreshes the memory map scalars of an existing blob
// after a boot that restored training instead of saving it. Only the ME
// stolen size, the IMR alignment and the two CRCs change.
func (e *Engine) UpdateSavedScalars(p *Params, blob *SaveBlob, memCfg []byte) {
	blob.Data.MeStolenSize = p.Outputs.MeStolenSize
	blob.Data.ImrAlignment = p.Outputs.ImrAlignment
	blob.Data.SaMemCfgCrc = crc.Crc32(memCfg)
	blob.UpdateCrc()
	e.logger().Debugf("updated saved scalars, CRC %#08x", blob.Header.Crc)
}
