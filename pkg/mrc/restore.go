// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"errors"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

// turnaroundCache holds the turnaround timings re-read while the SA-GV
// section is written back.
type turnaroundCache struct {
	timing [MaxChannels][variant.NumTurnaroundKinds]TurnaroundTiming
	valid  [MaxChannels][variant.NumTurnaroundKinds]bool
}

func (c *turnaroundCache) commit(out *Outputs) {
	for ch := range c.timing {
		for kind := range c.timing[ch] {
			if !c.valid[ch][kind] {
				continue
			}
			out.Controller[0].Channel[ch].Turnaround[kind] = c.timing[ch][kind]
		}
	}
}

// RestoreTrainedState writes the saved register values of the common section
// and of the SA-GV slot of pass back to the controller.
//
// Nothing is written until the first RCOMP cycle is done; if it does not
// finish in time *ErrRcompTimeout is returned. After the write back the
// decoded turnaround timings are committed to Outputs and a new RCOMP cycle
// is forced.
func (e *Engine) RestoreTrainedState(p *Params, blob *SaveBlob, pass SaGvPass) error {
	if !pass.Point.Valid() {
		return &ErrInvalidSaGvPoint{Point: pass.Point}
	}

	e.logger().Debugf("restore (%s): waiting for the first RCOMP", pass)
	if err := e.waitFirstRcomp(); err != nil {
		e.logger().Errorf("restore (%s): %v", pass, err)
		return err
	}
	if err := e.checkCapacity(); err != nil {
		e.logger().Errorf("restore (%s): %v", pass, err)
		return err
	}

	e.logger().Debugf("restore (%s): writing the common section", pass)
	if err := e.restoreCommon(&blob.Data); err != nil {
		return err
	}

	e.logger().Debugf("restore (%s): writing the SA-GV %s section", pass, pass.slot())
	var cache turnaroundCache
	if err := e.restoreSaGv(&blob.Data, pass.slot(), &cache); err != nil {
		return err
	}

	e.logger().Debugf("restore (%s): committing turnaround timings", pass)
	cache.commit(&p.Outputs)

	e.logger().Debugf("restore (%s): forcing RCOMP", pass)
	e.Rcomp.ForceRcomp()
	return nil
}

func (e *Engine) restoreCommon(save *SaveData) error {
	cur := registerCursor{buf: save.RegisterCommon[:]}
	err := e.variant.Tables.WalkCommon(e.variant.Geometry, func(offset uint32) error {
		value, ok := cur.next()
		if !ok {
			return errCursorFull
		}
		e.Regs.WriteRegister(offset, value)
		return nil
	})
	if errors.Is(err, errCursorFull) {
		return e.commonOverflow()
	}
	return err
}

func (e *Engine) restoreSaGv(save *SaveData, point SaGvPoint, cache *turnaroundCache) error {
	cur := registerCursor{buf: save.RegisterSaGv[point][:]}
	err := e.variant.Tables.WalkSaGv(e.variant.Geometry, func(offset uint32) error {
		value, ok := cur.next()
		if !ok {
			return errCursorFull
		}
		e.Regs.WriteRegister(offset, value)
		if kind, ch, ok := e.variant.TurnaroundAt(offset); ok && ch < MaxChannels {
			cache.timing[ch][kind] = DecodeTurnaround(e.Regs.ReadRegister(offset))
			cache.valid[ch][kind] = true
		}
		return nil
	})
	if errors.Is(err, errCursorFull) {
		return e.saGvOverflow()
	}
	return err
}
