// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/regs"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/spd"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/nvstore"
)

const (
	imageSize = 0x20000
	areaStart = 0x10000
	areaSize  = 0x4000
)

var errUsage = errors.New("usage error")

var mrcVersion = mrc.Version{Major: 0, Minor: 7, Rev: 1, Build: 68}

type config struct {
	Variant      string
	SaGv         bool
	Point        string
	ImagePath    string
	SwapDimm     bool
	Seed         uint32
	RcompTimeout time.Duration
}

// result is what the fast boot ended up doing.
type result struct {
	Decision   mrc.FastBootDecision
	Point      mrc.SaGvPoint
	Compared   int
	Mismatches int
	Frequency  mrc.Frequency
}

func parsePoint(s string) (mrc.SaGvPoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return mrc.SaGvPointLow, nil
	case "mid":
		return mrc.SaGvPointMid, nil
	case "", "high":
		return mrc.SaGvPointHigh, nil
	}
	return 0, fmt.Errorf("%w: unknown SA-GV point '%s'", errUsage, s)
}

// trained returns the simulated training result of a register.
func trained(offset, seed uint32, point mrc.SaGvPoint) uint32 {
	x := offset*0x9E3779B1 ^ seed*0x85EBCA77 ^ uint32(point+1)*0xC2B2AE3D
	x ^= x >> 15
	return x*0x2C1B3C6D | 1
}

// train stands in for the training algorithms: it leaves a result in every
// register the save engine captures.
func train(mem *regs.Memory, v *variant.Variant, seed uint32, point mrc.SaGvPoint) {
	_ = v.Tables.WalkCommon(v.Geometry, func(offset uint32) error {
		mem.Set(offset, trained(offset, seed, mrc.SaGvPointHigh))
		return nil
	})
	_ = v.Tables.WalkSaGv(v.Geometry, func(offset uint32) error {
		mem.Set(offset, trained(offset, seed, point))
		return nil
	})
}

// powerOn returns a register file right after reset.
func powerOn(v *variant.Variant) *regs.Memory {
	mem := regs.NewMemory()
	for idx, offset := range v.CapabilityID {
		mem.Set(offset, 0x02000000|uint32(idx))
	}
	mem.Set(v.Rcomp.StatusOffset, v.Rcomp.DoneMask)
	return mem
}

func platform(seed uint32, swapDimm bool) *mrc.Params {
	p := &mrc.Params{}
	p.Inputs.CpuModel = 0x806E0
	p.Inputs.CpuFamily = 6
	p.Inputs.BootMode = mrc.BootModeCold
	for c := range p.Inputs.Controller {
		for ch := range p.Inputs.Controller[c].Channel {
			for d := range p.Inputs.Controller[c].Channel[ch].Dimm {
				data := &p.Inputs.Controller[c].Channel[ch].Dimm[d].Spd
				data[spd.OffsetDramType] = byte(spd.DramTypeDDR4)
				data.SetManufacturerID(0x2C80)
				serial := seed + uint32(ch*mrc.MaxDimmsPerChannel+d)
				if swapDimm && ch == 0 && d == 0 {
					serial += 0x1000
				}
				copy(data[0x145:], []byte{byte(serial), byte(serial >> 8), byte(serial >> 16), byte(serial >> 24)})
			}
		}
	}
	return p
}

// trainOutputs stands in for SPD processing and training of the output model.
func trainOutputs(p *mrc.Params) {
	out := &p.Outputs
	out.Version = mrcVersion
	for c := range out.Controller {
		for ch := range out.Controller[c].Channel {
			chOut := &out.Controller[c].Channel[ch]
			chOut.Status = mrc.ChannelPresent
			chOut.DimmCount = mrc.MaxDimmsPerChannel
			chOut.ValidRankBitMask = 0x3
			chOut.ValidByteMask = 0xFF
			chOut.Timing[mrc.ProfileStd] = mrc.Timing{TCK: mrc.F2400.MemoryClock(), TCL: 17, TRCDtRP: 17, TRAS: 39}
			for d := range chOut.Dimm {
				chOut.Dimm[d].Status = mrc.DimmPresent
			}
		}
	}
	out.DdrType = mrc.DdrTypeDDR4
	out.RefClk = mrc.RefClk133
	out.Frequency = mrc.F2400
	out.HighFrequency = mrc.F2400
	out.MemoryClock = mrc.F2400.MemoryClock()
	out.Ratio = mrc.F2400.Ratio(mrc.RefClk133)
	out.BurstLength = 8
	out.VddVoltage[mrc.ProfileStd] = 1200
	out.MeStolenSize = 32
	out.ImrAlignment = 0x100000
}

func openImage(path string) ([]byte, error) {
	if path != "" {
		image, err := os.ReadFile(path)
		if err == nil {
			return image, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nvstore.NewImage(imageSize, nvstore.Area{
		Offset: areaStart,
		Size:   areaSize,
		Name:   nvstore.NewName(nvstore.DefaultArea),
	})
}

func newEngine(v *variant.Variant, mem *regs.Memory, cfg config) (*mrc.Engine, error) {
	e, err := mrc.NewEngine(mrc.Config{Variant: v, RcompTimeout: cfg.RcompTimeout}, mem)
	if err != nil {
		return nil, err
	}
	e.Logger = log.DefaultLogger
	return e, nil
}

func coldBoot(store *nvstore.Store, v *variant.Variant, cfg config) error {
	mem := powerOn(v)
	e, err := newEngine(v, mem, cfg)
	if err != nil {
		return err
	}
	p := platform(cfg.Seed, false)
	trainOutputs(p)
	memCfg := []byte(fmt.Sprintf("%+v", p.Inputs.Controller))

	var blob mrc.SaveBlob
	points := []mrc.SaGvPoint{mrc.SaGvPointHigh}
	if cfg.SaGv {
		points = []mrc.SaGvPoint{mrc.SaGvPointLow, mrc.SaGvPointMid, mrc.SaGvPointHigh}
	}
	for _, point := range points {
		train(mem, v, cfg.Seed, point)
		if err := e.SaveTrainedState(p, &blob, mrc.NewSaGvPass(cfg.SaGv, point), memCfg); err != nil {
			return fmt.Errorf("unable to save the SA-GV %s training: %w", point, err)
		}
	}
	store.Erase()
	return store.Save(&blob)
}

func fastBoot(store *nvstore.Store, v *variant.Variant, cfg config, point mrc.SaGvPoint) (*result, error) {
	mem := powerOn(v)
	e, err := newEngine(v, mem, cfg)
	if err != nil {
		return nil, err
	}
	p := platform(cfg.Seed, cfg.SwapDimm)
	p.Inputs.BootMode = mrc.BootModeFast
	p.Outputs.MeStolenSize = 64
	res := &result{Point: point}

	blob, err := store.Load(mrcVersion)
	if err != nil {
		log.Warnf("no usable training data: %v", err)
		return res, nil
	}
	res.Decision = e.CheckFastBootPermitted(p, blob)
	if res.Decision != mrc.FastBootPermitted {
		return res, nil
	}

	pass := mrc.NewSaGvPass(cfg.SaGv, point)
	if err := e.RestoreTrainedState(p, blob, pass); err != nil {
		return nil, fmt.Errorf("unable to restore the training: %w", err)
	}
	e.RestoreNonTrainingMetadata(p, blob, pass)
	res.Frequency = p.Outputs.Frequency

	slot := point
	if !cfg.SaGv {
		slot = mrc.SaGvPointHigh
	}
	compare := func(want func(offset uint32) uint32) func(offset uint32) error {
		return func(offset uint32) error {
			res.Compared++
			if mem.Get(offset) != want(offset) {
				res.Mismatches++
			}
			return nil
		}
	}
	_ = v.Tables.WalkCommon(v.Geometry, compare(func(offset uint32) uint32 {
		return trained(offset, cfg.Seed, mrc.SaGvPointHigh)
	}))
	_ = v.Tables.WalkSaGv(v.Geometry, compare(func(offset uint32) uint32 {
		return trained(offset, cfg.Seed, slot)
	}))

	memCfg := []byte(fmt.Sprintf("%+v", p.Inputs.Controller))
	e.UpdateSavedScalars(p, blob, memCfg)
	return res, store.Save(blob)
}

func run(w io.Writer, cfg config) error {
	v, err := variant.Lookup(cfg.Variant)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	point, err := parsePoint(cfg.Point)
	if err != nil {
		return err
	}
	if !cfg.SaGv && point != mrc.SaGvPointHigh {
		return fmt.Errorf("%w: SA-GV point %s requires --sagv", errUsage, point)
	}

	image, err := openImage(cfg.ImagePath)
	if err != nil {
		return err
	}
	store, err := nvstore.Open(image, nvstore.DefaultArea)
	if err != nil {
		return err
	}

	if err := coldBoot(store, v, cfg); err != nil {
		return err
	}
	res, err := fastBoot(store, v, cfg, point)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Simulated boot on %s", v.ID)
	t.AppendHeader(table.Row{"Decision", "SA-GV Point", "Frequency", "Registers", "Mismatches", "Blob Size"})
	t.AppendRow(table.Row{
		res.Decision,
		res.Point,
		res.Frequency,
		res.Compared,
		res.Mismatches,
		humanize.IBytes(uint64(mrc.SaveBlobSize)),
	})
	t.Render()

	if cfg.ImagePath != "" {
		if err := os.WriteFile(cfg.ImagePath, image, 0o644); err != nil {
			return fmt.Errorf("unable to write the flash image '%s': %w", cfg.ImagePath, err)
		}
	}
	if res.Mismatches != 0 {
		return fmt.Errorf("%d of %d registers differ after the restore", res.Mismatches, res.Compared)
	}
	return nil
}
