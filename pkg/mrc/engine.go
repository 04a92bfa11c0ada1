// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/regs"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

// Defaults of the RCOMP readiness wait.
const (
	DefaultRcompTimeout      = 10 * time.Millisecond
	DefaultRcompPollInterval = 10 * time.Microsecond
)

// Compensation is the RCOMP engine of the memory controller.
type Compensation interface {
	// FirstRcompDone reports whether the first compensation cycle after
	// reset has completed.
	FirstRcompDone() bool
	// ForceRcomp requests a new compensation cycle.
	ForceRcomp()
}

// Config selects the silicon variant and the RCOMP wait budget.
type Config struct {
	Variant           *variant.Variant
	RcompTimeout      time.Duration
	RcompPollInterval time.Duration
}

// Engine runs the save/restore operations for one silicon variant against
// one register space. It is not safe for concurrent use; the boot flow that
// drives it is single threaded.
type Engine struct {
	Regs  regs.RegisterSpace
	Rcomp Compensation

	// Logger defaults to log.DefaultLogger.
	Logger log.Logger
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)

	variant      *variant.Variant
	timeout      time.Duration
	pollInterval time.Duration
}

// NewEngine validates the configuration and returns an engine which drives
// RCOMP through the registers described by the variant.
func NewEngine(cfg Config, space regs.RegisterSpace) (*Engine, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, &ErrInvalidConfig{Err: err}
	}
	if cfg.RcompTimeout <= 0 {
		cfg.RcompTimeout = DefaultRcompTimeout
	}
	if cfg.RcompPollInterval <= 0 {
		cfg.RcompPollInterval = DefaultRcompPollInterval
	}
	return &Engine{
		Regs:         space,
		Rcomp:        &registerRcomp{space: space, rcomp: cfg.Variant.Rcomp},
		variant:      cfg.Variant,
		timeout:      cfg.RcompTimeout,
		pollInterval: cfg.RcompPollInterval,
	}, nil
}

func validateConfig(cfg Config) error {
	v := cfg.Variant
	if v == nil {
		return errors.New("no silicon variant")
	}
	var result *multierror.Error
	if err := v.Tables.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := v.Geometry.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if v.Geometry.Channels > MaxChannels {
		result = multierror.Append(result, fmt.Errorf("%d channels, at most %d are supported", v.Geometry.Channels, MaxChannels))
	}
	if v.Geometry.BytesPerRank > MaxSdram {
		result = multierror.Append(result, fmt.Errorf("%d bytes per rank, at most %d are supported", v.Geometry.BytesPerRank, MaxSdram))
	}
	for kind, offsets := range v.Turnaround {
		if len(offsets) > MaxChannels {
			result = multierror.Append(result, fmt.Errorf("%s: %d channels, at most %d are supported",
				variant.TurnaroundKind(kind), len(offsets), MaxChannels))
		}
	}
	return result.ErrorOrNil()
}

// Variant returns the silicon variant of the engine.
func (e *Engine) Variant() *variant.Variant {
	return e.variant
}

func (e *Engine) logger() log.Logger {
	if e.Logger == nil {
		return log.DefaultLogger
	}
	return e.Logger
}

func (e *Engine) sleep(d time.Duration) {
	if e.Sleep == nil {
		time.Sleep(d)
		return
	}
	e.Sleep(d)
}

// waitFirstRcomp polls until the first RCOMP is done or the budget runs out.
func (e *Engine) waitFirstRcomp() error {
	remaining := e.timeout
	for {
		if e.Rcomp.FirstRcompDone() {
			return nil
		}
		e.sleep(e.pollInterval)
		remaining -= e.pollInterval
		if remaining <= 0 {
			return &ErrRcompTimeout{Timeout: e.timeout}
		}
	}
}

// registerRcomp implements Compensation over the variant's RCOMP registers.
type registerRcomp struct {
	space regs.RegisterSpace
	rcomp variant.Rcomp
}

func (r *registerRcomp) FirstRcompDone() bool {
	return r.space.ReadRegister(r.rcomp.StatusOffset)&r.rcomp.DoneMask != 0
}

func (r *registerRcomp) ForceRcomp() {
	value := r.space.ReadRegister(r.rcomp.ForceOffset)
	r.space.WriteRegister(r.rcomp.ForceOffset, value|r.rcomp.ForceMask)
}

// registerCursor walks a fixed size register save area four bytes at a time.
type registerCursor struct {
	buf []byte
	pos int
}

func (c *registerCursor) full() bool {
	return c.pos+regs.RegisterSize > len(c.buf)
}

func (c *registerCursor) put(value uint32) bool {
	if c.full() {
		return false
	}
	c.buf[c.pos] = byte(value)
	c.buf[c.pos+1] = byte(value >> 8)
	c.buf[c.pos+2] = byte(value >> 16)
	c.buf[c.pos+3] = byte(value >> 24)
	c.pos += regs.RegisterSize
	return true
}

func (c *registerCursor) next() (uint32, bool) {
	if c.full() {
		return 0, false
	}
	b := c.buf[c.pos : c.pos+regs.RegisterSize]
	c.pos += regs.RegisterSize
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

const (
	sectionCommon = "common"
	sectionSaGv   = "SA-GV"
)

// errCursorFull stops a table walk; callers turn it into ErrOverflow.
var errCursorFull = errors.New("register save area is full")

func (e *Engine) commonOverflow() *ErrOverflow {
	return &ErrOverflow{
		Section:  sectionCommon,
		Need:     e.variant.Tables.CommonBytes(e.variant.Geometry),
		Capacity: MaxCommonRegisterBytes,
	}
}

func (e *Engine) saGvOverflow() *ErrOverflow {
	return &ErrOverflow{
		Section:  sectionSaGv,
		Need:     e.variant.Tables.SaGvBytes(e.variant.Geometry),
		Capacity: MaxSaGvRegisterBytes,
	}
}

// checkCapacity verifies that both register sections fit their save areas.
func (e *Engine) checkCapacity() error {
	if err := e.commonOverflow(); err.Need > err.Capacity {
		return err
	}
	if err := e.saGvOverflow(); err.Need > err.Capacity {
		return err
	}
	return nil
}
