// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"fmt"
	"time"
)

// ErrOverflow means a register range table does not fit into its save area.
// It is a table definition bug, not a runtime condition.
type ErrOverflow struct {
	Section  string
	Need     int
	Capacity int
}

func (err *ErrOverflow) Error() string {
	return fmt.Sprintf("%s register section needs %d bytes, capacity is %d",
		err.Section, err.Need, err.Capacity)
}

// ErrRcompTimeout means the first RCOMP did not complete in time.
type ErrRcompTimeout struct {
	Timeout time.Duration
}

func (err *ErrRcompTimeout) Error() string {
	return fmt.Sprintf("first RCOMP not done after %v", err.Timeout)
}

// ErrInvalidSaGvPoint means the SA-GV point does not name a register slot.
type ErrInvalidSaGvPoint struct {
	Point SaGvPoint
}

func (err *ErrInvalidSaGvPoint) Error() string {
	return fmt.Sprintf("invalid SA-GV point: %s", err.Point)
}

// ErrBlobSize means the blob has an unexpected size.
type ErrBlobSize struct {
	Expected int
	Actual   int
}

func (err *ErrBlobSize) Error() string {
	return fmt.Sprintf("invalid save blob size, expected:%d, real:%d", err.Expected, err.Actual)
}

// ErrBlobVersion means the blob was written by another code version.
type ErrBlobVersion struct {
	Expected Version
	Actual   Version
}

func (err *ErrBlobVersion) Error() string {
	return fmt.Sprintf("save blob version %s does not match %s", err.Actual, err.Expected)
}

// ErrBlobCrc means the blob payload does not match its header CRC.
type ErrBlobCrc struct {
	Expected uint32
	Actual   uint32
}

func (err *ErrBlobCrc) Error() string {
	return fmt.Sprintf("save blob CRC mismatch, header:%#08x, payload:%#08x", err.Expected, err.Actual)
}

// ErrInvalidConfig means the engine configuration cannot be used.
type ErrInvalidConfig struct {
	Err error
}

func (err *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid MRC save/restore configuration: %v", err.Err)
}

func (err *ErrInvalidConfig) Unwrap() error {
	return err.Err
}
