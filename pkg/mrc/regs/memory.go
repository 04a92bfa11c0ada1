// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regs

// Memory is a sparse in-memory RegisterSpace. Registers never written read as
// zero. It counts accesses so callers can check which ones happened.
type Memory struct {
	Values map[uint32]uint32
	Reads  int
	Writes int

	// OnWrite, if set, is called after every write.
	OnWrite func(offset, value uint32)
}

var _ RegisterSpace = (*Memory)(nil)

// NewMemory returns an empty register file.
func NewMemory() *Memory {
	return &Memory{Values: map[uint32]uint32{}}
}

// ReadRegister implements RegisterSpace.
func (m *Memory) ReadRegister(offset uint32) uint32 {
	m.Reads++
	return m.Values[offset]
}

// WriteRegister implements RegisterSpace.
func (m *Memory) WriteRegister(offset uint32, value uint32) {
	m.Writes++
	if m.Values == nil {
		m.Values = map[uint32]uint32{}
	}
	m.Values[offset] = value
	if m.OnWrite != nil {
		m.OnWrite(offset, value)
	}
}

// Set stores a value without counting it as an access.
func (m *Memory) Set(offset, value uint32) {
	if m.Values == nil {
		m.Values = map[uint32]uint32{}
	}
	m.Values[offset] = value
}

// Get returns a value without counting it as an access.
func (m *Memory) Get(offset uint32) uint32 {
	return m.Values[offset]
}
