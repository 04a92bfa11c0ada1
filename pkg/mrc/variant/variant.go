// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variant holds the per-silicon constants of the memory controller
// register map. A variant is picked once at startup; everything the
// save/restore code needs to know about register placement comes from it.
package variant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/regs"
)

// ID identifies a silicon variant.
type ID int

// Supported variants.
const (
	IDUndefined = ID(iota)
	IDCannonLake
	IDCoffeeLake
)

func (id ID) String() string {
	switch id {
	case IDCannonLake:
		return "cnl"
	case IDCoffeeLake:
		return "cfl"
	}
	return fmt.Sprintf("variant(%d)", int(id))
}

// TurnaroundKind is one of the four read/write turnaround timing registers.
type TurnaroundKind int

// Turnaround timing registers.
const (
	TurnaroundRdRd = TurnaroundKind(iota)
	TurnaroundRdWr
	TurnaroundWrRd
	TurnaroundWrWr
	NumTurnaroundKinds
)

func (k TurnaroundKind) String() string {
	switch k {
	case TurnaroundRdRd:
		return "RDRD"
	case TurnaroundRdWr:
		return "RDWR"
	case TurnaroundWrRd:
		return "WRRD"
	case TurnaroundWrWr:
		return "WRWR"
	}
	return fmt.Sprintf("TurnaroundKind(%d)", int(k))
}

// Rcomp locates the compensation status and control bits.
type Rcomp struct {
	StatusOffset uint32
	DoneMask     uint32
	ForceOffset  uint32
	ForceMask    uint32
}

// Variant is the register map of one silicon variant.
type Variant struct {
	ID       ID
	Geometry regs.Geometry
	Tables   regs.Tables

	// CapabilityID are the offsets of the three fuse-derived capability
	// registers.
	CapabilityID [3]uint32

	// Turnaround[kind][channel] is the offset of a turnaround timing
	// register. Every one of them lies inside Tables.SaGv.
	Turnaround [NumTurnaroundKinds][]uint32

	Rcomp Rcomp
}

// TurnaroundAt reports whether offset is a turnaround timing register and
// which one.
func (v *Variant) TurnaroundAt(offset uint32) (kind TurnaroundKind, channel int, ok bool) {
	for k := TurnaroundKind(0); k < NumTurnaroundKinds; k++ {
		for ch, o := range v.Turnaround[k] {
			if o == offset {
				return k, ch, true
			}
		}
	}
	return 0, 0, false
}

// ErrUnknownVariant means no variant has the requested name.
type ErrUnknownVariant struct {
	Name string
}

func (err *ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unknown silicon variant '%s', known: %s", err.Name, strings.Join(Names(), ", "))
}

var variants = map[ID]*Variant{
	IDCannonLake: &cannonLake,
	IDCoffeeLake: &coffeeLake,
}

// Get returns the variant with the given ID, or nil.
func Get(id ID) *Variant {
	return variants[id]
}

// Lookup finds a variant by its short name ("cnl", "cfl").
func Lookup(name string) (*Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, v := range variants {
		if id.String() == name {
			return v, nil
		}
	}
	return nil, &ErrUnknownVariant{Name: name}
}

// Names returns the short names of all variants, sorted.
func Names() []string {
	var names []string
	for id := range variants {
		names = append(names, id.String())
	}
	sort.Strings(names)
	return names
}
