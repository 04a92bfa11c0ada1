// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nvstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/xaionaro-go/bytesextra"
)

// Signature of the flash map structure.
var Signature = []byte("__FMAP__")

// Flags which can be applied to Area.Flags.
const (
	AreaStatic = 1 << iota
	AreaCompressed
	AreaReadOnly
)

// Name is a NUL padded flash map name.
type Name [32]uint8

// NewName returns the padded form of s, truncated to 31 characters.
func NewName(s string) Name {
	var n Name
	copy(n[:len(n)-1], s)
	return n
}

func (n Name) String() string {
	return strings.TrimRight(string(n[:]), "\x00")
}

// Header describes the flash part.
type Header struct {
	Signature [8]uint8
	VerMajor  uint8
	VerMinor  uint8
	Base      uint64
	Size      uint32
	Name      Name
	NAreas    uint16
}

// Area describes a region of the flash part.
type Area struct {
	Offset uint32
	Size   uint32
	Name   Name
	Flags  uint16
}

// End returns the offset right after the area.
func (a *Area) End() uint64 {
	return uint64(a.Offset) + uint64(a.Size)
}

// FMap is a flash map.
type FMap struct {
	Header
	Areas []Area

	// Start is the offset of the flash map inside the image it was
	// found in.
	Start uint64
}

func headerValid(h *Header) bool {
	if h.VerMajor != 1 {
		return false
	}
	if h.Size == 0 {
		return false
	}
	// null terminated single-word name
	return bytes.IndexByte(h.Name[:], 0) >= 0
}

// FlagNames returns human readable representation of the flags.
func FlagNames(flags uint16) string {
	var names []string
	for _, f := range []struct {
		val  uint16
		name string
	}{
		{AreaStatic, "STATIC"},
		{AreaCompressed, "COMPRESSED"},
		{AreaReadOnly, "READ_ONLY"},
	} {
		if f.val&flags != 0 {
			names = append(names, f.name)
			flags &^= f.val
		}
	}
	if flags != 0 || len(names) == 0 {
		names = append(names, fmt.Sprintf("%#x", flags))
	}
	return strings.Join(names, "|")
}

var (
	// ErrNoFMap means the image holds no valid flash map.
	ErrNoFMap = errors.New("cannot find FMAP signature")
	// ErrMultipleFMap means the image holds more than one valid flash map.
	ErrMultipleFMap = errors.New("found multiple FMAPs")
	// ErrTruncatedFMap means the flash map runs past the end of the image.
	ErrTruncatedFMap = errors.New("unexpected EOF while parsing FMAP")
)

// FindFMap looks for exactly one valid flash map in image.
func FindFMap(image []byte) (*FMap, error) {
	var (
		found *FMap
		count int
	)
	for start := 0; start < len(image); start += len(Signature) {
		next := bytes.Index(image[start:], Signature)
		if next == -1 {
			break
		}
		start += next

		r := bytes.NewReader(image[start:])
		var fmap FMap
		if err := binary.Read(r, binary.LittleEndian, &fmap.Header); err != nil {
			return nil, ErrTruncatedFMap
		}
		if !headerValid(&fmap.Header) {
			continue
		}
		fmap.Areas = make([]Area, fmap.NAreas)
		if err := binary.Read(r, binary.LittleEndian, fmap.Areas); err != nil {
			return nil, ErrTruncatedFMap
		}
		fmap.Start = uint64(start)
		found = &fmap
		count++
	}
	switch {
	case count > 1:
		return nil, ErrMultipleFMap
	case count == 0:
		return nil, ErrNoFMap
	}
	return found, nil
}

// ErrAreaNotFound means the flash map has no area with the requested name.
type ErrAreaNotFound struct {
	Name string
}

func (err *ErrAreaNotFound) Error() string {
	return fmt.Sprintf("FMAP area %q not found", err.Name)
}

// Area returns the area called name.
func (f *FMap) Area(name string) (*Area, error) {
	for idx := range f.Areas {
		if f.Areas[idx].Name.String() == name {
			return &f.Areas[idx], nil
		}
	}
	return nil, &ErrAreaNotFound{Name: name}
}

// NewFMap returns a flash map describing an image of the given size.
func NewFMap(name string, size uint32, areas ...Area) *FMap {
	fmap := &FMap{
		Header: Header{
			VerMajor: 1,
			VerMinor: 1,
			Size:     size,
			Name:     NewName(name),
			NAreas:   uint16(len(areas)),
		},
		Areas: areas,
	}
	copy(fmap.Signature[:], Signature)
	return fmap
}

// WriteInto stores the flash map into image at f.Start.
func (f *FMap) WriteInto(image []byte) error {
	if f.Start > uint64(len(image)) {
		return ErrTruncatedFMap
	}
	w := bytesextra.NewReadWriteSeeker(image[f.Start:])
	if err := binary.Write(w, binary.LittleEndian, f.Header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, f.Areas)
}
