// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nvstore keeps the MRC save blob in the training cache area of a
// flash image.
package nvstore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
)

// DefaultArea is the flash map area holding the training data.
const DefaultArea = "RW_MRC_CACHE"

// erased is the value of erased flash.
const erased = 0xFF

// ErrEmpty means the area has been erased and holds no blob.
var ErrEmpty = errors.New("the training cache area is erased")

// ErrAreaTooSmall means the area cannot hold a blob.
type ErrAreaTooSmall struct {
	Name string
	Size uint32
}

func (err *ErrAreaTooSmall) Error() string {
	return fmt.Sprintf("FMAP area %q is %s, a training blob needs %s",
		err.Name, humanize.IBytes(uint64(err.Size)), humanize.IBytes(uint64(mrc.SaveBlobSize)))
}

// ErrAreaOutOfImage means the area lies beyond the end of the image.
type ErrAreaOutOfImage struct {
	Area      Area
	ImageSize int
}

func (err *ErrAreaOutOfImage) Error() string {
	return fmt.Sprintf("FMAP area %q [%#x, %#x) is beyond the end of the %#x bytes image",
		err.Area.Name, err.Area.Offset, err.Area.End(), err.ImageSize)
}

// Store is the training cache area of a flash image. Changes are made in
// place in the image slice.
type Store struct {
	image []byte
	area  Area
	fmap  *FMap
}

// Open locates the area called name in the flash map of image.
func Open(image []byte, name string) (*Store, error) {
	fmap, err := FindFMap(image)
	if err != nil {
		return nil, err
	}
	area, err := fmap.Area(name)
	if err != nil {
		return nil, err
	}
	if area.End() > uint64(len(image)) {
		return nil, &ErrAreaOutOfImage{Area: *area, ImageSize: len(image)}
	}
	if area.Size < uint32(mrc.SaveBlobSize) {
		return nil, &ErrAreaTooSmall{Name: name, Size: area.Size}
	}
	return &Store{image: image, area: *area, fmap: fmap}, nil
}

// Area returns the flash map entry of the store.
func (s *Store) Area() Area {
	return s.area
}

// FMap returns the flash map of the image.
func (s *Store) FMap() *FMap {
	return s.fmap
}

// Region returns the bytes of the area. It aliases the image.
func (s *Store) Region() []byte {
	return s.image[s.area.Offset:s.area.End()]
}

// Empty returns true if the area is erased.
func (s *Store) Empty() bool {
	return isErased(s.Region()[:mrc.SaveBlobSize])
}

// Load returns the blob kept in the area. ErrEmpty is returned for an erased
// area; any other error comes from mrc.LoadSaveBlob.
func (s *Store) Load(want mrc.Version) (*mrc.SaveBlob, error) {
	if s.Empty() {
		return nil, ErrEmpty
	}
	return mrc.LoadSaveBlob(s.Region(), want)
}

// Save writes blob at the start of the area. The rest of the area is left
// untouched.
func (s *Store) Save(blob *mrc.SaveBlob) error {
	_, err := blob.Write(s.Region())
	return err
}

// Erase sets the whole area to the erased state.
func (s *Store) Erase() {
	region := s.Region()
	for idx := range region {
		region[idx] = erased
	}
}

func isErased(b []byte) bool {
	return len(bytes.TrimLeft(b, "\xff")) == 0
}

// NewImage returns an erased image of the given size with a flash map at
// offset 0 describing the given areas.
func NewImage(size uint32, areas ...Area) ([]byte, error) {
	image := bytes.Repeat([]byte{erased}, int(size))
	fmap := NewFMap("FLASH", size, areas...)
	for idx := range areas {
		if areas[idx].End() > uint64(size) {
			return nil, &ErrAreaOutOfImage{Area: areas[idx], ImageSize: int(size)}
		}
	}
	if err := fmap.WriteInto(image); err != nil {
		return nil, err
	}
	return image, nil
}
