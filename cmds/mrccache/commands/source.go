// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/nvstore"
)

// Image selects the training cache area of a flash image.
type Image struct {
	ImagePath string `short:"f" long:"image" description:"path to the flash image"`
	Area      string `long:"area" description:"FMAP area holding the training data" default:"RW_MRC_CACHE"`
}

// Open reads the image and locates the training cache area.
func (img *Image) Open() (*nvstore.Store, []byte, error) {
	if img.ImagePath == "" {
		return nil, nil, ErrArgs{Err: fmt.Errorf("no flash image given")}
	}
	image, err := os.ReadFile(img.ImagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read the flash image '%s': %w", img.ImagePath, err)
	}
	area := img.Area
	if area == "" {
		area = nvstore.DefaultArea
	}
	store, err := nvstore.Open(image, area)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to locate the training cache in '%s': %w", img.ImagePath, err)
	}
	return store, image, nil
}

// Store writes the image back to its file.
func (img *Image) Store(image []byte) error {
	if err := os.WriteFile(img.ImagePath, image, 0o644); err != nil {
		return fmt.Errorf("unable to write the flash image '%s': %w", img.ImagePath, err)
	}
	return nil
}

// Source is either a flash image or a raw blob file.
type Source struct {
	Image
	BlobPath   string `short:"b" long:"blob" description:"path to a raw training blob, instead of a flash image"`
	MrcVersion string `long:"mrc-version" description:"expected MRC version (major.minor.rev.build); any version is accepted if unset"`
}

// Load returns the blob of the source. The blob is checked for integrity
// and, if MrcVersion is set, for its version.
func (src *Source) Load() (*mrc.SaveBlob, error) {
	switch {
	case src.BlobPath != "" && src.ImagePath != "":
		return nil, ErrArgs{Err: fmt.Errorf("both a flash image and a blob are given")}
	case src.BlobPath == "" && src.ImagePath == "":
		return nil, ErrArgs{Err: fmt.Errorf("either a flash image or a blob is required")}
	}

	var raw []byte
	if src.BlobPath != "" {
		var err error
		raw, err = os.ReadFile(src.BlobPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read the blob '%s': %w", src.BlobPath, err)
		}
	} else {
		store, _, err := src.Image.Open()
		if err != nil {
			return nil, err
		}
		if store.Empty() {
			return nil, nvstore.ErrEmpty
		}
		raw = store.Region()
	}
	return DecodeBlob(raw, src.MrcVersion)
}

// DecodeBlob decodes and checks a blob. An empty version accepts any.
func DecodeBlob(raw []byte, version string) (*mrc.SaveBlob, error) {
	if version != "" {
		want, err := mrc.ParseVersion(version)
		if err != nil {
			return nil, ErrArgs{Err: err}
		}
		return mrc.LoadSaveBlob(raw, want)
	}
	var blob mrc.SaveBlob
	if err := blob.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	if err := blob.Verify(); err != nil {
		return nil, err
	}
	return &blob, nil
}
