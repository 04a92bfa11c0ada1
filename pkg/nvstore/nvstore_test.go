// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nvstore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
)

const (
	testImageSize = 0x10000
	testAreaStart = 0x4000
	testAreaSize  = 0x2000
)

func testImage(t *testing.T) []byte {
	image, err := NewImage(testImageSize,
		Area{Offset: 0, Size: 0x1000, Name: NewName("FMAP"), Flags: AreaStatic | AreaReadOnly},
		Area{Offset: testAreaStart, Size: testAreaSize, Name: NewName(DefaultArea)},
		Area{Offset: 0x8000, Size: 0x100, Name: NewName("RECOVERY_MRC_CACHE")},
	)
	require.NoError(t, err)
	return image
}

func TestFindFMap(t *testing.T) {
	image := testImage(t)
	fmap, err := FindFMap(image)
	require.NoError(t, err)
	require.Equal(t, uint64(0), fmap.Start)
	require.Equal(t, uint32(testImageSize), fmap.Size)
	require.Equal(t, "FLASH", fmap.Name.String())
	require.Len(t, fmap.Areas, 3)

	area, err := fmap.Area(DefaultArea)
	require.NoError(t, err)
	require.Equal(t, uint32(testAreaStart), area.Offset)
	require.Equal(t, uint64(testAreaStart+testAreaSize), area.End())
	require.Equal(t, "STATIC|READ_ONLY", FlagNames(fmap.Areas[0].Flags))
	require.Equal(t, "0x0", FlagNames(fmap.Areas[1].Flags))

	_, err = fmap.Area("MISSING")
	var notFound *ErrAreaNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestFindFMapErrors(t *testing.T) {
	_, err := FindFMap(bytes.Repeat([]byte{0x53, 0x11}, 0x100))
	require.ErrorIs(t, err, ErrNoFMap)

	image := testImage(t)
	_, err = FindFMap(append(append([]byte{}, image...), image...))
	require.ErrorIs(t, err, ErrMultipleFMap)

	_, err = FindFMap(image[:20])
	require.ErrorIs(t, err, ErrTruncatedFMap)

	// signature alone is skipped
	padded := append([]byte("junk__FMAP__junk"), image...)
	fmap, err := FindFMap(padded)
	require.NoError(t, err)
	require.Equal(t, uint64(16), fmap.Start)
}

func TestStoreSaveLoad(t *testing.T) {
	image := testImage(t)
	store, err := Open(image, DefaultArea)
	require.NoError(t, err)
	require.True(t, store.Empty())

	version := mrc.Version{Major: 7, Minor: 1}
	_, err = store.Load(version)
	require.ErrorIs(t, err, ErrEmpty)

	var blob mrc.SaveBlob
	blob.Data.Size = uint32(mrc.SaveBlobSize)
	blob.Data.Version = version
	blob.Data.MeStolenSize = 64
	blob.UpdateCrc()
	require.NoError(t, store.Save(&blob))
	require.False(t, store.Empty())
	require.Equal(t, byte(0xFF), image[testAreaStart+mrc.SaveBlobSize])
	require.Equal(t, byte(0xFF), image[testAreaStart-1])

	reopened, err := Open(image, DefaultArea)
	require.NoError(t, err)
	loaded, err := reopened.Load(version)
	require.NoError(t, err)
	require.Equal(t, blob, *loaded)

	_, err = reopened.Load(mrc.Version{Major: 8})
	var versionErr *mrc.ErrBlobVersion
	require.ErrorAs(t, err, &versionErr)

	reopened.Erase()
	require.True(t, reopened.Empty())
}

func TestOpenRejectsSmallArea(t *testing.T) {
	_, err := Open(testImage(t), "RECOVERY_MRC_CACHE")
	var tooSmall *ErrAreaTooSmall
	require.ErrorAs(t, err, &tooSmall)
	require.Equal(t, uint32(0x100), tooSmall.Size)
	require.Contains(t, err.Error(), "256 B")
}

func TestAreaOutOfImage(t *testing.T) {
	_, err := NewImage(0x1000, Area{Offset: 0x800, Size: 0x1000, Name: NewName(DefaultArea)})
	var outOfImage *ErrAreaOutOfImage
	require.ErrorAs(t, err, &outOfImage)

	image := testImage(t)
	_, err = Open(image[:testAreaStart+0x10], DefaultArea)
	require.ErrorAs(t, err, &outOfImage)
}
