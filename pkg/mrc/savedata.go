// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/bytesextra"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/crc"
)

// DimmSave is the saved identity of a DIMM slot.
type DimmSave struct {
	Status DimmStatus
	// Crc is the SPD fingerprint of the module, zero for disabled slots.
	Crc     uint16
	SpdSave [SpdSaveSize]byte
}

// ChannelSave is the saved metadata of a channel.
type ChannelSave struct {
	Status            ChannelStatus
	DimmCount         uint8
	ValidRankBitMask  uint8
	ValidSubChBitMask uint8
	ValidByteMask     uint16
	Timing            [MaxProfiles]Timing
	Dimm              [MaxDimmsPerChannel]DimmSave
}

// ControllerSave is the saved metadata of a memory controller.
type ControllerSave struct {
	Channel [MaxChannels]ChannelSave
}

// SaveData is the CRC protected payload of a SaveBlob. The field order is the
// wire order; all values are little-endian.
type SaveData struct {
	// Size is SaveBlobSize at the time the blob was written.
	Size    uint32
	Version Version

	CapabilityID [3]uint32
	Controller   [MaxControllers]ControllerSave
	VddVoltage   [MaxProfiles]uint32

	RegisterCommon [MaxCommonRegisterBytes]byte
	RegisterSaGv   [NumSaGvPoints][MaxSaGvRegisterBytes]byte

	CpuModel    uint32
	CpuStepping uint32
	CpuFamily   uint32

	Frequency           Frequency
	HighFrequency       Frequency
	MemoryClock         uint32
	BurstLength         uint8
	Ratio               uint8
	RefClk              RefClk
	EccSupport          bool
	DdrType             DdrType
	Lp4x                bool
	EnhancedChannelMode bool

	TCRSensitiveHynixDDR4  bool
	TCRSensitiveMicronDDR4 bool

	XmpProfileEnable   bool
	BerEnable          bool
	LpddrEctDone       bool
	DualRankPerChannel bool
	DqOdtEnable        bool
	CaCsCkOdtSupport   bool
	BerAddress         [MaxBerAddresses]uint64

	MeStolenSize uint32
	ImrAlignment uint32
	SaMemCfgCrc  uint32
}

// Header precedes the SaveData.
type Header struct {
	Crc uint32
}

// SaveBlob is the persisted training snapshot.
type SaveBlob struct {
	Header Header
	Data   SaveData
}

var (
	// SaveDataSize is the encoded size of SaveData.
	SaveDataSize = binary.Size(SaveData{})
	// SaveBlobSize is the encoded size of SaveBlob.
	SaveBlobSize = binary.Size(SaveBlob{})
)

// MarshalBinary encodes the payload.
func (d *SaveData) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(SaveDataSize)
	if err := binary.Write(&buf, binary.LittleEndian, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ComputeCrc returns the CRC-32 of the encoded payload.
func (b *SaveBlob) ComputeCrc() uint32 {
	payload, err := b.Data.MarshalBinary()
	if err != nil {
		// SaveData only holds fixed-size fields.
		panic(err)
	}
	return crc.Crc32(payload)
}

// UpdateCrc stores the payload CRC in the header.
func (b *SaveBlob) UpdateCrc() {
	b.Header.Crc = b.ComputeCrc()
}

// Verify returns every integrity problem of the blob.
func (b *SaveBlob) Verify() error {
	var result *multierror.Error
	if b.Data.Size != uint32(SaveBlobSize) {
		result = multierror.Append(result, &ErrBlobSize{Expected: SaveBlobSize, Actual: int(b.Data.Size)})
	}
	if actual := b.ComputeCrc(); actual != b.Header.Crc {
		result = multierror.Append(result, &ErrBlobCrc{Expected: b.Header.Crc, Actual: actual})
	}
	return result.ErrorOrNil()
}

// ReadFrom decodes a blob.
func (b *SaveBlob) ReadFrom(r io.Reader) (int64, error) {
	if err := binary.Read(r, binary.LittleEndian, b); err != nil {
		return -1, err
	}
	return int64(SaveBlobSize), nil
}

// WriteTo encodes the blob.
func (b *SaveBlob) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, b); err != nil {
		return -1, err
	}
	return int64(SaveBlobSize), nil
}

// Read decodes the blob from the beginning of buf.
func (b *SaveBlob) Read(buf []byte) (int, error) {
	if len(buf) < SaveBlobSize {
		return 0, &ErrBlobSize{Expected: SaveBlobSize, Actual: len(buf)}
	}
	n, err := b.ReadFrom(bytesextra.NewReadWriteSeeker(buf))
	return int(n), err
}

// Write encodes the blob into the beginning of buf, which must be at least
// SaveBlobSize long. The rest of buf is left untouched.
func (b *SaveBlob) Write(buf []byte) (int, error) {
	if len(buf) < SaveBlobSize {
		return 0, &ErrBlobSize{Expected: SaveBlobSize, Actual: len(buf)}
	}
	n, err := b.WriteTo(bytesextra.NewReadWriteSeeker(buf))
	return int(n), err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *SaveBlob) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SaveBlobSize)
	if _, err := b.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *SaveBlob) UnmarshalBinary(buf []byte) error {
	_, err := b.Read(buf)
	return err
}

// LoadSaveBlob decodes a persisted blob and checks that it was written by
// this code version and is intact. Any error means the blob must be treated
// as absent.
func LoadSaveBlob(buf []byte, want Version) (*SaveBlob, error) {
	var blob SaveBlob
	if _, err := blob.Read(buf); err != nil {
		return nil, fmt.Errorf("unable to decode the MRC save blob: %w", err)
	}
	if blob.Data.Version != want {
		return nil, &ErrBlobVersion{Expected: want, Actual: blob.Data.Version}
	}
	if err := blob.Verify(); err != nil {
		return nil, err
	}
	return &blob, nil
}
