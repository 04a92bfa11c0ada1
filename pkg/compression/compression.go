// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression implements the codecs used for exported training
// cache snapshots.
package compression

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Compressor defines a single compression scheme (such as LZ4).
type Compressor interface {
	// Name is the lower case name of the scheme.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

// Magic numbers at the start of encoded data.
var (
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

var compressors = map[string]Compressor{
	(&LZ4{}).Name():  &LZ4{},
	(&XZ{}).Name():   &XZ{},
	(&ZSTD{}).Name(): &ZSTD{},
	(&ZLIB{}).Name(): &ZLIB{},
	(&None{}).Name(): &None{},
}

// ErrUnknownCompressor means no compressor has the requested name.
type ErrUnknownCompressor struct {
	Name string
}

func (err *ErrUnknownCompressor) Error() string {
	return fmt.Sprintf("unknown compression '%s', known: %s", err.Name, strings.Join(Names(), ", "))
}

// Names returns the names of the supported compressors.
func Names() []string {
	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompressorFromName returns the compressor called name.
func CompressorFromName(name string) (Compressor, error) {
	c, ok := compressors[strings.ToLower(name)]
	if !ok {
		return nil, &ErrUnknownCompressor{Name: name}
	}
	return c, nil
}

// Detect guesses the compressor of encodedData from its magic number. Data
// without a known magic number is reported as uncompressed.
func Detect(encodedData []byte) Compressor {
	switch {
	case bytes.HasPrefix(encodedData, lz4Magic):
		return &LZ4{}
	case bytes.HasPrefix(encodedData, xzMagic):
		return &XZ{}
	case bytes.HasPrefix(encodedData, zstdMagic):
		return &ZSTD{}
	case isZlib(encodedData):
		return &ZLIB{}
	}
	return &None{}
}

// None implements Compressor and leaves the data as is.
type None struct{}

// Name returns the type of compression employed.
func (c *None) Name() string {
	return "none"
}

// Decode returns a copy of encodedData.
func (c *None) Decode(encodedData []byte) ([]byte, error) {
	return append([]byte(nil), encodedData...), nil
}

// Encode returns a copy of decodedData.
func (c *None) Encode(decodedData []byte) ([]byte, error) {
	return append([]byte(nil), decodedData...), nil
}
