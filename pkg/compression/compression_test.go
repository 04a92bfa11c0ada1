// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testData() []byte {
	rnd := rand.New(rand.NewSource(1))
	data := make([]byte, 6000)
	rnd.Read(data[:2048])
	copy(data, "MRC\x00")
	// long runs of zeroes, like unused register slots
	copy(data[4096:], bytes.Repeat([]byte{0x5a, 0xa5}, 512))
	return data
}

func TestEncodeDecode(t *testing.T) {
	want := testData()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := CompressorFromName(name)
			require.NoError(t, err)
			require.Equal(t, name, c.Name())

			encoded, err := c.Encode(want)
			require.NoError(t, err)
			if name != "none" {
				require.Less(t, len(encoded), len(want))
			}
			require.Equal(t, c.Name(), Detect(encoded).Name())

			got, err := c.Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestCompressorFromName(t *testing.T) {
	c, err := CompressorFromName("ZSTD")
	require.NoError(t, err)
	require.IsType(t, &ZSTD{}, c)

	_, err = CompressorFromName("brotli")
	var unknown *ErrUnknownCompressor
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"lz4", "none", "xz", "zlib", "zstd"}, Names())
}

func TestDetectRaw(t *testing.T) {
	require.Equal(t, "none", Detect([]byte{0x12, 0x34, 0x56, 0x78}).Name())
	require.Equal(t, "none", Detect(nil).Name())
}

func TestDecodeGarbage(t *testing.T) {
	garbage := []byte("definitely not compressed")
	for _, c := range []Compressor{&XZ{}, &ZSTD{}, &ZLIB{}} {
		_, err := c.Decode(garbage)
		require.Error(t, err, c.Name())
	}
}
