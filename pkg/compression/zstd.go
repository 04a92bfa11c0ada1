// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZSTD implements Compressor for Zstandard frames.
type ZSTD struct{}

// Name returns the type of compression employed.
func (c *ZSTD) Name() string {
	return "zstd"
}

// Decode decodes a byte slice of zstd data.
func (c *ZSTD) Decode(encodedData []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer r.Close()
	return r.DecodeAll(encodedData, nil)
}

// Encode encodes a byte slice with zstd.
func (c *ZSTD) Encode(decodedData []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("could not create zstd writer: %w", err)
	}
	defer w.Close()
	return w.EncodeAll(decodedData, nil), nil
}
