// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/nvstore"
)

func TestSimulatedBoot(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cfg     config
		message string
	}{
		{"cnl_high", config{Variant: "cnl", SaGv: true, Point: "high", Seed: 1}, "fast boot permitted"},
		{"cnl_low", config{Variant: "cnl", SaGv: true, Point: "low", Seed: 2}, "1333"},
		{"cfl_mid", config{Variant: "cfl", SaGv: true, Point: "mid", Seed: 3}, "2133"},
		{"cfl_no_sagv", config{Variant: "cfl", Point: "high", Seed: 4}, "2400"},
		{"swapped_dimm", config{Variant: "cnl", SaGv: true, Point: "high", Seed: 5, SwapDimm: true}, "cold boot required"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			require.NoError(t, run(stdout, tc.cfg))
			require.Contains(t, stdout.String(), tc.message)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	err := run(&bytes.Buffer{}, config{Variant: "skl"})
	require.ErrorIs(t, err, errUsage)

	err = run(&bytes.Buffer{}, config{Variant: "cnl", Point: "turbo", SaGv: true})
	require.ErrorIs(t, err, errUsage)

	err = run(&bytes.Buffer{}, config{Variant: "cnl", Point: "low"})
	require.ErrorIs(t, err, errUsage)
}

func TestImageIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.bin")
	cfg := config{Variant: "cnl", SaGv: true, Point: "high", ImagePath: path, Seed: 9}
	require.NoError(t, run(&bytes.Buffer{}, cfg))

	image, err := os.ReadFile(path)
	require.NoError(t, err)
	store, err := nvstore.Open(image, nvstore.DefaultArea)
	require.NoError(t, err)
	blob, err := store.Load(mrcVersion)
	require.NoError(t, err)
	// updated by the fast boot
	require.Equal(t, uint32(64), blob.Data.MeStolenSize)
	require.Equal(t, mrc.F2400, blob.Data.Frequency)

	require.NoError(t, run(&bytes.Buffer{}, cfg))
}

func TestTrainedValuesDifferPerPoint(t *testing.T) {
	require.NotEqual(t, trained(0x4000, 1, mrc.SaGvPointLow), trained(0x4000, 1, mrc.SaGvPointHigh))
	require.NotEqual(t, trained(0x4000, 1, mrc.SaGvPointLow), trained(0x4000, 2, mrc.SaGvPointLow))
}
