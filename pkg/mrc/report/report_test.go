// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

func TestLabel(t *testing.T) {
	require.Equal(t, "Me Stolen Size", Label("MeStolenSize"))
	require.Equal(t, "Sa Mem Cfg Crc", Label("SaMemCfgCrc"))
}

func TestScalars(t *testing.T) {
	var d mrc.SaveData
	d.Size = 0x1000
	d.Frequency = mrc.F2400
	d.DdrType = mrc.DdrTypeLPDDR4
	d.EccSupport = true

	values := map[string]string{}
	for _, f := range Scalars(&d) {
		values[f.Label] = f.Value
	}
	require.Equal(t, "0x1000", values["Size"])
	require.Equal(t, "2400", values["Frequency"])
	require.Equal(t, "LPDDR4", values["Ddr Type"])
	require.Equal(t, "true", values["Ecc Support"])
	require.NotContains(t, values, "Register Common")
	require.NotContains(t, values, "Version")
}

func TestRender(t *testing.T) {
	var blob mrc.SaveBlob
	blob.Data.Size = uint32(mrc.SaveBlobSize)
	blob.Data.MeStolenSize = 0x40
	blob.Data.RegisterSaGv[mrc.SaGvPointHigh][0] = 1
	blob.Data.Controller[0].Channel[1].Status = mrc.ChannelPresent
	blob.UpdateCrc()

	var out bytes.Buffer
	Render(&out, &blob, variant.Get(variant.IDCannonLake))
	s := out.String()
	require.Contains(t, strings.ToLower(s), "mrc training data")
	require.Contains(t, s, "Me Stolen Size")
	require.Contains(t, s, "mc0/ch1")
	require.Contains(t, s, "mc0/ch1/d1")
	require.Contains(t, s, "448 B")
	require.Contains(t, s, "768 B")
	require.Contains(t, s, "empty")
	require.Contains(t, s, "present")
}
