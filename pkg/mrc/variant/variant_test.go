// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func inRanges(v *Variant, offset uint32) bool {
	for _, r := range v.Tables.SaGv {
		if offset >= r.Start && offset <= r.End {
			return true
		}
	}
	return false
}

func TestVariantsAreConsistent(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			v, err := Lookup(name)
			require.NoError(t, err)
			require.Equal(t, name, v.ID.String())
			require.NoError(t, v.Tables.Validate())
			require.NoError(t, v.Geometry.Validate())

			for k := TurnaroundKind(0); k < NumTurnaroundKinds; k++ {
				require.Len(t, v.Turnaround[k], v.Geometry.Channels, k.String())
				for ch, offset := range v.Turnaround[k] {
					require.True(t, inRanges(v, offset), "%s channel %d at %#x", k, ch, offset)
					gotKind, gotCh, ok := v.TurnaroundAt(offset)
					require.True(t, ok)
					require.Equal(t, k, gotKind)
					require.Equal(t, ch, gotCh)
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	v, err := Lookup(" CNL ")
	require.NoError(t, err)
	require.Equal(t, IDCannonLake, v.ID)
	require.Same(t, v, Get(IDCannonLake))

	_, err = Lookup("icl")
	var unknown *ErrUnknownVariant
	require.ErrorAs(t, err, &unknown)
	require.Contains(t, err.Error(), "cfl, cnl")

	_, _, ok := v.TurnaroundAt(0x0)
	require.False(t, ok)
}
