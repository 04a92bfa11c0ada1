// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package importcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/export"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/compression"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/nvstore"
)

func writeImage(t *testing.T, dir string, blob *mrc.SaveBlob) string {
	image, err := nvstore.NewImage(0x8000, nvstore.Area{
		Offset: 0x2000,
		Size:   0x2000,
		Name:   nvstore.NewName(nvstore.DefaultArea),
	})
	require.NoError(t, err)
	if blob != nil {
		store, err := nvstore.Open(image, nvstore.DefaultArea)
		require.NoError(t, err)
		require.NoError(t, store.Save(blob))
	}
	path := filepath.Join(dir, "image.bin")
	require.NoError(t, os.WriteFile(path, image, 0o644))
	return path
}

func TestExportImport(t *testing.T) {
	var blob mrc.SaveBlob
	blob.Data.Size = uint32(mrc.SaveBlobSize)
	blob.Data.Version = mrc.Version{Major: 7, Minor: 1, Rev: 68, Build: 2}
	blob.Data.RegisterCommon[10] = 0x42
	blob.UpdateCrc()

	for _, name := range compression.Names() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := writeImage(t, dir, &blob)
			snapshot := filepath.Join(dir, "snapshot")

			exportCmd := &export.Command{OutputPath: snapshot, Compression: name}
			exportCmd.ImagePath = src
			exportCmd.MrcVersion = "7.1.68.2"
			require.NoError(t, exportCmd.Execute(nil))

			dst := writeImage(t, t.TempDir(), nil)
			importCmd := &Command{Image: commands.Image{ImagePath: dst}, InputPath: snapshot, Compression: name}
			require.NoError(t, importCmd.Execute(nil))

			image, err := os.ReadFile(dst)
			require.NoError(t, err)
			store, err := nvstore.Open(image, nvstore.DefaultArea)
			require.NoError(t, err)
			loaded, err := store.Load(blob.Data.Version)
			require.NoError(t, err)
			require.Equal(t, blob, *loaded)
		})
	}
}

func TestImportRejectsBrokenSnapshot(t *testing.T) {
	var blob mrc.SaveBlob
	blob.Data.Size = uint32(mrc.SaveBlobSize)
	blob.UpdateCrc()
	blob.Data.MeStolenSize = 1
	raw, err := blob.MarshalBinary()
	require.NoError(t, err)

	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot")
	encoded, err := (&compression.LZ4{}).Encode(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapshot, encoded, 0o644))

	dst := writeImage(t, dir, nil)
	importCmd := &Command{Image: commands.Image{ImagePath: dst}, InputPath: snapshot}
	var crcErr *mrc.ErrBlobCrc
	require.ErrorAs(t, importCmd.Execute(nil), &crcErr)

	importCmd.Force = true
	require.NoError(t, importCmd.Execute(nil))
}

func TestExtraArguments(t *testing.T) {
	var argsErr commands.ErrArgs
	require.ErrorAs(t, (&Command{}).Execute([]string{"x"}), &argsErr)
}
