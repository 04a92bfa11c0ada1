// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/compression"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
	OutputPath  string `short:"o" long:"output" description:"path of the snapshot to write" required:"true"`
	Compression string `short:"c" long:"compression" description:"compression of the snapshot [lz4, none, xz, zlib, zstd]" default:"zstd"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "writes a compressed snapshot of the training data"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Snapshots are meant to be attached to bug reports; \"mrccache import\" detects the compression by itself."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	compressor, err := compression.CompressorFromName(cmd.Compression)
	if err != nil {
		return commands.ErrArgs{Err: err}
	}

	blob, err := cmd.Load()
	if err != nil {
		return fmt.Errorf("unable to load the training data: %w", err)
	}
	raw, err := blob.MarshalBinary()
	if err != nil {
		return err
	}
	snapshot, err := compressor.Encode(raw)
	if err != nil {
		return fmt.Errorf("unable to compress the training data with %s: %w", compressor.Name(), err)
	}
	log.Debugf("%s snapshot: %s -> %s", compressor.Name(),
		humanize.IBytes(uint64(len(raw))), humanize.IBytes(uint64(len(snapshot))))

	if err := os.WriteFile(cmd.OutputPath, snapshot, 0o644); err != nil {
		return fmt.Errorf("unable to write the snapshot '%s': %w", cmd.OutputPath, err)
	}
	return nil
}
