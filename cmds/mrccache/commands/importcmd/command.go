// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package importcmd

import (
	"fmt"
	"os"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/inject"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/compression"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Image
	InputPath string `short:"i" long:"input" description:"path of the snapshot to import" required:"true"`
	Force     bool   `long:"force" description:"import the snapshot even if it does not pass the integrity checks"`

	Compression string `short:"c" long:"compression" description:"compression of the snapshot [auto, lz4, none, xz, zlib, zstd]" default:"auto"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "replaces the training data of a flash image with a snapshot"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "By default the compression of the snapshot is detected from its magic number."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	snapshot, err := os.ReadFile(cmd.InputPath)
	if err != nil {
		return fmt.Errorf("unable to read the snapshot '%s': %w", cmd.InputPath, err)
	}
	var compressor compression.Compressor
	switch cmd.Compression {
	case "", "auto":
		compressor = compression.Detect(snapshot)
	default:
		compressor, err = compression.CompressorFromName(cmd.Compression)
		if err != nil {
			return commands.ErrArgs{Err: err}
		}
	}
	log.Debugf("snapshot '%s' is %s compressed", cmd.InputPath, compressor.Name())
	raw, err := compressor.Decode(snapshot)
	if err != nil {
		return fmt.Errorf("unable to decompress the snapshot with %s: %w", compressor.Name(), err)
	}
	return inject.Inject(&cmd.Image, raw, cmd.Force)
}
