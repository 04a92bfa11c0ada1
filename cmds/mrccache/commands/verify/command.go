// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"fmt"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "checks the size, the CRC and optionally the MRC version of the training data"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "A failed check means the firmware will ignore the training data and train the memory again on the next boot."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	blob, err := cmd.Load()
	if err != nil {
		return fmt.Errorf("training data is unusable: %w", err)
	}
	log.Debugf("training data of MRC %s, CRC %#08x", blob.Data.Version, blob.Header.Crc)
	fmt.Println("OK")
	return nil
}
