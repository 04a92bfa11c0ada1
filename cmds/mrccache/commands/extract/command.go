// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"fmt"
	"os"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Image
	OutputPath string `short:"o" long:"output" description:"path of the blob file to write" required:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "copies the training data of a flash image to a file"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	store, _, err := cmd.Open()
	if err != nil {
		return err
	}
	raw := store.Region()[:mrc.SaveBlobSize]
	if store.Empty() {
		log.Warnf("area %s is erased", store.Area().Name)
	}
	if err := os.WriteFile(cmd.OutputPath, raw, 0o644); err != nil {
		return fmt.Errorf("unable to write the blob '%s': %w", cmd.OutputPath, err)
	}
	return nil
}
