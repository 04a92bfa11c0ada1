// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inject

import (
	"fmt"
	"os"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Image
	InputPath string `short:"i" long:"input" description:"path of the blob file to inject" required:"true"`
	Force     bool   `long:"force" description:"inject the blob even if it does not pass the integrity checks"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "replaces the training data of a flash image with a blob file"
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

	raw, err := os.ReadFile(cmd.InputPath)
	if err != nil {
		return fmt.Errorf("unable to read the blob '%s': %w", cmd.InputPath, err)
	}
	return Inject(&cmd.Image, raw, cmd.Force)
}

// Inject checks the raw blob and writes it into the training cache area of
// the image.
func Inject(img *commands.Image, raw []byte, force bool) error {
	blob, err := commands.DecodeBlob(raw, "")
	if err != nil && !force {
		return fmt.Errorf("refusing to inject a broken blob (use --force to override): %w", err)
	}
	if blob == nil {
		blob = new(mrc.SaveBlob)
		if err := blob.UnmarshalBinary(raw); err != nil {
			return err
		}
	}

	store, image, err := img.Open()
	if err != nil {
		return err
	}
	store.Erase()
	if err := store.Save(blob); err != nil {
		return err
	}
	return img.Store(image)
}
