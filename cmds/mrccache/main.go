// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mrccache inspects and edits the memory training cache of a flash image.
//
// Synopsis:
//     mrccache show    (-f IMAGE | -b BLOB) [--variant NAME] [--format text|json]
//     mrccache verify  (-f IMAGE | -b BLOB) [--mrc-version VERSION]
//     mrccache extract -f IMAGE -o BLOB
//     mrccache inject  -f IMAGE -i BLOB
//     mrccache export  -f IMAGE -o SNAPSHOT [--compression NAME]
//     mrccache import  -f IMAGE -i SNAPSHOT
//
// Every verb accepts --area to select another FMAP area than RW_MRC_CACHE,
// and -d before the verb enables debug messages.
//
// Description:
//     show:    Print the training data
//     verify:  Check size, CRC and optionally the MRC version
//     extract: Copy the training data to a file
//     inject:  Replace the training data with a blob file
//     export:  Write a compressed snapshot of the training data
//     import:  Replace the training data with a compressed snapshot
package main

import (
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/export"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/extract"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/importcmd"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/inject"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/show"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands/verify"
	mrclog "github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"show":    &show.Command{},
		"verify":  &verify.Command{},
		"extract": &extract.Command{},
		"inject":  &inject.Command{},
		"export":  &export.Command{},
		"import":  &importcmd.Command{},
	}
)

type options struct {
	Debug bool `short:"d" long:"debug" description:"print debug messages"`
}

func main() {
	var opts options
	flagsParser := flags.NewParser(&opts, flags.Default)
	flagsParser.CommandHandler = func(command flags.Commander, args []string) error {
		mrclog.SetDebug(opts.Debug)
		return command.Execute(args)
	}
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		log.Fatal(err)
	}
}
