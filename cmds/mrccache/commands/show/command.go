// Copyright 2026 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmpoep/BP-Mehlow-Server-sub002/cmds/mrccache/commands"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/report"
	"github.com/jmpoep/BP-Mehlow-Server-sub002/pkg/mrc/variant"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Source
	Variant string `long:"variant" description:"silicon variant, used to account the register sections"`
	Format  string `long:"format" description:"output format [text, json]" default:"text"`

	out io.Writer
}

type Format int

const (
	FormatUndefined = Format(iota)
	FormatText
	FormatJSON
)

func ParseFormat(s string) Format {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "", "text":
		return FormatText
	case "json":
		return FormatJSON
	}
	return FormatUndefined
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the training data"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Prints the header, the scalars, the channel and DIMM metadata and the register section usage of the training data."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	format := ParseFormat(cmd.Format)
	if format == FormatUndefined {
		return commands.ErrArgs{Err: fmt.Errorf("unknown format '%s'", cmd.Format)}
	}

	var v *variant.Variant
	if cmd.Variant != "" {
		var err error
		v, err = variant.Lookup(cmd.Variant)
		if err != nil {
			return commands.ErrArgs{Err: err}
		}
	}

	blob, err := cmd.Load()
	if err != nil {
		return fmt.Errorf("unable to load the training data: %w", err)
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	switch format {
	case FormatText:
		report.Render(out, blob, v)
	case FormatJSON:
		b, err := json.MarshalIndent(blob, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to serialize the training data: %w", err)
		}
		fmt.Fprintf(out, "%s\n", b)
	}
	return nil
}
