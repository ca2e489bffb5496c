// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
)

// baseFlags provides the flag set and the flags common to all commands.
type baseFlags struct {
	flagSet      *flag.FlagSet
	usageMessage string

	version bool
	debug   bool
}

func (f *baseFlags) initFlagset(name, usageMessage string, output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	f.flagSet = flagSet
	f.usageMessage = usageMessage
}

// addCommonFlags adds the flags all commands share. Call it after all other
// flags are added, so they are listed last in the usage.
func (f *baseFlags) addCommonFlags() {
	f.flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	f.flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)
}

// parse parses the flags. Positional arguments are left for the caller.
func (f *baseFlags) parse(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	return nil
}

// fail fails like flag does. It prints the error first and then usage.
func (f *baseFlags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *baseFlags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *baseFlags) usage() {
	fmt.Fprint(f.flagSet.Output(), f.usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
