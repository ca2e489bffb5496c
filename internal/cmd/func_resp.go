// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aibor/libspec/internal/report"
	"github.com/aibor/libspec/internal/sys"
)

const (
	funcRespName            = "func-resp"
	funcRespEnvVar          = "FUNC_RESP_ARGS"
	funcRespLocalConfigFile = ".func-resp-args"

	// nmEnvVar overrides the default symbol dump tool.
	nmEnvVar = "LLVM_NM"

	funcRespUsageMessage = `Usage of 'func-resp':
    func-resp [flags...] functions.json manifest.json

Prints which of the external functions listed in functions.json are defined by
each of the bitcode files listed in manifest.json.

functions.json is a JSON object with the key "functions" holding a list of
function names. manifest.json is a JSON object with the key "lib_spec" holding
a list of bitcode file paths.

All func-resp flags can also be provided via environment variable
FUNC_RESP_ARGS and via file ./.func-resp-args, with one argument per line.
`
)

type funcRespFlags struct {
	baseFlags

	reporter      report.Reporter
	functionsFile string
	manifestFile  string
}

func newFuncRespFlags(cfg IO) *funcRespFlags {
	flags := &funcRespFlags{
		reporter: report.Reporter{
			Nm: defaultNm(),
		},
	}

	flags.initFlagset(funcRespName, funcRespUsageMessage, cfg.Stderr)

	flagSet := flags.flagSet

	flagSet.StringVar(
		&flags.reporter.Nm,
		"nm",
		flags.reporter.Nm,
		"llvm-nm compatible symbol dump tool (default from $"+nmEnvVar+" if set)",
	)

	flagSet.BoolVar(
		&flags.reporter.KeepGoing,
		"keep-going",
		flags.reporter.KeepGoing,
		"continue with the next bitcode file if dumping symbols fails",
	)

	flagSet.BoolVar(
		&flags.reporter.RemoveDumps,
		"rm-dumps",
		flags.reporter.RemoveDumps,
		"remove the *_symbols dump files after they have been read",
	)

	flagSet.BoolVar(
		&flags.reporter.Unresolved,
		"unresolved",
		flags.reporter.Unresolved,
		"print the functions not defined by any bitcode file at the end",
	)

	flags.addCommonFlags()

	return flags
}

func defaultNm() string {
	if nm := os.Getenv(nmEnvVar); nm != "" {
		return nm
	}

	return sys.DefaultNm
}

func (f *funcRespFlags) ParseArgs(args []string) error {
	err := f.parse(args)
	if err != nil {
		return err
	}

	positionalArgs := f.flagSet.Args()

	// Like a missing library for build-libs, missing files are not an error.
	//nolint:mnd
	if len(positionalArgs) != 2 {
		return f.fail("expected function set file and manifest file", ErrNothingToDo)
	}

	f.functionsFile = positionalArgs[0]
	f.manifestFile = positionalArgs[1]

	return nil
}

func runFuncResp(ctx context.Context, flags *funcRespFlags, cfg IO) error {
	functions, err := report.LoadFunctionSet(flags.functionsFile)
	if err != nil {
		return fmt.Errorf("function set: %w", err)
	}

	manifest, err := report.LoadManifest(flags.manifestFile)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	slog.Debug("Inputs loaded",
		slog.Int("functions", len(functions)),
		slog.Int("bitcode_files", len(manifest.Bitcode)))

	output := bufio.NewWriter(cfg.Stdout)

	err = flags.reporter.Run(ctx, functions, manifest, output)

	// Print what is there even on failure.
	flushErr := output.Flush()

	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if flushErr != nil {
		return fmt.Errorf("write output: %w", flushErr)
	}

	return nil
}

// RunFuncResp is the main entry point for the func-resp CLI command.
func RunFuncResp(ctx context.Context, args []string, cfg IO) int {
	flags := newFuncRespFlags(cfg)

	err := parseArgs(flags, args, funcRespEnvVar, funcRespLocalConfigFile)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, funcRespName, flags.debug)

	err = runFuncResp(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
