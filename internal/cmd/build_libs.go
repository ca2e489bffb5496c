// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aibor/libspec/internal/build"
	"github.com/aibor/libspec/internal/bundle"
	"github.com/aibor/libspec/internal/library"
	"github.com/aibor/libspec/internal/sys"
)

const (
	buildLibsName            = "build-libs"
	buildLibsEnvVar          = "BUILD_LIBS_ARGS"
	buildLibsLocalConfigFile = ".build-libs-args"

	buildLibsUsageMessage = `Usage of 'build-libs':
    build-libs [flags...] library [library...]

Downloads the given libraries and builds LLVM bitcode of them in the workspace
directory. The bitcode files are copied into the workspace directory.

Supported libraries: %s

All build-libs flags can also be provided via environment variable
BUILD_LIBS_ARGS:
	BUILD_LIBS_ARGS="-workspace=/tmp/libs -debug" build-libs libz

All build-libs flags can also be provided via file ./.build-libs-args, with one
argument per line.
`
)

type buildLibsFlags struct {
	baseFlags

	stdout io.Writer

	workspace FilePath
	shell     string
	recipes   FilePath
	bundle    FilePath
	keepGoing bool
	keepLog   bool
	dryRun    bool
	list      bool

	libraries []library.Library
}

func newBuildLibsFlags(cfg IO) *buildLibsFlags {
	flags := &buildLibsFlags{
		stdout: cfg.Stdout,
		shell:  build.DefaultShell,
	}

	names := make([]string, 0, len(library.All()))
	for _, lib := range library.All() {
		names = append(names, lib.String())
	}

	flags.initFlagset(
		buildLibsName,
		fmt.Sprintf(buildLibsUsageMessage, strings.Join(names, ", ")),
		cfg.Stderr,
	)

	flagSet := flags.flagSet

	flagSet.Var(
		&flags.workspace,
		"workspace",
		"workspace directory the libraries are built in (default current directory)",
	)

	flagSet.StringVar(
		&flags.shell,
		"shell",
		flags.shell,
		"shell the build scripts are run with",
	)

	flagSet.Var(
		&flags.recipes,
		"recipes",
		"YAML file with recipes replacing the built-in ones",
	)

	flagSet.Var(
		&flags.bundle,
		"bundle",
		"write all built bitcode files into a cpio archive at the given path",
	)

	flagSet.BoolVar(
		&flags.keepGoing,
		"keep-going",
		flags.keepGoing,
		"continue with the next step and library if a build step fails",
	)

	flagSet.BoolVar(
		&flags.keepLog,
		"keep-log",
		flags.keepLog,
		"write the output of each library build into build_<library>.log",
	)

	flagSet.BoolVar(
		&flags.dryRun,
		"dry-run",
		flags.dryRun,
		"print the build scripts instead of running them",
	)

	flagSet.BoolVar(
		&flags.list,
		"list",
		flags.list,
		"list supported libraries and exit",
	)

	flags.addCommonFlags()

	return flags
}

func (f *buildLibsFlags) ParseArgs(args []string) error {
	err := f.parse(args)
	if err != nil {
		return err
	}

	if f.workspace == "" {
		err := f.workspace.Set(".")
		if err != nil {
			return f.fail("workspace", err)
		}
	}

	if f.list {
		return nil
	}

	names := f.flagSet.Args()

	if len(names) == 0 {
		fmt.Fprintln(f.stdout, "Please specify libraries to build")
		f.flagSet.Usage()

		return &ParseArgsError{msg: "no libraries given", err: ErrNothingToDo}
	}

	libs, err := library.ParseAll(names)
	if err != nil {
		// Nothing is built if any library is not supported.
		fmt.Fprintln(f.stdout, err.Error())

		return &ParseArgsError{msg: "unsupported library", err: ErrNothingToDo}
	}

	f.libraries = libs

	return nil
}

func (f *buildLibsFlags) loadRecipes() (map[library.Library]library.Recipe, error) {
	recipes := library.Recipes()

	if f.recipes == "" {
		return recipes, nil
	}

	path := f.recipes.String()

	err := sys.ValidateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("recipes file: %w", err)
	}

	overrides, err := library.LoadRecipes(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load recipes %s: %w", path, err)
	}

	slog.Debug("Loaded recipe overrides",
		slog.String("path", path),
		slog.Int("count", len(overrides)))

	return library.Merge(recipes, overrides), nil
}

func runBuildLibs(ctx context.Context, flags *buildLibsFlags, cfg IO) error {
	if flags.list {
		for _, lib := range library.All() {
			fmt.Fprintln(cfg.Stdout, lib)
		}

		return nil
	}

	recipes, err := flags.loadRecipes()
	if err != nil {
		return err
	}

	builder := &build.Builder{
		Workspace: flags.workspace.String(),
		Shell:     flags.shell,
		Recipes:   recipes,
		KeepGoing: flags.keepGoing,
		KeepLog:   flags.keepLog,
		Stdout:    cfg.Stdout,
		Stderr:    cfg.Stderr,
	}

	if flags.dryRun {
		return printScripts(builder, flags.libraries, cfg.Stdout)
	}

	results, buildErr := builder.Build(ctx, flags.libraries)

	if flags.bundle != "" {
		err := writeBundle(flags.bundle.String(), results)
		if err != nil {
			return errors.Join(buildErr, err)
		}
	}

	return buildErr
}

func printScripts(builder *build.Builder, libs []library.Library, output io.Writer) error {
	err := builder.Validate(libs)
	if err != nil {
		return err
	}

	for _, lib := range libs {
		script, err := builder.Script(lib)
		if err != nil {
			return err
		}

		fmt.Fprintln(output, script)
	}

	return nil
}

// writeBundle writes the artifacts of all successful builds into a cpio
// archive at the given path. Nothing is written if no build succeeded.
func writeBundle(path string, results []build.Result) error {
	var artifacts []string

	for _, result := range results {
		if result.Err == nil {
			artifacts = append(artifacts, result.Artifact)
		}
	}

	if len(artifacts) == 0 {
		slog.Warn("No artifacts to bundle", slog.String("path", path))
		return nil
	}

	err := bundle.WriteFile(path, artifacts...)
	if err != nil {
		return fmt.Errorf("bundle: %w", err)
	}

	slog.Info("Artifacts bundled",
		slog.String("path", path),
		slog.Int("count", len(artifacts)))

	return nil
}

// RunBuildLibs is the main entry point for the build-libs CLI command.
func RunBuildLibs(ctx context.Context, args []string, cfg IO) int {
	flags := newBuildLibsFlags(cfg)

	err := parseArgs(flags, args, buildLibsEnvVar, buildLibsLocalConfigFile)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, buildLibsName, flags.debug)

	slog.Debug("Libraries requested",
		slog.Any("libraries", flags.libraries),
		slog.String("workspace", flags.workspace.String()))

	err = runBuildLibs(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
