// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/libspec/internal/library"
	"github.com/aibor/libspec/internal/sys"
)

// DefaultShell runs the build scripts if no other shell is set.
const DefaultShell = "bash"

// Builder builds library bitcode by running the library's recipe as
// transient shell script in the workspace.
type Builder struct {
	// Absolute path of the workspace root. All recipe paths are relative
	// to it and artifacts are copied into it.
	Workspace string
	// Shell used for running the build scripts. [DefaultShell] if empty.
	Shell string
	// Recipes to use. The built-in [library.Recipes] if nil.
	Recipes map[library.Library]library.Recipe
	// Continue with the next step if a step fails, and with the next library
	// if a library fails.
	KeepGoing bool
	// Write the output of each build script to a "build_<lib>.log" file in
	// the workspace root in addition to Stdout and Stderr.
	KeepLog bool
	// Output of the build scripts. [io.Discard] if nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of building a single library.
type Result struct {
	Library library.Library
	// Absolute path of the artifact copied to the workspace root. Empty if
	// the build failed.
	Artifact string
	Err      error
}

func (b *Builder) shell() string {
	if b.Shell == "" {
		return DefaultShell
	}

	return b.Shell
}

func (b *Builder) stdout() io.Writer {
	if b.Stdout == nil {
		return io.Discard
	}

	return b.Stdout
}

func (b *Builder) stderr() io.Writer {
	if b.Stderr == nil {
		return io.Discard
	}

	return b.Stderr
}

// Recipe returns the recipe for the given library.
func (b *Builder) Recipe(lib library.Library) (library.Recipe, error) {
	recipes := b.Recipes
	if recipes == nil {
		recipes = library.Recipes()
	}

	recipe, exists := recipes[lib]
	if !exists {
		return library.Recipe{}, fmt.Errorf("%s: %w", lib, ErrNoRecipe)
	}

	return recipe, nil
}

// Script returns the build script for the given library as it would be run by
// [Builder.Build].
func (b *Builder) Script(lib library.Library) (string, error) {
	recipe, err := b.Recipe(lib)
	if err != nil {
		return "", err
	}

	return Script(recipe, b.Workspace, !b.KeepGoing), nil
}

// Validate checks that the workspace is set and all given libraries have a
// valid recipe. It does not touch the file system.
func (b *Builder) Validate(libs []library.Library) error {
	if !filepath.IsAbs(b.Workspace) {
		return fmt.Errorf("%q: %w", b.Workspace, ErrWorkspaceNotAbsolute)
	}

	for _, lib := range libs {
		recipe, err := b.Recipe(lib)
		if err != nil {
			return err
		}

		err = recipe.Validate()
		if err != nil {
			return fmt.Errorf("recipe %s: %w", lib, err)
		}
	}

	return nil
}

// Build builds the given libraries one after the other in the given order.
//
// Everything is validated before anything is created. By default, Build stops
// at the first library that fails and returns its [Error]. With
// [Builder.KeepGoing], failures are logged and the remaining libraries are
// built. The returned error then joins all failures.
//
// The returned results cover all libraries attempted.
func (b *Builder) Build(ctx context.Context, libs []library.Library) ([]Result, error) {
	err := b.Validate(libs)
	if err != nil {
		return nil, err
	}

	err = b.createWorkspace()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(libs))

	var errs []error

	for _, lib := range libs {
		fmt.Fprintf(b.stdout(), "Building %s...\n", lib)

		artifact, err := b.build(ctx, lib)
		results = append(results, Result{
			Library:  lib,
			Artifact: artifact,
			Err:      err,
		})

		if err == nil {
			slog.Info("Library built",
				slog.String("library", lib.String()),
				slog.String("artifact", artifact))

			continue
		}

		if !b.KeepGoing || ctx.Err() != nil {
			return results, err
		}

		slog.Warn("Library failed, continue with next one",
			slog.String("library", lib.String()),
			slog.Any("error", err))

		errs = append(errs, err)
	}

	return results, errors.Join(errs...)
}

// createWorkspace creates the workspace directory unless it exists already.
func (b *Builder) createWorkspace() error {
	err := sys.ValidateDirPath(b.Workspace)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("workspace: %w", err)
	}

	err = os.MkdirAll(b.Workspace, 0o755) //nolint:mnd
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	slog.Debug("Workspace created", slog.String("path", b.Workspace))

	return nil
}

func (b *Builder) build(ctx context.Context, lib library.Library) (string, error) {
	recipe, err := b.Recipe(lib)
	if err != nil {
		return "", &Error{Library: lib, Err: err}
	}

	err = os.MkdirAll(filepath.Join(b.Workspace, recipe.Dir), 0o755) //nolint:mnd
	if err != nil {
		return "", &Error{Library: lib, Err: fmt.Errorf("create dir: %w", err)}
	}

	err = b.runScript(ctx, lib, Script(recipe, b.Workspace, !b.KeepGoing))
	if err != nil {
		return "", &Error{Library: lib, Err: err}
	}

	artifact := filepath.Join(b.Workspace, recipe.ArtifactName())

	err = sys.CopyFile(artifact, filepath.Join(b.Workspace, recipe.Artifact))
	if err != nil {
		return "", &Error{Library: lib, Err: fmt.Errorf("copy artifact: %w", err)}
	}

	return artifact, nil
}

// runScript writes the script to a transient file in the workspace root and
// runs it. The file is removed afterwards in any case.
func (b *Builder) runScript(ctx context.Context, lib library.Library, script string) error {
	path, err := WriteScript(b.Workspace, lib, script)
	if err != nil {
		return err
	}
	defer RemoveScript(path)

	slog.Debug("Build script created", slog.String("path", path))

	var logFile *os.File

	if b.KeepLog {
		logPath := filepath.Join(b.Workspace, "build_"+lib.String()+".log")

		logFile, err = os.Create(logPath)
		if err != nil {
			return fmt.Errorf("create log: %w", err)
		}
		defer logFile.Close()

		slog.Debug("Build log created", slog.String("path", logPath))
	}

	runner := runner{
		Shell:  b.shell(),
		Dir:    b.Workspace,
		Stdout: b.stdout(),
		Stderr: b.stderr(),
	}

	if logFile != nil {
		runner.Log = logFile
	}

	return runner.Run(ctx, path)
}

// WriteScript writes the given script into a new "build_<lib>_*.sh" file in
// dir and returns its path.
//
// The caller is responsible for removing the file, see [RemoveScript].
func WriteScript(dir string, lib library.Library, script string) (string, error) {
	file, err := os.CreateTemp(dir, "build_"+lib.String()+"_*.sh")
	if err != nil {
		return "", fmt.Errorf("create script: %w", err)
	}

	_, err = io.WriteString(file, script)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())

		return "", fmt.Errorf("write script: %w", err)
	}

	err = file.Close()
	if err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("close script: %w", err)
	}

	return file.Name(), nil
}

// RemoveScript removes the script file at the given path. Failures are logged.
func RemoveScript(path string) {
	slog.Debug("Removing build script", slog.String("path", path))

	err := os.Remove(path)
	if err != nil {
		slog.Error(
			"Failed to remove build script",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
}
