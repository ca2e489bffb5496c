// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

// toolsModfile is the module tracking the tools used in CI.
const toolsModfile = ".github/workflows/go.mod"

var (
	env map[string]string

	commands = []string{"build-libs", "func-resp"}
)

func init() {
	env = make(map[string]string)

	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}

	if gobin != "" {
		p, err := filepath.Abs(gobin)
		if err == nil {
			gobin = p
		}
	}

	env["GOBIN"] = gobin
}

// Install build-libs and func-resp to gobin directory.
func Install() error {
	for _, name := range commands {
		path := filepath.Join(env["GOBIN"], name)

		mod, err := target.Dir(path, "cmd", "internal", "go.mod")
		if err != nil {
			return err
		}

		if !mod {
			continue
		}

		err = sh.RunWith(env, "go", "install", "./cmd/"+name)
		if err != nil {
			return err
		}
	}

	return nil
}

// Run all unit tests with race detector and coverage.
func Test(verbose bool) error {
	args := []string{
		"test",
		"-race",
		"-timeout", "2m",
		"-cover",
		"-coverprofile", "/tmp/cover.out",
	}

	if verbose {
		args = append(args, "-v")
	}

	args = append(args, "./...")

	return sh.RunWithV(env, "go", args...)
}

// Run all unit tests and write a JUnit report to the given path.
func TestReport(path string) error {
	jsonFile, err := os.CreateTemp("", "test-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(jsonFile.Name())
	defer jsonFile.Close()

	_, testErr := sh.Exec(env, jsonFile, os.Stderr, "go", "test", "-json", "-race", "./...")

	err = tool("go-junit-report",
		"-parser", "gojson",
		"-in", jsonFile.Name(),
		"-out", path,
	)
	if err != nil {
		return err
	}

	return testErr
}

// Check for known vulnerabilities in dependencies.
func Vuln() error {
	return tool("govulncheck", "./...")
}

func tool(name string, args ...string) error {
	return sh.RunWithV(env, "go", append([]string{"tool", "-modfile=" + toolsModfile, name}, args...)...)
}

// Print the build scripts of all supported libraries using the installed
// build-libs.
func DryRun() error {
	mg.Deps(Install)

	return sh.RunWithV(env,
		filepath.Join(env["GOBIN"], "build-libs"),
		"-dry-run",
		"libc", "libcrypto", "libcrypt", "libpcre", "libz",
	)
}

// Remove volatile files.
func Clean() error {
	return sh.Rm(env["GOBIN"])
}
