// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package library

import (
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
)

// Compiler is the C compiler front-end used by the built-in recipes. It is the
// gllvm wrapper that records bitcode alongside the regular object files so it
// can be extracted with "get-bc" afterwards.
const Compiler = "gclang"

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Step is a single command of a [Recipe].
type Step struct {
	// Directory the command runs in, relative to the workspace root. Empty
	// means the workspace root itself.
	Dir string `yaml:"dir"`
	// Additional environment variables for the command.
	Env map[string]string `yaml:"env,omitempty"`
	// Executable followed by its arguments.
	Run []string `yaml:"run"`
}

// Command returns the name of the executable.
func (s Step) Command() string {
	if len(s.Run) == 0 {
		return ""
	}

	return s.Run[0]
}

// Args returns the arguments of the executable.
func (s Step) Args() []string {
	if len(s.Run) < 2 {
		return nil
	}

	return s.Run[1:]
}

// EnvKeys returns the names of the additional environment variables in
// lexical order.
func (s Step) EnvKeys() []string {
	return slices.Sorted(maps.Keys(s.Env))
}

func (s Step) validate() error {
	if s.Command() == "" {
		return ErrEmptyCommand
	}

	for key := range s.Env {
		if !envNamePattern.MatchString(key) {
			return fmt.Errorf("env %q: %w", key, ErrInvalidEnvName)
		}
	}

	if s.Dir != "" && !filepath.IsLocal(s.Dir) {
		return fmt.Errorf("dir %s: %w", s.Dir, ErrPathEscapes)
	}

	return nil
}

// Recipe describes how to build the bitcode of a [Library].
type Recipe struct {
	Library Library `yaml:"-"`
	// Directory created below the workspace root before any step runs.
	Dir string `yaml:"dir"`
	// Steps run in order.
	Steps []Step `yaml:"steps"`
	// Path of the produced bitcode file, relative to the workspace root.
	Artifact string `yaml:"artifact"`
}

// Validate checks the recipe for missing or malformed fields.
func (r Recipe) Validate() error {
	if len(r.Steps) == 0 {
		return ErrNoSteps
	}

	for idx, step := range r.Steps {
		err := step.validate()
		if err != nil {
			return fmt.Errorf("step %d: %w", idx+1, err)
		}
	}

	if r.Artifact == "" {
		return ErrNoArtifact
	}

	for _, path := range []string{r.Dir, r.Artifact} {
		if path != "" && !filepath.IsLocal(path) {
			return fmt.Errorf("%s: %w", path, ErrPathEscapes)
		}
	}

	return nil
}

// ArtifactName returns the file name the artifact is copied to in the
// workspace root.
func (r Recipe) ArtifactName() string {
	return filepath.Base(r.Artifact)
}

func run(dir string, args ...string) Step {
	return Step{Dir: dir, Run: args}
}

func configure(dir string, env map[string]string, args ...string) Step {
	merged := map[string]string{"CC": Compiler}
	maps.Copy(merged, env)

	return Step{Dir: dir, Env: merged, Run: args}
}

// Recipes returns the built-in recipes of all supported libraries.
//
// A new map is returned on each call, so callers may modify it.
func Recipes() map[Library]Recipe {
	return map[Library]Recipe{
		LibC: {
			Library: LibC,
			Dir:     "libc",
			Steps: []Step{
				run("libc", "git", "clone", "https://github.com/SRI-CSL/musllvm.git"),
				configure("libc/musllvm",
					map[string]string{"WLLVM_CONFIGURE_ONLY": "1"},
					"./configure", "--target=LLVM", "--build=LLVM",
					"--prefix=libc_build"),
				run("libc/musllvm", "make"),
				run("libc/musllvm/lib", "get-bc", "libc.so"),
			},
			Artifact: "libc/musllvm/lib/libc.so.bc",
		},
		LibCrypto: {
			Library: LibCrypto,
			Dir:     "libcrypto",
			Steps: []Step{
				run("libcrypto", "wget",
					"https://www.openssl.org/source/old/1.1.1/openssl-1.1.1f.tar.gz"),
				run("libcrypto", "tar", "-xvzf", "openssl-1.1.1f.tar.gz"),
				configure("libcrypto/openssl-1.1.1f", nil, "./config"),
				run("libcrypto/openssl-1.1.1f", "make", "-j2"),
				run("libcrypto/openssl-1.1.1f", "get-bc", "libcrypto.so"),
			},
			Artifact: "libcrypto/openssl-1.1.1f/libcrypto.so.1.1.bc",
		},
		LibCrypt: {
			Library: LibCrypt,
			Dir:     "libcrypt",
			Steps: []Step{
				run("libcrypt", "wget",
					"https://mirrors.gandi.net/ubuntu/pool/main/libx/libxcrypt/"+
						"libxcrypt_4.4.10.orig.tar.xz"),
				run("libcrypt", "tar", "-xf", "libxcrypt_4.4.10.orig.tar.xz"),
				run("libcrypt/libxcrypt-4.4.10", "./bootstrap"),
				configure("libcrypt/libxcrypt-4.4.10", nil, "./configure"),
				run("libcrypt/libxcrypt-4.4.10", "make", "-j2"),
				run("libcrypt/libxcrypt-4.4.10/.libs", "get-bc", "libcrypt.so"),
			},
			Artifact: "libcrypt/libxcrypt-4.4.10/.libs/libcrypt.so.1.1.0.bc",
		},
		LibPCRE: {
			Library: LibPCRE,
			Dir:     "libpcre",
			Steps: []Step{
				run("libpcre", "wget",
					"http://security.ubuntu.com/ubuntu/pool/main/p/pcre3/"+
						"pcre3_8.39.orig.tar.bz2"),
				run("libpcre", "tar", "-xf", "pcre3_8.39.orig.tar.bz2"),
				configure("libpcre/pcre-8.39", nil, "./configure"),
				run("libpcre/pcre-8.39", "make", "-j2"),
				run("libpcre/pcre-8.39/.libs", "get-bc", "libpcre.so"),
			},
			Artifact: "libpcre/pcre-8.39/.libs/libpcre.so.1.2.7.bc",
		},
		LibZ: {
			Library: LibZ,
			Dir:     "libz",
			Steps: []Step{
				run("libz", "wget", "https://zlib.net/zlib-1.2.11.tar.gz"),
				run("libz", "tar", "-xf", "zlib-1.2.11.tar.gz"),
				configure("libz/zlib-1.2.11", nil, "./configure"),
				run("libz/zlib-1.2.11", "make"),
				run("libz/zlib-1.2.11", "get-bc", "libz.so"),
			},
			Artifact: "libz/zlib-1.2.11/libz.so.1.2.11.bc",
		},
	}
}
