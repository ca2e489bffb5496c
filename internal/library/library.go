// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package library

import (
	"strings"
)

// Library is one of the supported system libraries that can be built into
// bitcode.
type Library int

// Supported libraries. The zero value is not a valid library.
const (
	LibC Library = iota + 1
	LibCrypto
	LibCrypt
	LibPCRE
	LibZ
)

var names = map[Library]string{
	LibC:      "libc",
	LibCrypto: "libcrypto",
	LibCrypt:  "libcrypt",
	LibPCRE:   "libpcre",
	LibZ:      "libz",
}

// All returns all supported libraries in their canonical order.
func All() []Library {
	return []Library{LibC, LibCrypto, LibCrypt, LibPCRE, LibZ}
}

// String implements [fmt.Stringer].
func (l Library) String() string {
	name, exists := names[l]
	if !exists {
		return "unknown"
	}

	return name
}

// MarshalText implements [encoding.TextMarshaler].
func (l Library) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, ErrUnsupported
	}

	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Library) UnmarshalText(text []byte) error {
	lib, err := Parse(string(text))
	if err != nil {
		return err
	}

	*l = lib

	return nil
}

func (l Library) valid() bool {
	_, exists := names[l]
	return exists
}

// Parse returns the [Library] for the given name. Names are matched
// case-insensitively.
//
// It returns an [UnsupportedError] if the name is not a supported library.
func Parse(name string) (Library, error) {
	lower := strings.ToLower(name)

	for lib, libName := range names {
		if libName == lower {
			return lib, nil
		}
	}

	return 0, &UnsupportedError{Name: name}
}

// ParseAll parses all given names.
//
// Validation is all or nothing: the first unsupported name is returned as
// [UnsupportedError] and no libraries are returned at all. Duplicates are kept
// in the order given.
func ParseAll(names []string) ([]Library, error) {
	if len(names) == 0 {
		return nil, ErrNoLibraries
	}

	libs := make([]Library, 0, len(names))

	for _, name := range names {
		lib, err := Parse(name)
		if err != nil {
			return nil, err
		}

		libs = append(libs, lib)
	}

	return libs, nil
}
