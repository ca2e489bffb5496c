// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

const (
	functionsKey = "functions"
	manifestKey  = "lib_spec"
	bitcodeExt   = ".bc"
	dumpSuffix   = "_symbols"
)

// FunctionSet is a set of function names.
type FunctionSet map[string]struct{}

// NewFunctionSet creates a [FunctionSet] with the given names.
func NewFunctionSet(names ...string) FunctionSet {
	set := make(FunctionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

// Contains returns true if the set contains the given name.
func (s FunctionSet) Contains(name string) bool {
	_, exists := s[name]
	return exists
}

// Names returns all names of the set in lexical order.
func (s FunctionSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// UnmarshalJSON implements [json.Unmarshaler]. It accepts a JSON array of
// names as well as a JSON object whose keys are the names.
func (s *FunctionSet) UnmarshalJSON(data []byte) error {
	var names []string

	err := json.Unmarshal(data, &names)
	if err == nil {
		*s = NewFunctionSet(names...)
		return nil
	}

	var object map[string]json.RawMessage

	err = json.Unmarshal(data, &object)
	if err != nil {
		return fmt.Errorf("%s: %w", functionsKey, ErrInvalidFormat)
	}

	*s = NewFunctionSet(slices.Collect(maps.Keys(object))...)

	return nil
}

// Manifest lists the bitcode files of a specialization run.
type Manifest struct {
	Bitcode []string
}

// LoadFunctionSet reads the function set from the "functions" key of the JSON
// file at the given path.
func LoadFunctionSet(path string) (FunctionSet, error) {
	var set FunctionSet

	err := loadKey(path, functionsKey, &set)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// LoadManifest reads the bitcode file list from the "lib_spec" key of the
// JSON file at the given path.
func LoadManifest(path string) (Manifest, error) {
	var bitcode []string

	err := loadKey(path, manifestKey, &bitcode)
	if err != nil {
		return Manifest{}, err
	}

	return Manifest{Bitcode: bitcode}, nil
}

// loadKey decodes the value of the given key of the JSON object in the file at
// path into v. All other keys are ignored.
func loadKey(path, key string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	var object map[string]json.RawMessage

	err = json.Unmarshal(data, &object)
	if err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	value, exists := object[key]
	if !exists || string(value) == "null" {
		return &FileError{Path: path, Err: fmt.Errorf("%s: %w", key, ErrMissingKey)}
	}

	err = json.Unmarshal(value, v)
	if err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("decode %s: %w", key, err)}
	}

	return nil
}

// DumpPath returns the path of the symbol dump file for the given bitcode
// file. The ".bc" suffix is replaced by "_symbols".
func DumpPath(bitcode string) string {
	return strings.TrimSuffix(bitcode, bitcodeExt) + dumpSuffix
}
