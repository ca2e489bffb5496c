// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"

	"gopkg.in/yaml.v3"
)

// LoadRecipes reads recipe overrides from the given YAML file.
//
// The file maps library names to recipes:
//
//	libz:
//	  dir: libz
//	  artifact: libz/zlib-1.3.1/libz.so.1.3.1.bc
//	  steps:
//	    - dir: libz
//	      run: [wget, https://zlib.net/zlib-1.3.1.tar.gz]
//	    - dir: libz/zlib-1.3.1
//	      env: {CC: gclang}
//	      run: [./configure]
//
// Keys must be supported library names. Unknown fields are rejected. Each
// recipe is validated with [Recipe.Validate].
func LoadRecipes(fsys fs.FS, name string) (map[Library]Recipe, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return DecodeRecipes(bytes.NewReader(content))
}

// DecodeRecipes decodes recipe overrides from YAML. See [LoadRecipes] for the
// format.
func DecodeRecipes(reader io.Reader) (map[Library]Recipe, error) {
	var raw map[Library]Recipe

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	recipes := make(map[Library]Recipe, len(raw))

	for lib, recipe := range raw {
		recipe.Library = lib
		if recipe.Dir == "" {
			recipe.Dir = lib.String()
		}

		err := recipe.Validate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lib, err)
		}

		recipes[lib] = recipe
	}

	return recipes, nil
}

// Merge returns a copy of base with all recipes of overrides replacing the
// ones of the same library.
func Merge(base, overrides map[Library]Recipe) map[Library]Recipe {
	merged := make(map[Library]Recipe, len(base)+len(overrides))
	maps.Copy(merged, base)
	maps.Copy(merged, overrides)

	return merged
}
