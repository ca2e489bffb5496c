// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package library_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aibor/libspec/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipes(t *testing.T) {
	recipes := library.Recipes()

	for _, lib := range library.All() {
		t.Run(lib.String(), func(t *testing.T) {
			recipe, exists := recipes[lib]
			require.True(t, exists, "recipe must exist")
			require.NoError(t, recipe.Validate())

			assert.Equal(t, lib, recipe.Library)
			assert.Equal(t, lib.String(), recipe.Dir)
			assert.True(t, strings.HasSuffix(recipe.ArtifactName(), ".bc"))
			assert.True(t, strings.HasPrefix(recipe.Artifact, recipe.Dir+"/"))

			last := recipe.Steps[len(recipe.Steps)-1]
			assert.Equal(t, "get-bc", last.Command())
		})
	}

	t.Run("fresh copy", func(t *testing.T) {
		recipes[library.LibZ] = library.Recipe{}
		assert.NotEmpty(t, library.Recipes()[library.LibZ].Steps)
	})
}

func TestRecipeValidate(t *testing.T) {
	valid := func() library.Recipe {
		return library.Recipe{
			Dir:      "libz",
			Steps:    []library.Step{{Dir: "libz", Run: []string{"true"}}},
			Artifact: "libz/libz.bc",
		}
	}

	tests := []struct {
		name     string
		mutate   func(*library.Recipe)
		expected error
	}{
		{
			name:   "valid",
			mutate: func(*library.Recipe) {},
		},
		{
			name:     "no steps",
			mutate:   func(r *library.Recipe) { r.Steps = nil },
			expected: library.ErrNoSteps,
		},
		{
			name:     "empty command",
			mutate:   func(r *library.Recipe) { r.Steps[0].Run = nil },
			expected: library.ErrEmptyCommand,
		},
		{
			name: "invalid env name",
			mutate: func(r *library.Recipe) {
				r.Steps[0].Env = map[string]string{"CC FLAGS": "-O2"}
			},
			expected: library.ErrInvalidEnvName,
		},
		{
			name:     "no artifact",
			mutate:   func(r *library.Recipe) { r.Artifact = "" },
			expected: library.ErrNoArtifact,
		},
		{
			name:     "step dir escapes",
			mutate:   func(r *library.Recipe) { r.Steps[0].Dir = "../other" },
			expected: library.ErrPathEscapes,
		},
		{
			name:     "absolute artifact",
			mutate:   func(r *library.Recipe) { r.Artifact = "/tmp/libz.bc" },
			expected: library.ErrPathEscapes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := valid()
			tt.mutate(&recipe)

			err := recipe.Validate()
			if tt.expected == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestStep(t *testing.T) {
	step := library.Step{
		Run: []string{"make", "-j2"},
		Env: map[string]string{"CC": "gclang", "AR": "llvm-ar"},
	}

	assert.Equal(t, "make", step.Command())
	assert.Equal(t, []string{"-j2"}, step.Args())
	assert.Equal(t, []string{"AR", "CC"}, step.EnvKeys())

	assert.Empty(t, library.Step{}.Command())
	assert.Empty(t, library.Step{Run: []string{"make"}}.Args())
}

func TestLoadRecipes(t *testing.T) {
	fsys := fstest.MapFS{
		"valid.yaml": {Data: []byte(`
LIBZ:
  artifact: libz/zlib-1.3.1/libz.so.1.3.1.bc
  steps:
    - dir: libz
      run: [wget, https://zlib.net/zlib-1.3.1.tar.gz]
    - dir: libz/zlib-1.3.1
      env:
        CC: gclang
      run: [./configure]
`)},
		"unsupported.yaml": {Data: []byte(`
libssl:
  artifact: libssl.bc
  steps:
    - run: [make]
`)},
		"unknown-field.yaml": {Data: []byte(`
libz:
  artifact: libz.bc
  compiler: clang
  steps:
    - run: [make]
`)},
		"invalid-recipe.yaml": {Data: []byte(`
libz:
  artifact: libz.bc
`)},
		"empty.yaml": {Data: []byte("")},
	}

	t.Run("valid", func(t *testing.T) {
		recipes, err := library.LoadRecipes(fsys, "valid.yaml")
		require.NoError(t, err)
		require.Len(t, recipes, 1)

		recipe := recipes[library.LibZ]
		assert.Equal(t, library.LibZ, recipe.Library)
		assert.Equal(t, "libz", recipe.Dir, "defaults to library name")
		assert.Equal(t, "libz.so.1.3.1.bc", recipe.ArtifactName())
		require.Len(t, recipe.Steps, 2)
		assert.Equal(t, map[string]string{"CC": "gclang"}, recipe.Steps[1].Env)
	})

	t.Run("empty", func(t *testing.T) {
		recipes, err := library.LoadRecipes(fsys, "empty.yaml")
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("unsupported library", func(t *testing.T) {
		_, err := library.LoadRecipes(fsys, "unsupported.yaml")
		require.ErrorIs(t, err, library.ErrUnsupported)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := library.LoadRecipes(fsys, "unknown-field.yaml")
		require.Error(t, err)
	})

	t.Run("invalid recipe", func(t *testing.T) {
		_, err := library.LoadRecipes(fsys, "invalid-recipe.yaml")
		require.ErrorIs(t, err, library.ErrNoSteps)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := library.LoadRecipes(fsys, "nonexistent.yaml")
		require.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	base := library.Recipes()
	override := library.Recipe{
		Library:  library.LibZ,
		Steps:    []library.Step{{Run: []string{"true"}}},
		Artifact: "libz.bc",
	}

	merged := library.Merge(base, map[library.Library]library.Recipe{
		library.LibZ: override,
	})

	assert.Equal(t, override, merged[library.LibZ])
	assert.Equal(t, base[library.LibC], merged[library.LibC])
	assert.NotEqual(t, override, base[library.LibZ], "base must not change")
}
