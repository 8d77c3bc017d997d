package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "home directory with slash",
			input:    "~/test",
			expected: filepath.Join(os.Getenv("HOME"), "test"),
		},
		{
			name:     "home directory only",
			input:    "~",
			expected: os.Getenv("HOME"),
		},
		{
			name:     "regular path",
			input:    "/tmp/test",
			expected: "/tmp/test",
		},
		{
			name:     "relative path",
			input:    "./test",
			expected: "./test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandPath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveManifestPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "syn.yaml")
	require.NoError(t, os.WriteFile(file, []byte("target: xilinx\n"), 0644))

	tests := []struct {
		name     string
		arg      string
		expected string
	}{
		{
			name:     "empty argument uses default name",
			arg:      "",
			expected: "Manifest.py",
		},
		{
			name:     "directory uses default name inside it",
			arg:      dir,
			expected: filepath.Join(dir, "Manifest.py"),
		},
		{
			name:     "file is returned unchanged",
			arg:      file,
			expected: file,
		},
		{
			name:     "missing path is returned unchanged",
			arg:      filepath.Join(dir, "nope.py"),
			expected: filepath.Join(dir, "nope.py"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveManifestPath(tt.arg, "Manifest.py"))
		})
	}
}

func TestMissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, "top.vhd")
	require.NoError(t, os.WriteFile(present, []byte("-- top"), 0644))

	absentA := filepath.Join(dir, "a.ucf")
	absentB := filepath.Join(dir, "sub", "b.vhd")

	missing, err := MissingFiles([]string{absentB, present, absentA})
	require.NoError(t, err)
	assert.Equal(t, []string{absentB, absentA}, missing)

	missing, err = MissingFiles([]string{present})
	require.NoError(t, err)
	assert.Empty(t, missing)
}
