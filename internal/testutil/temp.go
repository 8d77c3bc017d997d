package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

// ManifestTree lays out a synthesis tree the way hdlmake projects do:
// <root>/syn/Manifest.py next to the sources it references in <root>.
// It returns the root and the manifest path.
func ManifestTree(t *testing.T, manifest string, sources ...string) (root, manifestPath string) {
	t.Helper()

	root = t.TempDir()
	for _, src := range sources {
		WriteFile(t, root, src, "-- "+src+"\n")
	}
	manifestPath = WriteFile(t, root, filepath.Join("syn", "Manifest.py"), manifest)

	return root, manifestPath
}
