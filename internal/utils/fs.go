package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ResolveManifestPath picks the manifest file for a command argument. An empty
// argument means defaultName in the working directory; a directory means
// defaultName inside it. Anything else is returned expanded but unchecked.
func ResolveManifestPath(arg, defaultName string) string {
	if arg == "" {
		return defaultName
	}
	arg = ExpandPath(arg)
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return filepath.Join(arg, defaultName)
	}
	return arg
}

// MissingFiles returns the paths that do not exist, in input order
func MissingFiles(paths []string) ([]string, error) {
	var missing []string
	for _, p := range paths {
		_, err := os.Stat(p)
		switch {
		case err == nil:
		case os.IsNotExist(err):
			missing = append(missing, p)
		default:
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
	}
	return missing, nil
}
