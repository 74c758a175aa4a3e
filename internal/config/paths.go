package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// projectMarkers are directories that identify a project root.
var projectMarkers = []string{".git", ProjectConfigDir}

// DefaultTracePath is where `hush trace` looks when no trace path is set.
const DefaultTracePath = ".hush/trace.jsonl"

// ResolvePaths makes every relative path absolute against basePath, or the
// working directory when basePath is empty. An empty trace path stays empty.
func ResolvePaths(paths PathsConfig, basePath string) (PathsConfig, error) {
	if basePath == "" {
		var err error
		basePath, err = os.Getwd()
		if err != nil {
			return paths, fmt.Errorf("get working directory: %w", err)
		}
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(basePath, p)
	}

	return PathsConfig{
		Log:   resolve(paths.Log),
		Trace: resolve(paths.Trace),
	}, nil
}

// FindProjectRoot walks up from startDir looking for a .git or .hush
// directory and returns the directory containing it, or startDir if none is
// found.
func FindProjectRoot(startDir string) string {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "."
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return startDir
	}

	dir := absDir
	for {
		for _, marker := range projectMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return absDir
		}
		dir = parent
	}
}
