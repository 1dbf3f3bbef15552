// Package validation checks and normalizes the paths and targets the
// overview reads from configuration and from the item catalog.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxPathLength = 4096

// DataDir is the directory holding the database and the search index.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".overview")
}

func DefaultDBPath() string {
	return filepath.Join(DataDir(), "overview.db")
}

func DefaultIndexPath() string {
	return filepath.Join(DataDir(), "index.bleve")
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "overview", "config.toml")
}

// ExpandPath expands a leading ~/ and returns a clean absolute path.
func ExpandPath(path string) (string, error) {
	if err := checkCharacters(path); err != nil {
		return "", err
	}

	switch {
	case path == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = home
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	case strings.HasPrefix(path, "~"):
		return "", fmt.Errorf("unsupported home expansion in %q", path)
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}
	return filepath.Clean(path), nil
}

// ValidatePath rejects paths that climb out of their base with "..", in
// addition to the checks ExpandPath makes.
func ValidatePath(path string) (string, error) {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", fmt.Errorf("directory traversal not allowed: %q", path)
		}
	}
	return ExpandPath(path)
}

func checkCharacters(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(path) > maxPathLength {
		return fmt.Errorf("path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if r == 0 {
			return fmt.Errorf("path contains null bytes")
		}
		if r < 32 && r != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	return nil
}
