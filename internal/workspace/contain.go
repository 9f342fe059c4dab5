package workspace

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Contain resolves relPath against root and checks that the result stays
// inside root. Symlinks along the existing part of the path are followed.
// The returned path is the lexical join of root and relPath.
func Contain(root, relPath string) (string, error) {
	if strings.TrimSpace(relPath) == "" {
		return "", fmt.Errorf("empty destination path")
	}
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("destination '%s' must be relative to the base directory", relPath)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	candidate := filepath.Join(absRoot, relPath)
	if candidate == absRoot {
		return "", fmt.Errorf("destination '%s' resolves to the base directory itself", relPath)
	}
	if !within(absRoot, candidate) {
		return "", fmt.Errorf("destination '%s' resolves to '%s' which is outside the base directory '%s'", relPath, candidate, absRoot)
	}

	realRoot := resolveExisting(absRoot)
	resolved := resolveExisting(candidate)
	if resolved == realRoot || !within(realRoot, resolved) {
		return "", fmt.Errorf("destination '%s' resolves through a symlink to '%s' which is outside the base directory '%s'", relPath, resolved, realRoot)
	}

	return candidate, nil
}

func within(root, path string) bool {
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// resolveExisting resolves symlinks for the longest existing prefix of the
// path and appends the rest unchanged.
func resolveExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path
	}
	return filepath.Join(resolveExisting(dir), filepath.Base(path))
}
