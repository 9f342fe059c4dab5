package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default file names, relative to the base directory.
const (
	DefaultManifestFile    = "ranger.json"
	DefaultCredentialsFile = "ranger-auth.json"
	DefaultLockFile        = "ranger-lock.json"
)

// Environment variables that override the credentials file.
const (
	EnvUsername = "REPO_RANGER_USERNAME"
	EnvToken    = "REPO_RANGER_TOKEN"
)

// Paths locates the files used by a run.
type Paths struct {
	BaseDir     string
	Manifest    string
	Credentials string
	Lockfile    string
}

// DefaultPaths returns the default file locations inside baseDir.
func DefaultPaths(baseDir string) Paths {
	return Paths{
		BaseDir:     baseDir,
		Manifest:    DefaultManifestFile,
		Credentials: DefaultCredentialsFile,
		Lockfile:    DefaultLockFile,
	}
}

// Resolve makes BaseDir absolute and joins relative file paths onto it.
// Empty file paths fall back to the defaults.
func (p Paths) Resolve() (Paths, error) {
	base := p.BaseDir
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Paths{}, err
	}

	defaults := DefaultPaths(abs)
	join := func(path, fallback string) string {
		if path == "" {
			path = fallback
		}
		if filepath.IsAbs(path) {
			return filepath.Clean(path)
		}
		return filepath.Join(abs, path)
	}

	return Paths{
		BaseDir:     abs,
		Manifest:    join(p.Manifest, defaults.Manifest),
		Credentials: join(p.Credentials, defaults.Credentials),
		Lockfile:    join(p.Lockfile, defaults.Lockfile),
	}, nil
}

// ApplyEnv overrides credential fields with non-empty environment variables.
// It reports whether anything was overridden.
func ApplyEnv(c *Credentials) bool {
	changed := false
	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		c.Username = v
		changed = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Token = v
		changed = true
	}
	return changed
}
