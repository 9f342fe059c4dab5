package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Read reads and validates a lock file. A missing file is reported as an
// error wrapping fs.ErrNotExist.
func Read(path string) (Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lockfile %s: %w", path, err)
	}

	var lf Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lockfile %s: %w", path, err)
	}
	if lf == nil {
		lf = Lockfile{}
	}

	if errs := Validate(lf); len(errs) > 0 {
		return nil, &ValidationError{Path: path, Errors: errs}
	}

	return lf, nil
}

// Write writes a lockfile atomically using a temp file and rename.
func Write(path string, lf Lockfile) error {
	if lf == nil {
		lf = Lockfile{}
	}
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lockfile: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp lockfile: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp lockfile %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp lockfile %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp lockfile %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting lockfile permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp lockfile to %s: %w", path, err)
	}

	success = true
	return nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lockfile %s validation failed:\n  - %s", e.Path, strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Lockfile for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(lf Lockfile) []string {
	urls := make([]string, 0, len(lf))
	for url := range lf {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	var errs []string
	for _, url := range urls {
		e := lf[url]
		if strings.TrimSpace(url) == "" {
			errs = append(errs, "entry with empty repository url")
			continue
		}
		prefix := fmt.Sprintf("entry '%s'", url)
		if e.Destination == "" {
			errs = append(errs, fmt.Sprintf("%s: 'destination' is required", prefix))
		}
		if e.Version == "" {
			errs = append(errs, fmt.Sprintf("%s: 'version' is required", prefix))
		}
		if e.LockedHash == "" {
			errs = append(errs, fmt.Sprintf("%s: 'lockedHash' is required", prefix))
		}
	}
	return errs
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
