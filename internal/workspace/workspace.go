// Package workspace manages the destination directories repositories are
// fetched into. All paths are confined to the base directory.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// MetadataDir is the version-control directory removed after a fetch.
const MetadataDir = ".git"

// Workspace is a base directory holding fetched repositories.
type Workspace struct {
	fs   afero.Fs
	root string
}

// New returns a Workspace rooted at root on fs.
func New(fs afero.Fs, root string) *Workspace {
	return &Workspace{fs: fs, root: root}
}

// NewOS returns a Workspace on the real filesystem.
func NewOS(root string) *Workspace {
	return New(afero.NewOsFs(), root)
}

// Root returns the base directory.
func (w *Workspace) Root() string {
	return w.root
}

// Fs returns the underlying filesystem.
func (w *Workspace) Fs() afero.Fs {
	return w.fs
}

// Path returns the absolute path for a destination after checking it stays
// inside the base directory.
func (w *Workspace) Path(dest string) (string, error) {
	return Contain(w.root, dest)
}

// Exists reports whether the destination directory exists.
func (w *Workspace) Exists(dest string) (bool, error) {
	path, err := w.Path(dest)
	if err != nil {
		return false, err
	}
	return afero.DirExists(w.fs, path)
}

// Reset removes everything at the destination and recreates it empty.
// It returns the absolute path of the directory.
func (w *Workspace) Reset(dest string) (string, error) {
	path, err := w.Path(dest)
	if err != nil {
		return "", err
	}
	if err := w.fs.RemoveAll(path); err != nil {
		return "", fmt.Errorf("clearing %s: %w", path, err)
	}
	if err := w.fs.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	return path, nil
}

// Scrub removes the version-control metadata left in a fetched directory.
// It reports whether anything was removed.
func (w *Workspace) Scrub(dest string) (bool, error) {
	path, err := w.Path(dest)
	if err != nil {
		return false, err
	}
	meta := filepath.Join(path, MetadataDir)
	if _, err := w.fs.Stat(meta); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", meta, err)
	}
	if err := w.fs.RemoveAll(meta); err != nil {
		return false, fmt.Errorf("removing %s: %w", meta, err)
	}
	return true, nil
}
