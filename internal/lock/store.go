package lock

import (
	"errors"
	"maps"

	"github.com/bianoble/repo-ranger/internal/version"
)

// ErrCommitted is returned by Commit when the store was already committed.
var ErrCommitted = errors.New("lock store already committed")

// Store holds the lock entries loaded at the start of a run and the entries
// staged since. Staged entries reach disk only through Commit.
type Store struct {
	path      string
	baseline  Lockfile
	pending   Lockfile
	committed bool
}

// Open loads the lock file at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	lf, err := Read(path)
	if isNotExist(err) {
		lf = Lockfile{}
	} else if err != nil {
		return nil, err
	}
	return &Store{path: path, baseline: lf, pending: Lockfile{}}, nil
}

// Path returns the lock file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry for a repository, preferring one staged in this run.
func (s *Store) Get(url string) (Entry, bool) {
	if e, ok := s.pending[url]; ok {
		return e, true
	}
	e, ok := s.baseline[url]
	return e, ok
}

// Stage records the ref fetched for a repository. Nothing is written to disk.
func (s *Store) Stage(url, destination string, ref version.Ref) {
	s.pending[url] = Entry{
		Destination: destination,
		Version:     ref.Name,
		LockedHash:  ref.Hash,
	}
}

// Staged returns the number of entries staged in this run.
func (s *Store) Staged() int {
	return len(s.pending)
}

// Snapshot returns the merged view of baseline and staged entries.
func (s *Store) Snapshot() Lockfile {
	merged := maps.Clone(s.baseline)
	if merged == nil {
		merged = Lockfile{}
	}
	maps.Copy(merged, s.pending)
	return merged
}

// Commit replaces the lock file with the merged entries. It may be called
// once; the store stays usable for reads afterwards.
func (s *Store) Commit() error {
	if s.committed {
		return ErrCommitted
	}
	merged := s.Snapshot()
	if err := Write(s.path, merged); err != nil {
		return err
	}
	s.committed = true
	s.baseline = merged
	s.pending = Lockfile{}
	return nil
}
