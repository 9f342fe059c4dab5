package engine

import (
	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/version"
	"github.com/bianoble/repo-ranger/internal/workspace"
)

// State summarizes a repository without contacting its remote.
type State string

const (
	StateUnlocked State = "unlocked"
	StateLocked   State = "locked"
	StateMissing  State = "missing" // locked, destination absent
	StateMoved    State = "moved"   // locked to a different destination
)

// StatusEngine computes the local state of manifest repositories.
type StatusEngine struct {
	Locks     *lock.Store
	Workspace *workspace.Workspace
}

// RepositoryStatus describes the current state of a repository.
type RepositoryStatus struct {
	URL         string
	Destination string
	Spec        version.Spec
	Locked      *lock.Entry
	State       State
}

// Status returns the state of every repository, in manifest order.
func (e *StatusEngine) Status(repos []config.Repository) ([]RepositoryStatus, error) {
	statuses := make([]RepositoryStatus, 0, len(repos))
	for _, repo := range repos {
		s := RepositoryStatus{
			URL:         repo.URL,
			Destination: repo.Destination,
			Spec:        version.ParseSpec(repo.Version),
			State:       StateUnlocked,
		}

		if entry, ok := e.Locks.Get(repo.URL); ok {
			s.Locked = &entry
			state, err := e.lockedState(repo, entry)
			if err != nil {
				return nil, err
			}
			s.State = state
		}

		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (e *StatusEngine) lockedState(repo config.Repository, entry lock.Entry) (State, error) {
	if entry.Destination != repo.Destination {
		return StateMoved, nil
	}
	exists, err := e.Workspace.Exists(repo.Destination)
	if err != nil {
		return "", err
	}
	if !exists {
		return StateMissing, nil
	}
	return StateLocked, nil
}
