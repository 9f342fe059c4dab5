package engine

import (
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/version"
)

// Action is what a run does for one repository.
type Action string

const (
	// ActionInstall fetches a repository that was never locked.
	ActionInstall Action = "install"
	// ActionSkip leaves a repository whose locked hash is current.
	ActionSkip Action = "skip"
	// ActionUpdate fetches because the resolved version changed.
	ActionUpdate Action = "update"
	// ActionForceUpdate fetches because the same version now points at a
	// different hash.
	ActionForceUpdate Action = "force-update"
)

// Fetches reports whether the action fetches the repository.
func (a Action) Fetches() bool {
	return a != ActionSkip
}

// Decide compares the resolved ref against the previous lock entry.
func Decide(prev lock.Entry, locked bool, resolved version.Ref) Action {
	switch {
	case !locked:
		return ActionInstall
	case prev.LockedHash == resolved.Hash:
		return ActionSkip
	case prev.Version == resolved.Name:
		return ActionForceUpdate
	default:
		return ActionUpdate
	}
}
