package reporanger

import (
	"github.com/bianoble/repo-ranger/internal/engine"
	"github.com/bianoble/repo-ranger/internal/version"
)

// Type aliases re-export engine types as the public API.
// Users import "github.com/bianoble/repo-ranger/pkg/reporanger" and use
// reporanger.Result, reporanger.RunError, etc.

type Result = engine.Result
type Outcome = engine.Outcome
type Action = engine.Action
type RepositoryStatus = engine.RepositoryStatus
type State = engine.State
type RunError = engine.RunError
type Kind = engine.Kind

const (
	KindUnexpected = engine.KindUnexpected
	KindConfig     = engine.KindConfig
	KindResolution = engine.KindResolution
	KindVCS        = engine.KindVCS
)

// KindOf classifies an error returned by Fetch or Status.
func KindOf(err error) Kind {
	return engine.KindOf(err)
}

// Reported reports whether the error was already logged during the run.
func Reported(err error) bool {
	return engine.Reported(err)
}

const (
	ActionInstall     = engine.ActionInstall
	ActionSkip        = engine.ActionSkip
	ActionUpdate      = engine.ActionUpdate
	ActionForceUpdate = engine.ActionForceUpdate
)

const (
	StateUnlocked = engine.StateUnlocked
	StateLocked   = engine.StateLocked
	StateMissing  = engine.StateMissing
	StateMoved    = engine.StateMoved
)

// ShortHash abbreviates a locked hash for display.
func ShortHash(hash string) string {
	return version.ShortHash(hash)
}
