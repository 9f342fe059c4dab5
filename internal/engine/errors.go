package engine

import (
	"errors"
	"fmt"
)

// ErrBranchNotFound is returned when a branch spec names a branch the
// remote does not have.
var ErrBranchNotFound = errors.New("branch not found")

// Kind classifies why a run stopped. The entry point uses it to decide how
// much to print: resolution and VCS failures are logged where they happen.
type Kind int

const (
	KindUnexpected Kind = iota
	KindConfig
	KindResolution
	KindVCS
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResolution:
		return "resolution"
	case KindVCS:
		return "vcs"
	default:
		return "unexpected"
	}
}

// RunError is a failure that aborted a run.
type RunError struct {
	Kind       Kind
	Repository string // empty when not tied to one repository
	Op         string
	Err        error
}

func (e *RunError) Error() string {
	if e.Repository != "" {
		return fmt.Sprintf("%s: %s: %s", e.Repository, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a non-nil error. Errors that are not a
// RunError are unexpected.
func KindOf(err error) Kind {
	var rerr *RunError
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindUnexpected
}

// Reported reports whether the error was already logged when it happened.
func Reported(err error) bool {
	switch KindOf(err) {
	case KindResolution, KindVCS:
		return true
	default:
		return false
	}
}
