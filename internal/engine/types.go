package engine

import (
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/version"
)

// Outcome records what happened to one repository.
type Outcome struct {
	URL         string
	Destination string
	Spec        version.Spec
	Ref         version.Ref
	Action      Action
	Previous    *lock.Entry // nil if the repository was not locked
}

// Result holds the outcome of a run.
type Result struct {
	Outcomes  []Outcome
	Committed bool
	DryRun    bool
}

// Fetched returns the number of repositories that were (or, in a dry run,
// would be) fetched.
func (r *Result) Fetched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action.Fetches() {
			n++
		}
	}
	return n
}
