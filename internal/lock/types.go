// Package lock persists what was fetched for each repository.
//
// The lock file is a JSON object keyed by repository URL. A Store keeps the
// entries loaded at startup separate from the entries staged during a run,
// and writes both back in a single commit once the whole run has succeeded.
package lock

// Entry records the exact ref fetched into a destination.
type Entry struct {
	Destination string `json:"destination"`
	Version     string `json:"version"`
	LockedHash  string `json:"lockedHash"`
}

// Lockfile is the on-disk form: repository URL -> entry.
type Lockfile map[string]Entry
