package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoMatchingVersion is returned when no remote tag satisfies a glob.
var ErrNoMatchingVersion = errors.New("no matching version")

// InvalidVersionError reports a tag name that is not a dotted numeric version.
type InvalidVersionError struct {
	Name string
	Err  error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("tag %q is not a dotted numeric version: %s", e.Name, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// Number is a parsed dotted numeric version such as 1.2.10.
type Number []uint64

// ParseNumber parses a dotted numeric version. A single leading "v" is allowed.
func ParseNumber(name string) (Number, error) {
	fields := strings.Split(stripPrefix(name), ".")
	n := make(Number, len(fields))
	for i, f := range fields {
		if f == "" {
			return nil, &InvalidVersionError{Name: name, Err: fmt.Errorf("empty component at position %d", i)}
		}
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, &InvalidVersionError{Name: name, Err: err}
		}
		n[i] = v
	}
	return n, nil
}

// Compare returns -1, 0 or 1. Missing trailing components count as zero,
// so 1.2 and 1.2.0 are equal.
func (n Number) Compare(other Number) int {
	for i := 0; i < max(len(n), len(other)); i++ {
		var a, b uint64
		if i < len(n) {
			a = n[i]
		}
		if i < len(other) {
			b = other[i]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// SelectHighest returns the candidate with the highest version number.
// Equal numbers keep the first one in input order. The returned ref keeps
// its original name. ok is false for an empty input.
func SelectHighest(candidates []Ref) (best Ref, ok bool, err error) {
	var bestNum Number
	for _, c := range candidates {
		num, err := ParseNumber(c.Name)
		if err != nil {
			return Ref{}, false, err
		}
		if !ok || num.Compare(bestNum) > 0 {
			best, bestNum, ok = c, num, true
		}
	}
	return best, ok, nil
}

// Resolve picks the ref a tag glob selects from a remote tag listing.
func Resolve(glob string, tags []Ref) (Ref, error) {
	best, ok, err := SelectHighest(MatchCandidates(glob, tags))
	if err != nil {
		return Ref{}, err
	}
	if !ok {
		return Ref{}, fmt.Errorf("%w for %q", ErrNoMatchingVersion, glob)
	}
	return best, nil
}
