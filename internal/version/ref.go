// Package version resolves version specifications against remote refs.
//
// A spec is either a branch marker ("b:main") or a tag glob ("1.2.*",
// "v2.*"). Tag globs are matched against remote tag names and the highest
// dotted-numeric match is selected. Nothing in this package performs I/O.
package version

// Kind is the kind of a remote ref.
type Kind int

const (
	Tag Kind = iota
	Branch
)

func (k Kind) String() string {
	switch k {
	case Tag:
		return "tag"
	case Branch:
		return "branch"
	default:
		return "unknown"
	}
}

// Ref is a named pointer to an immutable content hash in a remote repository.
// Name is kept exactly as the remote reports it, including any leading "v".
type Ref struct {
	Kind Kind
	Name string
	Hash string
}

// ShortHash abbreviates a hash to its first eight characters for display.
func ShortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
