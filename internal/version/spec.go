package version

import "strings"

// BranchPrefix marks a spec that selects a branch head instead of a tag.
const BranchPrefix = "b:"

// Spec is a parsed version specification.
type Spec struct {
	Kind Kind
	// Target is the branch name for branch specs and the glob for tag specs.
	Target string
}

// ParseSpec splits a raw manifest version string into its kind and target.
func ParseSpec(raw string) Spec {
	if rest, ok := strings.CutPrefix(raw, BranchPrefix); ok {
		return Spec{Kind: Branch, Target: strings.TrimSpace(rest)}
	}
	return Spec{Kind: Tag, Target: raw}
}

func (s Spec) String() string {
	if s.Kind == Branch {
		return BranchPrefix + s.Target
	}
	return s.Target
}

// stripPrefix removes a single leading "v".
func stripPrefix(name string) string {
	return strings.TrimPrefix(name, "v")
}
