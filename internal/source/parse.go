package source

import (
	"regexp"

	"github.com/bianoble/repo-ranger/internal/version"
)

var (
	// Only tags made of "v", digits and dots are considered versions.
	tagLine  = regexp.MustCompile(`^([0-9a-f]{7,64})\s+refs/tags/([v0-9.]+)(\^\{\})?$`)
	headLine = regexp.MustCompile(`^([0-9a-f]{7,64})\s+refs/heads/(.+)$`)
)

// ParseTagListing parses `git ls-remote --tags` output. Lines of any other
// shape are ignored. For annotated tags the peeled commit hash ("^{}" line)
// replaces the tag object hash; listing order is kept.
func ParseTagListing(lines []string) []version.Ref {
	// Tags such as "1.2.0-rc1" never get past tagLine, so the only invalid
	// versions left for the resolver are shapes like "1..2".
	var refs []version.Ref
	index := make(map[string]int)
	for _, line := range lines {
		m := tagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hash, name, peeled := m[1], m[2], m[3] != ""
		if i, seen := index[name]; seen {
			if peeled {
				refs[i].Hash = hash
			}
			continue
		}
		index[name] = len(refs)
		refs = append(refs, version.Ref{Kind: version.Tag, Name: name, Hash: hash})
	}
	return refs
}

// FindBranchHead returns the branch whose name equals branch exactly.
func FindBranchHead(lines []string, branch string) *version.Ref {
	for _, line := range lines {
		m := headLine.FindStringSubmatch(line)
		if m != nil && m[2] == branch {
			return &version.Ref{Kind: version.Branch, Name: branch, Hash: m[1]}
		}
	}
	return nil
}
