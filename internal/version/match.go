package version

import (
	"regexp"
	"strings"

	"github.com/umisama/go-regexpcache"
)

// MatchCandidates returns the candidates whose name matches the tag glob,
// in input order. A single leading "v" is ignored on both sides and the
// glob must match the whole name: "1.2.*" matches "1.2.0" but not "11.2.0".
func MatchCandidates(glob string, candidates []Ref) []Ref {
	pattern := globPattern(stripPrefix(glob))
	var matched []Ref
	for _, c := range candidates {
		if pattern.MatchString(stripPrefix(c.Name)) {
			matched = append(matched, c)
		}
	}
	return matched
}

// globPattern turns a glob into an anchored expression. Only "*" is special.
func globPattern(glob string) *regexp.Regexp {
	parts := strings.Split(glob, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexpcache.MustCompile(`^` + strings.Join(parts, `.*`) + `$`)
}
