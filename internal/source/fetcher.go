// Package source talks to remote git repositories: it lists refs and
// materializes a ref into a directory.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/version"
)

// Fetcher lists remote refs and fetches snapshots.
type Fetcher interface {
	// ListTags returns the remote tags in listing order.
	ListTags(ctx context.Context, url string, creds config.Credentials) ([]version.Ref, Transcript, error)

	// ResolveBranchHead returns the head of the named branch, or nil if the
	// remote has no branch with exactly that name.
	ResolveBranchHead(ctx context.Context, url, branch string, creds config.Credentials) (*version.Ref, Transcript, error)

	// FetchRef materializes ref (tag or branch name) into dest as a shallow,
	// detached checkout.
	FetchRef(ctx context.Context, url, ref, dest string, creds config.Credentials) (Transcript, error)
}

// Stream identifies where a diagnostic line was written.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Line is one line of output from an external command.
type Line struct {
	Text   string
	Stream Stream
}

// Transcript is the output of one command, stdout lines first.
type Transcript []Line

func newTranscript(stdout, stderr string) Transcript {
	var t Transcript
	for _, l := range splitLines(stdout) {
		t = append(t, Line{Text: l, Stream: Stdout})
	}
	for _, l := range splitLines(stderr) {
		t = append(t, Line{Text: l, Stream: Stderr})
	}
	return t
}

// Stdout returns the text of the stdout lines.
func (t Transcript) Stdout() []string {
	var out []string
	for _, l := range t {
		if l.Stream == Stdout {
			out = append(out, l.Text)
		}
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Error represents a failed git operation against a repository.
type Error struct {
	Repo       string
	Operation  string
	Err        error
	Hint       string
	Transcript Transcript
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s failed: %s", e.Repo, e.Operation, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
