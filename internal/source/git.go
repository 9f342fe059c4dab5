package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/version"
)

// Git implements Fetcher by running the git binary.
type Git struct {
	// Binary is the git executable. Defaults to "git" on PATH.
	Binary string
}

func (g *Git) ListTags(ctx context.Context, repo string, creds config.Credentials) ([]version.Ref, Transcript, error) {
	out, err := g.run(ctx, creds, "ls-remote", "--tags", "--", authURL(repo, creds))
	if err != nil {
		return nil, out, &Error{Repo: repo, Operation: "list tags", Err: err, Hint: "check repository url and credentials", Transcript: out}
	}
	return ParseTagListing(out.Stdout()), out, nil
}

func (g *Git) ResolveBranchHead(ctx context.Context, repo, branch string, creds config.Credentials) (*version.Ref, Transcript, error) {
	out, err := g.run(ctx, creds, "ls-remote", "--heads", "--", authURL(repo, creds), "refs/heads/"+branch)
	if err != nil {
		return nil, out, &Error{Repo: repo, Operation: "resolve branch " + branch, Err: err, Hint: "check repository url and credentials", Transcript: out}
	}
	return FindBranchHead(out.Stdout(), branch), out, nil
}

func (g *Git) FetchRef(ctx context.Context, repo, ref, dest string, creds config.Credentials) (Transcript, error) {
	out, err := g.run(ctx, creds,
		"clone", "--depth", "1", "--branch", ref,
		"-c", "advice.detachedHead=false",
		"--", authURL(repo, creds), dest)
	if err != nil {
		return out, &Error{Repo: repo, Operation: "fetch " + ref, Err: err, Hint: "check that the ref still exists and the destination is writable", Transcript: out}
	}
	return out, nil
}

func (g *Git) run(ctx context.Context, creds config.Credentials, args ...string) (Transcript, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := redactTranscript(newTranscript(stdout.String(), stderr.String()), creds)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("git %s exited with code %d", args[0], exitErr.ExitCode())
		}
		return out, fmt.Errorf("running git %s: %s", args[0], redact(err.Error(), creds))
	}
	return out, nil
}

// authURL embeds credentials as userinfo in http(s) URLs. Other URLs
// (ssh, file paths) are returned unchanged.
func authURL(raw string, creds config.Credentials) string {
	if creds.Empty() {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return raw
	}
	if creds.Token == "" {
		u.User = url.User(creds.Username)
	} else {
		u.User = url.UserPassword(creds.Username, creds.Token)
	}
	return u.String()
}

func redact(s string, creds config.Credentials) string {
	if creds.Token == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.UserPassword(creds.Username, creds.Token).String(), creds.Username+":***")
	return strings.ReplaceAll(s, creds.Token, "***")
}

func redactTranscript(t Transcript, creds config.Credentials) Transcript {
	for i := range t {
		t[i].Text = redact(t[i].Text, creds)
	}
	return t
}
