package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/log"
	"github.com/bianoble/repo-ranger/internal/source"
	"github.com/bianoble/repo-ranger/internal/version"
	"github.com/bianoble/repo-ranger/internal/workspace"
)

// Reconciler brings every manifest repository to the ref its version spec
// selects and records the result in the lock store.
type Reconciler struct {
	Fetcher     source.Fetcher
	Locks       *lock.Store
	Workspace   *workspace.Workspace
	Credentials config.Credentials
	Logger      *zap.SugaredLogger
}

// Options configures a run.
type Options struct {
	// DryRun resolves and decides without fetching or touching the lockfile.
	DryRun bool
}

// Run processes repositories in order. The first failure stops the run and
// leaves the lockfile as it was; the lockfile is committed only after every
// repository succeeded.
func (r *Reconciler) Run(ctx context.Context, repos []config.Repository, opts Options) (*Result, error) {
	result := &Result{DryRun: opts.DryRun}

	for i, repo := range repos {
		r.Logger.Infof("Processing repository %s (%d/%d)...", repo.URL, i+1, len(repos))

		outcome, err := r.reconcile(ctx, repo, opts)
		if err != nil {
			if Reported(err) {
				r.Logger.Error(err.Error())
			}
			return result, err
		}
		result.Outcomes = append(result.Outcomes, *outcome)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := r.Locks.Commit(); err != nil {
		return result, &RunError{Kind: KindUnexpected, Op: "committing lockfile", Err: err}
	}
	result.Committed = true
	r.Logger.Debugf("Lockfile %s written.", r.Locks.Path())

	return result, nil
}

func (r *Reconciler) reconcile(ctx context.Context, repo config.Repository, opts Options) (*Outcome, error) {
	spec := version.ParseSpec(repo.Version)

	ref, err := r.resolve(ctx, repo, spec)
	if err != nil {
		return nil, err
	}

	prev, locked := r.Locks.Get(repo.URL)
	action := Decide(prev, locked, ref)

	outcome := &Outcome{
		URL:         repo.URL,
		Destination: repo.Destination,
		Spec:        spec,
		Ref:         ref,
		Action:      action,
	}
	if locked {
		outcome.Previous = &prev
	}

	switch action {
	case ActionSkip:
		r.Logger.Infof("%s is already at %s (%s), skipping.", repo.URL, ref.Name, version.ShortHash(ref.Hash))
		return outcome, nil
	case ActionForceUpdate:
		r.Logger.Warnf("%s is locked to version %s but hash changed (%s -> %s), forcing update.",
			repo.URL, prev.Version, version.ShortHash(prev.LockedHash), version.ShortHash(ref.Hash))
	case ActionUpdate:
		r.Logger.Infof("%s changes from %s to %s.", repo.URL, prev.Version, ref.Name)
	}

	if opts.DryRun {
		r.Logger.Infof("Dry run: would fetch %s %s into %s.", repo.URL, ref.Name, repo.Destination)
		return outcome, nil
	}

	if err := r.fetch(ctx, repo, ref); err != nil {
		return nil, err
	}
	r.Locks.Stage(repo.URL, repo.Destination, ref)

	return outcome, nil
}

func (r *Reconciler) resolve(ctx context.Context, repo config.Repository, spec version.Spec) (version.Ref, error) {
	if spec.Kind == version.Branch {
		r.Logger.Debugf("Resolving branch %s...", spec.Target)
		head, out, err := r.Fetcher.ResolveBranchHead(ctx, repo.URL, spec.Target, r.Credentials)
		r.forward(out, zapcore.DebugLevel, err != nil)
		if err != nil {
			return version.Ref{}, &RunError{Kind: KindVCS, Repository: repo.URL, Op: "resolving branch " + spec.Target, Err: err}
		}
		if head == nil {
			return version.Ref{}, &RunError{Kind: KindResolution, Repository: repo.URL, Op: "resolving " + spec.String(), Err: fmt.Errorf("%w: %q", ErrBranchNotFound, spec.Target)}
		}
		r.Logger.Debugf("Branch %s is at %s.", head.Name, head.Hash)
		return *head, nil
	}

	r.Logger.Debug("Obtaining tags...")
	tags, out, err := r.Fetcher.ListTags(ctx, repo.URL, r.Credentials)
	r.forward(out, zapcore.DebugLevel, err != nil)
	if err != nil {
		return version.Ref{}, &RunError{Kind: KindVCS, Repository: repo.URL, Op: "listing tags", Err: err}
	}
	r.Logger.Debugf("Tags: %s", joinNames(tags))

	matching := version.MatchCandidates(spec.Target, tags)
	r.Logger.Debugf("Valid versions for %s: %s", spec.Target, joinNames(matching))

	ref, err := version.Resolve(spec.Target, tags)
	if err != nil {
		return version.Ref{}, &RunError{Kind: KindResolution, Repository: repo.URL, Op: "resolving " + spec.String(), Err: err}
	}
	r.Logger.Debugf("Best available version: %s (%s)", ref.Name, ref.Hash)
	return ref, nil
}

func (r *Reconciler) fetch(ctx context.Context, repo config.Repository, ref version.Ref) error {
	if _, err := r.Workspace.Path(repo.Destination); err != nil {
		return &RunError{Kind: KindConfig, Repository: repo.URL, Op: "checking destination", Err: err}
	}
	path, err := r.Workspace.Reset(repo.Destination)
	if err != nil {
		return &RunError{Kind: KindUnexpected, Repository: repo.URL, Op: "preparing destination", Err: err}
	}

	r.Logger.Infof("Fetching %s %s into %s...", repo.URL, ref.Name, repo.Destination)
	out, err := r.Fetcher.FetchRef(ctx, repo.URL, ref.Name, path, r.Credentials)
	r.forward(out, zapcore.InfoLevel, err != nil)
	if err != nil {
		return &RunError{Kind: KindVCS, Repository: repo.URL, Op: "fetching " + ref.Name, Err: err}
	}

	removed, err := r.Workspace.Scrub(repo.Destination)
	if err != nil {
		return &RunError{Kind: KindUnexpected, Repository: repo.URL, Op: "removing version control metadata", Err: err}
	}
	if removed {
		r.Logger.Debugf("Removed %s from %s.", workspace.MetadataDir, repo.Destination)
	}
	return nil
}

// forward logs command output. Stdout goes to stdoutLevel; stderr is debug
// noise unless the command failed.
func (r *Reconciler) forward(t source.Transcript, stdoutLevel zapcore.Level, failed bool) {
	stderrLevel := zapcore.DebugLevel
	if failed {
		stderrLevel = zapcore.ErrorLevel
		stdoutLevel = zapcore.ErrorLevel
	}
	stdout := log.NewLevelWriter(r.Logger, stdoutLevel, "")
	stderr := log.NewLevelWriter(r.Logger, stderrLevel, "")
	for _, line := range t {
		if line.Stream == source.Stderr {
			stderr.WriteLine(line.Text)
		} else {
			stdout.WriteLine(line.Text)
		}
	}
}

func joinNames(refs []version.Ref) string {
	if len(refs) == 0 {
		return "(none)"
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
