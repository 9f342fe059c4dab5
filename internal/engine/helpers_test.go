package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/source"
	"github.com/bianoble/repo-ranger/internal/version"
	"github.com/bianoble/repo-ranger/internal/workspace"
)

// fakeFetcher serves refs from memory and writes fetched snapshots into fs.
type fakeFetcher struct {
	fs       afero.Fs
	tags     map[string][]version.Ref
	branches map[string]map[string]string
	failList map[string]error
	failGet  map[string]error
	fetches  []string
	lists    []string
}

func newFakeFetcher(fs afero.Fs) *fakeFetcher {
	return &fakeFetcher{
		fs:       fs,
		tags:     map[string][]version.Ref{},
		branches: map[string]map[string]string{},
		failList: map[string]error{},
		failGet:  map[string]error{},
	}
}

func (f *fakeFetcher) addTag(url, name, hash string) {
	f.tags[url] = append(f.tags[url], version.Ref{Kind: version.Tag, Name: name, Hash: hash})
}

func (f *fakeFetcher) setTags(url string, refs ...version.Ref) {
	f.tags[url] = refs
}

func (f *fakeFetcher) addBranch(url, name, hash string) {
	if f.branches[url] == nil {
		f.branches[url] = map[string]string{}
	}
	f.branches[url][name] = hash
}

func (f *fakeFetcher) ListTags(_ context.Context, url string, _ config.Credentials) ([]version.Ref, source.Transcript, error) {
	f.lists = append(f.lists, url)
	if err := f.failList[url]; err != nil {
		return nil, source.Transcript{{Text: "fatal: repository not found", Stream: source.Stderr}}, err
	}
	return f.tags[url], nil, nil
}

func (f *fakeFetcher) ResolveBranchHead(_ context.Context, url, branch string, _ config.Credentials) (*version.Ref, source.Transcript, error) {
	f.lists = append(f.lists, url)
	if err := f.failList[url]; err != nil {
		return nil, nil, err
	}
	hash, ok := f.branches[url][branch]
	if !ok {
		return nil, nil, nil
	}
	return &version.Ref{Kind: version.Branch, Name: branch, Hash: hash}, nil, nil
}

func (f *fakeFetcher) FetchRef(_ context.Context, url, ref, dest string, _ config.Credentials) (source.Transcript, error) {
	f.fetches = append(f.fetches, url+"@"+ref)
	if err := f.failGet[url]; err != nil {
		return source.Transcript{{Text: "fatal: Remote branch " + ref + " not found", Stream: source.Stderr}}, err
	}
	if err := afero.WriteFile(f.fs, filepath.Join(dest, "VERSION"), []byte(ref), 0644); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(f.fs, filepath.Join(dest, workspace.MetadataDir, "HEAD"), []byte(ref), 0644); err != nil {
		return nil, err
	}
	return source.Transcript{{Text: "Cloning into '" + dest + "'...", Stream: source.Stderr}}, nil
}

type fixture struct {
	root     string
	lockPath string
	fs       afero.Fs
	ws       *workspace.Workspace
	fetcher  *fakeFetcher
	logs     *observer.ObservedLogs
	logger   *zap.SugaredLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	fs := afero.NewMemMapFs()
	core, logs := observer.New(zapcore.DebugLevel)
	return &fixture{
		root:     root,
		lockPath: filepath.Join(root, "ranger-lock.json"),
		fs:       fs,
		ws:       workspace.New(fs, root),
		fetcher:  newFakeFetcher(fs),
		logs:     logs,
		logger:   zap.New(core).Sugar(),
	}
}

// run opens the lock file fresh, as a new process would, and runs once.
func (fx *fixture) run(t *testing.T, repos []config.Repository, opts Options) (*Result, error) {
	t.Helper()
	store, err := lock.Open(fx.lockPath)
	if err != nil {
		t.Fatalf("opening lock store: %v", err)
	}
	r := &Reconciler{
		Fetcher:   fx.fetcher,
		Locks:     store,
		Workspace: fx.ws,
		Logger:    fx.logger,
	}
	return r.Run(context.Background(), repos, opts)
}

func (fx *fixture) lockfile(t *testing.T) lock.Lockfile {
	t.Helper()
	lf, err := lock.Read(fx.lockPath)
	if err != nil {
		t.Fatalf("reading lockfile: %v", err)
	}
	return lf
}

func (fx *fixture) writeLockfile(t *testing.T, lf lock.Lockfile) {
	t.Helper()
	if err := lock.Write(fx.lockPath, lf); err != nil {
		t.Fatalf("writing lockfile: %v", err)
	}
}

func (fx *fixture) destFile(t *testing.T, dest, name string) (string, bool) {
	t.Helper()
	data, err := afero.ReadFile(fx.fs, filepath.Join(fx.root, dest, name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func repo(url, dest, ver string) config.Repository {
	return config.Repository{URL: url, Destination: dest, Version: ver}
}
