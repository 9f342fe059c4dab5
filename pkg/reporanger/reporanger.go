// Package reporanger provides the public Go library API for repo-ranger.
//
// repo-ranger fetches pinned snapshots of git repositories into a base
// directory. A manifest names each repository, its destination and a
// version spec (a tag glob such as "1.2.*" or a branch marker such as
// "b:main"); a lockfile records the exact hash fetched for each one so
// unchanged repositories are skipped on the next run.
//
// # Basic Usage
//
//	client, err := reporanger.New(reporanger.Options{
//	    Paths: config.DefaultPaths("/path/to/project"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Fetch every repository and update the lockfile
//	result, err := client.Fetch(ctx, reporanger.FetchOptions{})
//
//	// Inspect local state without contacting remotes
//	statuses, err := client.Status(ctx)
package reporanger

import (
	"context"
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/engine"
	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/log"
	"github.com/bianoble/repo-ranger/internal/source"
	"github.com/bianoble/repo-ranger/internal/workspace"
)

// FetchOptions configures a fetch run.
type FetchOptions struct {
	DryRun bool
}

// Fetcher brings repositories to the versions their specs select.
type Fetcher interface {
	Fetch(ctx context.Context, opts FetchOptions) (*Result, error)
}

// Statuser reports local state without network access.
type Statuser interface {
	Status(ctx context.Context) ([]RepositoryStatus, error)
}

// Options configures a repo-ranger client.
type Options struct {
	// Paths locates the manifest, credentials and lockfile. Relative file
	// paths are resolved against Paths.BaseDir, which defaults to ".".
	Paths config.Paths

	// Logger receives progress and diagnostics. Default: no logging.
	Logger *zap.SugaredLogger

	// Git lists and fetches remote refs. Default: the git binary on PATH.
	Git source.Fetcher

	// Fs holds the base directory. Default: the OS filesystem. Fetched
	// snapshots are written by Git, so both must see the same files.
	Fs afero.Fs
}

// Client is the main entry point for the repo-ranger library.
// It implements Fetcher and Statuser.
type Client struct {
	paths  config.Paths
	logger *zap.SugaredLogger
	git    source.Fetcher
	fs     afero.Fs
}

// New creates a new repo-ranger Client.
func New(opts Options) (*Client, error) {
	paths, err := opts.Paths.Resolve()
	if err != nil {
		return nil, &RunError{Kind: KindConfig, Op: "resolving base directory", Err: err}
	}

	c := &Client{
		paths:  paths,
		logger: opts.Logger,
		git:    opts.Git,
		fs:     opts.Fs,
	}
	if c.logger == nil {
		c.logger = log.NewNop()
	}
	if c.git == nil {
		c.git = &source.Git{}
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	return c, nil
}

// Paths returns the resolved file locations.
func (c *Client) Paths() config.Paths {
	return c.paths
}

// Fetch reconciles every manifest repository and commits the lockfile once
// all of them succeeded. A missing or empty manifest is not an error: there
// is nothing to do, and neither the run lock nor the lockfile is touched.
func (c *Client) Fetch(ctx context.Context, opts FetchOptions) (*Result, error) {
	manifest, err := c.loadManifest()
	if err != nil {
		return nil, err
	}
	if manifest == nil || len(manifest.Repositories) == 0 {
		return &Result{DryRun: opts.DryRun}, nil
	}

	if !opts.DryRun {
		runLock, err := lock.AcquireRunLock(c.paths.Lockfile)
		if err != nil {
			kind := KindUnexpected
			if errors.Is(err, lock.ErrLocked) {
				kind = KindConfig
			}
			return nil, &RunError{Kind: kind, Op: "locking", Err: err}
		}
		defer func() {
			if err := runLock.Release(); err != nil {
				c.logger.Debugf("Releasing %s: %s", runLock.Path(), err)
			}
		}()
	}

	creds, err := c.loadCredentials()
	if err != nil {
		return nil, err
	}

	store, err := c.openLocks()
	if err != nil {
		return nil, err
	}

	r := &engine.Reconciler{
		Fetcher:     c.git,
		Locks:       store,
		Workspace:   workspace.New(c.fs, c.paths.BaseDir),
		Credentials: creds,
		Logger:      c.logger,
	}
	return r.Run(ctx, manifest.Repositories, engine.Options{DryRun: opts.DryRun})
}

// Status reports the local state of every manifest repository.
func (c *Client) Status(_ context.Context) ([]RepositoryStatus, error) {
	manifest, err := c.loadManifest()
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, nil
	}

	store, err := c.openLocks()
	if err != nil {
		return nil, err
	}

	e := &engine.StatusEngine{
		Locks:     store,
		Workspace: workspace.New(c.fs, c.paths.BaseDir),
	}
	statuses, err := e.Status(manifest.Repositories)
	if err != nil {
		return nil, &RunError{Kind: KindConfig, Op: "checking destinations", Err: err}
	}
	return statuses, nil
}

// loadManifest returns nil, without error, when the manifest is missing.
func (c *Client) loadManifest() (*config.Manifest, error) {
	m, err := config.LoadManifest(c.paths.Manifest)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Warnf("Manifest %s not found, nothing to do.", c.paths.Manifest)
		return nil, nil
	}
	if err != nil {
		return nil, &RunError{Kind: KindConfig, Op: "loading manifest", Err: err}
	}
	c.logger.Debugf("Loaded %d repositories from %s.", len(m.Repositories), c.paths.Manifest)
	return m, nil
}

func (c *Client) loadCredentials() (config.Credentials, error) {
	creds, err := config.LoadCredentials(c.paths.Credentials)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		creds = config.Credentials{}
		if config.ApplyEnv(&creds) {
			c.logger.Debug("Using credentials from the environment.")
		} else {
			c.logger.Warnf("Credentials file %s not found, continuing without credentials.", c.paths.Credentials)
		}
	case err != nil:
		return config.Credentials{}, &RunError{Kind: KindConfig, Op: "loading credentials", Err: err}
	default:
		if config.ApplyEnv(&creds) {
			c.logger.Debug("Credentials overridden from the environment.")
		}
	}
	return creds, nil
}

func (c *Client) openLocks() (*lock.Store, error) {
	store, err := lock.Open(c.paths.Lockfile)
	if err != nil {
		return nil, &RunError{Kind: KindConfig, Op: "loading lockfile", Err: err}
	}
	return store, nil
}
