package engine

import (
	"path/filepath"
	"testing"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/lock"
)

func TestStatus(t *testing.T) {
	fx := newFixture(t)
	fx.writeLockfile(t, lock.Lockfile{
		engineURL: {Destination: "libs/engine", Version: "v1.0.0", LockedHash: "aaa1"},
		toolsURL:  {Destination: "libs/tools", Version: "main", LockedHash: "bbb1"},
		docsURL:   {Destination: "old/docs", Version: "v2.0.0", LockedHash: "ccc1"},
	})
	if err := fx.fs.MkdirAll(filepath.Join(fx.root, "libs", "engine"), 0755); err != nil {
		t.Fatal(err)
	}

	store, err := lock.Open(fx.lockPath)
	if err != nil {
		t.Fatal(err)
	}
	e := &StatusEngine{Locks: store, Workspace: fx.ws}

	repos := []config.Repository{
		repo(engineURL, "libs/engine", "v1.*"),
		repo(toolsURL, "libs/tools", "b:main"),
		repo(docsURL, "docs", "v2.*"),
		repo("https://example.com/acme/new.git", "libs/new", "*"),
	}
	statuses, err := e.Status(repos)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	want := []State{StateLocked, StateMissing, StateMoved, StateUnlocked}
	if len(statuses) != len(want) {
		t.Fatalf("got %d statuses", len(statuses))
	}
	for i, s := range statuses {
		if s.State != want[i] {
			t.Errorf("%s: state = %s, want %s", s.URL, s.State, want[i])
		}
	}
	if statuses[3].Locked != nil {
		t.Error("unlocked repository has a lock entry")
	}
	if statuses[1].Spec.Target != "main" {
		t.Errorf("spec = %+v", statuses[1].Spec)
	}
}

func TestStatusRejectsEscapingDestination(t *testing.T) {
	fx := newFixture(t)
	fx.writeLockfile(t, lock.Lockfile{
		engineURL: {Destination: "../engine", Version: "v1.0.0", LockedHash: "aaa1"},
	})
	store, err := lock.Open(fx.lockPath)
	if err != nil {
		t.Fatal(err)
	}
	e := &StatusEngine{Locks: store, Workspace: fx.ws}

	if _, err := e.Status([]config.Repository{repo(engineURL, "../engine", "*")}); err == nil {
		t.Error("expected error for destination outside the base directory")
	}
}
