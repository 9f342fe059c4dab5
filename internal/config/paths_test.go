package config

import (
	"path/filepath"
	"testing"
)

func TestPathsResolveDefaults(t *testing.T) {
	base := t.TempDir()
	p, err := Paths{BaseDir: base}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Manifest != filepath.Join(base, DefaultManifestFile) {
		t.Errorf("manifest = %q", p.Manifest)
	}
	if p.Credentials != filepath.Join(base, DefaultCredentialsFile) {
		t.Errorf("credentials = %q", p.Credentials)
	}
	if p.Lockfile != filepath.Join(base, DefaultLockFile) {
		t.Errorf("lockfile = %q", p.Lockfile)
	}
}

func TestPathsResolveRelativeAndAbsolute(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere", "auth.json")

	p, err := Paths{
		BaseDir:     base,
		Manifest:    "conf/deps.yaml",
		Credentials: abs,
		Lockfile:    "deps.lock.json",
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Manifest != filepath.Join(base, "conf", "deps.yaml") {
		t.Errorf("manifest = %q", p.Manifest)
	}
	if p.Credentials != abs {
		t.Errorf("credentials = %q, want %q", p.Credentials, abs)
	}
	if p.Lockfile != filepath.Join(base, "deps.lock.json") {
		t.Errorf("lockfile = %q", p.Lockfile)
	}
}

func TestPathsResolveEmptyBaseIsWorkingDir(t *testing.T) {
	p, err := Paths{}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(p.BaseDir) {
		t.Errorf("base dir %q is not absolute", p.BaseDir)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvToken, " from-env ")

	c := Credentials{Username: "file-user", Token: "file-token"}
	if !ApplyEnv(&c) {
		t.Error("ApplyEnv reported no change")
	}
	if c.Username != "file-user" {
		t.Errorf("username = %q, want file value kept", c.Username)
	}
	if c.Token != "from-env" {
		t.Errorf("token = %q, want %q", c.Token, "from-env")
	}
}

func TestApplyEnvNothingSet(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvToken, "")

	c := Credentials{Username: "u"}
	if ApplyEnv(&c) {
		t.Error("ApplyEnv reported a change with no variables set")
	}
}
