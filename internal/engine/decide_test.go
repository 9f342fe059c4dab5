package engine

import (
	"testing"

	"github.com/bianoble/repo-ranger/internal/lock"
	"github.com/bianoble/repo-ranger/internal/version"
)

func TestDecide(t *testing.T) {
	prev := lock.Entry{Destination: "libs/engine", Version: "v1.2.0", LockedHash: "aaa"}

	tests := []struct {
		name   string
		locked bool
		ref    version.Ref
		want   Action
	}{
		{"not locked", false, version.Ref{Name: "v1.2.0", Hash: "aaa"}, ActionInstall},
		{"same hash", true, version.Ref{Name: "v1.2.0", Hash: "aaa"}, ActionSkip},
		{"same hash new name", true, version.Ref{Name: "v1.2.1", Hash: "aaa"}, ActionSkip},
		{"hash drift", true, version.Ref{Name: "v1.2.0", Hash: "bbb"}, ActionForceUpdate},
		{"new version", true, version.Ref{Name: "v1.3.0", Hash: "bbb"}, ActionUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(prev, tt.locked, tt.ref); got != tt.want {
				t.Errorf("Decide() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestActionFetches(t *testing.T) {
	if ActionSkip.Fetches() {
		t.Error("skip should not fetch")
	}
	for _, a := range []Action{ActionInstall, ActionUpdate, ActionForceUpdate} {
		if !a.Fetches() {
			t.Errorf("%s should fetch", a)
		}
	}
}
