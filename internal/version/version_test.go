package version

import (
	"runtime/debug"
	"testing"

	"github.com/fatih/color"
)

func TestGetTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "  "
	GitCommit = " abc123 "
	info := Get()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "1234567890abcdef1234"},
		{Key: "vcs.time", Value: "2024-01-15T10:30:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}
	tests := []struct {
		name       string
		in         Info
		wantCommit string
		wantDate   string
	}{
		{"empty", Info{}, "1234567890abcdef1234", "2024-01-15T10:30:00Z"},
		{"ldflags win", Info{GitCommit: "feed", BuildDate: "today"}, "feed", "today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.in
			fillFromBuildInfo(&info, settings)
			if info.GitCommit != tt.wantCommit || info.BuildDate != tt.wantDate || !info.Modified {
				t.Errorf("got %+v", info)
			}
		})
	}
}

func TestShortCommit(t *testing.T) {
	if got := (Info{GitCommit: "1234567890abcdef"}).ShortCommit(); got != "1234567890ab" {
		t.Errorf("ShortCommit = %q", got)
	}
	if got := (Info{GitCommit: "abc"}).ShortCommit(); got != "abc" {
		t.Errorf("ShortCommit = %q", got)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3-rc.1", "1.2.3-rc.1"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		if got := (Info{Version: tt.in}).Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q", tt.in, got)
		}
	}
}
