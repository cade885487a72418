package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() {
		Version, GitCommit, BuildTime = v, c, b
	}
}

func TestCurrentHost(t *testing.T) {
	info := Current()
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected platform %q", info.Platform)
	}
	if info.NumCPU < 1 || info.GOMAXPROCS < 1 {
		t.Errorf("expected positive CPU counts, got %d/%d", info.NumCPU, info.GOMAXPROCS)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected %q, got %q", runtime.Version(), info.GoVersion)
	}
}

func TestCurrentLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	GitCommit = "abc1234def"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.0.0" {
		t.Errorf("expected '1.0.0', got %q", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected commit truncated to 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("unexpected build time %q", info.BuildTime)
	}
}

func TestApplyBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789"},
		{Key: "vcs.time", Value: "2026-02-01T00:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "GOARCH", Value: "arm64"},
	}

	info := &Info{Version: "dev"}
	info.applyBuildSettings(settings)
	if info.GitCommit != "0123456789" || info.BuildTime != "2026-02-01T00:00:00Z" || !info.Modified {
		t.Errorf("settings not applied: %+v", info)
	}

	pinned := &Info{GitCommit: "fixed", BuildTime: "then"}
	pinned.applyBuildSettings(settings)
	if pinned.GitCommit != "fixed" || pinned.BuildTime != "then" {
		t.Errorf("ldflags values should win: %+v", pinned)
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"dev", Info{Version: "dev"}, false},
		{"tagged", Info{Version: "1.0.0"}, true},
		{"dirty suffix", Info{Version: "1.0.0-dirty"}, false},
		{"modified tree", Info{Version: "1.0.0", Modified: true}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.IsRelease(); got != tc.want {
				t.Errorf("IsRelease() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShortAndString(t *testing.T) {
	tests := []struct {
		name      string
		info      Info
		wantShort string
		wantIn    []string
	}{
		{
			name:      "no commit",
			info:      Info{Version: "dev", GoVersion: "go1.26.0", Platform: "linux/amd64", NumCPU: 4},
			wantShort: "dev",
			wantIn:    []string{"dev go1.26.0 linux/amd64 (4 CPUs)"},
		},
		{
			name:      "commit",
			info:      Info{Version: "1.0.0", GitCommit: "abc1234", BuildTime: "2026-01-15T10:30:00Z"},
			wantShort: "1.0.0-abc1234",
			wantIn:    []string{"1.0.0-abc1234", "built 2026-01-15T10:30:00Z"},
		},
		{
			name:      "modified",
			info:      Info{Version: "1.0.0", GitCommit: "abc1234", Modified: true},
			wantShort: "1.0.0-abc1234-dirty",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.wantShort {
				t.Errorf("Short() = %q, want %q", got, tc.wantShort)
			}
			s := tc.info.String()
			for _, want := range tc.wantIn {
				if !strings.Contains(s, want) {
					t.Errorf("String() = %q, missing %q", s, want)
				}
			}
		})
	}
}

func TestInfoFields(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.1.0"
	GitCommit = "def5678"

	fields := Current().Fields()
	if fields["version"] != "2.1.0" || fields["git_commit"] != "def5678" {
		t.Errorf("unexpected fields %v", fields)
	}
	if _, ok := fields["num_cpu"].(int); !ok {
		t.Errorf("expected num_cpu as int, got %T", fields["num_cpu"])
	}
}
