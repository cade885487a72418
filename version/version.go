package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

const shortCommit = 7

// Info describes the binary and the host a benchmark ran on.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified"`
	GoVersion string `json:"go_version"`

	Platform   string `json:"platform"`
	NumCPU     int    `json:"num_cpu"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

// Current returns build information merged with the running host.
// Values injected through -ldflags win over those embedded by the
// toolchain.
func Current() *Info {
	info := &Info{
		Version:    Version,
		GitCommit:  GitCommit,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.applyBuildSettings(bi.Settings)
	}
	if len(info.GitCommit) > shortCommit {
		info.GitCommit = info.GitCommit[:shortCommit]
	}
	return info
}

func (i *Info) applyBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
}

// IsRelease reports whether the binary was built from a clean, tagged
// version.
func (i *Info) IsRelease() bool {
	return i.Version != "dev" && !i.Modified && !strings.Contains(i.Version, "dirty")
}

// Short returns the version with the abbreviated commit, if known.
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	s := i.Version + "-" + i.GitCommit
	if i.Modified {
		s += "-dirty"
	}
	return s
}

// String renders a one-line banner such as
// "1.0.0-abc1234 go1.26.0 linux/amd64 (8 CPUs)".
func (i *Info) String() string {
	s := fmt.Sprintf("%s %s %s (%d CPUs)", i.Short(), i.GoVersion, i.Platform, i.NumCPU)
	if i.BuildTime != "" {
		s += ", built " + i.BuildTime
	}
	return s
}

// Fields returns the build and host attributes for structured logging.
func (i *Info) Fields() map[string]any {
	return map[string]any{
		"version":    i.Version,
		"git_commit": i.GitCommit,
		"go_version": i.GoVersion,
		"platform":   i.Platform,
		"num_cpu":    i.NumCPU,
		"gomaxprocs": i.GOMAXPROCS,
	}
}
