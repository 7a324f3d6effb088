package version

import (
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time via -ldflags; the defaults describe a local dev build.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// Info is a point-in-time snapshot of the build metadata.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// GetVersionInfo assembles the build metadata, merging the ldflags values
// with the toolchain's embedded VCS information. ldflags win where both
// are present.
func GetVersionInfo() *Info {
	commit, builtAt, goVer := GitCommit, BuildTime, GoVersion
	dirty := false

	if bi, ok := debug.ReadBuildInfo(); ok {
		if goVer == "" {
			goVer = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" && s.Value != "" {
					commit = shortCommit(s.Value)
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			case "vcs.time":
				if builtAt == "" {
					builtAt = s.Value
				}
			}
		}
	}

	date := parseBuildTime(builtAt)
	if date.IsZero() {
		date = time.Now().UTC()
		builtAt = date.Format(time.RFC3339)
	}

	return &Info{
		Version:   Version,
		GitCommit: commit,
		GitBranch: GitBranch,
		BuildTime: builtAt,
		GoVersion: goVer,
		BuildDate: date,
		IsRelease: isRelease(Version),
		IsDirty:   dirty,
	}
}

func isRelease(v string) bool {
	return v != "dev" && !strings.Contains(v, "dirty")
}

func parseBuildTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// GetShortVersion renders a compact "version-commit" string suitable for
// logs and health payloads.
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	short := info.Version + "-" + info.GitCommit
	if info.IsDirty {
		short += "-dirty"
	}
	return short
}
