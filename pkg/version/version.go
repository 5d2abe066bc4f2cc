// Package version reports which sqlcat build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X sqlcat/pkg/version.Version=1.2.3" and likewise for
// Commit and BuildTime. Commit and BuildTime fall back to the VCS stamp the
// go command embeds when they are left unset.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the build information for this binary.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFromSettings(bi.Settings)
	}
	return info
}

func (i *Info) fillFromSettings(settings []debug.BuildSetting) {
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
		}
	}
	if len(i.GitCommit) > 12 {
		i.GitCommit = i.GitCommit[:12]
	}
}

// String renders the info on one line. Unknown fields are left out.
func (i Info) String() string {
	s := "sqlcat " + i.Version
	if i.GitCommit != "" {
		s += " (" + i.GitCommit
		if i.BuildTime != "" {
			s += ", " + i.BuildTime
		}
		s += ")"
	}
	return fmt.Sprintf("%s %s %s", s, i.GoVersion, i.Platform)
}
