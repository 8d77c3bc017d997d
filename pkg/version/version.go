// Package version reports build metadata for hdlmanifest.
//
// Release builds stamp the variables below with the linker:
//
//	go build -ldflags "-X github.com/quantmind-br/hdlmanifest/pkg/version.Version=v1.0.0 \
//	  -X github.com/quantmind-br/hdlmanifest/pkg/version.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/quantmind-br/hdlmanifest/pkg/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/hdlmanifest
//
// Binaries installed with `go install` carry no ldflags; their module version
// and VCS revision are taken from the embedded build info instead.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the program name reported in version strings
const Name = "hdlmanifest"

const unset = "unknown"

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	BuildTime = unset
	Commit    = unset
)

// Info contains version information
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

// resolve fills fields left unset by the linker from build info
func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Name:      Name,
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unset && s.Value != "" {
				info.Commit = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == unset && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s/%s)",
		i.Name, i.Version, i.Commit, i.BuildTime, i.GoVersion, i.OS, i.Arch)
}

// Short returns the version alone, as shown by --version
func Short() string {
	return Get().Version
}

// Full returns a full version string
func Full() string {
	return Get().String()
}
