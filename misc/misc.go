// Package misc keeps build identity of the program.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "repgen"

// set by linker: -X repgen/misc.version=...
var version = "dev"

var gitHash = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) > 0 {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
})

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns abbreviated VCS revision the binary was built from.
func GetGitHash() string {
	return gitHash()
}
