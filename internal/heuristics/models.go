package heuristics

import "github.com/quantmind-br/gitpilot/internal/core"

// ManifestName is the dependency manifest searched for during installation
const ManifestName = "requirements.txt"

var runnableExtensions = map[core.Platform][]string{
	core.PlatformWindows: {".py", ".ps1", ".bat"},
	core.PlatformLinux:   {".py", ".sh"},
}

// RunnableExtensions returns the script extensions considered runnable on p
func RunnableExtensions(p core.Platform) []string {
	exts := runnableExtensions[p]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}
