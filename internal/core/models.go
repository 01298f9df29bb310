package core

import (
	"runtime"
	"strings"
)

// Platform names an operating system family a repository can run on
type Platform string

const (
	PlatformWindows Platform = "Windows"
	PlatformLinux   Platform = "Linux"
)

// AllPlatforms is the default support set, in display order
var AllPlatforms = []Platform{PlatformWindows, PlatformLinux}

// DetectPlatform maps runtime.GOOS onto the two platform families
func DetectPlatform() Platform {
	return PlatformFromGOOS(runtime.GOOS)
}

// PlatformFromGOOS maps a GOOS value to a Platform. Everything that is not
// Windows is treated as Linux.
func PlatformFromGOOS(goos string) Platform {
	if strings.HasPrefix(strings.ToLower(goos), "win") {
		return PlatformWindows
	}
	return PlatformLinux
}

// ParsePlatform parses a user-supplied platform name (case-insensitive)
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win":
		return PlatformWindows, true
	case "linux":
		return PlatformLinux, true
	default:
		return "", false
	}
}

// PlatformSet is an ordered set of platforms
type PlatformSet []Platform

// BothPlatforms returns a fresh set containing every platform
func BothPlatforms() PlatformSet {
	set := make(PlatformSet, len(AllPlatforms))
	copy(set, AllPlatforms)
	return set
}

// Contains reports whether p is in the set
func (s PlatformSet) Contains(p Platform) bool {
	for _, candidate := range s {
		if candidate == p {
			return true
		}
	}
	return false
}

// Universal reports whether the set covers both platforms
func (s PlatformSet) Universal() bool {
	return s.Contains(PlatformWindows) && s.Contains(PlatformLinux)
}

// String renders the set as "Windows/Linux"
func (s PlatformSet) String() string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = string(p)
	}
	return strings.Join(names, "/")
}

// RepositoryRecord is a listed repository together with its inferred platforms
type RepositoryRecord struct {
	Name             string      `json:"name"`
	URL              string      `json:"url,omitempty"`
	Description      string      `json:"description,omitempty"`
	SupportedSystems PlatformSet `json:"supported_systems"`
}

// Label is the menu label, e.g. "demo (Linux)"
func (r RepositoryRecord) Label() string {
	return r.Name + " (" + r.SupportedSystems.String() + ")"
}

// CompatibleWith reports whether the record should be offered on p
func (r RepositoryRecord) CompatibleWith(p Platform) bool {
	return r.SupportedSystems.Contains(p) || r.SupportedSystems.Universal()
}

// AcquireMethod identifies how a repository reached the disk
type AcquireMethod string

const (
	AcquireGit     AcquireMethod = "git"
	AcquireArchive AcquireMethod = "archive"
)

// AcquiredRepository describes the on-disk result of an acquisition
type AcquiredRepository struct {
	Method AcquireMethod
	Dir    string
	Branch string // archive branch, empty for clones
}

// Run statuses recorded in the history database
const (
	RunCompleted     = "completed"
	RunNoRunnable    = "no-runnable"
	RunScriptFailed  = "script-failed"
	RunAcquireFailed = "acquire-failed"
)

// Exit codes
const (
	ExitSuccess       = 0
	ExitGeneral       = 1
	ExitInvalidArgs   = 2
	ExitInstallFailed = 3
	ExitNetwork       = 7
)
