package heuristics

import (
	"regexp"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/core"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// install instructions that imply a Unix shell
	gitClonePattern = regexp.MustCompile(`(sudo\s+)?git\s+clone`)

	// curl with flags, read as a Windows-side download instruction
	curlPattern = regexp.MustCompile(`curl\s+-`)
)

// ClassifyReadme infers the platforms a project supports from the install
// commands in its README. The result is a hint and is never empty: when
// nothing matches, both platforms are assumed.
func ClassifyReadme(readme string) core.PlatformSet {
	text := whitespaceRun.ReplaceAllString(strings.ToLower(readme), " ")

	gitFound := gitClonePattern.MatchString(text)
	curlFound := curlPattern.MatchString(text)

	switch {
	case gitFound && curlFound:
		return core.BothPlatforms()
	case gitFound:
		return core.PlatformSet{core.PlatformLinux}
	case curlFound:
		return core.PlatformSet{core.PlatformWindows}
	default:
		return core.BothPlatforms()
	}
}
