package security

import (
	"fmt"
	"regexp"
)

// ValidRepoNameRegex matches the characters GitHub allows in repository names
var ValidRepoNameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateRepoName validates a repository name before it is used as a URL
// segment and as a directory name
func ValidateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > 100 {
		return fmt.Errorf("repository name too long (max 100 characters)")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid repository name: %q", name)
	}

	if !ValidRepoNameRegex.MatchString(name) {
		return fmt.Errorf("invalid repository name %q: must contain only alphanumeric, dash, underscore, or dot characters", name)
	}

	return nil
}
