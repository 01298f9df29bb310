package helpers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TrimGitSuffix removes a trailing ".git" from a repository URL
func TrimGitSuffix(repoURL string) string {
	return strings.TrimSuffix(repoURL, ".git")
}

// RepoNameFromURL returns the directory name git clone creates for repoURL
func RepoNameFromURL(repoURL string) string {
	trimmed := strings.TrimRight(repoURL, "/")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return TrimGitSuffix(trimmed)
}

// ArchiveURL returns the GitHub ZIP download URL of a branch
func ArchiveURL(repoURL, branch string) string {
	return fmt.Sprintf("%s/archive/refs/heads/%s.zip", TrimGitSuffix(strings.TrimRight(repoURL, "/")), branch)
}

// GenerateRunID generates a unique run ID from a repository name
func GenerateRunID(name string) string {
	return fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
}

// DisplayPath renders path relative to base for user-facing messages,
// falling back to path itself when no relative form exists
func DisplayPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
